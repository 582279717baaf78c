package contract

import (
	"testing"
	"time"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContract(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates draft contract with valid input", func(t *testing.T) {
		c, err := New(tenantID, TypeService, "Acme Corp")
		require.NoError(t, err)
		assert.Equal(t, StatusDraft, c.Status)
		assert.Equal(t, TypeService, c.Type)
		assert.Equal(t, "Acme Corp", c.Counterparty.Name)
		assert.Equal(t, 1, c.Version)
		assert.True(t, c.Value.IsZero())
	})

	t.Run("rejects empty counterparty name", func(t *testing.T) {
		_, err := New(tenantID, TypeService, "")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_COUNTERPARTY", domainErr.Code)
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		_, err := New(tenantID, Type("bogus"), "Acme Corp")
		assert.Error(t, err)
	})

	t.Run("rejects nil tenant", func(t *testing.T) {
		_, err := New(uuid.Nil, TypeService, "Acme Corp")
		assert.Error(t, err)
	})
}

func TestContractSetDates(t *testing.T) {
	c, err := New(uuid.New(), TypeService, "Acme Corp")
	require.NoError(t, err)

	effective := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("accepts ordered dates", func(t *testing.T) {
		err := c.SetDates(Dates{Effective: &effective, Expiry: &expiry})
		require.NoError(t, err)
		assert.Equal(t, effective, *c.Dates.Effective)
	})

	t.Run("rejects expiry before effective", func(t *testing.T) {
		bad := effective.AddDate(-1, 0, 0)
		err := c.SetDates(Dates{Effective: &effective, Expiry: &bad})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DATE_RANGE", domainErr.Code)
	})

	t.Run("allows partial dates", func(t *testing.T) {
		err := c.SetDates(Dates{Expiry: &expiry})
		assert.NoError(t, err)
	})
}

func TestContractSetValue(t *testing.T) {
	c, err := New(uuid.New(), TypePurchase, "Acme Corp")
	require.NoError(t, err)

	t.Run("accepts value with currency", func(t *testing.T) {
		err := c.SetValue(decimal.NewFromInt(150000), "usd")
		require.NoError(t, err)
		assert.Equal(t, "USD", c.Currency)
	})

	t.Run("rejects negative value", func(t *testing.T) {
		err := c.SetValue(decimal.NewFromInt(-1), "USD")
		assert.Error(t, err)
	})

	t.Run("rejects non-ISO currency", func(t *testing.T) {
		err := c.SetValue(decimal.NewFromInt(1), "DOLLARS")
		assert.Error(t, err)
	})
}

func TestContractSetCounterparty(t *testing.T) {
	c, err := New(uuid.New(), TypeService, "Acme Corp")
	require.NoError(t, err)

	t.Run("updates full counterparty", func(t *testing.T) {
		err := c.SetCounterparty("Globex Inc", "1 Main St", "legal@globex.com")
		require.NoError(t, err)
		assert.Equal(t, "Globex Inc", c.Counterparty.Name)
		assert.Equal(t, "legal@globex.com", c.Counterparty.Email)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		err := c.SetCounterparty("Globex Inc", "", "not-an-email")
		assert.Error(t, err)
	})
}

func TestContractStatusTransitions(t *testing.T) {
	c, err := New(uuid.New(), TypeService, "Acme Corp")
	require.NoError(t, err)

	require.NoError(t, c.SetStatus(StatusUnderReview))
	require.NoError(t, c.SetStatus(StatusActive))
	assert.Equal(t, StatusActive, c.Status)

	err = c.SetStatus(Status("NONSENSE"))
	assert.Error(t, err)
}

package contract

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocumentLink(t *testing.T) {
	tenantID := uuid.New()
	contractID := uuid.New()
	documentID := uuid.New()

	t.Run("creates non-primary link", func(t *testing.T) {
		link, err := NewDocumentLink(tenantID, contractID, documentID, RoleMain)
		require.NoError(t, err)
		assert.False(t, link.IsPrimary)
		assert.Equal(t, RoleMain, link.Role)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewDocumentLink(tenantID, contractID, documentID, DocumentRole("appendix"))
		assert.Error(t, err)
	})

	t.Run("rejects nil document id", func(t *testing.T) {
		_, err := NewDocumentLink(tenantID, contractID, uuid.Nil, RoleMain)
		assert.Error(t, err)
	})
}

func TestDocumentLinkPrimaryFlag(t *testing.T) {
	link, err := NewDocumentLink(uuid.New(), uuid.New(), uuid.New(), RoleMain)
	require.NoError(t, err)

	link.MarkPrimary()
	assert.True(t, link.IsPrimary)

	link.ClearPrimary()
	assert.False(t, link.IsPrimary)
}

func TestPrefillRequiresDocument(t *testing.T) {
	_, err := NewPrefill(uuid.New(), uuid.Nil)
	assert.Error(t, err)

	p, err := NewPrefill(uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, p.Confidence)
}

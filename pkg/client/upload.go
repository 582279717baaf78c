package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"sync"
)

// MaxUploadSize is the client-side file size ceiling. Larger files are
// rejected before any network call.
const MaxUploadSize = 20 * 1024 * 1024

// Upload stages
type Stage string

const (
	StageIdle       Stage = "idle"
	StageUploading  Stage = "uploading"
	StageProcessing Stage = "processing"
	StageComplete   Stage = "complete"
	StageError      Stage = "error"
)

// File describes the file to upload
type File struct {
	Name        string
	Size        int64
	ContentType string
	Content     io.Reader
}

// UploadMetadata carries the form fields sent alongside the file.
// Tags is comma-delimited; the server parses it into a list.
type UploadMetadata struct {
	Title        string
	Type         string
	Description  string
	Tags         string
	Confidential bool
}

// ProgressEvent reports upload progress as an integer percentage.
// The stage moves from uploading to processing once all bytes are sent
// and the client is waiting on server-side ingestion.
type ProgressEvent struct {
	Stage   Stage
	Percent int
}

// UploadOptions configures a single upload
type UploadOptions struct {
	// OnProgress receives progress events; called from the upload goroutine
	OnProgress func(ProgressEvent)
	// OnSuccess is invoked with the persisted document
	OnSuccess func(*Document)
}

// ValidateFile rejects oversized files before any network call
func (c *Client) ValidateFile(name string, size int64) error {
	if size > MaxUploadSize {
		return &ValidationError{
			Message: "file exceeds the maximum upload size",
			FieldErrors: []FieldError{{
				Field:   "file",
				Code:    "max_size",
				Message: fmt.Sprintf("%s exceeds the %d MB limit", name, MaxUploadSize>>20),
			}},
		}
	}
	return nil
}

// UploadHandle tracks an in-flight upload. Stage and Progress are safe to
// read while the upload runs; Wait blocks until it finishes.
type UploadHandle struct {
	mu       sync.Mutex
	stage    Stage
	percent  int
	cancel   context.CancelFunc
	canceled bool

	done chan struct{}
	doc  *Document
	err  error
}

// Stage returns the current upload stage
func (u *UploadHandle) Stage() Stage {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.stage
}

// Progress returns the current progress percentage
func (u *UploadHandle) Progress() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.percent
}

// Cancel aborts the in-flight attempt, primary or fallback, resets the
// stage to idle, and clears progress. It is a no-op once the upload
// finished.
func (u *UploadHandle) Cancel() {
	u.mu.Lock()
	select {
	case <-u.done:
		u.mu.Unlock()
		return
	default:
	}
	u.canceled = true
	u.stage = StageIdle
	u.percent = 0
	u.mu.Unlock()
	u.cancel()
}

// Wait blocks until the upload finishes and returns its outcome.
// A canceled upload returns context.Canceled.
func (u *UploadHandle) Wait() (*Document, error) {
	<-u.done
	return u.doc, u.err
}

// Done returns a channel closed when the upload finishes
func (u *UploadHandle) Done() <-chan struct{} {
	return u.done
}

func (u *UploadHandle) setProgress(stage Stage, percent int, report func(ProgressEvent)) {
	u.mu.Lock()
	if u.canceled {
		u.mu.Unlock()
		return
	}
	u.stage = stage
	u.percent = percent
	u.mu.Unlock()
	if report != nil {
		report(ProgressEvent{Stage: stage, Percent: percent})
	}
}

// Upload sends a file with metadata. The primary transport streams the
// payload and reports byte-level progress; if it fails for any reason the
// same payload is retried exactly once on a simpler buffered transport.
// Each attempt is bounded by the configured upload timeout.
func (c *Client) Upload(ctx context.Context, file File, meta UploadMetadata, opts UploadOptions) (*UploadHandle, error) {
	if err := c.ValidateFile(file.Name, file.Size); err != nil {
		return nil, err
	}

	// Both transports need the full payload, so buffer it up front. The
	// size ceiling keeps this bounded.
	content, err := io.ReadAll(io.LimitReader(file.Content, MaxUploadSize+1))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if int64(len(content)) > MaxUploadSize {
		return nil, &ValidationError{
			Message: "file exceeds the maximum upload size",
			FieldErrors: []FieldError{{Field: "file", Code: "max_size", Message: "file content exceeds the size limit"}},
		}
	}

	body, contentType, err := buildMultipart(file, meta, content)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	u := &UploadHandle{
		stage:  StageIdle,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go c.runUpload(ctx, u, body, contentType, opts)
	return u, nil
}

func (c *Client) runUpload(ctx context.Context, u *UploadHandle, body []byte, contentType string, opts UploadOptions) {
	defer close(u.done)

	doc, err := c.uploadPrimary(ctx, u, body, contentType, opts.OnProgress)
	if err != nil && ctx.Err() == nil {
		// One fallback attempt on a buffered transport, no progress
		// stream. The primary may have failed after all bytes went out,
		// so rewind the visible stage before resending.
		u.setProgress(StageUploading, 0, opts.OnProgress)
		doc, err = c.uploadFallback(ctx, body, contentType)
	}

	u.mu.Lock()
	if u.canceled || ctx.Err() == context.Canceled {
		u.err = context.Canceled
		u.stage = StageIdle
		u.percent = 0
		u.mu.Unlock()
		return
	}
	if err != nil {
		// Progress stays wherever the transfer got to
		u.stage = StageError
		u.err = err
		u.mu.Unlock()
		return
	}
	u.stage = StageComplete
	u.percent = 100
	u.doc = doc
	u.mu.Unlock()

	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Stage: StageComplete, Percent: 100})
	}
	if opts.OnSuccess != nil {
		opts.OnSuccess(doc)
	}
}

// uploadPrimary streams the payload through a progress-counting reader
func (c *Client) uploadPrimary(ctx context.Context, u *UploadHandle, body []byte, contentType string, onProgress func(ProgressEvent)) (*Document, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()

	u.setProgress(StageUploading, 0, onProgress)
	reader := &progressReader{
		r:     bytes.NewReader(body),
		total: int64(len(body)),
		report: func(percent int) {
			stage := StageUploading
			if percent >= 100 {
				// All bytes sent; waiting on server-side ingestion
				stage = StageProcessing
			}
			u.setProgress(stage, percent, onProgress)
		},
	}

	req, err := c.newRequest(attemptCtx, http.MethodPost, "/api/v1/documents", reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(body))

	var doc Document
	if err := c.do(req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// uploadFallback re-sends the buffered payload in one shot
func (c *Client) uploadFallback(ctx context.Context, body []byte, contentType string) (*Document, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()

	req, err := c.newRequest(attemptCtx, http.MethodPost, "/api/v1/documents", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(body))

	var doc Document
	if err := c.do(req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func buildMultipart(file File, meta UploadMetadata, content []byte) ([]byte, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("title", meta.Title); err != nil {
		return nil, "", err
	}
	if err := writer.WriteField("type", meta.Type); err != nil {
		return nil, "", err
	}
	if err := writer.WriteField("description", meta.Description); err != nil {
		return nil, "", err
	}
	if err := writer.WriteField("tags", meta.Tags); err != nil {
		return nil, "", err
	}
	if err := writer.WriteField("confidential", strconv.FormatBool(meta.Confidential)); err != nil {
		return nil, "", err
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+file.Name+`"`)
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(content); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body.Bytes(), writer.FormDataContentType(), nil
}

// progressReader counts bytes read and reports integer percent changes
type progressReader struct {
	r       io.Reader
	total   int64
	read    int64
	lastPct int
	report  func(int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		pct := 100
		if p.total > 0 {
			pct = int(p.read * 100 / p.total)
		}
		if pct > 100 {
			pct = 100
		}
		if pct != p.lastPct {
			p.lastPct = pct
			p.report(pct)
		}
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return n, err
	}
	return n, err
}

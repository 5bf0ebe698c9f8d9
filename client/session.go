package client

import (
	"context"
	"errors"
	"sync"

	"github.com/campuscms/internal/content"
)

// ErrSubmitInFlight is returned when a submit is attempted while a previous
// one has not completed.
var ErrSubmitInFlight = errors.New("a submit for this session is already in flight")

// EditSession ties an edit buffer to the page it was opened for. Buffer
// mutations follow the edit-buffer rules; Submit reconciles and uploads, and
// rejects a second concurrent attempt so a double click cannot race two
// updates against each other.
type EditSession struct {
	client *Client
	pageID uint
	buffer *content.EditBuffer

	mu       sync.Mutex
	inFlight bool
}

// NewEditSession fetches the page and opens an edit buffer over its content.
func (c *Client) NewEditSession(ctx context.Context, id uint) (*EditSession, error) {
	page, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &EditSession{
		client: c,
		pageID: page.ID,
		buffer: content.NewEditBuffer(page.Content),
	}, nil
}

// Buffer exposes the session's edit buffer.
func (s *EditSession) Buffer() *content.EditBuffer {
	return s.buffer
}

// Submit reconciles the buffer against the original document and sends the
// result. The session stays usable after a failed submit so edits are not
// lost.
func (s *EditSession) Submit(ctx context.Context) (*Page, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	s.inFlight = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	payload, staged := s.buffer.Reconcile()
	return s.client.Update(ctx, s.pageID, payload, staged)
}

package gateway

import (
	"errors"
	"sync"

	"github.com/labstack/echo/v5"
)

// echoResponder delivers the single initial response of an interaction
// request. Handlers run on bus goroutines, so delivery is synchronized
// with the request goroutine through the done channel.
type echoResponder struct {
	c    *echo.Context
	mu   sync.Mutex
	sent bool
	done chan struct{}
}

func newEchoResponder(c *echo.Context) *echoResponder {
	return &echoResponder{
		c:    c,
		done: make(chan struct{}),
	}
}

// Sent reports whether the initial response has been delivered.
func (r *echoResponder) Sent() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sent
}

// Respond writes the initial JSON response exactly once.
func (r *echoResponder) Respond(status int, body interface{}) error {
	r.mu.Lock()
	if r.sent {
		r.mu.Unlock()
		return errors.New("response already sent")
	}
	r.sent = true
	r.mu.Unlock()

	err := r.c.JSON(status, body)
	close(r.done)
	return err
}

// Done is closed after the initial response has been written.
func (r *echoResponder) Done() <-chan struct{} {
	return r.done
}

// Abandon marks the response as sent without writing anything, for
// requests that ended before a reply was produced. A later Respond
// from a slow handler then fails instead of touching the connection.
func (r *echoResponder) Abandon() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.sent {
		r.sent = true
		close(r.done)
	}
}

// Error taxonomy shared across the chat loop and tool invoker.
package main

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/openai/openai-go"
)

var (
	// ErrUnknownTool reports a model tool call whose name is not in the
	// registered tool set. It is never retried and never reaches the
	// tool provider.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrToolLoopExceeded reports a turn that hit the tool-call cap while
	// the model was still requesting tools.
	ErrToolLoopExceeded = errors.New("tool call limit reached")
)

// isTransientModelErr reports whether a chat completion error is worth
// retrying: throttling, server-side failures, and network timeouts.
// Auth and validation failures (4xx) propagate immediately.
func isTransientModelErr(err error) bool {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		switch {
		case apierr.StatusCode == http.StatusRequestTimeout:
			return true
		case apierr.StatusCode == http.StatusTooManyRequests:
			return true
		case apierr.StatusCode >= 500:
			return true
		}
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

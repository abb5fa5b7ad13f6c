// Tests for the retrying model client.
package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/openai/openai-go"
)

// TestCompleteWithRetryTransientThenSuccess verifies transient failures
// are retried until success.
func TestCompleteWithRetryTransientThenSuccess(t *testing.T) {
	calls := 0
	do := func(context.Context) (openai.ChatCompletionMessage, error) {
		calls++
		if calls < 3 {
			return openai.ChatCompletionMessage{}, &openai.Error{StatusCode: 503}
		}
		return openai.ChatCompletionMessage{Content: "ok"}, nil
	}

	message, err := completeWithRetry(context.Background(), do, 3, time.Millisecond, false)
	if err != nil {
		t.Fatalf("completeWithRetry: %v", err)
	}
	if message.Content != "ok" {
		t.Fatalf("unexpected content: %q", message.Content)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

// TestCompleteWithRetryFatalPropagates verifies fatal errors are not
// retried.
func TestCompleteWithRetryFatalPropagates(t *testing.T) {
	calls := 0
	fatal := &openai.Error{StatusCode: 401}
	do := func(context.Context) (openai.ChatCompletionMessage, error) {
		calls++
		return openai.ChatCompletionMessage{}, fatal
	}

	_, err := completeWithRetry(context.Background(), do, 3, time.Millisecond, false)
	if !errors.Is(err, fatal) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("fatal error retried: %d attempts", calls)
	}
}

// TestCompleteWithRetryExhausted verifies persistent transient failures
// surface after the attempt budget.
func TestCompleteWithRetryExhausted(t *testing.T) {
	calls := 0
	do := func(context.Context) (openai.ChatCompletionMessage, error) {
		calls++
		return openai.ChatCompletionMessage{}, &openai.Error{StatusCode: 500}
	}

	_, err := completeWithRetry(context.Background(), do, 3, time.Millisecond, false)
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

// TestCompleteWithRetryHonorsContext verifies cancellation stops the
// backoff wait.
func TestCompleteWithRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	do := func(context.Context) (openai.ChatCompletionMessage, error) {
		cancel()
		return openai.ChatCompletionMessage{}, &openai.Error{StatusCode: 500}
	}

	_, err := completeWithRetry(ctx, do, 3, time.Hour, false)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

// TestIsTransientModelErr covers the transient/fatal classification.
func TestIsTransientModelErr(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"server error", &openai.Error{StatusCode: 500}, true},
		{"bad gateway", &openai.Error{StatusCode: 502}, true},
		{"throttled", &openai.Error{StatusCode: 429}, true},
		{"request timeout", &openai.Error{StatusCode: 408}, true},
		{"auth failure", &openai.Error{StatusCode: 401}, false},
		{"forbidden", &openai.Error{StatusCode: 403}, false},
		{"bad deployment", &openai.Error{StatusCode: 404}, false},
		{"bad request", &openai.Error{StatusCode: 400}, false},
		{"deadline", context.DeadlineExceeded, true},
		{"generic", errors.New("boom"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isTransientModelErr(tc.err); got != tc.want {
				t.Fatalf("isTransientModelErr(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

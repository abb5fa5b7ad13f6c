// Chat completions client with bounded retry on transient failures.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	// completionAttempts bounds retries for one logical completion request.
	completionAttempts = 3
	// completionBackoffBase is the delay before the first retry; each
	// subsequent retry doubles it.
	completionBackoffBase = 500 * time.Millisecond
)

// completer abstracts one chat completion round trip. The conversation
// loop depends on this seam rather than the SDK client directly.
type completer interface {
	Complete(ctx context.Context, params openai.ChatCompletionNewParams) (openai.ChatCompletionMessage, error)
}

// modelClient sends conversation state to the Azure AI Foundry deployment.
type modelClient struct {
	client  openai.Client
	verbose bool
}

// newModelClient builds a client for the configured endpoint. SDK-level
// retries are disabled so the backoff policy lives in one place.
func newModelClient(config *Config) *modelClient {
	opts := []option.RequestOption{
		option.WithBaseURL(config.Endpoint),
		option.WithMaxRetries(0),
	}
	if config.APIKey != "" {
		opts = append(opts, option.WithAPIKey(config.APIKey))
	}
	return &modelClient{
		client:  openai.NewClient(opts...),
		verbose: config.Verbose,
	}
}

// Complete performs one chat completion, retrying transient failures with
// exponential backoff. Fatal errors propagate immediately.
func (m *modelClient) Complete(ctx context.Context, params openai.ChatCompletionNewParams) (openai.ChatCompletionMessage, error) {
	return completeWithRetry(ctx, func(ctx context.Context) (openai.ChatCompletionMessage, error) {
		completion, err := m.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return openai.ChatCompletionMessage{}, err
		}
		if len(completion.Choices) == 0 {
			return openai.ChatCompletionMessage{}, errors.New("empty completion choices")
		}
		return completion.Choices[0].Message, nil
	}, completionAttempts, completionBackoffBase, m.verbose)
}

// completeWithRetry runs do up to attempts times, sleeping with doubling
// backoff between transient failures.
func completeWithRetry(ctx context.Context, do func(context.Context) (openai.ChatCompletionMessage, error), attempts int, backoffBase time.Duration, verbose bool) (openai.ChatCompletionMessage, error) {
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := backoffBase << (attempt - 1)
			if verbose {
				log.Printf("[verbose] model: transient failure, retrying in %s (attempt %d/%d): %v", delay, attempt+1, attempts, lastErr)
			}
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return openai.ChatCompletionMessage{}, ctx.Err()
			}
		}

		message, err := do(ctx)
		if err == nil {
			return message, nil
		}
		if !isTransientModelErr(err) {
			return openai.ChatCompletionMessage{}, err
		}
		lastErr = err
	}
	return openai.ChatCompletionMessage{}, fmt.Errorf("model request failed after %d attempts: %w", attempts, lastErr)
}

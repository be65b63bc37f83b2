// Package aiparser extracts transactions from statement lines that the local
// patterns could not read, by asking a text-generation model for a JSON array
// and validating every item it returns.
package aiparser

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"jose/statement-ingest/internal/parsererror"

	"github.com/anthropics/anthropic-sdk-go"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Generator is an opaque text completion function.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Providers
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// statusOverloaded is returned by the Anthropic API when it sheds load.
const statusOverloaded = 529

// wrapProviderError maps rate-limit and unavailability errors of any provider
// onto parsererror.ErrAIOverloaded, keeping the original error in the chain
// message.
func wrapProviderError(provider string, err error) error {
	if err == nil {
		return nil
	}
	if isOverloadError(err) {
		return fmt.Errorf("%s: %w: %v", provider, parsererror.ErrAIOverloaded, err)
	}
	return fmt.Errorf("%s request failed: %w", provider, err)
}

func isOverloadError(err error) bool {
	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		return isOverloadStatus(anthropicErr.StatusCode)
	}

	var googleErr *googleapi.Error
	if errors.As(err, &googleErr) {
		return isOverloadStatus(googleErr.Code)
	}

	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.ResourceExhausted, codes.Unavailable:
			return true
		}
	}
	return false
}

func isOverloadStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusServiceUnavailable, statusOverloaded:
		return true
	}
	return false
}

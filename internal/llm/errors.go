package llm

import (
	"context"
	"errors"
	"net"

	openai "github.com/meguminnnnnnnnn/go-openai"
	"google.golang.org/api/googleapi"
)

// Provider failures are folded into four categories the caller can act on.
// They surface as human-readable initialization or query errors, never as a
// process crash.
var (
	// ErrCredentialInvalid corresponds to HTTP 401: the API key is wrong.
	ErrCredentialInvalid = errors.New("invalid API key - authentication failed")
	// ErrCredentialForbidden corresponds to HTTP 403: the key has no access to
	// the requested model.
	ErrCredentialForbidden = errors.New("API key doesn't have permission to access this model")
	// ErrRateLimited corresponds to HTTP 429.
	ErrRateLimited = errors.New("rate limited by the model provider - try again later")
	// ErrNetworkTransient covers 5xx responses, timeouts and connection
	// failures. Retryable by the caller; never retried internally.
	ErrNetworkTransient = errors.New("transient network or provider error")
)

// ClassifyAPIError maps a provider error to one of the taxonomy errors above,
// or returns the input unchanged when it fits no category.
func ClassifyAPIError(err error) error {
	if err == nil {
		return nil
	}

	if code, ok := statusCode(err); ok {
		switch {
		case code == 401:
			return ErrCredentialInvalid
		case code == 403:
			return ErrCredentialForbidden
		case code == 429:
			return ErrRateLimited
		case code >= 500:
			return ErrNetworkTransient
		}
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrNetworkTransient
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return ErrNetworkTransient
	}

	return err
}

// statusCode extracts the HTTP status from the provider error types we know.
func statusCode(err error) (int, bool) {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode, true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode, true
	}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr.Code, true
	}
	return 0, false
}

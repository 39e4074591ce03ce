package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	openai "github.com/meguminnnnnnnnn/go-openai"
	"google.golang.org/api/googleapi"
)

func TestClassifyAPIError_StatusCodes(t *testing.T) {
	cases := []struct {
		code int
		want error
	}{
		{401, ErrCredentialInvalid},
		{403, ErrCredentialForbidden},
		{429, ErrRateLimited},
		{500, ErrNetworkTransient},
		{503, ErrNetworkTransient},
	}

	for _, tc := range cases {
		apiErr := &openai.APIError{HTTPStatusCode: tc.code}
		if got := ClassifyAPIError(apiErr); !errors.Is(got, tc.want) {
			t.Errorf("ClassifyAPIError(APIError %d) = %v, expected %v", tc.code, got, tc.want)
		}

		gErr := &googleapi.Error{Code: tc.code}
		if got := ClassifyAPIError(gErr); !errors.Is(got, tc.want) {
			t.Errorf("ClassifyAPIError(googleapi %d) = %v, expected %v", tc.code, got, tc.want)
		}
	}
}

func TestClassifyAPIError_RequestError(t *testing.T) {
	reqErr := &openai.RequestError{HTTPStatusCode: 401}
	if got := ClassifyAPIError(reqErr); !errors.Is(got, ErrCredentialInvalid) {
		t.Errorf("ClassifyAPIError(RequestError 401) = %v, expected ErrCredentialInvalid", got)
	}
}

func TestClassifyAPIError_Timeout(t *testing.T) {
	err := fmt.Errorf("call failed: %w", context.DeadlineExceeded)
	if got := ClassifyAPIError(err); !errors.Is(got, ErrNetworkTransient) {
		t.Errorf("ClassifyAPIError(deadline exceeded) = %v, expected ErrNetworkTransient", got)
	}
}

func TestClassifyAPIError_Passthrough(t *testing.T) {
	if got := ClassifyAPIError(nil); got != nil {
		t.Errorf("ClassifyAPIError(nil) = %v, expected nil", got)
	}

	plain := errors.New("something unrelated")
	if got := ClassifyAPIError(plain); got != plain {
		t.Errorf("ClassifyAPIError(plain) = %v, expected the input unchanged", got)
	}

	// a client-side 400 is neither a credential nor a transient problem
	apiErr := &openai.APIError{HTTPStatusCode: 400}
	if got := ClassifyAPIError(apiErr); got != error(apiErr) {
		t.Errorf("ClassifyAPIError(400) = %v, expected the input unchanged", got)
	}
}

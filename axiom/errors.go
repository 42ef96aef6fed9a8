package axiom

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is the uniform failure shape for every platform call. Status
// carries the HTTP status code, or 0 when the request never reached the
// backend. Message is safe to surface to the operator as a toast.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("Axiom API network error: %s", e.Message)
	}
	if e.Detail != "" {
		return fmt.Sprintf("Axiom API error (status %d): %s - %s", e.Status, e.Message, e.Detail)
	}
	return fmt.Sprintf("Axiom API error (status %d): %s", e.Status, e.Message)
}

// networkError wraps a transport failure that produced no response.
func networkError(err error) APIError {
	return APIError{
		Status:  0,
		Message: "Network error",
		Detail:  err.Error(),
	}
}

// parseAPIError builds an APIError from a non-2xx response body. The
// backend is not consistent about its failure shape, so several layouts
// are tried before falling back to the status text.
func parseAPIError(status int, body []byte) APIError {
	apiErr := APIError{Status: status}

	var envelope struct {
		Error json.RawMessage `json:"error"`
		// Flat layouts.
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}

	if err := json.Unmarshal(body, &envelope); err == nil {
		if len(envelope.Error) > 0 {
			var nested struct {
				Code    string `json:"code"`
				Message string `json:"message"`
				Details string `json:"details"`
			}
			if err := json.Unmarshal(envelope.Error, &nested); err == nil && nested.Message != "" {
				apiErr.Message = nested.Message
				apiErr.Detail = nested.Details
				return apiErr
			}

			var plain string
			if err := json.Unmarshal(envelope.Error, &plain); err == nil && plain != "" {
				apiErr.Message = plain
				return apiErr
			}
		}

		if envelope.Message != "" {
			apiErr.Message = envelope.Message
			apiErr.Detail = envelope.Detail
			return apiErr
		}

		if envelope.Detail != "" {
			apiErr.Message = envelope.Detail
			return apiErr
		}
	}

	apiErr.Message = http.StatusText(status)
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("unexpected status code: %d", status)
	}
	return apiErr
}

package sectorsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/sectors/pkg/httpx"
	"github.com/aussiebroadwan/sectors/pkg/idx"
)

// Error codes returned in the "error" field of API error bodies.
const (
	ErrorCodeInvalidRequest    = "invalid_request"
	ErrorCodeNotFound          = "not_found"
	ErrorCodeConflict          = "conflict"
	ErrorCodeInvalidToken      = "invalid_token"
	ErrorCodeInsufficientScope = "insufficient_scope"
	ErrorCodeRateLimited       = "rate_limit_exceeded"
	ErrorCodeServerError       = "server_error"
)

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode  int
	Code        string
	Description string

	// RequestID is the X-Request-ID the server answered with, if any.
	RequestID idx.ID
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("sectors api: %d %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("sectors api: %d %s: %s", e.StatusCode, e.Code, e.Description)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsConflict reports whether err is an APIError with status 409, which the
// API uses for duplicate sector names.
func IsConflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// parseErrorResponse builds an APIError from a non-2xx response body. Bodies
// that are not the API's JSON error shape (a proxy's HTML page, say) still
// produce an error carrying the status code.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if id, err := idx.Parse(resp.Header.Get(idx.HeaderName)); err == nil {
		apiErr.RequestID = id
	}

	var errResp httpx.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		apiErr.Code = errResp.Error
		apiErr.Description = errResp.ErrorDescription
		return apiErr
	}

	apiErr.Code = ErrorCodeServerError
	if resp.StatusCode < 500 {
		apiErr.Code = ErrorCodeInvalidRequest
	}
	apiErr.Description = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	return apiErr
}

package gateway

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Sentinel errors for the gateway's failure taxonomy. Callers branch with
// errors.Is; the HTTP layer maps these onto status codes and UI hints.
var (
	// ErrInvalidInput means the caller violated a precondition (empty
	// prompt and no image, unknown style id, empty chat message). Never
	// the provider's fault; nothing was sent over the wire.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedResponse means the provider answered but the payload did
	// not conform to the demanded shape.
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrNoImageReturned means an image-edit response carried no inline
	// image part.
	ErrNoImageReturned = errors.New("no image returned")

	// ErrNoVideoReturned means a completed video job carried no download
	// reference.
	ErrNoVideoReturned = errors.New("no video returned")

	// ErrCredentialRequired means video synthesis was requested without a
	// billing-capable API key configured. The caller should prompt
	// credential selection and retry.
	ErrCredentialRequired = errors.New("billing-capable API credential required")

	// ErrCredentialExpired means the provider no longer recognizes the
	// configured credential ("Requested entity was not found"). Distinct
	// from transport failure so the caller can re-trigger key selection.
	ErrCredentialExpired = errors.New("API credential expired or reset")

	// ErrLookupFailed means the grounded locality query failed outright.
	ErrLookupFailed = errors.New("nearby lookup failed")

	// ErrBusy means a second request was issued for a feature instance
	// that still has one in flight. Single-flight is enforced here, not in
	// the UI.
	ErrBusy = errors.New("request already in flight")
)

// TransportError wraps a network or provider failure for one operation.
// It is never retried by the gateway.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: provider call failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// credentialGone reports whether a provider error is the "Requested entity
// was not found" shape Veo produces when the selected key was reset, rather
// than a generic transport failure.
func credentialGone(err error) bool {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == 404 || strings.EqualFold(apiErr.Status, "NOT_FOUND") {
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "requested entity was not found")
}

// classifyVideoError translates submit/poll failures into the taxonomy.
func classifyVideoError(op string, err error) error {
	if credentialGone(err) {
		return fmt.Errorf("%s: %w", op, ErrCredentialExpired)
	}
	return &TransportError{Op: op, Err: err}
}

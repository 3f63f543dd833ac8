package apierror

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the failure mode of a gateway operation.
// Every error returned by this module carries exactly one Kind, so callers
// can branch exhaustively instead of inspecting success flags.
type Kind int

const (
	// KindConfiguration indicates a required credential or setting is
	// missing or invalid at construction time.
	KindConfiguration Kind = iota
	// KindInsufficientScope indicates the token's permission set does not
	// satisfy the call's requirement. Raised pre-flight, no network access.
	KindInsufficientScope
	// KindAuthentication indicates the token endpoint rejected the client
	// credentials, or a retry after a token refresh still returned 401.
	KindAuthentication
	// KindValidation indicates the gateway rejected the request parameters
	// (HTTP 400).
	KindValidation
	// KindAPI indicates a transport-level success whose payload signals a
	// business-level failure (e.g. record not found).
	KindAPI
	// KindRateLimit indicates the gateway throttled the request (HTTP 429).
	KindRateLimit
	// KindNetwork indicates a timeout, a connection failure, or a server
	// error (HTTP >= 500).
	KindNetwork
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindInsufficientScope:
		return "insufficient_scope"
	case KindAuthentication:
		return "authentication"
	case KindValidation:
		return "validation"
	case KindAPI:
		return "api"
	case KindRateLimit:
		return "rate_limit"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Category groups kinds into three top-level buckets so callers that do not
// care about the exact kind can still handle errors exhaustively.
type Category int

const (
	// CategoryConfiguration covers errors the integrator fixes by changing
	// credentials or project provisioning, not by retrying.
	CategoryConfiguration Category = iota
	// CategoryTransport covers errors in reaching or authenticating to the
	// gateway; retrying (with backoff) may help.
	CategoryTransport
	// CategoryBusiness covers errors the gateway itself reported about the
	// request's content or outcome.
	CategoryBusiness
)

// String returns a human-readable name for the category.
func (c Category) String() string {
	switch c {
	case CategoryConfiguration:
		return "configuration"
	case CategoryTransport:
		return "transport"
	case CategoryBusiness:
		return "business"
	default:
		return "unknown"
	}
}

// Category returns the top-level bucket for the kind.
// InsufficientScope is a configuration matter: the project was not
// provisioned with the required API product on the marketplace.
func (k Kind) Category() Category {
	switch k {
	case KindConfiguration, KindInsufficientScope:
		return CategoryConfiguration
	case KindAuthentication, KindRateLimit, KindNetwork:
		return CategoryTransport
	default:
		return CategoryBusiness
	}
}

// Reasons attached to KindNetwork errors.
const (
	ReasonTimeout     = "timeout"
	ReasonConnection  = "connection"
	ReasonServerError = "server_error"
)

// Error is the single error type produced by this module. The populated
// fields depend on Kind: HTTP-derived kinds carry StatusCode and Body,
// scope failures carry RequiredActions and AvailableActions, network
// failures carry Reason.
type Error struct {
	Kind    Kind
	Message string

	// StatusCode is the HTTP status of the failing response, 0 when the
	// failure happened before a status was received.
	StatusCode int

	// Code is the gateway's business response code, when present.
	Code string

	// Reason describes the failure cause (one of the Reason* constants for
	// network errors, free text otherwise).
	Reason string

	// Body is the raw response body of the failing call, when one exists.
	Body []byte

	// RequiredActions and AvailableActions are set on scope failures.
	RequiredActions  []string
	AvailableActions []string

	// Err is the underlying cause, if any.
	Err error
}

// Error renders the message plus whichever context fields are set.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " [status: %d]", e.StatusCode)
	}
	if e.Code != "" {
		fmt.Fprintf(&b, " [code: %s]", e.Code)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, " [reason: %s]", e.Reason)
	}
	if len(e.RequiredActions) > 0 {
		fmt.Fprintf(&b, " [required: %s]", strings.Join(e.RequiredActions, " or "))
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Category returns the error's top-level category.
func (e *Error) Category() Category {
	return e.Kind.Category()
}

// As extracts an *Error from an error chain.
func As(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Kind == k
}

// Configuration builds a KindConfiguration error.
func Configuration(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConfiguration, Message: fmt.Sprintf(format, args...)}
}

// InsufficientScope builds a KindInsufficientScope error describing which
// actions were required and which the token actually carries.
func InsufficientScope(required, available []string) *Error {
	scope := "'" + strings.Join(required, "' or '") + "'"
	return &Error{
		Kind: KindInsufficientScope,
		Message: fmt.Sprintf("your token does not have permission for this API; required: %s; "+
			"open your project on the marketplace and enable the missing API product", scope),
		RequiredActions:  required,
		AvailableActions: available,
	}
}

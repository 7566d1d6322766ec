package spec

// Kind categorizes load failures for clearer handling and messaging.
type Kind string

const (
	// KindParse means the raw text is neither valid JSON nor valid YAML.
	KindParse Kind = "ParseError"
	// KindValidation means the parsed document lacks both the "openapi"
	// and "swagger" root markers.
	KindValidation Kind = "ValidationError"
	// KindTransport means acquisition failed (network error or a
	// non-success HTTP status).
	KindTransport Kind = "TransportError"
	// KindInput means the input reference itself is unusable (empty,
	// unsupported scheme or extension).
	KindInput Kind = "InputError"
)

// Error is the structured failure type for loading and normalization.
// Message is human-readable; there are no recoverable partial results —
// callers keep any previously loaded model when they see one of these.
type Error struct {
	Kind     Kind
	Message  string
	Location string // file path or URL, when known
	Cause    error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Cause }

// Is matches errors by kind so callers can test with errors.Is against a
// bare &Error{Kind: ...} sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, msg string) *Error { return &Error{Kind: kind, Message: msg} }

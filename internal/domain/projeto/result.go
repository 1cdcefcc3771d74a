package projeto

// Outcome tags how a service call resolved.
type Outcome int

const (
	OutcomeSuccess Outcome = iota + 1
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Result is what every service operation resolves to. On failure Value
// holds the operation's fallback and Err the transport error, which is
// for diagnostics only.
type Result[T any] struct {
	Value   T
	Outcome Outcome
	// Message is the notification text emitted for this call, if any.
	Message string
	Err     error
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool {
	return r.Outcome == OutcomeSuccess
}

package llm

import "fmt"

// ExternalCallError wraps any failure talking to a provider API
type ExternalCallError struct {
	Provider Provider
	Cause    error
}

func (e *ExternalCallError) Error() string {
	return fmt.Sprintf("%s API call failed: %v", e.Provider, e.Cause)
}

func (e *ExternalCallError) Unwrap() error {
	return e.Cause
}

func callFailed(p Provider, format string, args ...any) error {
	return &ExternalCallError{Provider: p, Cause: fmt.Errorf(format, args...)}
}

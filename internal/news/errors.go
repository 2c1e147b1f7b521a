package news

import "fmt"

// ConfigurationError is returned when a provider without a fallback lacks credentials
type ConfigurationError struct {
	Provider string
	Message  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// UpstreamError represents a failed call to a live provider.
// StatusCode is 0 when the request never got a response (transport failure, timeout).
type UpstreamError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API call failed with status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s API call failed: %s", e.Provider, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// InternalError wraps an unexpected processing failure, such as an undecodable body
type InternalError struct {
	Provider string
	Err      error
}

func (e *InternalError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("internal error: %v", e.Err)
	}
	return fmt.Sprintf("%s: internal error: %v", e.Provider, e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// ValidationError reports a query parameter outside its accepted range
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// AggregationError is returned by a combined fetch when either provider fails
type AggregationError struct {
	Err error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("combined news search failed: %v", e.Err)
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}

package ports

import "fmt"

// RejectedError reports a domain error from the planning service
// (e.g. no feasible route). The message is server-provided and shown to
// the user verbatim behind an "Error: " prefix.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("planning rejected: %s", e.Message)
}

// TransportError reports a network failure, a non-JSON body, or an
// unexpected HTTP status with no decodable error envelope.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("planning transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

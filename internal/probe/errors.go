package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// NetworkError reports an outbound timing request that produced no response.
type NetworkError struct {
	Identifier string
	URL        string
	DNSClass   string // empty when no diagnosis ran
	Err        error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("load %q: %v", e.Identifier, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Timeout reports whether the request gave up because a deadline passed.
func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

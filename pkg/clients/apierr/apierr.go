// Package apierr carries the error types shared by the marketplace API
// clients and the failure classification used by the sync orchestrator.
package apierr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// StatusError is returned whenever a marketplace endpoint answers with a
// non-success HTTP status. The body is kept verbatim for diagnostics.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// Kind is the coarse failure category a sync run reports.
type Kind int

const (
	// KindOther covers everything not matched below, parse failures included.
	KindOther Kind = iota
	// KindTimeout marks deadline and network-timeout failures.
	KindTimeout
	// KindConnection marks network-level failures such as refused connections.
	KindConnection
	// KindStatus marks a non-2xx answer from a marketplace endpoint.
	KindStatus
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindConnection:
		return "connection"
	case KindStatus:
		return "status"
	default:
		return "other"
	}
}

// Classify places an error into one of the four failure categories. Status
// errors win over transport errors so an HTTP failure wrapped in further
// context is still reported with its status code.
func Classify(err error) Kind {
	if err == nil {
		return KindOther
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return KindStatus
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return KindConnection
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return KindConnection
	}

	return KindOther
}

package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// ErrNotFound is returned when a row the caller addressed by id does not exist.
var ErrNotFound = errors.New("record not found")

// ValidationError reports persistence-layer format violations. The repository
// re-checks phone formats as a second line of defense behind the service layer.
type ValidationError struct {
	Fields map[string]string // field name -> message
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Connectivity kinds, used by the API layer to pick a user-facing message
// without inspecting driver error strings.
const (
	KindTimeout     = "timeout"
	KindRefused     = "refused"
	KindUnreachable = "unreachable"
	KindConnection  = "connection"
	KindUnknown     = "unknown"
)

// ConnectivityError wraps a database/network failure and classifies it.
type ConnectivityError struct {
	Op   string // "read current", "apply update", ...
	Kind string
	Err  error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// classify maps a raw driver error to the typed hierarchy. sql.ErrNoRows is
// the caller's business (usually ErrNotFound or a seed path), so it is passed
// through untouched.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return err
	}

	kind := KindUnknown
	var netErr net.Error
	var dnsErr *net.DNSError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = KindTimeout
	case errors.Is(err, syscall.ECONNREFUSED):
		kind = KindRefused
	case errors.As(err, &dnsErr):
		kind = KindUnreachable
	case errors.Is(err, driver.ErrBadConn):
		kind = KindConnection
	default:
		var opErr *net.OpError
		if errors.As(err, &opErr) {
			kind = KindConnection
		}
	}
	return &ConnectivityError{Op: op, Kind: kind, Err: err}
}

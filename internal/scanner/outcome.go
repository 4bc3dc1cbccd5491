package scanner

import (
	"context"
	"crypto/x509"
	"errors"
	"net"
	"time"

	"github.com/fillscan/fillscan/internal/candidate"
)

// ErrKind classifies how a probe failed. Expected network failures are data,
// not exceptions: the scan records them and moves on.
type ErrKind int

const (
	// KindOK means a response was received, whatever its status code.
	KindOK ErrKind = iota
	// KindTimeout means no response arrived within the timeout budget.
	KindTimeout
	// KindConnection covers DNS failures, refused connections and TLS
	// handshake errors.
	KindConnection
	// KindProtocol covers malformed or otherwise unreadable HTTP responses.
	KindProtocol
)

func (k ErrKind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindTimeout:
		return "timeout"
	case KindConnection:
		return "connection"
	case KindProtocol:
		return "protocol"
	default:
		return "unknown"
	}
}

// Outcome is the immutable record of one probe. StatusCode is 0 when the
// request failed before a status line was read (Kind != KindOK).
type Outcome struct {
	Candidate  candidate.Candidate
	URL        string
	StatusCode int
	Duration   time.Duration
	Kind       ErrKind
	Err        error
}

// classify maps a transport error onto an ErrKind. Order matters: timeouts
// surface as net.Error before the underlying op error is inspected.
func classify(err error) ErrKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindConnection
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return KindConnection
	}
	var certErr x509.CertificateInvalidError
	var unkErr x509.UnknownAuthorityError
	var hostErr x509.HostnameError
	if errors.As(err, &certErr) || errors.As(err, &unkErr) || errors.As(err, &hostErr) {
		return KindConnection
	}
	return KindProtocol
}

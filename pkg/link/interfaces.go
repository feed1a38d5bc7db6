package link

import (
	"github.com/canlink-project/canlink-go/pkg/rtnl"
)

// Lifecycle is the slice of the manager the configurator drives.
// Implemented by Manager.
type Lifecycle interface {
	// Enter moves the link to the given state.
	Enter(l *Link, s State)

	// Fail moves the link to StateFailed. The failing step has already
	// been recorded by the caller.
	Fail(l *Link)

	// RequestUp submits an administrative bring-up for the link.
	RequestUp(l *Link) error

	// RequestDown submits an administrative bring-down for the link and
	// forwards the acknowledgment to done.
	RequestDown(l *Link, done func(rtnl.Status)) error
}

// Transport submits rtnetlink requests and delivers each acknowledgment
// exactly once, on a single dispatch goroutine.
// Implemented by rtnl.Conn.
type Transport interface {
	// SubmitAsync sends req and later invokes done with the kernel's
	// acknowledgment. Submission failures are returned synchronously
	// and done is not invoked.
	SubmitAsync(req *rtnl.Request, done func(rtnl.Status)) error
}

// Compile-time interface satisfaction checks.
var (
	_ Lifecycle = (*Manager)(nil)
	_ Transport = (*rtnl.Conn)(nil)
)

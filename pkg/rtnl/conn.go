package rtnl

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mdlayher/netlink"
	"golang.org/x/sys/unix"
)

// Conn errors.
var (
	ErrConnClosed = errors.New("rtnetlink connection closed")
)

// completionBacklog bounds the queue of delivered-but-not-yet-dispatched
// completions.
const completionBacklog = 64

// completion pairs a finished request's status with its callback.
type completion struct {
	done   func(Status)
	status Status
}

// Conn is an rtnetlink connection with asynchronous completion delivery.
// Dispatch must be running while requests are in flight.
type Conn struct {
	nl *netlink.Conn

	mu     sync.Mutex
	closed bool

	completions chan completion
	inflight    sync.WaitGroup
}

// Dial opens a route-family netlink connection.
func Dial() (*Conn, error) {
	nl, err := netlink.Dial(unix.NETLINK_ROUTE, &netlink.Config{})
	if err != nil {
		return nil, fmt.Errorf("dialing rtnetlink: %w", err)
	}
	return &Conn{
		nl:          nl,
		completions: make(chan completion, completionBacklog),
	}, nil
}

// Close closes the netlink socket. In-flight requests fail with a socket
// error and their completions are still delivered through Dispatch.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	return c.nl.Close()
}

// SubmitAsync sends req and delivers its acknowledgment through the
// dispatch loop. done is invoked exactly once, on the Dispatch goroutine.
// Encoding and submission failures are returned synchronously and done is
// not invoked.
func (c *Conn) SubmitAsync(req *Request, done func(Status)) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrConnClosed
	}
	c.mu.Unlock()

	m, err := req.Message()
	if err != nil {
		return err
	}

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		_, err := c.nl.Execute(m)
		c.completions <- completion{done: done, status: NewStatus(err)}
	}()
	return nil
}

// Dispatch delivers completions one at a time until ctx is cancelled. All
// completion callbacks run on the calling goroutine; they must not block.
func (c *Conn) Dispatch(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case comp := <-c.completions:
			comp.done(comp.status)
		}
	}
}

// Idle waits until every submitted request has posted its completion.
// Completions may still be queued for Dispatch when Idle returns.
func (c *Conn) Idle() {
	c.inflight.Wait()
}

// LinkInfo describes one link from a kernel dump.
type LinkInfo struct {
	Index int32
	Name  string
	Kind  string
	Flags uint32

	// InfoData is the raw IFLA_INFO_DATA payload with the kind-specific
	// parameters, nil when the kernel sent none.
	InfoData []byte
}

// Up reports whether the link is administratively up.
func (li *LinkInfo) Up() bool {
	return li.Flags&unix.IFF_UP != 0
}

// List dumps all links known to the kernel.
func (c *Conn) List() ([]LinkInfo, error) {
	ifi := ifInfoMsg{}
	req := netlink.Message{
		Header: netlink.Header{
			Type:  unix.RTM_GETLINK,
			Flags: netlink.Request | netlink.Dump,
		},
		Data: ifi.marshal(),
	}

	msgs, err := c.nl.Execute(req)
	if err != nil {
		return nil, fmt.Errorf("listing links: %w", err)
	}

	links := make([]LinkInfo, 0, len(msgs))
	for _, m := range msgs {
		li, err := parseLink(m.Data)
		if err != nil {
			return nil, err
		}
		links = append(links, li)
	}
	return links, nil
}

// parseLink decodes one RTM_NEWLINK dump message body.
func parseLink(b []byte) (LinkInfo, error) {
	var ifi ifInfoMsg
	if err := ifi.unmarshal(b); err != nil {
		return LinkInfo{}, err
	}
	li := LinkInfo{Index: ifi.Index, Flags: ifi.Flags}

	ad, err := netlink.NewAttributeDecoder(b[ifInfoMsgLen:])
	if err != nil {
		return LinkInfo{}, err
	}
	for ad.Next() {
		switch ad.Type() {
		case unix.IFLA_IFNAME:
			li.Name = ad.String()
		case unix.IFLA_LINKINFO:
			ad.Nested(func(info *netlink.AttributeDecoder) error {
				for info.Next() {
					switch info.Type() {
					case unix.IFLA_INFO_KIND:
						li.Kind = info.String()
					case unix.IFLA_INFO_DATA:
						li.InfoData = info.Bytes()
					}
				}
				return nil
			})
		}
	}
	if err := ad.Err(); err != nil {
		return LinkInfo{}, fmt.Errorf("decoding link attributes: %w", err)
	}
	return li, nil
}

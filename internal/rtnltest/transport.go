// Package rtnltest provides a scripted in-memory transport for exercising
// link configuration sequences without a netlink socket. Submitted requests
// are recorded in order; tests acknowledge them explicitly to drive the
// asynchronous completion handlers.
package rtnltest

import (
	"fmt"
	"sync"

	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
	"golang.org/x/sys/unix"

	"github.com/canlink-project/canlink-go/pkg/rtnl"
)

// Submission records one request handed to the transport.
type Submission struct {
	// Request is the submitted request.
	Request *rtnl.Request

	// Data is the serialized message payload at submission time.
	Data []byte

	done      func(rtnl.Status)
	delivered bool
}

// AdminUp reports the administrative state carried by the submission.
// touched is false when the request leaves the up/down state alone.
func (s *Submission) AdminUp() (up, touched bool) {
	if len(s.Data) < 16 {
		return false, false
	}
	flags := nlenc.Uint32(s.Data[8:12])
	change := nlenc.Uint32(s.Data[12:16])
	return flags&unix.IFF_UP != 0, change&unix.IFF_UP != 0
}

// Kind returns the link kind from the submission's IFLA_LINKINFO container,
// or "" if the submission carries none.
func (s *Submission) Kind() string {
	var kind string
	s.walkLinkInfo(func(info *netlink.AttributeDecoder) {
		if info.Type() == unix.IFLA_INFO_KIND {
			kind = info.String()
		}
	})
	return kind
}

// InfoData returns the raw IFLA_INFO_DATA payload from the submission, or
// nil if the submission carries none.
func (s *Submission) InfoData() []byte {
	var data []byte
	s.walkLinkInfo(func(info *netlink.AttributeDecoder) {
		if info.Type() == unix.IFLA_INFO_DATA {
			data = info.Bytes()
		}
	})
	return data
}

func (s *Submission) walkLinkInfo(fn func(info *netlink.AttributeDecoder)) {
	if len(s.Data) < 16 {
		return
	}
	ad, err := netlink.NewAttributeDecoder(s.Data[16:])
	if err != nil {
		return
	}
	for ad.Next() {
		if ad.Type() != unix.IFLA_LINKINFO {
			continue
		}
		ad.Nested(func(info *netlink.AttributeDecoder) error {
			for info.Next() {
				fn(info)
			}
			return nil
		})
	}
}

// Transport is an in-memory replacement for rtnl.Conn. Requests are
// recorded instead of sent; tests complete them via Complete or
// CompleteAll.
type Transport struct {
	mu        sync.Mutex
	subs      []*Submission
	submitErr error
}

// NewTransport creates an empty transport.
func NewTransport() *Transport {
	return &Transport{}
}

// FailSubmissions makes subsequent SubmitAsync calls return err without
// recording anything. A nil err restores normal recording.
func (t *Transport) FailSubmissions(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.submitErr = err
}

// SubmitAsync records the request and its completion callback.
func (t *Transport) SubmitAsync(req *rtnl.Request, done func(rtnl.Status)) error {
	msg, err := req.Message()
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.submitErr != nil {
		return t.submitErr
	}
	t.subs = append(t.subs, &Submission{
		Request: req,
		Data:    msg.Data,
		done:    done,
	})
	return nil
}

// Submissions returns the recorded submissions in submission order.
func (t *Transport) Submissions() []*Submission {
	t.mu.Lock()
	defer t.mu.Unlock()
	subs := make([]*Submission, len(t.subs))
	copy(subs, t.subs)
	return subs
}

// Complete acknowledges submission i with status, invoking its completion
// callback. Completing the same submission twice panics.
func (t *Transport) Complete(i int, status rtnl.Status) {
	t.mu.Lock()
	sub := t.subs[i]
	if sub.delivered {
		t.mu.Unlock()
		panic(fmt.Sprintf("rtnltest: submission %d completed twice", i))
	}
	sub.delivered = true
	t.mu.Unlock()

	sub.done(status)
}

// CompleteAll acknowledges every pending submission with status, in
// submission order. Submissions recorded by the callbacks themselves are
// included.
func (t *Transport) CompleteAll(status rtnl.Status) {
	for i := 0; ; i++ {
		t.mu.Lock()
		if i >= len(t.subs) {
			t.mu.Unlock()
			return
		}
		sub := t.subs[i]
		if sub.delivered {
			t.mu.Unlock()
			continue
		}
		sub.delivered = true
		t.mu.Unlock()

		sub.done(status)
	}
}

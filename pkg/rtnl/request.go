package rtnl

import (
	"fmt"

	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
	"golang.org/x/sys/unix"
)

// ifInfoMsgLen is the encoded size of struct ifinfomsg.
const ifInfoMsgLen = 16

// ifInfoMsg is the fixed link header preceding the attributes of every
// RTM_*LINK message.
type ifInfoMsg unix.IfInfomsg

func (ifi *ifInfoMsg) marshal() []byte {
	b := make([]byte, ifInfoMsgLen)
	b[0] = ifi.Family
	// b[1] is reserved padding
	nlenc.PutUint16(b[2:4], ifi.Type)
	nlenc.PutUint32(b[4:8], uint32(ifi.Index))
	nlenc.PutUint32(b[8:12], ifi.Flags)
	nlenc.PutUint32(b[12:16], ifi.Change)
	return b
}

func (ifi *ifInfoMsg) unmarshal(b []byte) error {
	if len(b) < ifInfoMsgLen {
		return fmt.Errorf("ifinfomsg: length %d, want at least %d", len(b), ifInfoMsgLen)
	}
	ifi.Family = b[0]
	ifi.Type = nlenc.Uint16(b[2:4])
	ifi.Index = int32(nlenc.Uint32(b[4:8]))
	ifi.Flags = nlenc.Uint32(b[8:12])
	ifi.Change = nlenc.Uint32(b[12:16])
	return nil
}

// Request is an rtnetlink link message under construction: the message
// type, the ifinfomsg header, and an optional attribute payload.
type Request struct {
	typ netlink.HeaderType
	ifi ifInfoMsg
	ae  *netlink.AttributeEncoder
}

// NewLink returns an RTM_NEWLINK request targeting the link with the given
// interface index. RTM_NEWLINK with an existing index modifies the link's
// parameters.
func NewLink(index int32) *Request {
	return &Request{
		typ: unix.RTM_NEWLINK,
		ifi: ifInfoMsg{Index: index},
	}
}

// SetLink returns an RTM_SETLINK request targeting the link with the given
// interface index.
func SetLink(index int32) *Request {
	return &Request{
		typ: unix.RTM_SETLINK,
		ifi: ifInfoMsg{Index: index},
	}
}

// Index returns the interface index the request targets.
func (r *Request) Index() int32 {
	return r.ifi.Index
}

// Type returns the rtnetlink message type.
func (r *Request) Type() netlink.HeaderType {
	return r.typ
}

// SetAdminState requests an administrative up or down transition by
// masking IFF_UP into the change set.
func (r *Request) SetAdminState(up bool) {
	r.ifi.Change |= unix.IFF_UP
	if up {
		r.ifi.Flags |= unix.IFF_UP
	} else {
		r.ifi.Flags &^= unix.IFF_UP
	}
}

// Attributes returns the encoder for the request's attribute payload,
// creating it on first use.
func (r *Request) Attributes() *netlink.AttributeEncoder {
	if r.ae == nil {
		r.ae = netlink.NewAttributeEncoder()
	}
	return r.ae
}

// Message assembles the netlink message: header flags for an acknowledged
// request, the ifinfomsg, and the encoded attributes.
func (r *Request) Message() (netlink.Message, error) {
	m := netlink.Message{
		Header: netlink.Header{
			Type:  r.typ,
			Flags: netlink.Request | netlink.Acknowledge,
		},
		Data: r.ifi.marshal(),
	}

	if r.ae != nil {
		b, err := r.ae.Encode()
		if err != nil {
			return netlink.Message{}, fmt.Errorf("encoding attributes: %w", err)
		}
		m.Data = append(m.Data, b...)
	}
	return m, nil
}

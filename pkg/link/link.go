package link

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"

	"github.com/canlink-project/canlink-go/pkg/can"
	"github.com/canlink-project/canlink-go/pkg/log"
)

// Link is a managed network interface. Index, Name, and Kind are fixed at
// construction; Config is assigned before a configuration attempt starts
// and read-only from there on. State and administrative flags change as
// the sequence progresses and are guarded by the link's mutex.
type Link struct {
	// Index is the kernel interface index.
	Index int32

	// Name is the interface name.
	Name string

	// Kind is the device-type tag from IFLA_INFO_KIND, "can" for the
	// links this package configures.
	Kind string

	// Config is the resolved parameter snapshot, nil for links no
	// configuration matches.
	Config *can.Config

	mu      sync.Mutex
	flags   uint32
	state   State
	attempt uuid.UUID
}

// New returns a link in StatePending with the given administrative flags.
func New(index int32, name, kind string, flags uint32) *Link {
	return &Link{
		Index: index,
		Name:  name,
		Kind:  kind,
		flags: flags,
	}
}

// State returns the current lifecycle state.
func (l *Link) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// setState moves the link to s and returns the previous state.
func (l *Link) setState(s State) State {
	l.mu.Lock()
	defer l.mu.Unlock()
	prev := l.state
	l.state = s
	return prev
}

// AdminUp reports whether the interface is administratively up.
func (l *Link) AdminUp() bool {
	return l.Flags()&unix.IFF_UP != 0
}

// Flags returns the last observed administrative flags.
func (l *Link) Flags() uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.flags
}

// setAdminUp records an acknowledged administrative flag change.
func (l *Link) setAdminUp(up bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if up {
		l.flags |= unix.IFF_UP
	} else {
		l.flags &^= unix.IFF_UP
	}
}

// Attempt returns the identifier of the current configuration attempt, or
// uuid.Nil before the first attempt.
func (l *Link) Attempt() uuid.UUID {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.attempt
}

// beginAttempt assigns a fresh attempt identifier and returns it.
func (l *Link) beginAttempt() uuid.UUID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.attempt = uuid.New()
	return l.attempt
}

// newEvent pre-fills the identity fields of a log event for l.
func newEvent(l *Link, category log.Category) log.Event {
	ev := log.Event{
		Timestamp: time.Now(),
		Link:      l.Name,
		Ifindex:   l.Index,
		Category:  category,
	}
	if a := l.Attempt(); a != uuid.Nil {
		ev.Attempt = a.String()
	}
	return ev
}

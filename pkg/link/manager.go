package link

import (
	"fmt"
	"sort"
	"sync"

	"github.com/canlink-project/canlink-go/pkg/log"
	"github.com/canlink-project/canlink-go/pkg/rtnl"
)

// Manager owns the link table and the lifecycle transitions around the
// configurator. It submits the administrative up/down requests and keeps
// each link's cached IFF_UP flag in sync with acknowledged changes; policy
// decisions stay in the Configurator.
type Manager struct {
	transport Transport
	logger    log.Logger

	mu    sync.Mutex
	links map[int32]*Link
}

// NewManager creates a manager submitting through transport. A nil logger
// disables event logging.
func NewManager(transport Transport, logger log.Logger) *Manager {
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &Manager{
		transport: transport,
		logger:    logger,
		links:     make(map[int32]*Link),
	}
}

// Add registers a link with the manager.
func (m *Manager) Add(l *Link) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links[l.Index] = l
}

// Get looks up a link by interface index.
func (m *Manager) Get(index int32) (*Link, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.links[index]
	return l, ok
}

// ByName looks up a link by interface name.
func (m *Manager) ByName(name string) (*Link, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.links {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}

// Links returns the managed links sorted by interface index.
func (m *Manager) Links() []*Link {
	m.mu.Lock()
	defer m.mu.Unlock()
	links := make([]*Link, 0, len(m.links))
	for _, l := range m.links {
		links = append(links, l)
	}
	sort.Slice(links, func(i, j int) bool { return links[i].Index < links[j].Index })
	return links
}

// Remove moves the link to StateLingering and drops it from the table.
// Completions still in flight for the link are discarded by the
// terminal-state check in their handlers.
func (m *Manager) Remove(l *Link) {
	m.Enter(l, StateLingering)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.links, l.Index)
}

// Enter moves the link to the given state and records the transition.
func (m *Manager) Enter(l *Link, s State) {
	prev := l.setState(s)
	if prev == s {
		return
	}

	ev := newEvent(l, log.CategoryState)
	ev.StateChange = &log.StateChangeEvent{
		OldState: prev.String(),
		NewState: s.String(),
	}
	m.logger.Log(ev)
}

// Fail moves the link to StateFailed.
func (m *Manager) Fail(l *Link) {
	m.Enter(l, StateFailed)
}

// RequestUp submits an administrative bring-up for the link. The
// acknowledgment is handled by the manager: an error fails the link, a
// clean acknowledgment records the flag change and completes a configuring
// link.
func (m *Manager) RequestUp(l *Link) error {
	req := rtnl.SetLink(l.Index)
	req.SetAdminState(true)

	if err := m.transport.SubmitAsync(req, func(s rtnl.Status) {
		m.upComplete(l, s)
	}); err != nil {
		return fmt.Errorf("link %s: submitting up request: %w", l.Name, err)
	}

	ev := newEvent(l, log.CategoryRequest)
	ev.Request = &log.RequestEvent{Op: log.OpUp}
	m.logger.Log(ev)
	return nil
}

// upComplete handles the bring-up acknowledgment. The bring-up is the last
// step of a configuration sequence, so a clean acknowledgment moves a
// configuring link to StateConfigured.
func (m *Manager) upComplete(l *Link, s rtnl.Status) {
	if l.State().Terminal() {
		return
	}

	m.logCompletion(l, log.OpUp, s)

	if !s.OK() {
		ev := newEvent(l, log.CategoryError)
		ev.Error = &log.ErrorEventData{Step: "up", Message: "bringing link up: " + s.String()}
		m.logger.Log(ev)
		m.Fail(l)
		return
	}

	l.setAdminUp(true)
	if l.State() == StateConfiguring {
		m.Enter(l, StateConfigured)
	}
}

// RequestDown submits an administrative bring-down and forwards the
// acknowledgment to done. A clean acknowledgment clears the cached IFF_UP
// flag before done runs, so the continuation observes the link down.
func (m *Manager) RequestDown(l *Link, done func(rtnl.Status)) error {
	req := rtnl.SetLink(l.Index)
	req.SetAdminState(false)

	if err := m.transport.SubmitAsync(req, func(s rtnl.Status) {
		if s.OK() {
			l.setAdminUp(false)
		}
		m.logCompletion(l, log.OpDown, s)
		done(s)
	}); err != nil {
		return fmt.Errorf("link %s: submitting down request: %w", l.Name, err)
	}

	ev := newEvent(l, log.CategoryRequest)
	ev.Request = &log.RequestEvent{Op: log.OpDown}
	m.logger.Log(ev)
	return nil
}

// logCompletion records a delivered acknowledgment for an administrative
// request.
func (m *Manager) logCompletion(l *Link, op log.Op, s rtnl.Status) {
	ev := newEvent(l, log.CategoryCompletion)
	ev.Completion = &log.CompletionEvent{
		Op:     op,
		OK:     s.OK(),
		Exists: s.Exists(),
	}
	if err := s.Err(); err != nil {
		ev.Completion.Status = err.Error()
	}
	m.logger.Log(ev)
}

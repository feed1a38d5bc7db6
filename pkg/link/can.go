package link

import (
	"fmt"

	"github.com/canlink-project/canlink-go/pkg/can"
	"github.com/canlink-project/canlink-go/pkg/log"
	"github.com/canlink-project/canlink-go/pkg/rtnl"
)

// Configurator drives CAN links through the down, configure, up sequence.
type Configurator struct {
	lifecycle Lifecycle
	transport Transport
	logger    log.Logger
}

// NewConfigurator creates a configurator acting through lifecycle and
// submitting parameter requests through transport. A nil logger disables
// event logging.
func NewConfigurator(lifecycle Lifecycle, transport Transport, logger log.Logger) *Configurator {
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &Configurator{
		lifecycle: lifecycle,
		transport: transport,
		logger:    logger,
	}
}

// Configure starts the configuration sequence for l. The sequence
// continues asynchronously through the completion handlers; errors after a
// successful submission fail the link there. Configure itself returns only
// synchronous submission and construction errors, and the link is already
// failed when it does.
func (c *Configurator) Configure(l *Link) error {
	l.beginAttempt()
	c.lifecycle.Enter(l, StateConfiguring)

	if l.Kind != can.Kind {
		// Other kinds carry no CAN parameters; just make sure the
		// link is up.
		if !l.AdminUp() {
			if err := c.lifecycle.RequestUp(l); err != nil {
				c.fail(l, "up", err)
				return err
			}
			return nil
		}
		c.lifecycle.Enter(l, StateConfigured)
		return nil
	}

	// The kernel rejects timing changes on a live interface.
	if l.AdminUp() {
		if err := c.lifecycle.RequestDown(l, func(s rtnl.Status) {
			c.downComplete(l, s)
		}); err != nil {
			c.fail(l, "down", err)
			return err
		}
		return nil
	}

	if err := c.submitParameters(l); err != nil {
		c.lifecycle.Fail(l)
		return err
	}
	return nil
}

// downComplete continues the sequence once the bring-down is acknowledged.
func (c *Configurator) downComplete(l *Link, s rtnl.Status) {
	if l.State().Terminal() {
		return
	}

	if !s.OK() {
		c.fail(l, "down", fmt.Errorf("bringing link down: %w", s.Err()))
		return
	}

	if err := c.submitParameters(l); err != nil {
		c.lifecycle.Fail(l)
	}
}

// submitParameters builds the parameter request from the link's snapshot,
// submits it, and requests bring-up when the link is down. Failures are
// recorded here; moving the link to StateFailed is left to the caller.
func (c *Configurator) submitParameters(l *Link) error {
	cfg := l.Config
	if cfg == nil {
		// No snapshot resolves to an empty parameter set; the kernel
		// keeps the device configuration as is.
		cfg = &can.Config{}
	}

	req := rtnl.NewLink(l.Index)
	if err := can.AppendLinkInfo(req.Attributes(), cfg); err != nil {
		err = fmt.Errorf("building parameter request: %w", err)
		c.logFailure(l, "build", err)
		return err
	}
	msg, err := req.Message()
	if err != nil {
		err = fmt.Errorf("building parameter request: %w", err)
		c.logFailure(l, "build", err)
		return err
	}

	if err := c.transport.SubmitAsync(req, func(s rtnl.Status) {
		c.parametersComplete(l, s)
	}); err != nil {
		err = fmt.Errorf("submitting parameter request: %w", err)
		c.logFailure(l, "submit", err)
		return err
	}

	ev := newEvent(l, log.CategoryRequest)
	ev.Request = &log.RequestEvent{Op: log.OpConfigure, PayloadSize: len(msg.Data) - 16}
	c.logger.Log(ev)

	// The interface is down at this point, either from the preceding
	// bring-down or because it never was up. Bring it up now; its
	// acknowledgment and the parameter acknowledgment are then both in
	// flight.
	if !l.AdminUp() {
		if err := c.lifecycle.RequestUp(l); err != nil {
			c.logFailure(l, "up", err)
			return err
		}
	}
	return nil
}

// parametersComplete handles the parameter request acknowledgment. EEXIST
// reports the requested state already in place and counts as success.
func (c *Configurator) parametersComplete(l *Link, s rtnl.Status) {
	if l.State().Terminal() {
		return
	}

	ev := newEvent(l, log.CategoryCompletion)
	ev.Completion = &log.CompletionEvent{
		Op:     log.OpConfigure,
		OK:     s.OK(),
		Exists: s.Exists(),
	}
	if err := s.Err(); err != nil {
		ev.Completion.Status = err.Error()
	}
	c.logger.Log(ev)

	if !s.OK() && !s.Exists() {
		c.fail(l, "configure", fmt.Errorf("applying parameters: %w", s.Err()))
	}
}

// logFailure records a fatal step failure for the current attempt.
func (c *Configurator) logFailure(l *Link, step string, err error) {
	ev := newEvent(l, log.CategoryError)
	ev.Error = &log.ErrorEventData{Step: step, Message: err.Error()}
	c.logger.Log(ev)
}

// fail records the step failure and moves the link to StateFailed.
func (c *Configurator) fail(l *Link, step string, err error) {
	c.logFailure(l, step, err)
	c.lifecycle.Fail(l)
}

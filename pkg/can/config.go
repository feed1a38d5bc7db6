package can

import (
	"errors"
	"math"
	"time"
)

// Configuration errors.
var (
	ErrRestartRange = errors.New("restart interval out of range")
)

// RestartInterval is the delay before the kernel automatically restarts a
// CAN interface that went bus-off. The zero value means not configured.
// RestartForever disables automatic restart entirely; the kernel encodes
// that as a zero-millisecond timer.
type RestartInterval time.Duration

// RestartForever disables automatic bus-off restart.
const RestartForever RestartInterval = math.MaxInt64

// Configured reports whether a restart behavior was explicitly requested.
func (r RestartInterval) Configured() bool {
	return r > 0
}

// Milliseconds converts the interval to the kernel's 32-bit millisecond
// field. Partial milliseconds round up so a short positive interval never
// collapses to an immediate restart. RestartForever converts to 0.
// Intervals whose millisecond value exceeds the field width return
// ErrRestartRange.
func (r RestartInterval) Milliseconds() (uint32, error) {
	if r == RestartForever {
		return 0, nil
	}

	ms := int64(r) / int64(time.Millisecond)
	if int64(r)%int64(time.Millisecond) != 0 {
		ms++
	}
	if ms > math.MaxUint32 {
		return 0, ErrRestartRange
	}
	return uint32(ms), nil
}

// String returns the interval in time.Duration notation, or "infinite" for
// RestartForever.
func (r RestartInterval) String() string {
	if r == RestartForever {
		return "infinite"
	}
	return time.Duration(r).String()
}

// Config holds the CAN parameters configured for one interface. It is an
// immutable snapshot: the codec and the configurator only read it.
//
// Zero and TristateUnset values mean "not configured"; the corresponding
// attribute is omitted from the encoded tree and the kernel or device
// default stays in effect.
type Config struct {
	// Bitrate is the arbitration-phase bitrate in bits per second.
	Bitrate uint32

	// SamplePoint is the arbitration-phase sample point in tenths of a
	// percent (875 = 87.5%). Zero selects the device default.
	SamplePoint uint16

	// DataBitrate is the CAN-FD data-phase bitrate in bits per second.
	DataBitrate uint32

	// DataSamplePoint is the data-phase sample point in tenths of a
	// percent.
	DataSamplePoint uint16

	// Control-mode options. Each one that is not TristateUnset is
	// included in the control-mode mask sent to the kernel.
	FDMode            Tristate
	NonISO            Tristate
	TripleSampling    Tristate
	BusErrorReporting Tristate
	ListenOnly        Tristate

	// Termination switches the on-board termination resistor. True
	// applies DefaultTerminationOhms, false disables termination.
	Termination Tristate

	// Restart configures the automatic bus-off restart timer.
	Restart RestartInterval
}

// HasBitTiming reports whether arbitration-phase bit-timing is configured.
func (c *Config) HasBitTiming() bool {
	return c.Bitrate > 0 || c.SamplePoint > 0
}

// HasDataBitTiming reports whether data-phase bit-timing is configured.
func (c *Config) HasDataBitTiming() bool {
	return c.DataBitrate > 0 || c.DataSamplePoint > 0
}

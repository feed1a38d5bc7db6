package can

//go:generate go run github.com/canlink-project/canlink-go/cmd/canlink-gen -tables ../../docs/kernel/can-netlink.yaml -output kernel_gen.go

import (
	"fmt"

	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
	"golang.org/x/sys/unix"
)

// Kind is the rtnetlink device kind of CAN interfaces.
const Kind = "can"

// DefaultTerminationOhms is the resistor value applied when Termination is
// enabled. 120 ohm is the standard high-speed CAN termination.
const DefaultTerminationOhms uint16 = 120

// Payload sizes of the fixed-layout kernel structs.
const (
	bitTimingLen = 32
	ctrlModeLen  = 8
)

// BitTiming mirrors struct can_bittiming: eight 32-bit fields in native
// byte order. Configuration requests populate only Bitrate and SamplePoint;
// the kernel derives the remaining timing fields from the device clock.
type BitTiming struct {
	Bitrate       uint32
	SamplePoint   uint32
	TimeQuanta    uint32
	PropSeg       uint32
	PhaseSeg1     uint32
	PhaseSeg2     uint32
	SyncJumpWidth uint32
	Prescaler     uint32
}

func (bt *BitTiming) marshal() []byte {
	b := make([]byte, bitTimingLen)
	nlenc.PutUint32(b[0:4], bt.Bitrate)
	nlenc.PutUint32(b[4:8], bt.SamplePoint)
	nlenc.PutUint32(b[8:12], bt.TimeQuanta)
	nlenc.PutUint32(b[12:16], bt.PropSeg)
	nlenc.PutUint32(b[16:20], bt.PhaseSeg1)
	nlenc.PutUint32(b[20:24], bt.PhaseSeg2)
	nlenc.PutUint32(b[24:28], bt.SyncJumpWidth)
	nlenc.PutUint32(b[28:32], bt.Prescaler)
	return b
}

func (bt *BitTiming) unmarshal(b []byte) error {
	if len(b) != bitTimingLen {
		return fmt.Errorf("bit-timing attribute: length %d, want %d", len(b), bitTimingLen)
	}
	bt.Bitrate = nlenc.Uint32(b[0:4])
	bt.SamplePoint = nlenc.Uint32(b[4:8])
	bt.TimeQuanta = nlenc.Uint32(b[8:12])
	bt.PropSeg = nlenc.Uint32(b[12:16])
	bt.PhaseSeg1 = nlenc.Uint32(b[16:20])
	bt.PhaseSeg2 = nlenc.Uint32(b[20:24])
	bt.SyncJumpWidth = nlenc.Uint32(b[24:28])
	bt.Prescaler = nlenc.Uint32(b[28:32])
	return nil
}

// CtrlMode mirrors struct can_ctrlmode: the mask marks which option bits
// are being explicitly set, flags carries their values. A bit in Flags is
// meaningful only when the same bit is set in Mask.
type CtrlMode struct {
	Mask  uint32
	Flags uint32
}

func (cm *CtrlMode) marshal() []byte {
	b := make([]byte, ctrlModeLen)
	nlenc.PutUint32(b[0:4], cm.Mask)
	nlenc.PutUint32(b[4:8], cm.Flags)
	return b
}

func (cm *CtrlMode) unmarshal(b []byte) error {
	if len(b) != ctrlModeLen {
		return fmt.Errorf("control-mode attribute: length %d, want %d", len(b), ctrlModeLen)
	}
	cm.Mask = nlenc.Uint32(b[0:4])
	cm.Flags = nlenc.Uint32(b[4:8])
	return nil
}

// set records one tristate option in the mask/flags pair.
func (cm *CtrlMode) set(bit uint32, t Tristate) {
	if !t.Set() {
		return
	}
	cm.Mask |= bit
	if t.Bool() {
		cm.Flags |= bit
	}
}

// ControlMode assembles the control-mode mask/flags pair for c. The mask is
// zero when none of the five options is configured.
func ControlMode(c *Config) CtrlMode {
	var cm CtrlMode
	cm.set(CAN_CTRLMODE_FD, c.FDMode)
	cm.set(CAN_CTRLMODE_FD_NON_ISO, c.NonISO)
	cm.set(CAN_CTRLMODE_3_SAMPLES, c.TripleSampling)
	cm.set(CAN_CTRLMODE_BERR_REPORTING, c.BusErrorReporting)
	cm.set(CAN_CTRLMODE_LISTENONLY, c.ListenOnly)
	return cm
}

// AppendLinkInfo appends the nested IFLA_LINKINFO container for c to ae:
// the "can" kind tag plus an IFLA_INFO_DATA container holding one attribute
// per configured parameter group. Unconfigured groups are omitted, which
// tells the kernel to keep its current or default setting.
//
// The restart interval is validated before anything is appended, so a range
// error leaves ae untouched and no request should be sent.
func AppendLinkInfo(ae *netlink.AttributeEncoder, c *Config) error {
	var restartMS uint32
	if c.Restart.Configured() {
		ms, err := c.Restart.Milliseconds()
		if err != nil {
			return fmt.Errorf("restart interval %s: %w", c.Restart, err)
		}
		restartMS = ms
	}

	ae.Nested(unix.IFLA_LINKINFO, func(info *netlink.AttributeEncoder) error {
		info.String(unix.IFLA_INFO_KIND, Kind)
		info.Nested(unix.IFLA_INFO_DATA, func(data *netlink.AttributeEncoder) error {
			appendParameters(data, c, restartMS)
			return nil
		})
		return nil
	})
	return nil
}

// appendParameters emits the configured parameter groups in a fixed order:
// bit-timing, data bit-timing, control mode, restart timer, termination.
func appendParameters(ae *netlink.AttributeEncoder, c *Config, restartMS uint32) {
	if c.HasBitTiming() {
		bt := BitTiming{Bitrate: c.Bitrate, SamplePoint: uint32(c.SamplePoint)}
		ae.Bytes(IFLA_CAN_BITTIMING, bt.marshal())
	}

	if c.HasDataBitTiming() {
		bt := BitTiming{Bitrate: c.DataBitrate, SamplePoint: uint32(c.DataSamplePoint)}
		ae.Bytes(IFLA_CAN_DATA_BITTIMING, bt.marshal())
	}

	if cm := ControlMode(c); cm.Mask != 0 {
		ae.Bytes(IFLA_CAN_CTRLMODE, cm.marshal())
	}

	if c.Restart.Configured() {
		ae.Uint32(IFLA_CAN_RESTART_MS, restartMS)
	}

	if c.Termination.Set() {
		var ohms uint16
		if c.Termination.Bool() {
			ohms = DefaultTerminationOhms
		}
		ae.Uint16(IFLA_CAN_TERMINATION, ohms)
	}
}

// Parameters holds CAN parameters recovered from an IFLA_INFO_DATA
// container, for example from a kernel link dump. Has* fields report which
// attributes were present.
type Parameters struct {
	BitTiming        BitTiming
	HasBitTiming     bool
	DataBitTiming    BitTiming
	HasDataBitTiming bool
	CtrlMode         CtrlMode
	HasCtrlMode      bool
	RestartMS        uint32
	HasRestartMS     bool
	TerminationOhms  uint16
	HasTermination   bool
	State            uint32
	HasState         bool
	ClockFrequency   uint32
	HasClock         bool
}

// ParseInfoData decodes the payload of an IFLA_INFO_DATA container.
// Attributes this package does not model are skipped.
func ParseInfoData(b []byte) (*Parameters, error) {
	ad, err := netlink.NewAttributeDecoder(b)
	if err != nil {
		return nil, err
	}

	var p Parameters
	for ad.Next() {
		switch ad.Type() {
		case IFLA_CAN_BITTIMING:
			if err := p.BitTiming.unmarshal(ad.Bytes()); err != nil {
				return nil, err
			}
			p.HasBitTiming = true
		case IFLA_CAN_DATA_BITTIMING:
			if err := p.DataBitTiming.unmarshal(ad.Bytes()); err != nil {
				return nil, err
			}
			p.HasDataBitTiming = true
		case IFLA_CAN_CTRLMODE:
			if err := p.CtrlMode.unmarshal(ad.Bytes()); err != nil {
				return nil, err
			}
			p.HasCtrlMode = true
		case IFLA_CAN_RESTART_MS:
			p.RestartMS = ad.Uint32()
			p.HasRestartMS = true
		case IFLA_CAN_TERMINATION:
			p.TerminationOhms = ad.Uint16()
			p.HasTermination = true
		case IFLA_CAN_STATE:
			p.State = ad.Uint32()
			p.HasState = true
		case IFLA_CAN_CLOCK:
			// struct can_clock is a single u32 frequency.
			p.ClockFrequency = ad.Uint32()
			p.HasClock = true
		}
	}
	if err := ad.Err(); err != nil {
		return nil, err
	}
	return &p, nil
}

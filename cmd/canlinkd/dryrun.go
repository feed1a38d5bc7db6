package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/canlink-project/canlink-go/pkg/can"
	"github.com/canlink-project/canlink-go/pkg/config"
	"github.com/canlink-project/canlink-go/pkg/log"
	"github.com/canlink-project/canlink-go/pkg/rtnl"
)

// dryRun renders the parameter request of every configuration file as a
// hex dump, without opening a netlink socket. With iface set, only files
// matching that interface are rendered.
func dryRun(w io.Writer, files []*config.File, iface string, logger log.Logger) error {
	for _, f := range files {
		if iface != "" && !f.Matches(iface) {
			continue
		}

		cfg := f.Resolve(logger)
		req := rtnl.NewLink(0)
		if err := can.AppendLinkInfo(req.Attributes(), cfg); err != nil {
			return fmt.Errorf("%s: %w", f.Path, err)
		}
		msg, err := req.Message()
		if err != nil {
			return fmt.Errorf("%s: %w", f.Path, err)
		}

		fmt.Fprintf(w, "# %s (match %s)\n", f.Path, f.Match.Name)
		fmt.Fprintf(w, "RTM_NEWLINK, %d bytes\n", len(msg.Data))
		fmt.Fprint(w, describeConfig(cfg))
		fmt.Fprint(w, hex.Dump(msg.Data))
		fmt.Fprintln(w)
	}
	return nil
}

// describeConfig summarizes the configured parameter groups, one line per
// group in encoding order.
func describeConfig(cfg *can.Config) string {
	var out string
	if cfg.HasBitTiming() {
		out += fmt.Sprintf("  bit-timing: %d bit/s, sample point %s\n",
			cfg.Bitrate, formatSamplePoint(cfg.SamplePoint))
	}
	if cfg.HasDataBitTiming() {
		out += fmt.Sprintf("  data bit-timing: %d bit/s, sample point %s\n",
			cfg.DataBitrate, formatSamplePoint(cfg.DataSamplePoint))
	}
	if cm := can.ControlMode(cfg); cm.Mask != 0 {
		out += fmt.Sprintf("  control mode: mask %s, flags %s\n",
			strings.Join(can.CtrlModeNames(cm.Mask), ","),
			strings.Join(can.CtrlModeNames(cm.Flags), ","))
	}
	if cfg.Restart.Configured() {
		out += fmt.Sprintf("  restart: %s\n", cfg.Restart)
	}
	if cfg.Termination.Set() {
		ohms := uint16(0)
		if cfg.Termination.Bool() {
			ohms = can.DefaultTerminationOhms
		}
		out += fmt.Sprintf("  termination: %d ohm\n", ohms)
	}
	if out == "" {
		out = "  no parameters configured\n"
	}
	return out
}

func formatSamplePoint(tenths uint16) string {
	if tenths == 0 {
		return "default"
	}
	return fmt.Sprintf("%d.%d%%", tenths/10, tenths%10)
}

package main

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/canlink-project/canlink-go/internal/rtnltest"
	"github.com/canlink-project/canlink-go/pkg/can"
	"github.com/canlink-project/canlink-go/pkg/config"
	"github.com/canlink-project/canlink-go/pkg/link"
	"github.com/canlink-project/canlink-go/pkg/log"
	"github.com/canlink-project/canlink-go/pkg/rtnl"
)

func parseTestFile(t *testing.T, path, doc string) *config.File {
	t.Helper()
	f, err := config.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse(%s): %v", path, err)
	}
	f.Path = path
	return f
}

func TestDryRunOutput(t *testing.T) {
	files := []*config.File{
		parseTestFile(t, "/etc/canlink/can0.yaml", `
match:
  name: can0
can:
  bitrate: 500K
  sample-point: 87.5%
  termination: yes
`),
	}

	var buf bytes.Buffer
	if err := dryRun(&buf, files, "", log.NoopLogger{}); err != nil {
		t.Fatalf("dryRun: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# /etc/canlink/can0.yaml (match can0)",
		"RTM_NEWLINK",
		"bit-timing: 500000 bit/s, sample point 87.5%",
		"termination: 120 ohm",
		"00000000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDryRunFiltersByInterface(t *testing.T) {
	files := []*config.File{
		parseTestFile(t, "can0.yaml", "match:\n  name: can0\ncan:\n  bitrate: 125000\n"),
		parseTestFile(t, "can1.yaml", "match:\n  name: can1\ncan:\n  bitrate: 250000\n"),
	}

	var buf bytes.Buffer
	if err := dryRun(&buf, files, "can1", log.NoopLogger{}); err != nil {
		t.Fatalf("dryRun: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "can0.yaml") {
		t.Errorf("can0.yaml rendered despite -iface can1:\n%s", out)
	}
	if !strings.Contains(out, "can1.yaml") {
		t.Errorf("can1.yaml missing:\n%s", out)
	}
}

func TestDryRunEmptyConfigStillRenders(t *testing.T) {
	files := []*config.File{
		parseTestFile(t, "can0.yaml", "match:\n  name: can0\n"),
	}

	var buf bytes.Buffer
	if err := dryRun(&buf, files, "", log.NoopLogger{}); err != nil {
		t.Fatalf("dryRun: %v", err)
	}
	if !strings.Contains(buf.String(), "no parameters configured") {
		t.Errorf("empty config not flagged:\n%s", buf.String())
	}
}

func TestDryRunReportsEncodingErrors(t *testing.T) {
	// 1200h exceeds the kernel's millisecond range for restart intervals.
	files := []*config.File{
		parseTestFile(t, "/etc/canlink/bad.yaml", "match:\n  name: can0\ncan:\n  restart: 1200h\n"),
	}

	err := dryRun(&bytes.Buffer{}, files, "", log.NoopLogger{})
	if err == nil {
		t.Fatal("expected encoding error")
	}
	if !strings.Contains(err.Error(), "/etc/canlink/bad.yaml") {
		t.Errorf("error does not name the file: %v", err)
	}
}

func TestMatchFileFirstWins(t *testing.T) {
	files := []*config.File{
		parseTestFile(t, "10-can0.yaml", "match:\n  name: can0\n"),
		parseTestFile(t, "90-all.yaml", "match:\n  name: can*\n"),
	}

	if f := matchFile(files, "can0"); f == nil || f.Path != "10-can0.yaml" {
		t.Errorf("can0 matched %v, want 10-can0.yaml", f)
	}
	if f := matchFile(files, "can7"); f == nil || f.Path != "90-all.yaml" {
		t.Errorf("can7 matched %v, want 90-all.yaml", f)
	}
	if f := matchFile(files, "eth0"); f != nil {
		t.Errorf("eth0 matched %v, want no match", f)
	}
}

func TestApplyConfiguration(t *testing.T) {
	transport := rtnltest.NewTransport()
	manager := link.NewManager(transport, log.NoopLogger{})
	configurator := link.NewConfigurator(manager, transport, log.NoopLogger{})

	can0 := link.New(1, "can0", can.Kind, 0)
	eth0 := link.New(2, "eth0", "", unix.IFF_UP)
	manager.Add(can0)
	manager.Add(eth0)

	files := []*config.File{
		parseTestFile(t, "can0.yaml", "match:\n  name: can0\ncan:\n  bitrate: 500000\n"),
	}

	started := applyConfiguration(configurator, manager, files, []*link.Link{can0, eth0}, log.NoopLogger{})
	if started != 1 {
		t.Fatalf("started %d sequences, want 1", started)
	}
	if got := eth0.State(); got != link.StateUnmanaged {
		t.Errorf("eth0 state %v, want %v", got, link.StateUnmanaged)
	}
	if got := can0.State(); got != link.StateConfiguring {
		t.Errorf("can0 state %v, want %v", got, link.StateConfiguring)
	}

	transport.CompleteAll(rtnl.NewStatus(nil))
	if got := can0.State(); got != link.StateConfigured {
		t.Errorf("can0 state after completions %v, want %v", got, link.StateConfigured)
	}
}

func TestSettled(t *testing.T) {
	transport := rtnltest.NewTransport()
	manager := link.NewManager(transport, log.NoopLogger{})

	l := link.New(1, "can0", can.Kind, 0)
	manager.Add(l)

	if !settled(manager) {
		t.Error("pending link should count as settled")
	}

	manager.Enter(l, link.StateConfiguring)
	if settled(manager) {
		t.Error("configuring link should not count as settled")
	}

	manager.Enter(l, link.StateFailed)
	if !settled(manager) {
		t.Error("failed link should count as settled")
	}
	if !anyFailed(manager) {
		t.Error("failed link not reported by anyFailed")
	}
}

func TestFormatSamplePoint(t *testing.T) {
	cases := []struct {
		tenths uint16
		want   string
	}{
		{0, "default"},
		{875, "87.5%"},
		{1000, "100.0%"},
		{5, "0.5%"},
	}
	for _, tc := range cases {
		if got := formatSamplePoint(tc.tenths); got != tc.want {
			t.Errorf("formatSamplePoint(%d) = %q, want %q", tc.tenths, got, tc.want)
		}
	}
}

package config

import (
	"testing"
	"time"

	"github.com/canlink-project/canlink-go/pkg/can"
)

func TestParseBitrate(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"125000", 125000},
		{"500K", 500000},
		{"1M", 1000000},
		{"1.5M", 1500000},
		{"0.5K", 500},
		{"1.234K", 1234},
		{"4G", 4000000000},
		{"0", 0},
	}

	for _, tt := range tests {
		got, err := ParseBitrate(tt.in)
		if err != nil {
			t.Errorf("ParseBitrate(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseBitrate(%q): got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseBitrateRejects(t *testing.T) {
	inputs := []string{
		"",        // empty
		"K",       // suffix without magnitude
		"abc",     // not a number
		"-1",      // negative
		"500k",    // lowercase suffix
		"500KB",   // trailing garbage
		"1.5",     // fraction without suffix
		"1.K",     // empty fraction
		".5K",     // missing whole part
		"1..2K",   // double dot
		"1.2345K", // fraction finer than the suffix
		"5G",      // above the 32-bit field
	}

	for _, in := range inputs {
		if got, err := ParseBitrate(in); err == nil {
			t.Errorf("ParseBitrate(%q): got %d, want error", in, got)
		}
	}
}

func TestParseSamplePoint(t *testing.T) {
	tests := []struct {
		in   string
		want uint16
	}{
		{"87.5%", 875},
		{"87%", 870},
		{"100%", 1000},
		{"100.0%", 1000},
		{"2.5%", 25},
		{"0%", 0},
		{"875", 875},
		{"0", 0},
	}

	for _, tt := range tests {
		got, err := ParseSamplePoint(tt.in)
		if err != nil {
			t.Errorf("ParseSamplePoint(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSamplePoint(%q): got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseSamplePointRejects(t *testing.T) {
	inputs := []string{
		"",       // empty
		"%",      // no magnitude
		"abc",    // not a number
		"-5%",    // negative
		"101%",   // above 100 percent
		"100.1%", // above 100 percent
		"87.55%", // two fractional digits
		"87.%",   // empty fraction
		"87.5",   // fraction without percent sign
		"1001",   // above 1000 tenths
	}

	for _, in := range inputs {
		if got, err := ParseSamplePoint(in); err == nil {
			t.Errorf("ParseSamplePoint(%q): got %d, want error", in, got)
		}
	}
}

func TestParseRestart(t *testing.T) {
	tests := []struct {
		in   string
		want can.RestartInterval
	}{
		{"infinite", can.RestartForever},
		{"infinity", can.RestartForever},
		{"100ms", can.RestartInterval(100 * time.Millisecond)},
		{"2s", can.RestartInterval(2 * time.Second)},
		{"1m30s", can.RestartInterval(90 * time.Second)},
		{"0s", 0},
	}

	for _, tt := range tests {
		got, err := ParseRestart(tt.in)
		if err != nil {
			t.Errorf("ParseRestart(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRestart(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseRestartRejects(t *testing.T) {
	inputs := []string{
		"",        // empty
		"forever", // not a recognized keyword
		"100",     // missing unit
		"-5s",     // negative
		"abc",     // not a duration
	}

	for _, in := range inputs {
		if got, err := ParseRestart(in); err == nil {
			t.Errorf("ParseRestart(%q): got %v, want error", in, got)
		}
	}
}

func TestParseTristate(t *testing.T) {
	trueForms := []string{"1", "yes", "y", "true", "t", "on", "Yes", "TRUE", "On"}
	for _, in := range trueForms {
		got, err := ParseTristate(in)
		if err != nil || got != can.TristateTrue {
			t.Errorf("ParseTristate(%q): got %v, %v, want true", in, got, err)
		}
	}

	falseForms := []string{"0", "no", "n", "false", "f", "off", "No", "FALSE", "Off"}
	for _, in := range falseForms {
		got, err := ParseTristate(in)
		if err != nil || got != can.TristateFalse {
			t.Errorf("ParseTristate(%q): got %v, %v, want false", in, got, err)
		}
	}

	for _, in := range []string{"", "maybe", "2", "enabled"} {
		if got, err := ParseTristate(in); err == nil {
			t.Errorf("ParseTristate(%q): got %v, want error", in, got)
		}
	}
}

package can

import (
	"errors"
	"testing"
	"time"
)

func TestRestartIntervalConfigured(t *testing.T) {
	if RestartInterval(0).Configured() {
		t.Error("RestartInterval(0).Configured() = true, want false")
	}
	if !RestartInterval(time.Millisecond).Configured() {
		t.Error("RestartInterval(1ms).Configured() = false, want true")
	}
	if !RestartForever.Configured() {
		t.Error("RestartForever.Configured() = false, want true")
	}
}

func TestRestartIntervalMilliseconds(t *testing.T) {
	tests := []struct {
		name     string
		interval RestartInterval
		want     uint32
		wantErr  bool
	}{
		{"OneMillisecond", RestartInterval(time.Millisecond), 1, false},
		{"RoundsUp", RestartInterval(1500 * time.Microsecond), 2, false},
		{"SubMillisecondRoundsUp", RestartInterval(200 * time.Microsecond), 1, false},
		{"WholeSeconds", RestartInterval(2 * time.Second), 2000, false},
		{"Forever", RestartForever, 0, false},
		{"FortyNineDays", RestartInterval(49 * 24 * time.Hour), 4233600000, false},
		{"FiftyDaysOverflows", RestartInterval(50 * 24 * time.Hour), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.interval.Milliseconds()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Milliseconds() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrRestartRange) {
					t.Errorf("Milliseconds() error = %v, want ErrRestartRange", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Milliseconds() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRestartIntervalString(t *testing.T) {
	if got := RestartForever.String(); got != "infinite" {
		t.Errorf("RestartForever.String() = %q, want %q", got, "infinite")
	}
	if got := RestartInterval(100 * time.Millisecond).String(); got != "100ms" {
		t.Errorf("RestartInterval(100ms).String() = %q, want %q", got, "100ms")
	}
}

func TestConfigHasBitTiming(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		want     bool
		wantData bool
	}{
		{"Empty", Config{}, false, false},
		{"Bitrate", Config{Bitrate: 500000}, true, false},
		{"SamplePoint", Config{SamplePoint: 875}, true, false},
		{"DataBitrate", Config{DataBitrate: 2000000}, false, true},
		{"DataSamplePoint", Config{DataSamplePoint: 750}, false, true},
		{"Both", Config{Bitrate: 500000, DataBitrate: 2000000}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.HasBitTiming(); got != tt.want {
				t.Errorf("HasBitTiming() = %v, want %v", got, tt.want)
			}
			if got := tt.cfg.HasDataBitTiming(); got != tt.wantData {
				t.Errorf("HasDataBitTiming() = %v, want %v", got, tt.wantData)
			}
		})
	}
}

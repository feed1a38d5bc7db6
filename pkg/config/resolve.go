package config

import (
	"time"

	"github.com/canlink-project/canlink-go/pkg/can"
	"github.com/canlink-project/canlink-go/pkg/log"
)

// Resolve validates the file's raw values and builds the parameter
// snapshot. Each malformed or out-of-range value is reported through
// logger with the file, key, and rejected input, and the corresponding
// parameter keeps its previous value; resolution itself never fails. A
// nil logger discards the warnings.
func (f *File) Resolve(logger log.Logger) *can.Config {
	if logger == nil {
		logger = log.NoopLogger{}
	}

	var cfg can.Config

	if v := f.CAN.Bitrate; v != "" {
		if b, err := ParseBitrate(string(v)); err != nil {
			f.warn(logger, "bitrate", v, err)
		} else {
			cfg.Bitrate = b
		}
	}
	if v := f.CAN.SamplePoint; v != "" {
		if sp, err := ParseSamplePoint(string(v)); err != nil {
			f.warn(logger, "sample-point", v, err)
		} else {
			cfg.SamplePoint = sp
		}
	}
	if v := f.CAN.DataBitrate; v != "" {
		if b, err := ParseBitrate(string(v)); err != nil {
			f.warn(logger, "data-bitrate", v, err)
		} else {
			cfg.DataBitrate = b
		}
	}
	if v := f.CAN.DataSamplePoint; v != "" {
		if sp, err := ParseSamplePoint(string(v)); err != nil {
			f.warn(logger, "data-sample-point", v, err)
		} else {
			cfg.DataSamplePoint = sp
		}
	}

	options := []struct {
		key   string
		value Value
		dst   *can.Tristate
	}{
		{"fd-mode", f.CAN.FDMode, &cfg.FDMode},
		{"non-iso", f.CAN.NonISO, &cfg.NonISO},
		{"triple-sampling", f.CAN.TripleSampling, &cfg.TripleSampling},
		{"bus-error-reporting", f.CAN.BusErrorReporting, &cfg.BusErrorReporting},
		{"listen-only", f.CAN.ListenOnly, &cfg.ListenOnly},
		{"termination", f.CAN.Termination, &cfg.Termination},
	}
	for _, opt := range options {
		if opt.value == "" {
			continue
		}
		t, err := ParseTristate(string(opt.value))
		if err != nil {
			f.warn(logger, opt.key, opt.value, err)
			continue
		}
		*opt.dst = t
	}

	if v := f.CAN.Restart; v != "" {
		if r, err := ParseRestart(string(v)); err != nil {
			f.warn(logger, "restart", v, err)
		} else {
			cfg.Restart = r
		}
	}

	return &cfg
}

// warn emits one tolerant-parse warning.
func (f *File) warn(logger log.Logger, key string, value Value, err error) {
	logger.Log(log.Event{
		Timestamp: time.Now(),
		Category:  log.CategoryConfig,
		ConfigLoad: &log.ConfigLoadEvent{
			File:    f.Path,
			Key:     key,
			Value:   string(value),
			Message: err.Error(),
		},
	})
}

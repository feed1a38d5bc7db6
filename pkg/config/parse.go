package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/canlink-project/canlink-go/pkg/can"
)

var errEmptyValue = errors.New("empty value")

// ParseBitrate parses a bitrate magnitude in bits per second: a decimal
// number with an optional fractional part and an optional base-1000 suffix
// K, M, or G ("500K" is 500000, "1.5M" is 1500000). A fractional part
// needs a suffix coarse enough to resolve it.
func ParseBitrate(s string) (uint32, error) {
	if s == "" {
		return 0, errEmptyValue
	}

	num := s
	mult := uint64(1)
	switch s[len(s)-1] {
	case 'K':
		mult, num = 1000, s[:len(s)-1]
	case 'M':
		mult, num = 1000*1000, s[:len(s)-1]
	case 'G':
		mult, num = 1000*1000*1000, s[:len(s)-1]
	}

	whole, frac, hasFrac := strings.Cut(num, ".")
	n, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: invalid magnitude", s)
	}

	value := n * mult
	if n != 0 && value/n != mult {
		return 0, fmt.Errorf("%q: bitrate out of range", s)
	}
	if value > math.MaxUint32 {
		return 0, fmt.Errorf("%q: bitrate out of range", s)
	}

	if hasFrac {
		if frac == "" {
			return 0, fmt.Errorf("%q: invalid magnitude", s)
		}
		if mult == 1 {
			return 0, fmt.Errorf("%q: fractional bitrate needs a suffix", s)
		}
		scale := mult
		for _, c := range frac {
			if c < '0' || c > '9' {
				return 0, fmt.Errorf("%q: invalid magnitude", s)
			}
			if scale == 1 {
				return 0, fmt.Errorf("%q: fraction finer than the %c suffix", s, s[len(s)-1])
			}
			scale /= 10
			value += uint64(c-'0') * scale
		}
	}

	if value > math.MaxUint32 {
		return 0, fmt.Errorf("%q: bitrate out of range", s)
	}
	return uint32(value), nil
}

// ParseSamplePoint parses a sample point into tenths of a percent.
// Percent notation carries at most one fractional digit ("87.5%" is 875);
// a bare integer is taken as tenths of a percent directly. Values above
// 100% are rejected.
func ParseSamplePoint(s string) (uint16, error) {
	if s == "" {
		return 0, errEmptyValue
	}

	pct, isPercent := strings.CutSuffix(s, "%")
	if !isPercent {
		v, err := strconv.ParseUint(s, 10, 16)
		if err != nil || v > 1000 {
			return 0, fmt.Errorf("%q: invalid sample point", s)
		}
		return uint16(v), nil
	}

	whole, frac, hasFrac := strings.Cut(pct, ".")
	v, err := strconv.ParseUint(whole, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%q: invalid sample point", s)
	}
	v *= 10
	if hasFrac {
		if len(frac) != 1 || frac[0] < '0' || frac[0] > '9' {
			return 0, fmt.Errorf("%q: at most one fractional digit", s)
		}
		v += uint64(frac[0] - '0')
	}
	if v > 1000 {
		return 0, fmt.Errorf("%q: sample point above 100%%", s)
	}
	return uint16(v), nil
}

// ParseRestart parses the automatic bus-off restart delay. "infinite" and
// "infinity" disable automatic restart; anything else is a Go duration
// string.
func ParseRestart(s string) (can.RestartInterval, error) {
	switch s {
	case "":
		return 0, errEmptyValue
	case "infinite", "infinity":
		return can.RestartForever, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%q: invalid duration", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("%q: negative restart interval", s)
	}
	return can.RestartInterval(d), nil
}

// ParseTristate parses a boolean option value. Accepted forms are 1, yes,
// y, true, t, on and 0, no, n, false, f, off, case insensitive.
func ParseTristate(s string) (can.Tristate, error) {
	switch strings.ToLower(s) {
	case "1", "yes", "y", "true", "t", "on":
		return can.TristateTrue, nil
	case "0", "no", "n", "false", "f", "off":
		return can.TristateFalse, nil
	}
	return can.TristateUnset, fmt.Errorf("%q: invalid boolean", s)
}

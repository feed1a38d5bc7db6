package can

// Tristate is a three-valued option flag distinguishing "not configured"
// from an explicit true or false. The zero value is TristateUnset, so
// unconfigured fields need no initialization.
type Tristate uint8

const (
	// TristateUnset means the option is not configured; the kernel or
	// device default stays in effect.
	TristateUnset Tristate = iota

	// TristateFalse explicitly disables the option.
	TristateFalse

	// TristateTrue explicitly enables the option.
	TristateTrue
)

// String returns the tristate name.
func (t Tristate) String() string {
	switch t {
	case TristateUnset:
		return "unset"
	case TristateFalse:
		return "false"
	case TristateTrue:
		return "true"
	default:
		return "unknown"
	}
}

// Set reports whether the option was explicitly configured.
func (t Tristate) Set() bool {
	return t != TristateUnset
}

// Bool returns the configured value. It is false for TristateUnset; call
// Set first when the distinction matters.
func (t Tristate) Bool() bool {
	return t == TristateTrue
}

// TristateOf returns the explicit Tristate for b.
func TristateOf(b bool) Tristate {
	if b {
		return TristateTrue
	}
	return TristateFalse
}

package log

import (
	"time"
)

// Event represents one record in the link configuration event log.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// Attempt correlates all events of one configuration attempt (UUID).
	Attempt string `cbor:"2,keyasint,omitempty"`

	// Link is the interface name the event concerns.
	Link string `cbor:"3,keyasint,omitempty"`

	// Ifindex is the kernel interface index.
	Ifindex int32 `cbor:"4,keyasint,omitempty"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Type-specific payload (one of these will be set).
	StateChange *StateChangeEvent `cbor:"6,keyasint,omitempty"`  // Lifecycle transition
	Request     *RequestEvent     `cbor:"7,keyasint,omitempty"`  // rtnetlink request submitted
	Completion  *CompletionEvent  `cbor:"8,keyasint,omitempty"`  // Acknowledgment delivered
	ConfigLoad  *ConfigLoadEvent  `cbor:"9,keyasint,omitempty"`  // Configuration file processing
	Error       *ErrorEventData   `cbor:"10,keyasint,omitempty"` // Fatal step failure
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryState indicates a link lifecycle transition.
	CategoryState Category = 0
	// CategoryRequest indicates an rtnetlink request submission.
	CategoryRequest Category = 1
	// CategoryCompletion indicates a delivered acknowledgment.
	CategoryCompletion Category = 2
	// CategoryConfig indicates configuration file processing.
	CategoryConfig Category = 3
	// CategoryError indicates a fatal configuration step failure.
	CategoryError Category = 4
	// CategoryDaemon indicates daemon start and stop.
	CategoryDaemon Category = 5
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryState:
		return "STATE"
	case CategoryRequest:
		return "REQUEST"
	case CategoryCompletion:
		return "COMPLETION"
	case CategoryConfig:
		return "CONFIG"
	case CategoryError:
		return "ERROR"
	case CategoryDaemon:
		return "DAEMON"
	default:
		return "UNKNOWN"
	}
}

// Op identifies which of the sequenced rtnetlink operations a request or
// completion belongs to.
type Op uint8

const (
	// OpDown is the administrative bring-down request.
	OpDown Op = 0
	// OpConfigure is the parameter request carrying the attribute tree.
	OpConfigure Op = 1
	// OpUp is the administrative bring-up request.
	OpUp Op = 2
)

// String returns the operation name.
func (o Op) String() string {
	switch o {
	case OpDown:
		return "DOWN"
	case OpConfigure:
		return "CONFIGURE"
	case OpUp:
		return "UP"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures a link lifecycle transition. The daemon reuses
// it for its own start/stop records with an empty link reference.
type StateChangeEvent struct {
	// OldState is the previous state (may be empty).
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}

// RequestEvent captures an rtnetlink request at submission time.
type RequestEvent struct {
	// Op is the sequenced operation the request performs.
	Op Op `cbor:"1,keyasint"`

	// PayloadSize is the encoded attribute payload length in bytes.
	// Zero for administrative flag requests, which carry no attributes.
	PayloadSize int `cbor:"2,keyasint,omitempty"`
}

// CompletionEvent captures the kernel's acknowledgment of a request.
type CompletionEvent struct {
	// Op is the sequenced operation the acknowledgment answers.
	Op Op `cbor:"1,keyasint"`

	// OK indicates a clean acknowledgment.
	OK bool `cbor:"2,keyasint"`

	// Exists indicates the kernel answered with EEXIST. The configure
	// path treats this as success.
	Exists bool `cbor:"3,keyasint,omitempty"`

	// Status is the error text for failed acknowledgments.
	Status string `cbor:"4,keyasint,omitempty"`
}

// ConfigLoadEvent captures configuration file processing, including the
// tolerant-parse warnings that leave a field at its previous value.
type ConfigLoadEvent struct {
	// File is the configuration file path.
	File string `cbor:"1,keyasint"`

	// Key is the configuration key being parsed (warnings only).
	Key string `cbor:"2,keyasint,omitempty"`

	// Value is the rejected input (warnings only).
	Value string `cbor:"3,keyasint,omitempty"`

	// Message describes what happened.
	Message string `cbor:"4,keyasint"`
}

// ErrorEventData captures a fatal configuration step failure.
type ErrorEventData struct {
	// Step names the failing step ("down", "build", "submit", "up", ...).
	Step string `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`
}

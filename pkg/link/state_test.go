package link

import "testing"

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StatePending, "pending"},
		{StateUnmanaged, "unmanaged"},
		{StateConfiguring, "configuring"},
		{StateConfigured, "configured"},
		{StateFailed, "failed"},
		{StateLingering, "lingering"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String(): got %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestStateTerminal(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{StatePending, false},
		{StateUnmanaged, false},
		{StateConfiguring, false},
		{StateConfigured, false},
		{StateFailed, true},
		{StateLingering, true},
	}

	for _, tt := range tests {
		if got := tt.state.Terminal(); got != tt.want {
			t.Errorf("%s.Terminal(): got %v, want %v", tt.state, got, tt.want)
		}
	}
}

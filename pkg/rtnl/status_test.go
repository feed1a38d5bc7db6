package rtnl

import (
	"fmt"
	"testing"

	"golang.org/x/sys/unix"
)

func TestStatusOK(t *testing.T) {
	st := NewStatus(nil)

	if !st.OK() {
		t.Error("OK() = false, want true")
	}
	if st.Exists() {
		t.Error("Exists() = true, want false")
	}
	if st.Err() != nil {
		t.Errorf("Err() = %v, want nil", st.Err())
	}
	if got := st.String(); got != "ok" {
		t.Errorf("String() = %q, want %q", got, "ok")
	}
}

func TestStatusExists(t *testing.T) {
	// The netlink library wraps kernel errnos; Exists must see through
	// the wrapping.
	st := NewStatus(fmt.Errorf("receive: %w", unix.EEXIST))

	if st.OK() {
		t.Error("OK() = true, want false")
	}
	if !st.Exists() {
		t.Error("Exists() = false, want true")
	}
	if got := st.String(); got != "exists" {
		t.Errorf("String() = %q, want %q", got, "exists")
	}
}

func TestStatusError(t *testing.T) {
	st := NewStatus(unix.EINVAL)

	if st.OK() {
		t.Error("OK() = true, want false")
	}
	if st.Exists() {
		t.Error("Exists() = true, want false")
	}
	if st.Err() == nil {
		t.Error("Err() = nil, want error")
	}
}

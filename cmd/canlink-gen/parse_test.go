package main

import (
	"strings"
	"testing"
)

const validTables = `
attributes:
  - name: IFLA_CAN_UNSPEC
    value: 0
  - name: IFLA_CAN_BITTIMING
    value: 1

ctrlmode_bits:
  - name: CAN_CTRLMODE_LOOPBACK
    value: 0x01
  - name: CAN_CTRLMODE_LISTENONLY
    value: 0x02

states:
  - name: CAN_STATE_ERROR_ACTIVE
    value: 0
  - name: CAN_STATE_BUS_OFF
    value: 3
`

func TestParseTables(t *testing.T) {
	tables, err := ParseTables([]byte(validTables))
	if err != nil {
		t.Fatalf("ParseTables failed: %v", err)
	}

	if len(tables.Attributes) != 2 {
		t.Errorf("expected 2 attributes, got %d", len(tables.Attributes))
	}
	if tables.Attributes[1].Name != "IFLA_CAN_BITTIMING" || tables.Attributes[1].Value != 1 {
		t.Errorf("unexpected attribute entry: %+v", tables.Attributes[1])
	}

	if len(tables.CtrlModeBits) != 2 {
		t.Errorf("expected 2 ctrlmode bits, got %d", len(tables.CtrlModeBits))
	}
	if tables.CtrlModeBits[1].Value != 0x02 {
		t.Errorf("hex value not parsed: %+v", tables.CtrlModeBits[1])
	}

	if len(tables.States) != 2 {
		t.Errorf("expected 2 states, got %d", len(tables.States))
	}
}

func TestParseTablesRejectsEmptySection(t *testing.T) {
	doc := `
attributes:
  - name: IFLA_CAN_UNSPEC
    value: 0

states:
  - name: CAN_STATE_ERROR_ACTIVE
    value: 0
`
	_, err := ParseTables([]byte(doc))
	if err == nil {
		t.Fatal("expected error for missing ctrlmode_bits section")
	}
	if !strings.Contains(err.Error(), "ctrlmode_bits") {
		t.Errorf("error does not name the section: %v", err)
	}
}

func TestParseTablesRejectsMissingName(t *testing.T) {
	doc := strings.Replace(validTables, "name: CAN_STATE_BUS_OFF", `name: ""`, 1)

	_, err := ParseTables([]byte(doc))
	if err == nil {
		t.Fatal("expected error for entry without name")
	}
	if !strings.Contains(err.Error(), "without name") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseTablesRejectsDuplicateName(t *testing.T) {
	doc := strings.Replace(validTables, "IFLA_CAN_BITTIMING", "IFLA_CAN_UNSPEC", 1)

	_, err := ParseTables([]byte(doc))
	if err == nil {
		t.Fatal("expected error for duplicate name")
	}
	if !strings.Contains(err.Error(), "duplicate name") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseTablesRejectsDuplicateValue(t *testing.T) {
	doc := strings.Replace(validTables, "value: 3", "value: 0", 1)

	_, err := ParseTables([]byte(doc))
	if err == nil {
		t.Fatal("expected error for duplicate value")
	}
	if !strings.Contains(err.Error(), "duplicate value") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadTablesMissingFile(t *testing.T) {
	_, err := LoadTables("/nonexistent/can-netlink.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

package main

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// GenerateKernelTables renders the Go source for pkg/can's kernel constant
// tables. Sections are emitted in ascending value order regardless of their
// order in the tables file.
func GenerateKernelTables(tables *RawTables) (string, error) {
	for _, def := range tables.Attributes {
		if def.Value > math.MaxUint16 {
			return "", fmt.Errorf("attribute %s: value %d exceeds uint16", def.Name, def.Value)
		}
	}
	for _, def := range tables.CtrlModeBits {
		if def.Value == 0 || def.Value&(def.Value-1) != 0 {
			return "", fmt.Errorf("ctrlmode bit %s: value %#x is not a single bit", def.Name, def.Value)
		}
	}

	attributes := sortedByValue(tables.Attributes)
	ctrlModeBits := sortedByValue(tables.CtrlModeBits)
	states := sortedByValue(tables.States)

	var b strings.Builder
	renderTemplate(&b, "header", nil)
	renderTemplate(&b, "attributeConsts", attributes)
	renderTemplate(&b, "ctrlModeConsts", ctrlModeBits)
	renderTemplate(&b, "stateConsts", states)
	renderTemplate(&b, "attributeName", attributes)
	renderTemplate(&b, "ctrlModeNames", ctrlModeBits)
	renderTemplate(&b, "stateName", states)
	return b.String(), nil
}

// sortedByValue returns a copy of defs in ascending value order.
func sortedByValue(defs []RawConstDef) []RawConstDef {
	sorted := make([]RawConstDef, len(defs))
	copy(sorted, defs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Value < sorted[j].Value
	})
	return sorted
}

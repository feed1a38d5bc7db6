// Package can models CAN interface configuration and its rtnetlink
// attribute encoding.
//
// The kernel exposes CAN device parameters (bit-timing, CAN-FD data-phase
// bit-timing, control-mode flags, the bus-off restart timer, and bus
// termination) as a nested attribute tree on RTM_NEWLINK messages:
// IFLA_LINKINFO wraps an IFLA_INFO_KIND tag ("can") and an IFLA_INFO_DATA
// container holding the device parameters.
//
// # Omission Semantics
//
// Every parameter is optional. An attribute that is absent from the tree
// leaves the kernel or device default untouched; a present attribute with a
// zero value is an explicit setting. Config therefore distinguishes "not
// configured" from every explicit value: numeric fields use zero for unset,
// boolean options use Tristate, and the restart timer uses RestartInterval
// with a distinguished forever sentinel.
//
// # Determinism
//
// AppendLinkInfo is a pure function of its Config: the same configuration
// always produces byte-identical attribute payloads, with parameter groups
// emitted in a fixed order. Tests rely on this.
//
// The IFLA_CAN_* and CAN_CTRLMODE_* constants are generated from the tables
// in docs/kernel by canlink-gen.
package can

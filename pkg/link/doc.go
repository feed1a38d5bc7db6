// Package link manages the lifecycle of kernel network interfaces and
// drives CAN interfaces through their configuration sequence.
//
// # Lifecycle
//
// Every managed interface is a Link with a State. The Manager owns the
// link table and all state transitions; the Configurator decides what has
// to happen to a link and in which order. StateFailed and StateLingering
// are terminal: once a link reaches either, completions still in flight
// for it are discarded without effect.
//
// # Sequencing
//
// The kernel rejects bit-timing changes on a live CAN interface, so
// Configure brings an up interface down first, submits the parameter
// request from the down acknowledgment, and requests bring-up right after
// the parameter submission without waiting for its acknowledgment. For a
// single link the down acknowledgment therefore strictly precedes the
// parameter submission, which strictly precedes the parameter
// acknowledgment; the bring-up acknowledgment is ordered only after its
// own submission.
//
// All completion callbacks run on the transport's dispatch goroutine and
// must not block. There is no cancellation: a request already handed to
// the kernel cannot be aborted, so a link that fails while requests are in
// flight simply discards their completions via the terminal-state check.
package link

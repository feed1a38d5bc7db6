// Package rtnl provides the rtnetlink transport for link configuration.
//
// A Conn wraps a route-family netlink socket. Requests are built with the
// package's Request type (an ifinfomsg header plus optional attribute
// payload) and submitted asynchronously: SubmitAsync runs the kernel round
// trip on its own goroutine and posts the acknowledgment to a dispatch
// queue. Dispatch delivers queued completions one at a time, so all
// completion callbacks run on a single goroutine and never race.
//
// The kernel acknowledges every request (NLM_F_ACK); the acknowledgment is
// surfaced as a Status classifying the outcome as ok, already-exists, or an
// error. Nothing in this package blocks waiting for a reply outside of the
// per-request goroutine.
package rtnl

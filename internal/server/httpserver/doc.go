// Package httpserver runs the guestbook's HTTP surface on a fixed pool of
// workers.
//
// net/http accepts connections and parses requests, but no handler logic
// runs on its goroutines. Each request is offered to a Source; one of the
// pool's workers pulls it, resolves it with the router, runs the handler
// and writes exactly one response. The offering goroutine waits until the
// worker is done with the response writer.
//
// Closing the Source wakes every idle worker (which then exits) and every
// goroutine still trying to offer a request (which answers 503).
package httpserver

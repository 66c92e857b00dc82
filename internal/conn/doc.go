// Package conn owns the TCP stream to a game server.
//
// A Conn frames the duplex stream into typed messages, runs one receive
// goroutine and one keepalive goroutine, and dispatches every decoded
// message synchronously to registered handlers before the next frame is
// read. A Correlator layers "wait for the next message of kind K" on top of
// the any-packet hook.
package conn

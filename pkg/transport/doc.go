// Package transport owns the protocol-session primitive: one subprocess
// lifetime per exchange, a batch of newline-delimited JSON-RPC requests
// written to its stdin, and tolerant line-oriented recovery of whatever
// responses the server manages to emit before it exits or the timeout kills
// it. Transport faults never escalate as errors; they surface as an empty or
// short response list on the Result.
package transport

// Package cli provides the interactive soulbloom command-line client.
//
// App wires configuration and the gRPC client and runs a read-eval-print
// loop. Passwords are read without echo and wiped once sent. The access token
// lives only in memory for the duration of the session.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// input ends.
package cli

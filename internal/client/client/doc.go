// Package client talks to the soulbloom server over gRPC.
//
// GRPCClient keeps the access token obtained by Login in memory and attaches
// it to every later call as an "authorization: Bearer" header. gRPC status
// codes are mapped back to the sentinel errors of this package so callers can
// match them with errors.Is.
package client

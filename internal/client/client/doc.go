// Package client contains the backend contract the recipebox services talk
// to.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): Login and
//     FetchProtected.
//  2. LocalClient, an in-process implementation. There is no server: login
//     verifies credentials with a credentials.Verifier and issues a token with
//     an auth.Issuer, and protected data is synthesized locally. Both calls
//     wait for a configurable simulated latency first.
//
// # Error Handling
//
// Failures are reported with the sentinels in package common:
// common.ErrInvalidCredentials and common.ErrUnauthenticated. A cancelled
// context is reported as ctx.Err().
//
// Concurrency & Contexts
//
// LocalClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation; a real network implementation must
// also apply timeouts.
package client

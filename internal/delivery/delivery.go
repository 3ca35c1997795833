// Package delivery defines the contract every transport-level server
// (HTTP, worker, etc.) implements so main can run them uniformly.
package delivery

import "context"

// Delivery is a long-running server. Serve blocks until the server stops
// or fails; shutdown is driven through fx lifecycle hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}

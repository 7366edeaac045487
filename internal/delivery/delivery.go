// Package delivery groups the transports that expose the use cases.
package delivery

import "context"

// Delivery is a long-running transport started once the fx graph is built.
type Delivery interface {
	Serve(ctx context.Context) error
}

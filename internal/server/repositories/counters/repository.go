// Package counters implements the sequence allocator: durable named counters
// that hand out unique, monotonically increasing integers to concurrent
// callers.
package counters

import "context"

// Repository allocates sequence values. Next must be atomic at the storage
// layer: N concurrent calls for the same name return N distinct consecutive
// values with no repeats, and the persisted counter ends at the maximum
// returned value.
type Repository interface {
	Next(ctx context.Context, name string) (int64, error)
}

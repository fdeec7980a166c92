package persistence

import "context"

// StateStore is the durable side of every hydrated store: a mapping from
// store name to an opaque JSON blob. The in-memory stores stay
// authoritative after hydration; the durable copy only has to reflect the
// latest written state eventually.
type StateStore interface {
	// Load returns the blob persisted under name, or (nil, nil) when the
	// store has never been written.
	Load(ctx context.Context, name string) ([]byte, error)

	// Save replaces the blob persisted under name.
	Save(ctx context.Context, name string, blob []byte) error
}

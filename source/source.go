// Package source defines the playable items and quality levels handed to a
// provider, and the resolvers that produce them.
package source

import (
	"context"
	"errors"
)

// ErrInvalidItem is returned for items that cannot be loaded.
var ErrInvalidItem = errors.New("invalid item")

// Resolver turns a play target (a path, URL or identifier) into an Item.
type Resolver interface {
	// Name returns the human readable resolver name.
	Name() string

	// ID returns the unique identifier of the resolver.
	ID() string

	// Resolve produces the item for target.
	Resolve(ctx context.Context, target string) (*Item, error)
}

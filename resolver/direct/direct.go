// Package direct resolves a single media path or URL into a one-level item.
package direct

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/steadyplay/steadyplay/source"
)

// ID of the resolver.
const ID = "direct"

type resolver struct{}

// New returns the direct resolver.
func New() source.Resolver {
	return resolver{}
}

func (resolver) Name() string { return "Direct" }
func (resolver) ID() string   { return ID }

func (resolver) Resolve(_ context.Context, target string) (*source.Item, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, fmt.Errorf("%w: empty target", source.ErrInvalidItem)
	}

	return &source.Item{
		Title: strings.TrimSuffix(path.Base(target), path.Ext(target)),
		Sources: []source.Level{{
			File: target,
			Type: source.TypeOf(target),
		}},
	}, nil
}

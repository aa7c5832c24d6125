// Package file resolves item files written in YAML or JSON.
package file

import (
	"context"
	"fmt"

	"github.com/steadyplay/steadyplay/filesystem"
	"github.com/steadyplay/steadyplay/source"
	"gopkg.in/yaml.v3"
)

// ID of the resolver.
const ID = "file"

type resolver struct{}

// New returns the item file resolver.
func New() source.Resolver {
	return resolver{}
}

func (resolver) Name() string { return "Item file" }
func (resolver) ID() string   { return ID }

// Resolve reads the item file at target. JSON files are valid YAML.
func (resolver) Resolve(_ context.Context, target string) (*source.Item, error) {
	data, err := filesystem.API().ReadFile(target)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse decodes and validates an item file.
func Parse(data []byte) (*source.Item, error) {
	var file source.ItemFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", source.ErrInvalidItem, err)
	}

	item := file.Item()
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Marshal encodes item as YAML.
func Marshal(item *source.Item) ([]byte, error) {
	return yaml.Marshal(source.FileOf(item))
}

// Package history persists resume positions of played targets.
package history

import (
	"sort"
	"time"

	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/steadyplay/steadyplay/filesystem"
	"github.com/steadyplay/steadyplay/where"
)

var cacher = gache.New[map[string]*Record](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns every record keyed by target.
func Get() (map[string]*Record, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Record), nil
	}
	return cached, nil
}

// Recent returns records, most recently updated first.
func Recent() ([]*Record, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	records := lo.Values(saved)
	sort.Slice(records, func(i, j int) bool {
		return records[i].UpdatedAt.After(records[j].UpdatedAt)
	})
	return records, nil
}

// Save stores record, replacing any previous one for the same target.
func Save(record Record) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now()
	}
	saved[record.Target] = &record

	return cacher.Set(saved)
}

// Position returns where playback of target stopped last time.
func Position(target string) mo.Option[float64] {
	saved, err := Get()
	if err != nil {
		return mo.None[float64]()
	}

	if record, ok := saved[target]; ok && record.Position > 0 {
		return mo.Some(record.Position)
	}
	return mo.None[float64]()
}

// Remove forgets target.
func Remove(target string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, target)
	return cacher.Set(saved)
}

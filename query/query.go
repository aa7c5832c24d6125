// Package query remembers played targets and suggests them back for completion.
package query

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/steadyplay/steadyplay/filesystem"
	"github.com/steadyplay/steadyplay/key"
	"github.com/steadyplay/steadyplay/where"
	"golang.org/x/exp/slices"
)

type targetRecord struct {
	Rank   int    `json:"rank"`
	Target string `json:"target"`
}

var cacher = gache.New[map[string]*targetRecord](
	&gache.Options{
		Path:       where.Queries(),
		FileSystem: &filesystem.GacheFs{},
	},
)

var suggestionCache = make(map[string][]*targetRecord)

// Remember records a played target or raises its rank by weight.
func Remember(target string, weight int) error {
	target = sanitize(target)
	if target == "" {
		return nil
	}

	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*targetRecord)
	}

	if record, ok := cached[target]; ok {
		record.Rank += weight
	} else {
		cached[target] = &targetRecord{Rank: weight, Target: target}
	}

	clear(suggestionCache)
	return cacher.Set(cached)
}

// Suggest returns the best match for a partial target.
func Suggest(q string) mo.Option[string] {
	suggestions := SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns remembered targets fuzzily matching q, highest rank first.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)
	records, ok := suggestionCache[q]
	if !ok {
		cached, expired, err := cacher.Get()
		if err != nil || expired || cached == nil {
			return []string{}
		}

		records = lo.Filter(lo.Values(cached), func(r *targetRecord, _ int) bool {
			return fuzzy.MatchFold(q, r.Target)
		})

		slices.SortFunc(records, func(a, b *targetRecord) int {
			if a.Rank != b.Rank {
				return b.Rank - a.Rank
			}
			return strings.Compare(a.Target, b.Target)
		})

		suggestionCache[q] = records
	}

	return lo.Map(records, func(r *targetRecord, _ int) string {
		return r.Target
	})
}

// paths and URLs are case sensitive, so only whitespace is trimmed
func sanitize(q string) string {
	return strings.TrimSpace(q)
}

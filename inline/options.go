package inline

import (
	"fmt"
	"io"
	"strconv"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/steadyplay/steadyplay/source"
	"github.com/steadyplay/steadyplay/util"
)

// LevelPicker narrows the levels of an item down to one, or none.
type LevelPicker func([]source.Level) (source.Level, bool)

// Options configures a non-interactive resolve.
type Options struct {
	Out         io.Writer
	Resolvers   []source.Resolver
	Json        bool
	Target      string
	LevelPicker mo.Option[LevelPicker]
}

// ParseLevelPicker builds a picker from its kind: first, last, default,
// label (fuzzy, by value) or index.
func ParseLevelPicker(kind, value string) (LevelPicker, error) {
	switch kind {
	case "first":
		return func(levels []source.Level) (source.Level, bool) {
			return lo.First(levels)
		}, nil
	case "last":
		return func(levels []source.Level) (source.Level, bool) {
			return lo.Last(levels)
		}, nil
	case "default":
		return func(levels []source.Level) (source.Level, bool) {
			if level, ok := lo.Find(levels, func(l source.Level) bool { return l.Default }); ok {
				return level, true
			}
			return lo.First(levels)
		}, nil
	case "label":
		return func(levels []source.Level) (source.Level, bool) {
			if level, ok := lo.Find(levels, func(l source.Level) bool { return l.Label == value }); ok {
				return level, true
			}
			return lo.Find(levels, func(l source.Level) bool {
				return fuzzy.MatchFold(value, l.Label)
			})
		}, nil
	case "index":
		idx, err := strconv.Atoi(value)
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("invalid index: %s", value)
		}
		return func(levels []source.Level) (source.Level, bool) {
			if len(levels) == 0 {
				return source.Level{}, false
			}
			return levels[util.Min(idx, len(levels)-1)], true
		}, nil
	default:
		return nil, fmt.Errorf("unknown picker type: %s", kind)
	}
}

package cmd

import (
	"sort"

	"github.com/AlecAivazis/survey/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/steadyplay/steadyplay/auth"
	"github.com/steadyplay/steadyplay/log"
	"github.com/steadyplay/steadyplay/source"
)

// preferredQuality returns the label the provider should prefer. A level
// picked interactively is flagged as the default, so that an unlabeled pick
// still wins.
func preferredQuality(item *source.Item, options *playOptions, fallback string) (string, error) {
	if options.SelectQuality && len(item.Sources) > 1 {
		index, err := selectQuality(item.Sources)
		if err != nil {
			return "", err
		}

		for i := range item.Sources {
			item.Sources[i].Default = i == index
		}
		return item.Sources[index].Label, nil
	}

	if options.Quality != "" {
		if label, ok := matchQuality(item.Sources, options.Quality).Get(); ok {
			return label, nil
		}
		log.Warnf("no level matches quality %q", options.Quality)
	}

	return fallback, nil
}

// matchQuality finds the label closest to q. Exact labels win, then the
// fuzzy match with the smallest distance, earlier levels first on ties.
func matchQuality(levels []source.Level, q string) mo.Option[string] {
	labels := lo.FilterMap(levels, func(l source.Level, _ int) (string, bool) {
		return l.Label, l.Label != ""
	})

	if lo.Contains(labels, q) {
		return mo.Some(q)
	}

	ranks := fuzzy.RankFindNormalizedFold(q, labels)
	if len(ranks) == 0 {
		return mo.None[string]()
	}

	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})
	return mo.Some(ranks[0].Target)
}

func selectQuality(levels []source.Level) (int, error) {
	options := lo.Map(source.PublicLevels(levels), func(l source.PublicLevel, _ int) string {
		return l.Label
	})

	prompt := &survey.Select{
		Message: "Quality:",
		Options: options,
	}

	if _, i, ok := lo.FindIndexOf(levels, func(l source.Level) bool { return l.Default }); ok {
		prompt.Default = options[i]
	}

	var index int
	err := survey.AskOne(prompt, &index)
	return index, err
}

// headersFor merges stored credentials with the headers a level asks for.
// Level headers take precedence.
func headersFor(item *source.Item) func(locator string) map[string]string {
	return func(locator string) map[string]string {
		headers := auth.HeadersFor(locator)

		level, ok := lo.Find(item.Sources, func(l source.Level) bool {
			return l.File == locator
		})
		if !ok || len(level.Headers) == 0 {
			return headers
		}

		return lo.Assign(headers, level.Headers)
	}
}

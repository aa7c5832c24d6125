// Package inline implements the non-interactive mode: resolving targets to
// levels and printing provider notifications as JSON lines.
package inline

import (
	"context"
	"fmt"
	"os"

	"github.com/steadyplay/steadyplay/log"
	"github.com/steadyplay/steadyplay/source"
)

// Run resolves the target with every resolver and prints the levels.
func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	var results []*Result
	for _, r := range options.Resolvers {
		item, err := r.Resolve(ctx, options.Target)
		if err != nil {
			return fmt.Errorf("resolve failed for %s: %w", r.Name(), err)
		}

		if options.LevelPicker.IsPresent() {
			pick := options.LevelPicker.MustGet()
			level, ok := pick(item.Sources)
			if !ok {
				log.Warnf("no level picked from %s", r.Name())
				continue
			}
			item.Sources = []source.Level{level}
		}

		results = append(results, &Result{Resolver: r.Name(), Item: source.FileOf(item)})
	}

	if options.Json {
		return writeJson(options.Out, &Output{Target: options.Target, Result: results})
	}

	for _, result := range results {
		for _, level := range result.Item.Sources {
			if _, err := fmt.Fprintln(options.Out, level.File); err != nil {
				return err
			}
		}
	}
	return nil
}

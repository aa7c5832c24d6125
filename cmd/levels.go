package cmd

import (
	"io"
	"os"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/steadyplay/steadyplay/filesystem"
	"github.com/steadyplay/steadyplay/history"
	"github.com/steadyplay/steadyplay/inline"
	"github.com/steadyplay/steadyplay/key"
	"github.com/steadyplay/steadyplay/query"
	"github.com/steadyplay/steadyplay/source"
	"github.com/steadyplay/steadyplay/util"
)

func init() {
	rootCmd.AddCommand(levelsCmd)

	levelsCmd.Flags().StringP("pick", "p", "", "Narrow the levels down to one: first, last, default, label or index")
	levelsCmd.Flags().StringP("value", "V", "", "Label or index used by the label and index pickers")
	levelsCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON object")
	levelsCmd.Flags().StringP("output", "o", "", "Write the output to a file")

	lo.Must0(levelsCmd.RegisterFlagCompletionFunc("pick", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"first", "last", "default", "label", "index"}, cobra.ShellCompDirectiveNoFileComp
	}))
}

var levelsCmd = &cobra.Command{
	Use:   "levels <target>",
	Short: "Resolve a target and print its quality levels",
	Long: `Resolve a target without playing it.

Pickers:
  first   - first level
  last    - last level
  default - level flagged as default, or the first one
  label   - level with the label given by --value, matched fuzzily
  index   - level at the index given by --value (starting from 0)`,
	Args:    cobra.ExactArgs(1),
	Example: "  steadyplay levels --json https://example.com/live/master.m3u8",
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 || !viper.GetBool(key.SearchShowQuerySuggestions) {
			return nil, cobra.ShellCompDirectiveDefault
		}
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveDefault
	},
	Run: func(cmd *cobra.Command, args []string) {
		target := args[0]

		r, err := resolverFor(target, mo.None[*history.Record]())
		handleErr(err)

		res, err := r.Create()
		handleErr(err)
		if closer, ok := res.(io.Closer); ok {
			defer util.Ignore(closer.Close)
		}

		var out io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			f, err := filesystem.API().Create(output)
			handleErr(err)
			defer util.Ignore(f.Close)
			out = f
		}

		picker := mo.None[inline.LevelPicker]()
		if kind := lo.Must(cmd.Flags().GetString("pick")); kind != "" {
			fn, err := inline.ParseLevelPicker(kind, lo.Must(cmd.Flags().GetString("value")))
			handleErr(err)
			picker = mo.Some(fn)
		}

		handleErr(inline.Run(cmd.Context(), &inline.Options{
			Out:         out,
			Resolvers:   []source.Resolver{res},
			Json:        lo.Must(cmd.Flags().GetBool("json")),
			Target:      target,
			LevelPicker: picker,
		}))
	},
}

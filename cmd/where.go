package cmd

import (
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/steadyplay/steadyplay/color"
	"github.com/steadyplay/steadyplay/style"
	"github.com/steadyplay/steadyplay/where"
)

type whereTarget struct {
	name   string
	flag   string
	short  string
	where  func() string
	hidden bool
}

var wherePaths = []whereTarget{
	{"Config", "config", "c", where.Config, false},
	{"Resolvers", "resolvers", "r", where.Resolvers, false},
	{"Logs", "logs", "l", where.Logs, false},
	{"History", "history", "s", where.History, false},
	{"Cache", "cache", "", where.Cache, true},
	{"Temp", "temp", "", where.Temp, true},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, t := range wherePaths {
		whereCmd.Flags().BoolP(t.flag, t.short, false, t.name+" path")
		if t.hidden {
			lo.Must0(whereCmd.Flags().MarkHidden(t.flag))
		}
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(wherePaths, func(t whereTarget, _ int) string {
		return t.flag
	})...)

	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Print the paths steadyplay reads and writes",
	Run: func(cmd *cobra.Command, args []string) {
		if t, ok := lo.Find(wherePaths, func(t whereTarget) bool {
			return lo.Must(cmd.Flags().GetBool(t.flag))
		}); ok {
			cmd.Println(t.where())
			return
		}

		headerStyle := style.New().Bold(true).Foreground(color.HiPurple).Render
		visible := lo.Reject(wherePaths, func(t whereTarget, _ int) bool { return t.hidden })

		for i, t := range visible {
			cmd.Printf("%s %s\n", headerStyle(t.name+"?"), style.Fg(color.Yellow)("--"+t.flag))
			cmd.Println(t.where())

			if i < len(visible)-1 {
				cmd.Println()
			}
		}
	},
}

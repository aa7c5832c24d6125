package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/steadyplay/steadyplay/filesystem"
	"github.com/steadyplay/steadyplay/icon"
	"github.com/steadyplay/steadyplay/util"
	"github.com/steadyplay/steadyplay/where"
)

type clearTarget struct {
	name     string
	flag     string
	short    string
	location func() string
}

var clearTargets = []clearTarget{
	{"cache directory", "cache", "c", where.Cache},
	{"resolver responses", "responses", "r", where.Responses},
	{"resume history", "history", "s", where.History},
	{"played targets", "queries", "q", where.Queries},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		clearCmd.Flags().BoolP(target.flag, target.short, false, "clear "+target.name)
	}
	clearCmd.Flags().BoolP("all", "a", false, "clear everything above")
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached and recorded data",
	Run: func(cmd *cobra.Command, args []string) {
		all := lo.Must(cmd.Flags().GetBool("all"))

		selected := lo.Filter(clearTargets, func(t clearTarget, _ int) bool {
			return all || lo.Must(cmd.Flags().GetBool(t.flag))
		})
		if len(selected) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, target := range selected {
			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), target.name))
			err := filesystem.API().RemoveAll(target.location())
			erase()
			handleErr(err)

			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(target.name))
		}
	},
}

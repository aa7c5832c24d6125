// Package cmd implements the command-line interface for steadyplay.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/steadyplay/steadyplay/color"
	"github.com/steadyplay/steadyplay/constant"
	"github.com/steadyplay/steadyplay/icon"
	"github.com/steadyplay/steadyplay/key"
	"github.com/steadyplay/steadyplay/log"
	"github.com/steadyplay/steadyplay/platform"
	"github.com/steadyplay/steadyplay/resolver"
	"github.com/steadyplay/steadyplay/style"
	"github.com/steadyplay/steadyplay/util"
	"github.com/steadyplay/steadyplay/version"
	"github.com/steadyplay/steadyplay/where"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Record resume positions while playing")
	lo.Must0(viper.BindPFlag(key.HistorySave, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.PersistentFlags().StringP("resolver", "R", "", "Resolver used for targets, detected from the target when empty")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("resolver", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(resolver.All(), func(r *resolver.Resolver, _ int) string {
			return r.Name
		}), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.ResolversDefault, rootCmd.PersistentFlags().Lookup("resolver")))

	rootCmd.PersistentFlags().StringP("platform", "P", "", "Platform quirks to compensate for")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("platform", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return platform.Names(), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.PlatformProfile, rootCmd.PersistentFlags().Lookup("platform")))

	rootCmd.Flags().BoolP("continue", "c", false, "Resume the most recently played target")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	go func() {
		_ = util.Delete(where.Temp())
	}()
}

var rootCmd = &cobra.Command{
	Use:   constant.Steadyplay,
	Short: "A deterministic media player for the terminal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A deterministic media player for the terminal"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		if lo.Must(cmd.Flags().GetBool("continue")) {
			CheckDependencies()
			handleErr(play(cmd.Context(), &playOptions{Continue: true}))
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute wires the command tree and runs it.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/steadyplay/steadyplay/color"
	"github.com/steadyplay/steadyplay/constant"
	"github.com/steadyplay/steadyplay/filesystem"
	"github.com/steadyplay/steadyplay/icon"
	"github.com/steadyplay/steadyplay/resolver"
	"github.com/steadyplay/steadyplay/resolver/custom"
	"github.com/steadyplay/steadyplay/source"
	"github.com/steadyplay/steadyplay/style"
	"github.com/steadyplay/steadyplay/util"
	"github.com/steadyplay/steadyplay/where"
)

func init() {
	rootCmd.AddCommand(resolversCmd)
}

var resolversCmd = &cobra.Command{
	Use:   "resolvers",
	Short: "Manage built-in and custom resolvers",
}

func init() {
	resolversCmd.AddCommand(resolversListCmd)

	resolversListCmd.Flags().BoolP("raw", "r", false, "Suppress headers in the output")
	resolversListCmd.Flags().BoolP("custom", "c", false, "Display only custom Lua resolvers")
	resolversListCmd.Flags().BoolP("builtin", "b", false, "Display only built-in resolvers")

	resolversListCmd.MarkFlagsMutuallyExclusive("custom", "builtin")
	resolversListCmd.SetOut(os.Stdout)
}

var resolversListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every registered resolver",
	Run: func(cmd *cobra.Command, args []string) {
		printHeader := !lo.Must(cmd.Flags().GetBool("raw"))
		headerStyle := style.New().Foreground(color.HiBlue).Bold(true).Render
		h := func(s string) {
			if printHeader {
				cmd.Println(headerStyle(s))
			}
		}

		printBuiltin := func() {
			h("Builtin:")
			for _, r := range resolver.Builtins() {
				cmd.Println(r.Name)
			}
		}

		printCustom := func() {
			h("Custom:")
			for _, r := range resolver.Customs() {
				if r.UsesTLS && printHeader {
					cmd.Printf("%s %s\n", r.Name, style.Faint("(tls)"))
					continue
				}
				cmd.Println(r.Name)
			}
		}

		switch {
		case lo.Must(cmd.Flags().GetBool("builtin")):
			printBuiltin()
		case lo.Must(cmd.Flags().GetBool("custom")):
			printCustom()
		default:
			printBuiltin()
			if printHeader {
				cmd.Println()
			}
			printCustom()
		}
	},
}

func init() {
	resolversCmd.AddCommand(resolversRemoveCmd)

	resolversRemoveCmd.Flags().StringArrayP("name", "n", []string{}, "Name of the custom resolver(s) to remove")
	lo.Must0(resolversRemoveCmd.RegisterFlagCompletionFunc("name", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		resolvers, err := resolver.CustomResolvers()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		return lo.Map(resolvers, func(r *resolver.Resolver, _ int) string {
			return r.Name
		}), cobra.ShellCompDirectiveNoFileComp
	}))
}

var resolversRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove custom Lua resolvers",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range lo.Must(cmd.Flags().GetStringArray("name")) {
			path := filepath.Join(where.Resolvers(), name+resolver.CustomExtension)
			handleErr(filesystem.API().Remove(path))
			fmt.Printf("%s successfully removed %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(name))
		}
	},
}

func init() {
	resolversCmd.AddCommand(resolversInstallCmd)

	resolversInstallCmd.Flags().StringP("sha256", "s", "", "Expected SHA-256 of the script, in hex")
}

var resolversInstallCmd = &cobra.Command{
	Use:     "install <url>",
	Short:   "Download a Lua resolver into the resolvers directory",
	Args:    cobra.ExactArgs(1),
	Example: "  steadyplay resolvers install https://example.com/resolvers/site.lua",
	Run: func(cmd *cobra.Command, args []string) {
		erase := util.PrintErasable(fmt.Sprintf("%s Downloading %s...", icon.Get(icon.Progress), style.Fg(color.Yellow)(args[0])))
		path, err := resolver.Install(cmd.Context(), args[0], lo.Must(cmd.Flags().GetString("sha256")))
		erase()
		handleErr(err)

		name := util.FileStem(path)
		if _, err := custom.LoadResolver(path); err != nil {
			_ = filesystem.API().Remove(path)
			handleErr(fmt.Errorf("%s is not a valid resolver: %w", name, err))
		}

		fmt.Printf("%s installed %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(name))
	},
}

func init() {
	resolversCmd.AddCommand(resolversGenCmd)

	resolversGenCmd.Flags().StringP("name", "n", "", "Name of the new resolver")
	resolversGenCmd.Flags().StringP("url", "u", "", "Base URL of the site it resolves")

	lo.Must0(resolversGenCmd.MarkFlagRequired("name"))
	lo.Must0(resolversGenCmd.MarkFlagRequired("url"))
}

var resolversGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Scaffold a new Lua resolver from a template",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.SetOut(os.Stdout)

		author := "Anonymous"
		if usr, err := user.Current(); err == nil {
			author = usr.Username
		}

		s := struct {
			Name            string
			URL             string
			ResolveLevelsFn string
			ResolveTitleFn  string
			Author          string
		}{
			Name:            lo.Must(cmd.Flags().GetString("name")),
			URL:             lo.Must(cmd.Flags().GetString("url")),
			ResolveLevelsFn: constant.ResolveLevelsFn,
			ResolveTitleFn:  constant.ResolveTitleFn,
			Author:          author,
		}

		funcMap := template.FuncMap{
			"repeat": strings.Repeat,
			"plus":   func(a, b int) int { return a + b },
			"max":    util.Max[int],
		}

		tmpl, err := template.New("resolver").Funcs(funcMap).Parse(constant.ResolverTemplate)
		handleErr(err)

		target := filepath.Join(where.Resolvers(), util.SanitizeFilename(s.Name)+resolver.CustomExtension)
		f, err := filesystem.API().Create(target)
		handleErr(err)

		defer util.Ignore(f.Close)

		handleErr(tmpl.Execute(f, s))
		cmd.Println(target)
	},
}

func init() {
	resolversCmd.AddCommand(resolversRunCmd)
}

var resolversRunCmd = &cobra.Command{
	Use:   "run <file> [target]",
	Short: "Run a local Lua resolver",
	Long: `Load a Lua resolver script, checking that it defines the required functions.
With a target, resolve it and print the resulting item as JSON.`,
	Args:    cobra.RangeArgs(1, 2),
	Example: "  steadyplay resolvers run ./site.lua https://example.com/watch/42",
	Run: func(cmd *cobra.Command, args []string) {
		res, err := custom.LoadResolver(args[0])
		handleErr(err)
		if closer, ok := res.(io.Closer); ok {
			defer util.Ignore(closer.Close)
		}

		if len(args) < 2 {
			return
		}

		item, err := res.Resolve(cmd.Context(), args[1])
		handleErr(err)

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(source.FileOf(item)))
	},
}

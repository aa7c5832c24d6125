package cmd

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/steadyplay/steadyplay/filesystem"
	"github.com/steadyplay/steadyplay/history"
	"github.com/steadyplay/steadyplay/inline"
	"github.com/steadyplay/steadyplay/resolver/file"
	"github.com/steadyplay/steadyplay/source"
	"github.com/steadyplay/steadyplay/util"
)

func init() {
	rootCmd.AddCommand(itemCmd)
}

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Work with item files",
	Long: `Item files describe a playable item: its title, quality levels and start position.
They are written in YAML or JSON and played with the built-in file resolver.`,
}

func init() {
	itemCmd.AddCommand(itemSchemaCmd)

	itemSchemaCmd.Flags().BoolP("output", "O", false, "Generate the schema of the levels command JSON output instead")
}

var itemSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of item files",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			return filepath.Base(t.PkgPath()) + "." + t.Name()
		}

		var schema *jsonschema.Schema
		if lo.Must(cmd.Flags().GetBool("output")) {
			schema = reflector.Reflect(&inline.Output{})
		} else {
			schema = reflector.Reflect(&source.ItemFile{})
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}

func init() {
	itemCmd.AddCommand(itemMakeCmd)

	itemMakeCmd.Flags().StringP("output", "o", "", "Write the item file here instead of printing it")
	itemMakeCmd.Flags().StringP("title", "T", "", "Title of the item, overriding the resolved one")
}

var itemMakeCmd = &cobra.Command{
	Use:     "make <target>",
	Short:   "Resolve a target and write it as an item file",
	Args:    cobra.ExactArgs(1),
	Example: "  steadyplay item make -o movie.yaml https://example.com/vod/master.m3u8",
	Run: func(cmd *cobra.Command, args []string) {
		r, err := resolverFor(args[0], mo.None[*history.Record]())
		handleErr(err)

		res, err := r.Create()
		handleErr(err)
		if closer, ok := res.(io.Closer); ok {
			defer util.Ignore(closer.Close)
		}

		item, err := res.Resolve(cmd.Context(), args[0])
		handleErr(err)

		if title := lo.Must(cmd.Flags().GetString("title")); title != "" {
			item.Title = title
		}

		data, err := file.Marshal(item)
		handleErr(err)

		output := lo.Must(cmd.Flags().GetString("output"))
		if output == "" {
			_, err = os.Stdout.Write(data)
			handleErr(err)
			return
		}

		handleErr(filesystem.WriteAtomic(output, data))
		cmd.Println(output)
	},
}

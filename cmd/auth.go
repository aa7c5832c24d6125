package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/steadyplay/steadyplay/auth"
	"github.com/steadyplay/steadyplay/color"
	"github.com/steadyplay/steadyplay/icon"
	"github.com/steadyplay/steadyplay/style"
)

func init() {
	rootCmd.AddCommand(authCmd)
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage bearer tokens for protected stream hosts",
	Long: `Tokens are kept in the system keyring, one per host.
They are sent as an Authorization header with every manifest, resolver and player request to that host.`,
}

func init() {
	authCmd.AddCommand(authSetCmd)

	authSetCmd.Flags().StringP("token", "t", "", "Token to store. Prompted for when omitted")
}

var authSetCmd = &cobra.Command{
	Use:     "set <host>",
	Short:   "Store the token for a host",
	Args:    cobra.ExactArgs(1),
	Example: "  steadyplay auth set cdn.example.com",
	Run: func(cmd *cobra.Command, args []string) {
		host := auth.Host(args[0])

		token := lo.Must(cmd.Flags().GetString("token"))
		if token == "" {
			prompt := &survey.Password{
				Message: fmt.Sprintf("Token for %s:", host),
			}
			handleErr(survey.AskOne(prompt, &token, survey.WithValidator(survey.Required)))
		}

		handleErr(auth.SetToken(host, token))
		fmt.Printf("%s token saved for %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(host))
	},
}

func init() {
	authCmd.AddCommand(authGetCmd)
	authGetCmd.SetOut(os.Stdout)
}

var authGetCmd = &cobra.Command{
	Use:   "get <host>",
	Short: "Print the token stored for a host",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		token, err := auth.GetToken(args[0])
		if errors.Is(err, auth.ErrNotFound) {
			handleErr(fmt.Errorf("no token stored for %s", auth.Host(args[0])))
		}
		handleErr(err)

		cmd.Println(token)
	},
}

func init() {
	authCmd.AddCommand(authDeleteCmd)

	authDeleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

var authDeleteCmd = &cobra.Command{
	Use:   "delete <host>",
	Short: "Forget the token stored for a host",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		host := auth.Host(args[0])

		if !lo.Must(cmd.Flags().GetBool("yes")) {
			confirm := &survey.Confirm{
				Message: fmt.Sprintf("Delete the token for %s?", host),
				Default: false,
			}
			var response bool
			handleErr(survey.AskOne(confirm, &response))
			if !response {
				return
			}
		}

		err := auth.DeleteToken(host)
		if errors.Is(err, auth.ErrNotFound) {
			handleErr(fmt.Errorf("no token stored for %s", host))
		}
		handleErr(err)

		fmt.Printf("%s token deleted for %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(host))
	},
}

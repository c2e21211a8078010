package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"pawhub/gateway/pkg/cli"
	"pawhub/gateway/pkg/client"
	"pawhub/gateway/pkg/oauth"
)

var gatewayURL string

var oauthCmd = &cobra.Command{
	Use:   "oauth",
	Short: "Inspect OAuth login configuration",
}

var oauthURLCmd = &cobra.Command{
	Use:   "url <provider>",
	Short: "Print the authorization URL for a provider",
	Long: `Build the authorization URL for google, kakao or naver from the client ids a
running gateway publishes on /api/oauth-config.

When the gateway cannot be reached the placeholder client ids are used, the
same way the browser falls back.

Examples:
  pawhub oauth url google
  pawhub oauth url naver --gateway https://pawhub.example.com`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: providerNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(client.Config{GatewayURL: gatewayURL})
		defer c.Close()

		url, err := c.OAuthURL(cmd.Context(), args[0])
		if err != nil {
			return cli.NewCommandError("oauth url", err)
		}
		if cli.OutputFormat(outputFormat) == cli.FormatText {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), url)
			return err
		}
		return printResult(cmd, map[string]string{"provider": args[0], "url": url})
	},
}

func providerNames() []string {
	names := make([]string, 0, len(oauth.Providers))
	for _, p := range oauth.Providers {
		names = append(names, string(p))
	}
	return names
}

func init() {
	rootCmd.AddCommand(oauthCmd)
	oauthCmd.AddCommand(oauthURLCmd)

	oauthCmd.PersistentFlags().StringVar(&gatewayURL, "gateway", "http://localhost:3000", "gateway origin")
}

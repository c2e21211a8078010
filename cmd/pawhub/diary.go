package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"pawhub/gateway/pkg/cli"
	"pawhub/gateway/pkg/client"
	"pawhub/gateway/pkg/oauth"
)

var diaryFlags struct {
	gateway string
	user    string
	token   string
}

var diaryCmd = &cobra.Command{
	Use:   "diary",
	Short: "Read pet diary entries through a gateway",
}

var diaryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List diary entries",
	Long: `List diary entries through a running gateway, optionally for one user.

The gateway answers with the backend's JSON, which is printed as-is in text
mode and re-encoded for --output json or yaml.

Examples:
  pawhub diary list
  pawhub diary list --user 42 --token "$ACCESS_TOKEN"`,
	RunE: listDiaries,
}

func init() {
	rootCmd.AddCommand(diaryCmd)
	diaryCmd.AddCommand(diaryListCmd)

	diaryCmd.PersistentFlags().StringVar(&diaryFlags.gateway, "gateway", "http://localhost:3000", "gateway origin")
	diaryListCmd.Flags().StringVar(&diaryFlags.user, "user", "", "list entries of this user id only")
	diaryListCmd.Flags().StringVar(&diaryFlags.token, "token", "", "access token sent as a bearer Authorization header")
}

func listDiaries(cmd *cobra.Command, args []string) error {
	c := client.New(client.Config{GatewayURL: diaryFlags.gateway})
	defer c.Close()
	if diaryFlags.token != "" {
		c.SetSession(oauth.Session{UserID: diaryFlags.user, AccessToken: diaryFlags.token})
	}

	entries, err := c.Diaries(cmd.Context(), diaryFlags.user)
	if err != nil {
		return cli.NewCommandError("diary list", err)
	}

	switch cli.OutputFormat(outputFormat) {
	case cli.FormatText:
		var buf bytes.Buffer
		if err := json.Indent(&buf, entries, "", "  "); err != nil {
			return err
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), buf.String())
		return err
	default:
		var doc any
		if err := json.Unmarshal(entries, &doc); err != nil {
			return err
		}
		return printResult(cmd, doc)
	}
}

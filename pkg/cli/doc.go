/*
Package cli provides command-line helpers shared by the pawhub commands.

Output Formatting:

Command results can be printed as text, JSON, YAML or CSV. Values that
implement Table are rendered as aligned columns in text mode and as rows in
CSV mode:

	formatter, err := cli.NewFormatter(cli.FormatYAML)
	if err != nil {
		return err
	}
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Errors:

ConfigError and CommandError carry enough context for a one-line message;
ExitCode maps them to the process exit status.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()
*/
package cli

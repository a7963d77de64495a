package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/definer/internal/cli"
	"github.com/at-ishikawa/definer/internal/client"
	"github.com/at-ishikawa/definer/internal/dictionary"
	"github.com/at-ishikawa/definer/internal/render"
)

// OutputFormat selects how define and remote print a response.
type OutputFormat string

func (f *OutputFormat) Set(val string) error {
	for _, format := range allOutputFormats {
		if val == string(format) {
			*f = format
			return nil
		}
	}
	return fmt.Errorf("invalid output format: %s", val)
}

func (f OutputFormat) String() string {
	return string(f)
}

func (f *OutputFormat) Type() string {
	return "format"
}

const (
	OutputFormatText     OutputFormat = "text"
	OutputFormatMarkdown OutputFormat = "markdown"
)

var (
	_                pflag.Value = (*OutputFormat)(nil)
	allOutputFormats             = []OutputFormat{OutputFormatText, OutputFormatMarkdown}
)

func printResponse(w io.Writer, format OutputFormat, resp dictionary.Response) error {
	if format == OutputFormatMarkdown {
		_, err := io.WriteString(w, render.Markdown(resp))
		return err
	}
	return render.NewTerminal(w).Print(resp)
}

func newDefineCommand() *cobra.Command {
	output := OutputFormatText
	cmd := &cobra.Command{
		Use:   "define [word | word=definition | word=]",
		Short: "Look up, save or delete a term in the local database",
		Long: `Look up, save or delete a term in the local database.

  definer define            list every term
  definer define word       look up a term
  definer define word=text  save a definition
  definer define word=      delete a term`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			executor := cli.NewLocalExecutor(newExecutor(db, cfg))
			resp, err := executor.Execute(ctx, requestText(args))
			if err != nil {
				return fmt.Errorf("executor.Execute() > %w", err)
			}
			return printResponse(cmd.OutOrStdout(), output, resp)
		},
	}
	cmd.Flags().VarP(&output, "output", "o", "output format (text, markdown)")
	return cmd
}

func newRemoteCommand() *cobra.Command {
	var serverURL string
	output := OutputFormatText
	cmd := &cobra.Command{
		Use:   "remote [word | word=definition | word=]",
		Short: "Send a command to a running definer server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if serverURL == "" {
				serverURL = cfg.Client.BaseURL
			}

			c := client.New(serverURL, cfg.Client.RetryAttempts)
			defer func() { _ = c.Close() }()

			resp, err := c.Execute(cmd.Context(), requestText(args))
			if err != nil {
				return fmt.Errorf("client.Execute(%s) > %w", serverURL, err)
			}
			return printResponse(cmd.OutOrStdout(), output, resp)
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "", "server base URL (defaults to client.base_url)")
	cmd.Flags().VarP(&output, "output", "o", "output format (text, markdown)")
	return cmd
}

func newREPLCommand() *cobra.Command {
	var serverURL string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var executor cli.Executor
			if serverURL != "" {
				c := client.New(serverURL, cfg.Client.RetryAttempts)
				defer func() { _ = c.Close() }()
				executor = c
			} else {
				db, err := openDatabase(ctx, cfg)
				if err != nil {
					return err
				}
				defer func() { _ = db.Close() }()
				executor = cli.NewLocalExecutor(newExecutor(db, cfg))
			}

			return cli.NewREPL(executor, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "", "send commands to this server instead of the local database")
	return cmd
}

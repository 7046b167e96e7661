package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bethropolis/trailspace/internal/cli"
	"github.com/bethropolis/trailspace/internal/config"
	"github.com/bethropolis/trailspace/internal/console"
	"github.com/bethropolis/trailspace/internal/logger"
)

// Build-time variables
var (
	version = "dev"
)

var (
	flags    config.Flags
	cfg      *config.Config
	closeLog = func() error { return nil }
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   config.AppName,
	Short: "Find, highlight and delete trailing whitespace",
	Long: `trailspace finds trailing whitespace (spaces and tabs before the end of a line),
highlights it in a terminal view and deletes it on request.

Settings are read from ~/.config/trailspace/config.toml, table [plugins.trailing_spaces].
Command-line flags override the file.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <path>...",
	Short: "Report trailing whitespace without changing files",
	Long: `Report trailing whitespace without changing files.

Directories are searched recursively; hidden files and binary files are skipped.
Exits with status 1 when trailing whitespace is found.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Check(cmd.Context(), cfg, args, cmd.OutOrStdout(), cmd.ErrOrStderr(), verbose)
	},
}

var trimCmd = &cobra.Command{
	Use:   "trim [path]...",
	Short: "Delete trailing whitespace and save the files",
	Long: `Delete trailing whitespace and save the files that changed.

With --stdin the content is read from standard input and the trimmed result is
written to standard output; --stdin-filename selects the language.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		useStdin, _ := cmd.Flags().GetBool("stdin")
		if useStdin {
			filename, _ := cmd.Flags().GetString("stdin-filename")
			n, err := cli.TrimStream(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), filename)
			if err != nil {
				return err
			}
			logger.Infof("trim: deleted %d region(s) from stdin", n)
			return nil
		}
		if len(args) == 0 {
			return errors.New("no paths given (use --stdin to read standard input)")
		}
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		opts := cli.TrimOptions{
			ModifiedOnly: flags.ModifiedLinesOnly,
			DryRun:       dryRun,
			Verbose:      verbose,
		}
		return cli.Trim(cmd.Context(), cfg, args, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Open a file in the terminal view with trailing whitespace highlighted",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		return cli.View(cmd.Context(), cfg, path)
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch <path>...",
	Short: "Check files again whenever they change",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fix, _ := cmd.Flags().GetBool("fix")
		return cli.Watch(cmd.Context(), cfg, args, fix, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	flags.DefineFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Report skipped files and per-file counts")

	trimCmd.Flags().Bool("dry-run", false, "Report what would be deleted without writing")
	trimCmd.Flags().Bool("stdin", false, "Read from standard input and write to standard output")
	trimCmd.Flags().String("stdin-filename", "", "File name used to pick the language of --stdin input")
	watchCmd.Flags().Bool("fix", false, "Trim changed files instead of reporting them")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(trimCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(watchCmd)
}

// setup loads the configuration and starts logging before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(flags.ConfigFilePath, &flags)
	if err != nil {
		return err
	}
	w, closeFn, err := cli.OpenLog(loaded)
	if err != nil {
		return err
	}
	logger.Init(loaded.Logger, w)
	cfg = loaded
	closeLog = closeFn

	logger.Infof("Starting %s %s: %s", config.AppName, version, cmd.Name())
	logger.Debugf("Log level set to: %s", cfg.Logger.LogLevel)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = closeLog()

	if err != nil {
		// Findings were already printed.
		if !errors.Is(err, cli.ErrTrailingWhitespace) {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		}
		os.Exit(1)
	}
}

// Command diffcard shows code changes as a tabbed before/after card with a
// summary footer and a link to the pull request.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fwojciec/diffcard/config"
	"github.com/fwojciec/diffcard/fs"
	"github.com/fwojciec/diffcard/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

func main() {
	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := NewRootCmd(os.Stdin, Build).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// BuildFunc assembles an App from resolved configuration. The returned
// function releases what the App holds.
type BuildFunc func(ctx context.Context, cfg config.Config, log logrus.FieldLogger, stdin io.Reader) (*App, func(), error)

// flagKeys maps global flags to configuration keys.
var flagKeys = map[string]string{
	"link":          config.KeyLink,
	"theme":         config.KeyTheme,
	"layout":        config.KeyLayout,
	"language":      config.KeyLanguage,
	"context-lines": config.KeyContextLines,
	"markdown":      config.KeyMarkdown,
	"log-level":     config.KeyLogLevel,
	"log-file":      config.KeyLogFile,
	"log-format":    config.KeyLogFormat,
	"describe":      config.KeyDescribe,
}

type rootOptions struct {
	v       *viper.Viper
	cfgFile string
	stdin   io.Reader
	build   BuildFunc
}

// NewRootCmd returns the diffcard command tree.
func NewRootCmd(stdin io.Reader, build BuildFunc) *cobra.Command {
	opts := &rootOptions{v: config.New(), stdin: stdin, build: build}

	cmd := &cobra.Command{
		Use:   "diffcard",
		Short: "Show code changes as a tabbed before/after card",
		Long: `diffcard shows a set of changed files as tabs. Each tab holds the diff of
the file's old and new content, with a footer counting files changed and
lines written, and a button that opens the pull request.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return config.BindFlags(opts.v, cmd.Root().PersistentFlags(), flagKeys)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.cfgFile, "config", "", "config file (default "+fs.DefaultConfigDir()+"/config.yaml)")
	f.String("link", "", "link opened by the View Pull Request button")
	f.String("theme", "dark", "color theme: dark or light")
	f.String("layout", "unified", "diff layout: unified or split")
	f.String("language", "", "syntax language for every file (detected per file when empty)")
	f.Int("context-lines", 3, "unchanged lines shown around each change")
	f.Bool("markdown", true, "render descriptions as markdown")
	f.String("log-level", "info", "log level: error, warn, info, debug")
	f.String("log-file", fs.DefaultLogPath(), "log file (logs are discarded when empty)")
	f.String("log-format", "text", "log format: text or json")
	f.Bool("describe", false, "fill empty descriptions with Gemini (needs GEMINI_API_KEY)")

	cmd.AddCommand(newShowCmd(opts), newJobsCmd(opts), newGitCmd(opts))
	return cmd
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "show <card-file>",
		Short: "Show a card from a JSON, YAML, or TOML file (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd.Context(), func(ctx context.Context, app *App) error {
				return app.Show(ctx, args[0], watch)
			})
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the card when the file changes")
	return cmd
}

func newJobsCmd(opts *rootOptions) *cobra.Command {
	var repo, rev string
	cmd := &cobra.Command{
		Use:   "jobs <jobs.jsonl>",
		Short: "Show refactor job results against a git revision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd.Context(), func(ctx context.Context, app *App) error {
				return app.ShowJobs(ctx, args[0], repo, rev)
			})
		},
	}
	cmd.Flags().StringVar(&repo, "repo", ".", "repository the job paths are relative to")
	cmd.Flags().StringVar(&rev, "rev", "HEAD", "revision holding the old content")
	return cmd
}

func newGitCmd(opts *rootOptions) *cobra.Command {
	var repo, rev string
	cmd := &cobra.Command{
		Use:   "git",
		Short: "Show working tree changes since a git revision",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd.Context(), func(ctx context.Context, app *App) error {
				return app.ShowGit(ctx, repo, rev)
			})
		},
	}
	cmd.Flags().StringVar(&repo, "repo", ".", "repository to compare")
	cmd.Flags().StringVar(&rev, "rev", "HEAD", "revision to compare the working tree against")
	return cmd
}

// run resolves configuration, sets up logging, builds the App and hands it
// to fn.
func (o *rootOptions) run(ctx context.Context, fn func(context.Context, *App) error) error {
	if err := config.Read(o.v, o.cfgFile, fs.DefaultConfigDir()); err != nil {
		return err
	}
	cfg, err := config.Decode(o.v)
	if err != nil {
		return err
	}

	log, closeLog, err := logger.New(logger.Config{
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
		JSON:  strings.EqualFold(cfg.Log.Format, "json"),
	})
	if err != nil {
		return err
	}
	defer closeLog()
	if used := o.v.ConfigFileUsed(); used != "" {
		log.WithField("path", used).Debug("config loaded")
	}

	app, release, err := o.build(ctx, cfg, log, o.stdin)
	if err != nil {
		log.WithError(err).Error("startup failed")
		return err
	}
	defer release()

	if err := fn(ctx, app); err != nil {
		log.WithError(err).Error("diffcard failed")
		return err
	}
	return nil
}

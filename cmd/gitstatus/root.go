package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitstatus/internal/config"
	"github.com/raphi011/gitstatus/internal/log"
	"github.com/raphi011/gitstatus/internal/output"
	"github.com/raphi011/gitstatus/internal/ui/styles"
)

// Global flags
var (
	workDir   string
	remote    string
	gitBinary string
	ttl       int
	colorMode string
	verbose   bool
	quiet     bool
)

// Command group IDs for organizing help output
const (
	GroupCore   = "core"
	GroupCache  = "cache"
	GroupConfig = "config"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gitstatus",
		Short: "Cached git status for shell prompts",
		Long: `gitstatus prints a compact summary of the current repository's status,
for example "## main...origin/main *:4 ?:1 M:2 D:1".

The summary is cached per project in ~/.gitcache and only recomputed when
the index, HEAD or the tracking ref changed, or after the cache TTL.`,
		Example: `  # bash
  PS1='$(gitstatus) \$ '

  # zsh
  setopt PROMPT_SUBST; PROMPT='$(gitstatus --color always) %# '`,
		Args:                       cobra.NoArgs,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			err := setup(cmd)
			if err != nil && cmd == cmd.Root() {
				// The prompt path never fails; runPrompt prints an empty line
				cmd.SetContext(withSetupError(cmd.Context(), err))
				return nil
			}
			return err
		},
		RunE: runPrompt,
	}

	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	flags := cmd.PersistentFlags()
	flags.StringVarP(&workDir, "dir", "C", "", "Directory inside the repository (default: current directory)")
	flags.StringVar(&remote, "remote", "", "Remote whose tracking ref is compared (default from config)")
	flags.StringVar(&gitBinary, "git", "", "Git executable used for status (default from config)")
	flags.IntVar(&ttl, "ttl", 0, "Cache TTL in seconds (default from config)")
	flags.StringVar(&colorMode, "color", "", "Colorize output: never, auto, always (default from config)")
	flags.BoolVarP(&verbose, "debug", "v", false, "Print cache decisions and executed commands to stderr")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")

	// --verbose is accepted as an alias of --debug
	flags.BoolVar(&verbose, "verbose", false, "Alias for --debug")
	_ = flags.MarkHidden("verbose")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		if c == c.Root() {
			if verbose {
				fmt.Fprintln(c.ErrOrStderr(), err)
			}
			output.FromContext(c.Context()).Println("")
			return nil
		}
		return err
	})

	cmd.RegisterFlagCompletionFunc("color", cobra.FixedCompletions(config.ValidColorModes, cobra.ShellCompDirectiveNoFileComp))
	cmd.RegisterFlagCompletionFunc("dir", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveFilterDirs
	})

	cmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupCache, Title: "Cache Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	cmd.AddCommand(newRefreshCmd())
	cmd.AddCommand(newExplainCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newCacheCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCompletionCmd())

	return cmd
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load config; an invalid file falls back to defaults
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	ctx = config.WithConfig(ctx, &cfg)

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, os.Stdout)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'gitstatus -h' for help")
		os.Exit(1)
	}
}

// setup applies global flags on top of the loaded config and attaches the
// logger. Runs before every command.
func setup(cmd *cobra.Command) error {
	ctx := cmd.Context()

	loaded := config.FromContext(ctx)
	if loaded == nil {
		d := config.Default()
		loaded = &d
	}
	cfg := *loaded

	if verbose && quiet {
		return errors.New("--debug and --quiet are mutually exclusive")
	}

	flags := cmd.Flags()
	if flags.Changed("remote") {
		cfg.Remote = remote
	}
	if flags.Changed("git") {
		cfg.GitBinary = gitBinary
	}
	if flags.Changed("ttl") {
		if ttl < 0 {
			return fmt.Errorf("invalid --ttl %d: must not be negative", ttl)
		}
		cfg.CacheTTL = ttl
	}
	if flags.Changed("color") {
		if err := config.ValidateColorMode(colorMode); err != nil {
			return err
		}
		cfg.Color = colorMode
	}
	if verbose {
		cfg.Debug = true
	}

	// Diagnostics go to stderr so stdout stays clean for the prompt
	logger := log.New(os.Stderr, cfg.Debug, quiet)
	ctx = log.WithLogger(ctx, logger)
	ctx = config.WithConfig(ctx, &cfg)

	styles.Init(cfg.Theme)

	cmd.SetContext(ctx)
	return nil
}

type setupErrKey struct{}

// withSetupError records a setup failure of the root command for runPrompt.
func withSetupError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, setupErrKey{}, err)
}

func setupErrorFromContext(ctx context.Context) error {
	err, _ := ctx.Value(setupErrKey{}).(error)
	return err
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	runcmd "github.com/raphi011/vcs/internal/cmd"
	"github.com/raphi011/vcs/internal/config"
	"github.com/raphi011/vcs/internal/log"
	"github.com/raphi011/vcs/internal/output"
	"github.com/raphi011/vcs/internal/ui"
	"github.com/raphi011/vcs/internal/ui/styles"
	"github.com/raphi011/vcs/internal/workspace"
)

// Command group IDs for organizing help output
const (
	GroupRepo   = "repo"
	GroupSync   = "sync"
	GroupConfig = "config"
)

// errFailed reports that at least one repository failed. The results have
// already been printed, so only the exit status is left to set.
var errFailed = errors.New("one or more repositories failed")

// app holds the process environment and the state shared by all commands.
type app struct {
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	environ    []string
	runner     runcmd.Runner // nil runs real processes
	configPath string        // "" means config.Path()
	workDir    string        // "" means the process working directory

	// Global flags
	verbose      bool
	quiet        bool
	nested       bool
	showCommands bool
	workers      int
	color        string

	// Resolved before a command runs
	cfg         config.Config
	factory     *workspace.Factory
	useProgress bool
}

// Execute runs the root command against the process environment.
func Execute() {
	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := &app{
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		environ: os.Environ(),
	}

	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, err)
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, "Run 'vcs -h' for help")
		}
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vcs",
		Short: "Run version control commands over many git and hg checkouts",
		Long: `vcs runs the same operation over every git and Mercurial checkout below
the given directories and prints each repository's result under a header.

It also exports a set of checkouts into a .repos document and imports such a
document to reproduce the same checkouts elsewhere.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2, // Enable typo suggestions
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Completion and help need no configuration
			if cmd.Name() == "completion" || cmd.Name() == cobra.ShellCompRequestCmd || cmd.Name() == "help" {
				return nil
			}
			return a.setup(cmd)
		},
		// Run is not set - shows help when no subcommand provided
	}

	rootCmd.SetIn(a.stdin)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Show external commands being executed")
	pf.BoolVarP(&a.quiet, "quiet", "q", false, "Suppress all log output")
	pf.IntVarP(&a.workers, "workers", "w", config.DefaultWorkers, "Number of repositories processed concurrently")
	pf.BoolVar(&a.nested, "nested", false, "Search for checkouts inside other checkouts")
	pf.StringVar(&a.color, "color", config.Default().Color, "Force colored output: auto, always or never")
	pf.BoolVar(&a.showCommands, "show-commands", false, "List the invoked commands under each repository header")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	rootCmd.RegisterFlagCompletionFunc("color", cobra.FixedCompletions(config.ValidColorModes, cobra.ShellCompDirectiveNoFileComp))

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRepo, Title: "Repository Commands:"},
		&cobra.Group{ID: GroupSync, Title: "Import/Export Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Repository commands
	rootCmd.AddCommand(newStatusCmd(a))
	rootCmd.AddCommand(newDiffCmd(a))
	rootCmd.AddCommand(newLogCmd(a))
	rootCmd.AddCommand(newBranchCmd(a))
	rootCmd.AddCommand(newPullCmd(a))
	rootCmd.AddCommand(newPushCmd(a))
	rootCmd.AddCommand(newRemotesCmd(a))
	rootCmd.AddCommand(newCustomCmd(a))
	rootCmd.AddCommand(newListCmd(a))

	// Import/export commands
	rootCmd.AddCommand(newExportCmd(a))
	rootCmd.AddCommand(newImportCmd(a))

	// Config commands
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newDoctorCmd(a))
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// setup loads the configuration, applies global flags and stores logger,
// printer, config and work dir in the command's context.
func (a *app) setup(cmd *cobra.Command) error {
	if a.configPath == "" {
		p, err := config.Path()
		if err != nil {
			return fmt.Errorf("failed to locate config file: %w", err)
		}
		a.configPath = p
	}
	cfg, loadErr := config.Load(a.configPath)

	flags := cmd.Flags()
	if flags.Changed("workers") {
		if a.workers < 1 {
			return fmt.Errorf("--workers must be at least 1, got %d", a.workers)
		}
		cfg.Workers = a.workers
	}
	if flags.Changed("nested") {
		cfg.Nested = a.nested
	}
	if flags.Changed("color") {
		if err := config.ValidateColorMode(a.color); err != nil {
			return err
		}
		cfg.Color = a.color
	}
	a.cfg = cfg

	if a.workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		a.workDir = wd
	}

	mode := cfg.ColorMode()
	stdout := ui.NewWriter(a.stdout, a.environ, mode)
	stderr := ui.NewWriter(a.stderr, a.environ, mode)
	styles.Init(ui.HasColor(stdout.Profile))

	// Create logger (stderr for diagnostics)
	logger := log.New(stderr, a.verbose, a.quiet)
	if loadErr != nil {
		logger.Printf("Warning: %v (using defaults)\n", loadErr)
	}

	ctx := cmd.Context()
	ctx = log.WithLogger(ctx, logger)
	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, stdout)
	ctx = config.WithConfig(ctx, &a.cfg)
	ctx = config.WithWorkDir(ctx, a.workDir)
	cmd.SetContext(ctx)

	a.factory = workspace.NewFactory(ctx, workspace.Options{
		Executables: cfg.Executables,
		Color:       ui.BackendColorMode(mode, stdout.Profile),
		Runner:      a.runner,
	})

	f, isFile := a.stderr.(*os.File)
	a.useProgress = isFile && ui.IsTerminal(f) && !a.verbose && !a.quiet

	logger.Debug("config loaded", "path", a.configPath, "workers", cfg.Workers, "color", cfg.Color)
	return nil
}

// Package cmd provides the CLI commands for vcprompt.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/xvierd/vcprompt/internal/adapters/detect"
	"github.com/xvierd/vcprompt/internal/adapters/format"
	"github.com/xvierd/vcprompt/internal/adapters/git"
	"github.com/xvierd/vcprompt/internal/adapters/hg"
	"github.com/xvierd/vcprompt/internal/adapters/runner"
	"github.com/xvierd/vcprompt/internal/config"
	"github.com/xvierd/vcprompt/internal/logging"
	"github.com/xvierd/vcprompt/internal/ports"
	"github.com/xvierd/vcprompt/internal/services"
	"go.uber.org/zap"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	configPath string
	debugMode  bool
	workDir    string
	formatFlag string
	noColor    bool
	shellFlag  string

	// Global dependencies
	appConfig     *config.Config
	logger        *zap.Logger
	statusService ports.StatusSource
	formatter     ports.Formatter
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vcprompt",
	Short: "vcprompt - version control status for your shell prompt",
	Long: `vcprompt prints a compact summary of the Git or Mercurial repository
enclosing the current directory: branch, ahead/behind counts, staged,
changed, untracked and conflicted files, and in-progress operations.

Outside a repository it prints nothing. Add it to your prompt, e.g.
  PS1='\w$(vcprompt --shell bash) \$ '`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runPrompt,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default: ~/.config/vcprompt/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Write debug logs to stderr")
	rootCmd.PersistentFlags().StringVarP(&workDir, "cwd", "c", "", "Directory to inspect (default: current directory)")

	// Prompt flags
	rootCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output template, overrides the configured format")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable ANSI colors")
	rootCmd.Flags().StringVar(&shellFlag, "shell", "", "Wrap escape sequences for the given shell: bash or zsh")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("vcprompt\nVersion: {{.Version}}\n")

	// Add subcommands
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)
}

// initializeServices loads the configuration and wires the adapters.
func initializeServices(cmd *cobra.Command) error {
	var err error
	appConfig, err = config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if shellFlag != "" {
		appConfig.Shell = shellFlag
		if err := appConfig.Validate(); err != nil {
			return err
		}
	}
	if formatFlag != "" {
		appConfig.Format = formatFlag
	}

	logger = logging.New(debugMode, cmd.ErrOrStderr())

	vcsRunner := runner.New(
		runner.WithGitBinary(appConfig.VCS.GitBinary),
		runner.WithHgBinary(appConfig.VCS.HgBinary),
		runner.WithLogger(logger),
	)

	statusService = services.NewStatusService(
		detect.NewDetector(logger),
		git.NewProvider(vcsRunner, logger),
		hg.NewProvider(vcsRunner, logger),
		logger,
	)

	colored := !noColor && format.ShouldColor(appConfig.Color, outputFd(cmd.OutOrStdout()))
	formatter = format.New(appConfig,
		format.WithColor(colored),
		format.WithShell(appConfig.Shell),
	)

	return nil
}

// cleanupServices flushes buffered logs.
func cleanupServices() error {
	if logger != nil {
		_ = logger.Sync()
	}
	return nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}

// runPrompt prints the formatted status without a trailing newline, or
// nothing when no status is available.
func runPrompt(cmd *cobra.Command, args []string) error {
	status, err := statusService.Status(cmd.Context(), workDir)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), formatter.Format(status))
	return nil
}

// outputFd returns the file descriptor behind w, or an invalid one when w
// is not a file.
func outputFd(w io.Writer) uintptr {
	if f, ok := w.(*os.File); ok {
		return f.Fd()
	}
	return ^uintptr(0)
}

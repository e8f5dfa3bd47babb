package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/quantmind-br/filemanifest/internal/app"
	"github.com/quantmind-br/filemanifest/internal/batch"
	"github.com/quantmind-br/filemanifest/internal/config"
	"github.com/quantmind-br/filemanifest/internal/tui"
	"github.com/quantmind-br/filemanifest/internal/utils"
	"github.com/quantmind-br/filemanifest/pkg/version"
)

var (
	cfgFile string
	verbose bool
	dryRun  bool
	log     *utils.Logger

	// Dependencies for testing
	executableRoot = utils.ExecutableRoot
	newWatcher     = fsnotify.NewWatcher
	runEditor      = tui.Run
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "filemanifest [root]",
		Short: "Generate a JSON manifest of a directory tree",
		Long: `filemanifest walks a directory and writes a JSON manifest of its folders
and documents for a browser-side file explorer.

Without a root argument it scans the parent of the directory holding the
executable, so a binary installed as <project>/site/filemanifest describes
<project>. The manifest goes to stdout unless --output is set.`,
		Version: version.Short(),
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initConfig()
		},
		RunE: run,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ~/.filemanifest/config.yaml)")
	flags.StringP("output", "o", config.DefaultOutputPath, "Output file (default stdout; '-' also means stdout)")
	flags.IntP("max-depth", "d", config.DefaultMaxDepth, "Max directory depth (root is depth 0)")
	flags.String("format", config.DefaultOutputFormat, "Manifest format: json or yaml")
	flags.Int("indent", config.DefaultIndent, "Indentation width")
	flags.Bool("gzip", false, "Gzip-compress the manifest")
	flags.String("label", config.DefaultRootLabel, "Name given to the root folder")
	flags.StringSlice("exclude", nil, "Substrings that exclude any path containing them (replaces defaults)")
	flags.StringSlice("extensions", nil, "File suffixes to include (replaces defaults)")
	flags.BoolVar(&dryRun, "dry-run", false, "Scan and encode without writing")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("output.path", flags.Lookup("output"))
	_ = viper.BindPFlag("scan.max_depth", flags.Lookup("max-depth"))
	_ = viper.BindPFlag("output.format", flags.Lookup("format"))
	_ = viper.BindPFlag("output.indent", flags.Lookup("indent"))
	_ = viper.BindPFlag("output.gzip", flags.Lookup("gzip"))
	_ = viper.BindPFlag("scan.root_label", flags.Lookup("label"))
	_ = viper.BindPFlag("scan.exclude", flags.Lookup("exclude"))
	_ = viper.BindPFlag("scan.extensions", flags.Lookup("extensions"))

	// Add subcommands
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newBatchCmd())
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// setup loads configuration and builds the logger and orchestrator
func setup(cmd *cobra.Command) (*app.Orchestrator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log = utils.NewLogger(utils.LoggerOptions{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Verbose: verbose,
	})

	orchestrator, err := app.NewOrchestrator(app.OrchestratorOptions{
		Config:   cfg,
		Verbose:  verbose,
		DryRun:   dryRun,
		Logger:   log,
		Stdout:   cmd.OutOrStdout(),
		Progress: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create orchestrator: %w", err)
	}
	return orchestrator, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			if log != nil {
				log.Info().Msg("Shutting down gracefully...")
			}
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// resolveRoot returns the scan root from args or the executable location
func resolveRoot(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return utils.ResolveRoot(args[0])
	}
	root, err := executableRoot()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	return root, nil
}

func run(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	orchestrator, err := setup(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	return orchestrator.Run(ctx, root)
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [root]",
		Short: "Regenerate the manifest whenever the tree changes",
		Long: `Writes the manifest once, then watches the root with fsnotify and
rewrites it after changes settle. Unchanged structures are not rewritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(args)
			if err != nil {
				return err
			}

			orchestrator, err := setup(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()

			return orchestrator.Watch(ctx, root)
		},
	}

	cmd.Flags().Duration("debounce", config.DefaultDebounce, "Quiet period before regenerating")
	_ = viper.BindPFlag("watch.debounce", cmd.Flags().Lookup("debounce"))

	return cmd
}

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <jobfile>",
		Short: "Generate manifests for every target in a job file",
		Long: `Reads a YAML or JSON job file listing roots and output files and
generates each manifest. Relative paths resolve against the job file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orchestrator, err := setup(cmd)
			if err != nil {
				return err
			}

			job, err := batch.NewLoader().
				WithConcurrency(orchestrator.Config().Batch.Workers).
				Load(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()

			return orchestrator.RunBatch(ctx, job, args[0])
		},
	}

	cmd.Flags().IntP("workers", "j", config.DefaultBatchWorkers, "Targets generated concurrently")
	_ = viper.BindPFlag("batch.workers", cmd.Flags().Lookup("workers"))

	return cmd
}

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor [root]",
		Short: "Check the environment",
		Long:  "Verifies that the root is readable, the output location is writable and the configuration loads.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Checking environment...")
			allPassed := true

			// Check 1: Config file
			fmt.Fprint(out, "  Config file: ")
			cfg, err := config.Load()
			switch {
			case err != nil:
				fmt.Fprintf(out, "FAILED (%v)\n", err)
				allPassed = false
				cfg = config.Default()
			case viper.ConfigFileUsed() != "":
				fmt.Fprintf(out, "OK (%s)\n", viper.ConfigFileUsed())
			default:
				fmt.Fprintln(out, "OK (defaults)")
			}

			// Check 2: Root directory
			fmt.Fprint(out, "  Root directory: ")
			root, err := resolveRoot(args)
			if err == nil {
				err = checkRoot(root)
			}
			if err != nil {
				fmt.Fprintf(out, "FAILED (%v)\n", err)
				allPassed = false
			} else {
				fmt.Fprintf(out, "OK (%s)\n", root)
			}

			// Check 3: Output location
			fmt.Fprint(out, "  Output: ")
			if !checkOutput(out, cfg.Output.Path) {
				allPassed = false
			}

			// Check 4: File watching
			fmt.Fprint(out, "  File watching: ")
			if w, err := newWatcher(); err != nil {
				fmt.Fprintf(out, "WARN (%v; watch mode unavailable)\n", err)
			} else {
				w.Close()
				fmt.Fprintln(out, "OK")
			}

			fmt.Fprintln(out)
			if allPassed {
				fmt.Fprintln(out, "All critical checks passed!")
			} else {
				fmt.Fprintln(out, "Some checks failed. Please resolve the issues above.")
			}
			return nil
		},
	}
}

// checkRoot verifies root is a readable directory
func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}
	_, err = os.ReadDir(root)
	return err
}

// checkOutput reports whether the configured output can be written
func checkOutput(out io.Writer, path string) bool {
	resolved, err := app.ResolveOutput(path)
	if err != nil {
		fmt.Fprintf(out, "FAILED (%v)\n", err)
		return false
	}
	if resolved == "" {
		fmt.Fprintln(out, "OK (stdout)")
		return true
	}

	dir := filepath.Dir(resolved)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		fmt.Fprintf(out, "WARN (%s will be created on first write)\n", dir)
		return true
	}
	if !utils.IsWritableDir(dir) {
		fmt.Fprintf(out, "FAILED (%s is not writable)\n", dir)
		return false
	}
	fmt.Fprintf(out, "OK (%s)\n", resolved)
	return true
}

func newConfigCmd() *cobra.Command {
	var (
		printOnly  bool
		accessible bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Edit the configuration file interactively",
		Long: `Opens a terminal editor for the configuration file (the --config path,
or ~/.filemanifest/config.yaml). With --print the effective configuration is
written to stdout as YAML instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			switch {
			case err == nil:
			case cfgFile != "" && errors.Is(err, fs.ErrNotExist):
				// editing creates the file
				cfg = config.Default()
			default:
				return fmt.Errorf("failed to load config: %w", err)
			}

			if printOnly {
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(cfg); err != nil {
					return err
				}
				return enc.Close()
			}

			path := cfgFile
			if path == "" {
				path = config.ConfigFilePath()
			}
			return runEditor(tui.Options{
				Config:     cfg,
				Path:       path,
				Accessible: accessible,
				SaveFunc: func(c *config.Config) error {
					return config.Save(c, path)
				},
			})
		},
	}

	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the effective configuration and exit")
	cmd.Flags().BoolVar(&accessible, "accessible", false, "Use plain prompts suitable for screen readers")

	return cmd
}

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), version.Get().JSON())
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.Full())
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	return cmd
}

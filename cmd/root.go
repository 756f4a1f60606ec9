package cmd

import (
	"bufio"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"thoreinstein.com/tally/pkg/audit"
	"thoreinstein.com/tally/pkg/bootstrap"
	"thoreinstein.com/tally/pkg/command"
	"thoreinstein.com/tally/pkg/config"
	"thoreinstein.com/tally/pkg/history"
	"thoreinstein.com/tally/pkg/plugin"
	"thoreinstein.com/tally/pkg/plugins"
	"thoreinstein.com/tally/pkg/repl"
)

var cfgFile string
var verbose bool
var appConfig *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "Tally - interactive calculator with pluggable commands",
	Long: `Tally is an interactive command-line calculator built around a plugin
command registry and a persisted calculation history.

Running tally without a subcommand starts the interactive session: commands
are resolved by name against the registry, calculations are recorded to a
CSV history file, and external plugins found in the plugin directory are
registered alongside the built-ins.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Pre-parse global flags to initialize config early.
	cfgFile, verbose = bootstrap.PreParseGlobalFlags(os.Args)

	if err := initConfig(); err != nil {
		cobra.CheckErr(err)
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		_ = initConfig()
	})

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "C", "", "config file (default is $HOME/.config/tally/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	var err error
	appConfig, verbose, err = bootstrap.InitConfig(cfgFile, verbose)
	return err
}

// loadConfig returns the latest configuration derived from viper.
func loadConfig() (*config.Config, error) {
	return config.Load()
}

// resetConfig clears the cached configuration.
// This is primarily used in tests to ensure each test starts with a fresh config.
func resetConfig() {
	appConfig = nil
	bootstrap.Reset()
	viper.Reset()
}

// runSession wires the components together and runs the interactive loop:
// one history store per process, built-ins from the registration table,
// external plugins from the configured directory, then the REPL.
func runSession() error {
	cfg := appConfig
	if cfg == nil {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}
	}

	logger, closeLog := bootstrap.NewLogger(cfg, verbose)
	defer func() { _ = closeLog() }()
	logger.Info("starting application")

	store := history.Open(cfg.History.FilePath, logger)

	// One buffered reader shared by the loop and every prompting command.
	reader := bufio.NewReader(os.Stdin)

	registry := command.NewRegistry(logger)
	plugins.RegisterBuiltins(registry, plugins.Deps{
		Store:  store,
		In:     reader,
		Out:    os.Stdout,
		Logger: logger,
	})

	plugin.Load(registry, plugin.NewScanner(cfg.Plugins.Path), GetVersion(), reader, os.Stdout, logger)

	opts := repl.Options{
		Prompt: term.IsTerminal(int(os.Stdin.Fd())),
	}
	if auditLog, err := audit.Open(cfg.Audit.DatabasePath, logger); err != nil {
		logger.Warn("audit log unavailable", "path", cfg.Audit.DatabasePath, "error", err)
	} else {
		defer func() { _ = auditLog.Close() }()
		opts.Audit = auditLog
	}

	return repl.New(registry, reader, os.Stdout, logger, opts).Run()
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/s0up4200/dvexamples/app"
	"github.com/s0up4200/dvexamples/config"
)

var (
	cfgFile     string
	logLevel    string
	application *app.App
	logger      zerolog.Logger

	appVersion   = "dev"
	appBuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dvexamples",
	Short: "Example programs for the Dataverse native API",
	Long: `dvexamples reads a dataverse.properties file and runs small example
programs against a Dataverse instance: browsing collections, creating,
editing and publishing datasets, and reading admin settings.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// SetVersion records the build information shown by the version command
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuildTime = buildTime
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./dataverse.properties)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level (trace, debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp loads the configuration and builds the Dataverse client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Environment from .env takes part in config overrides
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	var err error
	application, err = app.Init(cfgFile, func(cfg config.LoggingConfig) (zerolog.Logger, error) {
		if cmd.Flags().Changed("log-level") {
			cfg.Level = logLevel
		}
		return setupLogger(cfg)
	})
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	logger = application.Logger
	return nil
}

// parseLevel maps a configured level name to a zerolog level
func parseLevel(name string) (zerolog.Level, error) {
	switch strings.ToLower(name) {
	case "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("invalid logging level: %s", name)
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) (zerolog.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	var out io.Writer
	if cfg.Format == "json" {
		out = os.Stderr
	} else {
		out = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
		}
	}

	if cfg.File != "" {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to the Dataverse instance",
	Long:  `Test the connection to your Dataverse instance and display basic information.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	client := application.Client
	fmt.Printf("Testing connection to Dataverse at %s...\n", client.BaseURL())

	info, err := client.GetVersion(cmd.Context())
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}

	fmt.Println("✓ Connection successful!")
	fmt.Printf("\nDataverse instance:\n")
	fmt.Printf("- Version: %s\n", info)
	fmt.Printf("- Unblock key: %s\n", boolToStatus(client.HasUnblockKey()))

	return nil
}

func boolToStatus(b bool) string {
	if b {
		return "Configured"
	}
	return "Not configured"
}

// versionCmd prints build information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	// No config needed
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dvexamples %s (built %s)\n", appVersion, appBuildTime)
	},
}

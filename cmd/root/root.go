// Package root contains the root command for the application
package root

import (
	"context"

	"fjacquet/customer-grouper/internal/config"
	"fjacquet/customer-grouper/internal/container"
	"fjacquet/customer-grouper/internal/logging"

	"github.com/spf13/cobra"
)

// GlobalFlags are the persistent flags shared by every command.
type GlobalFlags struct {
	ConfigFile   string
	ModelPath    string
	SegmentsFile string
	LogLevel     string
	LogFormat    string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// AppConfig is the configuration loaded by PersistentPreRun
	AppConfig *config.Config

	// Flags holds the persistent flag values
	Flags = GlobalFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "customer-grouper",
		Short: "Assign customers to marketing segments with a pre-trained clustering model.",
		Long: `customer-grouper loads a pre-trained K-means segmentation model and assigns
customers to one of its segments, returning the segment label and description.

It can score a single customer, a CSV file of customers, or serve a small
dashboard and JSON API.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to customer-grouper!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := Initialize(); err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
		},
	}
)

// Init registers the persistent flags.
func Init() {
	pf := Cmd.PersistentFlags()
	pf.StringVar(&Flags.ConfigFile, "config", "", "Config file (default: config.yaml in $HOME/.customer-grouper, .customer-grouper or .)")
	pf.StringVarP(&Flags.ModelPath, "model", "m", "", "Exported model artifact (YAML)")
	pf.StringVarP(&Flags.SegmentsFile, "segments", "s", "", "Segment catalog file (YAML); built-in segments when absent")
	pf.StringVar(&Flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&Flags.LogFormat, "log-format", "", "Log format (text, json)")
}

// Initialize loads .env and the configuration, applies flag overrides and
// configures logging.
func Initialize() error {
	config.LoadEnv(Log)

	cfg, err := config.Load(Flags.ConfigFile)
	if err != nil {
		return err
	}
	ApplyFlags(cfg, Flags)

	Log = config.ConfigureLoggingFromConfig(cfg)
	logging.SetLogger(Log)
	AppConfig = cfg
	return nil
}

// ApplyFlags overrides configuration values with any flags that were set.
func ApplyFlags(cfg *config.Config, flags GlobalFlags) {
	if flags.ModelPath != "" {
		cfg.Model.Path = flags.ModelPath
	}
	if flags.SegmentsFile != "" {
		cfg.Segments.File = flags.SegmentsFile
	}
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if flags.LogFormat != "" {
		cfg.Log.Format = flags.LogFormat
	}
}

// MustContainer builds the dependency container or exits. A model that cannot
// be loaded is fatal.
func MustContainer(ctx context.Context) *container.Container {
	if AppConfig == nil {
		if err := Initialize(); err != nil {
			Log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	c, err := container.NewContainerWithLogger(ctx, AppConfig, Log)
	if err != nil {
		Log.Fatalf("Failed to initialize: %v", err)
	}
	return c
}

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/moffa90/go-srec/internal/config"
	"github.com/moffa90/go-srec/srec"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// options holds the persistent flags and the configuration resolved from
// them before any subcommand runs.
type options struct {
	configPath string
	color      string
	logLevel   string
	verify     bool

	config *config.Config
	logger *slog.Logger
}

// NewRootCmd builds the srec command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "srec",
		Short: "srec - Motorola S-Record inspector",
		Long: `srec inspects Motorola S-Record files (.s19, .s28, .s37, .mot, .srec),
validates record counts and checksums, and converts them to flat binary images.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default "+config.GetDefaultConfigPath()+")")
	flags.StringVar(&opts.color, "color", config.ColorAuto, "Color output: auto, always or never")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	flags.BoolVar(&opts.verify, "verify", false, "Reject records with an invalid byte count or checksum")

	rootCmd.AddCommand(
		newInfoCmd(opts),
		newDumpCmd(opts),
		newValidateCmd(opts),
		newBinCmd(opts),
	)

	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// load reads the config file, if any, and applies explicitly set flags on top.
func (o *options) load(cmd *cobra.Command) error {
	cfg := config.DefaultConfig()

	path := o.configPath
	if path == "" {
		if def := config.GetDefaultConfigPath(); config.ConfigExists(def) {
			path = def
		}
	}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("color") {
		cfg.Color = o.color
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if flags.Changed("verify") {
		cfg.Verify = o.verify
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Logging.Level)); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	o.config = cfg
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	return nil
}

// parse parses the S-Record file at path with the resolved configuration.
func (o *options) parse(path string) (*srec.File, error) {
	f, err := srec.Parse(path,
		srec.WithLogger(o.logger),
		srec.WithVerifyChecksums(o.config.Verify),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// useColor reports whether records written to out should be colored.
func (o *options) useColor(out io.Writer) bool {
	switch o.config.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	StorePath   string // path to the SQLite ledger database
	KeypairPath string // path to the signing keypair file
	Format      string // "json" | "text"
	Verbose     bool
	ConfigFile  string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the curvy CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "curvy",
		Short: "Curvy - persisted piecewise-linear curves",
		Long: `Manage piecewise-linear curves held in a local ledger.

Curves are created from definition files (YAML or CSV), altered and
deleted by their owner, and evaluated by linear interpolation.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveDefaults(cmd, opts); err != nil {
				return err
			}
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			configureLogging(opts.Verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.StorePath, "store", "", "path to the ledger database")
	cmd.PersistentFlags().StringVar(&opts.KeypairPath, "keypair", "", "path to the signing keypair file")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "path to config file")

	// Subcommands
	cmd.AddCommand(NewKeygenCommand(opts))
	cmd.AddCommand(NewFundCommand(opts))
	cmd.AddCommand(NewCreateCommand(opts))
	cmd.AddCommand(NewAlterCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewCalcCommand(opts))

	return cmd
}

// resolveDefaults fills unset global flags from the config file and
// environment. Flags given on the command line always win.
func resolveDefaults(cmd *cobra.Command, opts *RootOptions) error {
	v := viper.New()

	v.SetDefault("store", "curvy.db")
	v.SetDefault("keypair", "curvy.key")
	v.SetDefault("format", "text")

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("CURVY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if !cmd.Flags().Changed("store") && opts.StorePath == "" {
		opts.StorePath = v.GetString("store")
	}
	if !cmd.Flags().Changed("keypair") && opts.KeypairPath == "" {
		opts.KeypairPath = v.GetString("keypair")
	}
	if !cmd.Flags().Changed("format") && opts.Format == "" {
		opts.Format = v.GetString("format")
	}

	return nil
}

// configureLogging installs the default slog handler. Diagnostic output
// goes to stderr so JSON on stdout stays parseable.
func configureLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

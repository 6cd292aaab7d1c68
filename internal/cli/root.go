// Package cli is the operator and single-user command line over the
// domain store. The process plays the role of one client context: the
// logged-in user is kept by the session manager under the session key.
package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/EuclidesAnchundia/Tutorias/common_library/logging"
	"github.com/EuclidesAnchundia/Tutorias/internal/app"
	"github.com/EuclidesAnchundia/Tutorias/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	EnvFile string
}

var ValidFormats = []string{"text", "json"}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tutorias",
		Short: "Tutorías - gestión de tutorías de titulación",
		Long:  "Command line client for students, tutors, coordinators and administrators of the tutoring store.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "./config/.env", "configuration file; the environment is used when it is missing")

	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewWhoamiCommand(opts))
	cmd.AddCommand(NewProfileCommand(opts))
	cmd.AddCommand(NewNotificationsCommand(opts))
	cmd.AddCommand(NewRegisterCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewUsersCommand(opts))
	cmd.AddCommand(NewClassifyCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}

// open builds the application from the configured backends and restores
// the persisted session. Callers must Close the result.
func open(ctx context.Context, opts *RootOptions) (*app.App, error) {
	cfg, err := config.Load(opts.EnvFile)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load configuration", err)
	}

	logger := logging.NewNop()
	if opts.Verbose {
		zl, err := logging.NewZap("debug", cfg.AppEnv)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to build logger", err)
		}
		logger = logging.New(zl)
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open store", err)
	}
	if err := a.Session.Restore(ctx); err != nil {
		_ = a.Close()
		return nil, WrapExitError(ExitCommandError, "failed to restore session", err)
	}
	return a, nil
}

func formatter(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/EuclidesAnchundia/Tutorias/internal/auth"
	"github.com/EuclidesAnchundia/Tutorias/internal/model"
	"github.com/EuclidesAnchundia/Tutorias/internal/report"
	"github.com/EuclidesAnchundia/Tutorias/internal/store"
)

type SeedOptions struct {
	*RootOptions
	Force bool
}

func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo dataset",
		Long: `Load the demo dataset when there are no users yet.

With --force every collection is replaced by the demo dataset.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := open(ctx, opts.RootOptions)
			if err != nil {
				return err
			}
			defer a.Close()

			seeded := true
			if opts.Force {
				err = a.Store.ForceSeed(ctx, auth.HashPassword)
			} else {
				seeded, err = a.Store.Seed(ctx, auth.HashPassword)
			}
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to seed", err)
			}
			return formatter(cmd, opts.RootOptions).Success(map[string]bool{"seeded": seeded}, func(w io.Writer) {
				if seeded {
					fmt.Fprintln(w, "Datos de demostración cargados")
				} else {
					fmt.Fprintln(w, "Ya existen usuarios; nada que hacer (use --force)")
				}
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "replace existing data")

	return cmd
}

type ResetOptions struct {
	*RootOptions
	Yes bool
}

func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Empty every collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.Yes {
				return NewExitError(ExitFailure, "refusing to reset without --yes")
			}
			ctx := cmd.Context()
			a, err := open(ctx, opts.RootOptions)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Store.Reset(ctx); err != nil {
				return WrapExitError(ExitCommandError, "failed to reset", err)
			}
			return formatter(cmd, opts.RootOptions).Success(map[string]bool{"reset": true}, func(w io.Writer) {
				fmt.Fprintln(w, "Todas las colecciones fueron vaciadas")
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Yes, "yes", false, "confirm the reset")

	return cmd
}

func NewStatsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			stats := a.Store.Stats()
			return formatter(cmd, opts).Success(stats, func(w io.Writer) { printStats(w, stats) })
		},
	}
}

func printStats(w io.Writer, s model.Stats) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Usuarios\t%d\n", s.TotalUsers)
	fmt.Fprintf(tw, "Estudiantes\t%d\n", s.TotalStudents)
	fmt.Fprintf(tw, "Tutores\t%d\n", s.TotalTutors)
	fmt.Fprintf(tw, "Coordinadores\t%d\n", s.TotalCoordinators)
	fmt.Fprintf(tw, "Tutorías\t%d\n", s.TotalSessions)
	fmt.Fprintf(tw, "Tutorías completadas\t%d\n", s.CompletedSessions)
	fmt.Fprintf(tw, "Temas\t%d\n", s.TotalTopics)
	fmt.Fprintf(tw, "Archivos\t%d\n", s.TotalFiles)

	faculties := make([]string, 0, len(s.FacultiesActivity))
	for f := range s.FacultiesActivity {
		faculties = append(faculties, f)
	}
	sort.Strings(faculties)
	for _, f := range faculties {
		fmt.Fprintf(tw, "%s\t%d\n", f, s.FacultiesActivity[f])
	}
	tw.Flush()
}

type UsersOptions struct {
	*RootOptions
	Faculty string
	Role    string
}

func NewUsersCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UsersOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users",
		Long: `List users, optionally filtered by faculty or role.

Examples:
  tutorias users --role tutor
  tutorias users --faculty "Facultad de Ciencias de la Salud" --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Role != "" && !model.Role(opts.Role).IsValid() {
				return NewExitError(ExitFailure, fmt.Sprintf("unknown role %q", opts.Role))
			}
			a, err := open(cmd.Context(), opts.RootOptions)
			if err != nil {
				return err
			}
			defer a.Close()

			users := a.Store.FilterUsers(model.UserFilter{Faculty: opts.Faculty, Role: model.Role(opts.Role)})
			views := make([]userView, 0, len(users))
			for i := range users {
				views = append(views, toUserView(&users[i]))
			}
			return formatter(cmd, opts.RootOptions).Success(views, func(w io.Writer) {
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "EMAIL\tNOMBRE\tROL\tFACULTAD")
				for _, v := range views {
					fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\n", v.Email, v.Names, v.Surnames, v.Role, v.Faculty)
				}
				tw.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&opts.Faculty, "faculty", "", "filter by faculty")
	cmd.Flags().StringVar(&opts.Role, "role", "", "filter by role (estudiante|tutor|coordinador|administrador)")

	return cmd
}

func NewClassifyCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "classify EMAIL",
		Short: "Show the role an email domain maps to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, ok := model.ClassifyEmail(args[0])
			if !ok {
				return NewExitError(ExitFailure, fmt.Sprintf("%s is not an institutional address", args[0]))
			}
			return formatter(cmd, opts).Success(map[string]string{"email": args[0], "rol": string(role)}, func(w io.Writer) {
				fmt.Fprintln(w, role)
			})
		},
	}
}

type ReportOptions struct {
	*RootOptions
	Output string
}

func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the coordinator workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd.Context(), opts.RootOptions)
			if err != nil {
				return err
			}
			defer a.Close()

			f, err := report.Coordinator(a.Store)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to build report", err)
			}
			defer f.Close()
			if err := f.SaveAs(opts.Output); err != nil {
				return WrapExitError(ExitCommandError, "failed to write report", err)
			}
			return formatter(cmd, opts.RootOptions).Success(map[string]string{"output": opts.Output}, func(w io.Writer) {
				fmt.Fprintf(w, "Reporte escrito en %s\n", opts.Output)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "coordinador.xlsx", "output path")

	return cmd
}

func NewImportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace every collection with a JSON dump",
		Long: `Replace every collection with a JSON dump keyed by storage key
(usuarios, tutorias, temas, archivos, asignaciones, notificaciones), as
written by export or saved from the browser's localStorage.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to read dump", err)
			}
			var snap store.Snapshot
			if err := json.Unmarshal(data, &snap); err != nil {
				return WrapExitError(ExitFailure, "invalid dump", err)
			}

			ctx := cmd.Context()
			a, err := open(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Store.Import(ctx, snap); err != nil {
				return WrapExitError(ExitCommandError, "failed to import", err)
			}
			stats := a.Store.Stats()
			return formatter(cmd, opts).Success(stats, func(w io.Writer) {
				fmt.Fprintf(w, "Importados %d usuarios y %d tutorías\n", stats.TotalUsers, stats.TotalSessions)
			})
		},
	}
}

type ExportOptions struct {
	*RootOptions
	Output string
}

func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every collection as one JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd.Context(), opts.RootOptions)
			if err != nil {
				return err
			}
			defer a.Close()

			w := cmd.OutOrStdout()
			if opts.Output != "" && opts.Output != "-" {
				f, err := os.Create(opts.Output)
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to create output", err)
				}
				defer f.Close()
				w = f
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(a.Store.Snapshot())
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "-", "output path, - for stdout")

	return cmd
}

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/EuclidesAnchundia/Tutorias/internal/model"
)

// userView is what the CLI prints for a user; secrets stay out.
type userView struct {
	Email     string     `json:"email"`
	Names     string     `json:"nombres"`
	Surnames  string     `json:"apellidos"`
	Role      model.Role `json:"rol"`
	Faculty   string     `json:"facultad"`
	Major     string     `json:"carrera,omitempty"`
	Specialty string     `json:"especialidad,omitempty"`
}

func toUserView(u *model.User) userView {
	return userView{
		Email:     u.Email,
		Names:     u.Names,
		Surnames:  u.Surnames,
		Role:      u.Role(),
		Faculty:   u.Faculty(),
		Major:     u.Major(),
		Specialty: u.Specialty(),
	}
}

func printUser(w io.Writer, v userView) {
	fmt.Fprintf(w, "%s %s <%s>\n", v.Names, v.Surnames, v.Email)
	fmt.Fprintf(w, "  Rol:      %s\n", v.Role)
	fmt.Fprintf(w, "  Facultad: %s\n", v.Faculty)
	if v.Major != "" {
		fmt.Fprintf(w, "  Carrera:  %s\n", v.Major)
	}
	if v.Specialty != "" {
		fmt.Fprintf(w, "  Especialidad: %s\n", v.Specialty)
	}
}

type LoginOptions struct {
	*RootOptions
	Password string
}

func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoginOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "login EMAIL",
		Short: "Start a session",
		Long: `Start a session for an institutional email. The session is kept
under the session key and survives until logout.

Examples:
  tutorias login maria.gonzalez@live.uleam.edu.ec -p estudiante123`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := open(ctx, opts.RootOptions)
			if err != nil {
				return err
			}
			defer a.Close()

			u, err := a.Session.Login(ctx, args[0], opts.Password)
			if err != nil {
				return err
			}
			view := toUserView(u)
			return formatter(cmd, opts.RootOptions).Success(view, func(w io.Writer) {
				fmt.Fprintf(w, "Bienvenido, %s %s (%s)\n", view.Names, view.Surnames, view.Role)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Password, "password", "p", "", "password (required)")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func NewLogoutCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := open(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Session.Logout(ctx); err != nil {
				return err
			}
			return formatter(cmd, opts).Success(map[string]bool{"loggedOut": true}, func(w io.Writer) {
				fmt.Fprintln(w, "Sesión cerrada")
			})
		},
	}
}

func NewWhoamiCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			u, ok := a.Session.Current()
			if !ok {
				return NewExitError(ExitFailure, "not logged in")
			}
			view := toUserView(u)
			return formatter(cmd, opts).Success(view, func(w io.Writer) { printUser(w, view) })
		},
	}
}

type ProfileOptions struct {
	*RootOptions
	Names, Surnames, Password, Faculty, Major, Specialty, Question, Answer string
}

func NewProfileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProfileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update the current user's profile",
		Long: `Update the current user's profile. Only the flags given are changed.

Examples:
  tutorias profile --names "María José"
  tutorias profile --password nueva-clave-123`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfile(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Names, "names", "", "first names")
	cmd.Flags().StringVar(&opts.Surnames, "surnames", "", "last names")
	cmd.Flags().StringVar(&opts.Password, "password", "", "new password")
	cmd.Flags().StringVar(&opts.Faculty, "faculty", "", "faculty")
	cmd.Flags().StringVar(&opts.Major, "major", "", "major (students)")
	cmd.Flags().StringVar(&opts.Specialty, "specialty", "", "specialty (tutors)")
	cmd.Flags().StringVar(&opts.Question, "question", "", "security question")
	cmd.Flags().StringVar(&opts.Answer, "answer", "", "security answer")

	return cmd
}

func runProfile(cmd *cobra.Command, opts *ProfileOptions) error {
	in := &model.UpdateUserInput{}
	flags := cmd.Flags()
	set := func(name string, value string, dst **string) {
		if flags.Changed(name) {
			v := value
			*dst = &v
		}
	}
	set("names", opts.Names, &in.Names)
	set("surnames", opts.Surnames, &in.Surnames)
	set("password", opts.Password, &in.Password)
	set("faculty", opts.Faculty, &in.Faculty)
	set("major", opts.Major, &in.Major)
	set("specialty", opts.Specialty, &in.Specialty)
	set("question", opts.Question, &in.SecurityQuestion)
	set("answer", opts.Answer, &in.SecurityAnswer)
	if in.Empty() {
		return NewExitError(ExitFailure, "nothing to update")
	}

	ctx := cmd.Context()
	a, err := open(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := a.Session.UpdateProfile(ctx, in)
	if err != nil {
		return err
	}
	view := toUserView(u)
	return formatter(cmd, opts.RootOptions).Success(view, func(w io.Writer) { printUser(w, view) })
}

type RegisterOptions struct {
	*RootOptions
	In model.RegisterInput
}

func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RegisterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "register EMAIL",
		Short: "Create an account",
		Long: `Create an account. The role comes from the email domain.

Examples:
  tutorias register pedro.vera@live.uleam.edu.ec --names Pedro --surnames Vera \
    --password secreto123 --faculty "Facultad de Ciencias de la Salud" --major Enfermería \
    --question mascota --answer rocky`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(cmd.Context(), cmd, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.In.Names, "names", "", "first names (required)")
	f.StringVar(&opts.In.Surnames, "surnames", "", "last names (required)")
	f.StringVar(&opts.In.Password, "password", "", "password (required)")
	f.StringVar(&opts.In.Faculty, "faculty", "", "faculty (required)")
	f.StringVar(&opts.In.Major, "major", "", "major (students)")
	f.StringVar(&opts.In.Specialty, "specialty", "", "specialty (tutors)")
	f.StringVar(&opts.In.SecurityQuestion, "question", "", "security question (required)")
	f.StringVar(&opts.In.SecurityAnswer, "answer", "", "security answer (required)")
	for _, name := range []string{"names", "surnames", "password", "faculty", "question", "answer"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func runRegister(ctx context.Context, cmd *cobra.Command, opts *RegisterOptions, email string) error {
	a, err := open(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	in := opts.In
	in.Email = email
	in.PasswordConfirmation = in.Password
	u, err := a.Auth.Register(ctx, &in)
	if err != nil {
		return err
	}
	view := toUserView(u)
	return formatter(cmd, opts.RootOptions).Success(view, func(w io.Writer) {
		fmt.Fprintf(w, "Cuenta creada para %s (%s)\n", view.Email, view.Role)
	})
}

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/EuclidesAnchundia/Tutorias/internal/app"
	"github.com/EuclidesAnchundia/Tutorias/internal/notifications"
)

func NewNotificationsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notif"},
		Short:   "Read the current user's notifications",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withReader(cmd, opts, func(ctx context.Context, r *notifications.Reader) error {
				list, err := r.List(ctx)
				if err != nil {
					return err
				}
				return formatter(cmd, opts).Success(list, func(w io.Writer) {
					if len(list) == 0 {
						fmt.Fprintln(w, "(sin notificaciones)")
						return
					}
					for _, n := range list {
						mark := " "
						if !n.Read {
							mark = "*"
						}
						fmt.Fprintf(w, "%s %s  %-22s %s\n", mark, n.CreatedAt.Format("2006-01-02 15:04"), n.Type, n.Message)
						if opts.Verbose {
							fmt.Fprintf(w, "    id: %s\n", n.ID)
						}
					}
				})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "unread",
		Short: "Count unread notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withReader(cmd, opts, func(ctx context.Context, r *notifications.Reader) error {
				n, err := r.UnreadCount(ctx)
				if err != nil {
					return err
				}
				return formatter(cmd, opts).Success(map[string]int{"unread": n}, func(w io.Writer) {
					fmt.Fprintf(w, "%d sin leer\n", n)
				})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "read ID",
		Short: "Mark one notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withReader(cmd, opts, func(ctx context.Context, r *notifications.Reader) error {
				if err := r.MarkRead(ctx, args[0]); err != nil {
					return err
				}
				return formatter(cmd, opts).Success(map[string]string{"read": args[0]}, func(w io.Writer) {
					fmt.Fprintln(w, "Marcada como leída")
				})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withReader(cmd, opts, func(ctx context.Context, r *notifications.Reader) error {
				n, err := r.MarkAllRead(ctx)
				if err != nil {
					return err
				}
				return formatter(cmd, opts).Success(map[string]int{"marked": n}, func(w io.Writer) {
					fmt.Fprintf(w, "%d marcadas como leídas\n", n)
				})
			})
		},
	})

	return cmd
}

// withReader scopes a reader to the session restored for this process.
func withReader(cmd *cobra.Command, opts *RootOptions, fn func(context.Context, *notifications.Reader) error) error {
	ctx := cmd.Context()
	a, err := open(ctx, opts)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, reader(a))
}

func reader(a *app.App) *notifications.Reader {
	return notifications.NewReader(a.Store, a.Session)
}

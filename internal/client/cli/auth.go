package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/feedbackhub/internal/client/models"
	"github.com/dmitrijs2005/feedbackhub/internal/client/session"
)

func (a *app) registerCmd() *cobra.Command {
	var email, name, role, manager string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email, err = a.prompt(email, "Email"); err != nil {
				return err
			}
			if name, err = a.prompt(name, "Name"); err != nil {
				return err
			}
			if role, err = a.prompt(role, "Role (manager/employee)"); err != nil {
				return err
			}

			pw, err := getPassword(a.out)
			if err != nil {
				return err
			}
			defer wipe(pw)

			req := models.RegisterRequest{Email: email, Name: name, Password: string(pw), Role: role}
			if manager != "" {
				req.ManagerID = &manager
			}
			if err := a.api().Register(cmd.Context(), req); err != nil {
				return err
			}
			return a.print(map[string]string{"msg": "Registered"})
		},
	}

	f := cmd.Flags()
	f.StringVar(&email, "email", "", "account email")
	f.StringVar(&name, "name", "", "display name")
	f.StringVar(&role, "role", "", "manager or employee")
	f.StringVar(&manager, "manager", "", "id of the reporting manager")
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var err error
			if email, err = a.prompt(email, "Email"); err != nil {
				return err
			}

			pw, err := getPassword(a.out)
			if err != nil {
				return err
			}
			defer wipe(pw)

			res, err := a.api().Login(ctx, email, string(pw))
			if err != nil {
				return err
			}
			if err := a.withStore(ctx, func(s *session.Store) error {
				return s.SaveLogin(ctx, res.User.Email, res.Token)
			}); err != nil {
				return err
			}
			return a.print(res.User)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	var forget bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return a.withStore(ctx, func(s *session.Store) error {
				if forget {
					return s.Clear(ctx)
				}
				return s.Logout(ctx)
			})
		},
	}

	cmd.Flags().BoolVar(&forget, "forget", false, "also forget the remembered email")
	return cmd
}

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the server and the saved login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var st session.Status
			if err := a.withStore(ctx, func(s *session.Store) error {
				var err error
				st, err = s.Status(ctx)
				return err
			}); err != nil {
				return err
			}
			return a.print(struct {
				Server string `json:"server"`
				session.Status
			}{Server: a.cfg.ServerURL, Status: st})
		},
	}
}

func (a *app) meCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}
			u, err := c.Me(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(u)
		},
	}
}

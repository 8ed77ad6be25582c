package cli

import "github.com/spf13/cobra"

func (a *app) userCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "user <id>",
		Short: "Show a user by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.api().GetUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(u)
		},
	}
}

func (a *app) teamCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "team",
		Short: "List the employees reporting to you",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}
			team, err := c.Team(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(team)
		},
	}
}

func (a *app) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show your dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}
			d, err := c.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			if d.Timeline != nil {
				return a.print(d.Timeline)
			}
			return a.print(d)
		},
	}
}

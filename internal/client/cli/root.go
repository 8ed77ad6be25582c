// Package cli implements feedbackctl, a command-line client for the feedback
// API built on cobra.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/feedbackhub/internal/client/client"
	"github.com/dmitrijs2005/feedbackhub/internal/client/config"
	"github.com/dmitrijs2005/feedbackhub/internal/client/session"
)

type app struct {
	configPath string
	server     string
	state      string

	cfg *config.Config
	in  *bufio.Reader
	out io.Writer
}

// NewRootCmd builds the command tree. Prompts read from in; results and
// prompts go to out.
func NewRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: bufio.NewReader(in), out: out}

	root := &cobra.Command{
		Use:           "feedbackctl",
		Short:         "Give, read and acknowledge performance feedback",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "path to a JSON config file")
	pf.StringVar(&a.server, "server", "", "API base URL (overrides config)")
	pf.StringVar(&a.state, "state", "", "path to the local state database (overrides config)")

	root.AddCommand(
		a.registerCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.statusCmd(),
		a.meCmd(),
		a.userCmd(),
		a.teamCmd(),
		a.feedbackCmd(),
		a.dashboardCmd(),
		a.pingCmd(),
	)
	return root
}

func (a *app) loadConfig() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.server != "" {
		cfg.ServerURL = a.server
	}
	if a.state != "" {
		cfg.StatePath = a.state
	}
	a.cfg = cfg
	return nil
}

func (a *app) api() *client.Client {
	return client.New(a.cfg.ServerURL, a.cfg.Timeout)
}

func (a *app) withStore(ctx context.Context, fn func(*session.Store) error) error {
	s, err := session.Open(ctx, a.cfg.StatePath)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// authed returns a client carrying the saved token.
func (a *app) authed(ctx context.Context) (*client.Client, error) {
	var token string
	err := a.withStore(ctx, func(s *session.Store) error {
		var err error
		token, err = s.Token(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a.api().WithToken(token), nil
}

func (a *app) print(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = a.out.Write(append(b, '\n'))
	return err
}

// prompt returns value, or asks for it when empty.
func (a *app) prompt(value, label string) (string, error) {
	if value != "" {
		return value, nil
	}
	return getSimpleText(a.in, label, a.out)
}

func (a *app) pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.api().Ping(cmd.Context()); err != nil {
				return err
			}
			return a.print(map[string]string{"status": "OK"})
		},
	}
}

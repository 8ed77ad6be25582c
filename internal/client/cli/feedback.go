package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/feedbackhub/internal/client/models"
)

func (a *app) feedbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Work with feedback entries",
	}
	cmd.AddCommand(
		a.feedbackListCmd(),
		a.feedbackGetCmd(),
		a.feedbackGiveCmd(),
		a.feedbackEditCmd(),
		a.feedbackAckCmd(),
	)
	return cmd
}

func (a *app) feedbackListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List feedback you wrote (managers) or received (employees)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}
			list, err := c.ListFeedback(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(list)
		},
	}
}

func (a *app) feedbackGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one feedback entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}
			fb, err := c.GetFeedback(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(fb)
		},
	}
}

func (a *app) feedbackGiveCmd() *cobra.Command {
	var fb models.NewFeedback

	cmd := &cobra.Command{
		Use:   "give",
		Short: "Write feedback for someone on your team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if fb.EmployeeID, err = a.prompt(fb.EmployeeID, "Employee id"); err != nil {
				return err
			}
			if fb.Strengths, err = a.prompt(fb.Strengths, "Strengths"); err != nil {
				return err
			}
			if fb.Improvements, err = a.prompt(fb.Improvements, "Areas to improve"); err != nil {
				return err
			}
			if fb.Sentiment, err = a.prompt(fb.Sentiment, "Sentiment (positive/neutral/negative)"); err != nil {
				return err
			}

			c, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}
			id, err := c.CreateFeedback(cmd.Context(), fb)
			if err != nil {
				return err
			}
			return a.print(map[string]string{"id": id})
		},
	}

	f := cmd.Flags()
	f.StringVar(&fb.EmployeeID, "employee", "", "employee id")
	f.StringVar(&fb.Strengths, "strengths", "", "what went well")
	f.StringVar(&fb.Improvements, "improvements", "", "what to work on")
	f.StringVar(&fb.Sentiment, "sentiment", "", "positive, neutral or negative")
	return cmd
}

var errNothingToEdit = errors.New("nothing to change: pass --strengths, --improvements or --sentiment")

func (a *app) feedbackEditCmd() *cobra.Command {
	var strengths, improvements, sentiment string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change feedback you wrote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch models.FeedbackPatch
			f := cmd.Flags()
			if f.Changed("strengths") {
				patch.Strengths = &strengths
			}
			if f.Changed("improvements") {
				patch.Improvements = &improvements
			}
			if f.Changed("sentiment") {
				patch.Sentiment = &sentiment
			}
			if patch == (models.FeedbackPatch{}) {
				return errNothingToEdit
			}

			c, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}
			if err := c.UpdateFeedback(cmd.Context(), args[0], patch); err != nil {
				return err
			}
			return a.print(map[string]string{"msg": "Updated"})
		},
	}

	f := cmd.Flags()
	f.StringVar(&strengths, "strengths", "", "new strengths text")
	f.StringVar(&improvements, "improvements", "", "new improvements text")
	f.StringVar(&sentiment, "sentiment", "", "new sentiment")
	return cmd
}

func (a *app) feedbackAckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ack <id>",
		Short: "Acknowledge feedback you received",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}
			if err := c.Acknowledge(cmd.Context(), args[0]); err != nil {
				return err
			}
			return a.print(map[string]string{"msg": "Acknowledged"})
		},
	}
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/utdisa/isa-portal/client"
	"github.com/utdisa/isa-portal/models"
)

// readJSONFile decodes path into dst; "-" reads stdin.
func readJSONFile(path string, stdin io.Reader, dst any) error {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// formCommand builds a "submit <name>" subcommand for one form type.
func formCommand[F any, R any](a *app, use, short string, newForm func() F, submit func(*client.SubmissionService, context.Context, F) (*R, error)) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := newForm()
			if err := readJSONFile(file, cmd.InOrStdin(), &form); err != nil {
				return err
			}
			b, err := a.backend()
			if err != nil {
				return err
			}
			rec, err := submit(client.NewSubmissionService(b, a.logger()), cmd.Context(), form)
			if err != nil {
				return err
			}
			return a.printJSON(rec)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON file with the form fields, - for stdin")
	return cmd
}

func newSubmitCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send one of the public forms",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		formCommand(a, "pickup", "Request an airport pickup", models.NewAirportPickupForm,
			(*client.SubmissionService).SubmitAirportPickup),
		formCommand(a, "feedback", "Send feedback", func() models.FeedbackForm { return models.FeedbackForm{} },
			(*client.SubmissionService).SubmitFeedback),
		formCommand(a, "sponsor", "Send a sponsorship inquiry", func() models.SponsorForm { return models.SponsorForm{} },
			(*client.SubmissionService).SubmitSponsor),
	)
	return cmd
}

func newFormsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forms",
		Short: "Read submitted forms (admins only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	list := func(use string, fetch func(*client.SubmissionService, context.Context) (any, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: "List " + use + " submissions, newest first",
			RunE: func(cmd *cobra.Command, args []string) error {
				b, err := a.backend()
				if err != nil {
					return err
				}
				rows, err := fetch(client.NewSubmissionService(b, a.logger()), cmd.Context())
				if err != nil {
					return err
				}
				return a.printJSON(rows)
			},
		}
	}

	cmd.AddCommand(
		list("pickup", func(s *client.SubmissionService, ctx context.Context) (any, error) { return s.ListAirportPickups(ctx) }),
		list("feedback", func(s *client.SubmissionService, ctx context.Context) (any, error) { return s.ListFeedback(ctx) }),
		list("sponsor", func(s *client.SubmissionService, ctx context.Context) (any, error) { return s.ListSponsors(ctx) }),
	)
	return cmd
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utdisa/isa-portal/client"
	"github.com/utdisa/isa-portal/models"
)

func selectAll[T any](cmd *cobra.Command, a *app, table string, q client.Query) ([]T, error) {
	b, err := a.backend()
	if err != nil {
		return nil, err
	}
	rows, err := b.Tables().Select(cmd.Context(), table, q)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for _, raw := range rows {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("failed to decode %s row: %w", table, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func newEventsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Show the event calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := selectAll[models.Event](cmd, a, models.TableEvents, client.Query{})
			if err != nil {
				return err
			}
			return a.printJSON(events)
		},
	}
}

func newTeamCommand(a *app) *cobra.Command {
	var position string

	cmd := &cobra.Command{
		Use:   "team",
		Short: "Show the team grouped into board, officers and logistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := selectAll[models.TeamMember](cmd, a, models.TableTeamMembers, client.Query{})
			if err != nil {
				return err
			}
			if position != "" {
				return a.printJSON(models.FilterByPosition(members, position))
			}
			return a.printJSON(models.GroupRoster(members))
		},
	}

	cmd.Flags().StringVar(&position, "position", "", "Only members holding this title")
	return cmd
}

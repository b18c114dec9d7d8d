package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"rollcall/internal/ingest"
	"rollcall/internal/zoom"
)

func newParticipantsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "participants <occurrence-id>",
		Short: "List resolved participants for one occurrence",
		Long: `Participants prints the attendee roster for a single meeting occurrence in
first-seen order. Already-resolved occurrences are served from the local
store; otherwise the full page walk runs against the reporting API first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			db, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			runCtx := cmd.Context()
			occurrence, err := db.GetOccurrence(runCtx, args[0])
			if err != nil {
				return err
			}
			if occurrence == nil {
				return fmt.Errorf("unknown occurrence %s; run `rollcall sync` first", args[0])
			}

			client := zoom.NewClient(cfg.Zoom, logger)
			ing := ingest.New(db, client, logger)
			participants, err := ing.Participants(runCtx, occurrence)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(participants) == 0 {
				fmt.Fprintln(out, "No participants recorded")
				return nil
			}

			rows := make([][]string, 0, len(participants))
			for i, participant := range participants {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					participant.Name,
					participant.Email,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Name", "Email"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

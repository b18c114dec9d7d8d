package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rollcall/internal/ingest"
	"rollcall/internal/notifications"
	"rollcall/internal/zoom"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var meetingsFile string

	cmd := &cobra.Command{
		Use:   "sync [meeting-id...]",
		Short: "Ingest meeting details, occurrences, and participants",
		Long: `Sync pulls meeting details, past occurrences, and attendee records from the
reporting API into the local store without building or uploading a report.
Meeting ids come from the arguments, a --meetings-file, or the configuration,
in that order. The first failing meeting aborts the run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			release, err := ctx.acquireLock()
			if err != nil {
				return err
			}
			defer release()

			db, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			meetings, err := resolveMeetingIDs(cfg, args, meetingsFile)
			if err != nil {
				return err
			}

			runCtx := cmd.Context()
			client := zoom.NewClient(cfg.Zoom, logger)
			ing := ingest.New(db, client, logger)
			notifier := notifications.NewService(cfg)

			out := cmd.OutOrStdout()
			totalOccurrences := 0
			for _, meetingID := range meetings {
				meeting, occurrences, err := ing.IngestMeeting(runCtx, meetingID)
				if err != nil {
					_ = notifier.NotifyError(runCtx, err, "sync")
					return fmt.Errorf("sync meeting %s: %w", meetingID, err)
				}
				totalOccurrences += len(occurrences)
				fmt.Fprintf(out, "Synced %s (%s): %d occurrences\n", meeting.ID, meeting.Topic, len(occurrences))
			}

			_ = notifier.NotifySyncCompleted(runCtx, len(meetings), totalOccurrences)
			return nil
		},
	}

	cmd.Flags().StringVar(&meetingsFile, "meetings-file", "", "Read meeting ids from a line-delimited file")
	return cmd
}

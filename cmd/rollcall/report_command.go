package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"rollcall/internal/ingest"
	"rollcall/internal/logging"
	"rollcall/internal/notifications"
	"rollcall/internal/report"
	"rollcall/internal/sheets"
	"rollcall/internal/zoom"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var meetingsFile string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Ingest attendance and publish the report spreadsheet",
		Args:  cobra.NoArgs,
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

			meetings, err := resolveMeetingIDs(cfg, nil, meetingsFile)
			if err != nil {
				return err
			}

			runCtx := cmd.Context()
			if last, err := db.LastRun(runCtx); err == nil && last != nil {
				logger.Info("previous run",
					logging.String("run_time", last.RunTime),
					logging.Int("exit_code", last.ExitCode))
			}

			client := zoom.NewClient(cfg.Zoom, logger)
			ing := ingest.New(db, client, logger)
			notifier := notifications.NewService(cfg)

			matrix := report.NewTable()
			failed := 0
			for _, meetingID := range meetings {
				meeting, _, err := ing.IngestMeeting(runCtx, meetingID)
				if err != nil {
					failed++
					logger.Error("meeting ingest failed",
						logging.String(logging.FieldMeetingID, meetingID),
						logging.Error(err))
					continue
				}
				matrix.AddMeeting(meeting.ID, meeting.Topic)
				// Chronological order so the later same-day occurrence wins
				// the day's cell.
				occurrences, err := ing.CachedOccurrences(runCtx, meeting)
				if err != nil {
					return fmt.Errorf("list occurrences for %s: %w", meeting.ID, err)
				}
				for _, occurrence := range occurrences {
					count, err := db.AttendanceCount(runCtx, occurrence.UUID)
					if err != nil {
						return fmt.Errorf("count attendance for %s: %w", occurrence.UUID, err)
					}
					if err := matrix.AddOccurrence(meeting.ID, occurrence.StartTime, count); err != nil {
						logger.Warn("skipping occurrence with malformed start time",
							logging.String(logging.FieldMeetingID, meeting.ID),
							logging.String(logging.FieldOccurrenceID, occurrence.UUID),
							logging.Error(err))
					}
				}
			}

			exitCode := 0
			if failed == len(meetings) {
				exitCode = 1
			}
			if err := db.RecordRun(runCtx, time.Now(), exitCode); err != nil {
				logger.Warn("record run", logging.Error(err))
			}
			if exitCode != 0 {
				err := fmt.Errorf("all %d meetings failed to ingest", len(meetings))
				_ = notifier.NotifyError(runCtx, err, "report")
				return err
			}
			if failed > 0 {
				logger.Warn("some meetings failed to ingest",
					logging.Int("failed", failed),
					logging.Int("total", len(meetings)))
			}

			array := matrix.ToArray()
			headers, rows, aligns := reportPreview(array)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(headers, rows, aligns))

			if dryRun {
				fmt.Fprintln(out, "Dry run; skipping upload")
				return nil
			}
			if !cfg.Google.Enabled {
				fmt.Fprintln(out, "Google upload disabled; report not published")
				return nil
			}

			svc, err := sheets.NewService(runCtx, cfg.Google, logger)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("%s-%s", cfg.Report.SheetNamePrefix, time.Now().Format("2006-01-02"))
			link, err := svc.Upload(runCtx, title, array)
			if err != nil {
				_ = notifier.NotifyError(runCtx, err, "report upload")
				return fmt.Errorf("upload report: %w", err)
			}
			fmt.Fprintf(out, "Report uploaded: %s\n", link)
			_ = notifier.NotifyReportReady(runCtx, title, link)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Build and preview the report without uploading")
	cmd.Flags().StringVar(&meetingsFile, "meetings-file", "", "Read meeting ids from a line-delimited file")
	return cmd
}

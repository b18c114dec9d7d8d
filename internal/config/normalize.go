package config

import "strings"

// normalize expands paths and canonicalizes string fields so the rest of the
// repository never needs to re-sanitize configuration values.
func (c *Config) normalize() error {
	var err error
	if c.Paths.DataDir, err = expandPath(valueOr(c.Paths.DataDir, defaultDataDir)); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(valueOr(c.Paths.LogDir, defaultLogDir)); err != nil {
		return err
	}

	c.Zoom.AccountID = strings.TrimSpace(c.Zoom.AccountID)
	c.Zoom.ClientID = strings.TrimSpace(c.Zoom.ClientID)
	c.Zoom.ClientSecret = strings.TrimSpace(c.Zoom.ClientSecret)
	c.Zoom.BaseURL = strings.TrimRight(valueOr(c.Zoom.BaseURL, defaultZoomBaseURL), "/")
	c.Zoom.AuthURL = valueOr(c.Zoom.AuthURL, defaultZoomAuthURL)

	if c.Google.ServiceAccountFile != "" {
		if c.Google.ServiceAccountFile, err = expandPath(c.Google.ServiceAccountFile); err != nil {
			return err
		}
	}
	c.Google.DriveFolder = strings.TrimSpace(c.Google.DriveFolder)

	meetingIDs := make([]string, 0, len(c.Report.MeetingIDs))
	for _, id := range c.Report.MeetingIDs {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			meetingIDs = append(meetingIDs, trimmed)
		}
	}
	c.Report.MeetingIDs = meetingIDs
	c.Report.SheetNamePrefix = valueOr(c.Report.SheetNamePrefix, defaultSheetNamePrefix)

	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)

	c.Logging.Format = strings.ToLower(valueOr(c.Logging.Format, defaultLogFormat))
	c.Logging.Level = strings.ToLower(valueOr(c.Logging.Level, defaultLogLevel))

	return nil
}

func valueOr(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

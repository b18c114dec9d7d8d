package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"rollcall/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to set the zoom credentials (or export ZOOM_ACCOUNT_ID, ZOOM_CLIENT_ID, ZOOM_CLIENT_SECRET) before running rollcall.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "show",
		Short:       "Show the resolved configuration",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			cfg, path, exists, err := config.Load("")
			if err != nil {
				fmt.Fprintln(out, renderStatusLine("Validation", statusError, err.Error(), colorize))
				defaults := config.Default()
				cfg = &defaults
				path, _ = config.DefaultConfigPath()
				exists = true
			}

			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintln(out)

			fmt.Fprintln(out, renderStatusLine("Data directory", statusInfo, cfg.Paths.DataDir, colorize))
			fmt.Fprintln(out, renderStatusLine("Log directory", statusInfo, cfg.Paths.LogDir, colorize))
			fmt.Fprintln(out, renderStatusLine("Database", statusInfo, cfg.DatabasePath(), colorize))
			fmt.Fprintln(out, renderStatusLine("Zoom account", credentialStatus(cfg.Zoom.AccountID), redact(cfg.Zoom.AccountID), colorize))
			fmt.Fprintln(out, renderStatusLine("Zoom client", credentialStatus(cfg.Zoom.ClientID), redact(cfg.Zoom.ClientID), colorize))
			fmt.Fprintln(out, renderStatusLine("Zoom secret", credentialStatus(cfg.Zoom.ClientSecret), redact(cfg.Zoom.ClientSecret), colorize))
			fmt.Fprintln(out, renderStatusLine("Google upload", boolStatus(cfg.Google.Enabled), yesNo(cfg.Google.Enabled), colorize))
			fmt.Fprintln(out, renderStatusLine("Drive folder", statusInfo, cfg.Google.DriveFolder, colorize))
			fmt.Fprintln(out, renderStatusLine("Notifications", boolStatus(cfg.Notifications.NtfyTopic != ""), yesNo(cfg.Notifications.NtfyTopic != ""), colorize))
			fmt.Fprintln(out, renderStatusLine("Meetings", statusInfo, fmt.Sprintf("%d configured", len(cfg.Report.MeetingIDs)), colorize))

			fmt.Fprintln(out)
			if err := cfg.Validate(); err != nil {
				fmt.Fprintln(out, renderStatusLine("Validation", statusError, err.Error(), colorize))
				return nil
			}
			fmt.Fprintln(out, renderStatusLine("Validation", statusOK, "configuration valid", colorize))
			return nil
		},
	}
}

func credentialStatus(value string) statusKind {
	if strings.TrimSpace(value) == "" {
		return statusWarn
	}
	return statusOK
}

func boolStatus(enabled bool) statusKind {
	if enabled {
		return statusOK
	}
	return statusInfo
}

// redact keeps just enough of a credential to recognize it.
func redact(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "(unset)"
	}
	if len(value) <= 4 {
		return "****"
	}
	return value[:4] + strings.Repeat("*", len(value)-4)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

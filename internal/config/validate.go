package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateZoom(); err != nil {
		return err
	}
	if err := c.validateGoogle(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateZoom() error {
	if c.Zoom.AccountID == "" || c.Zoom.ClientID == "" || c.Zoom.ClientSecret == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/rollcall/config.toml"
		}
		return fmt.Errorf("zoom credentials are required. Set ZOOM_ACCOUNT_ID, ZOOM_CLIENT_ID and ZOOM_CLIENT_SECRET env vars or edit %s (create with 'rollcall config init')", defaultPath)
	}
	if c.Zoom.BaseURL == "" {
		return errors.New("zoom.base_url must be set")
	}
	return nil
}

func (c *Config) validateGoogle() error {
	if !c.Google.Enabled {
		return nil
	}
	if c.Google.ServiceAccountFile == "" {
		return errors.New("google.service_account_file must be set when google.enabled is true")
	}
	if c.Google.DriveFolder == "" {
		return errors.New("google.drive_folder must be set when google.enabled is true")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be %q or %q", "console", "json")
	}
	return nil
}

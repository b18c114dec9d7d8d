package config

const (
	defaultDataDir         = "~/.local/share/rollcall"
	defaultLogDir          = "~/.local/share/rollcall/logs"
	defaultZoomBaseURL     = "https://api.zoom.us/v2"
	defaultZoomAuthURL     = "https://zoom.us/oauth/token"
	defaultSheetNamePrefix = "attendance"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultNotifyTimeout   = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Zoom: Zoom{
			BaseURL: defaultZoomBaseURL,
			AuthURL: defaultZoomAuthURL,
		},
		Report: Report{
			SheetNamePrefix: defaultSheetNamePrefix,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

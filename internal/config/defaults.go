package config

// Default returns the built-in configuration values.
func Default() Config {
	return Config{
		API: API{
			TimeoutSeconds: 10,
		},
		Paths: Paths{
			DataDir: "~/.local/share/tagsight",
			LogDir:  "~/.local/share/tagsight/logs",
		},
		Images: Images{
			ConvertCommand:        "magick",
			ConvertTimeoutSeconds: 30,
		},
		Printer: Printer{
			Enabled:       false,
			Method:        "file",
			TemplateName:  "Default",
			PrintQuantity: 1,
		},
		Notifications: Notifications{
			RequestTimeout: 10,
		},
		Scanner: Scanner{
			QueueSize: 16,
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}

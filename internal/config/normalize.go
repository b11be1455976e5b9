package config

import "strings"

// normalize expands paths and fills defaulted values before validation.
func (c *Config) normalize() error {
	var err error
	if c.Paths.DataDir, err = expandPath(defaultString(c.Paths.DataDir, "~/.local/share/tagsight")); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(defaultString(c.Paths.LogDir, "~/.local/share/tagsight/logs")); err != nil {
		return err
	}
	if dir := strings.TrimSpace(c.Images.Dir); dir != "" {
		if c.Images.Dir, err = expandPath(dir); err != nil {
			return err
		}
	}
	for _, p := range []*string{&c.Printer.QueuePath, &c.Printer.WorkbookPath, &c.Printer.PipePath} {
		if trimmed := strings.TrimSpace(*p); trimmed != "" {
			if *p, err = expandPath(trimmed); err != nil {
				return err
			}
		}
	}

	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	c.API.APIKey = strings.TrimSpace(c.API.APIKey)
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = 10
	}
	if c.Images.ConvertCommand = strings.TrimSpace(c.Images.ConvertCommand); c.Images.ConvertCommand == "" {
		c.Images.ConvertCommand = "magick"
	}
	if c.Images.ConvertTimeoutSeconds <= 0 {
		c.Images.ConvertTimeoutSeconds = 30
	}
	c.Printer.Method = strings.ToLower(strings.TrimSpace(c.Printer.Method))
	if c.Printer.Method == "" {
		c.Printer.Method = "file"
	}
	if c.Printer.TemplateName = strings.TrimSpace(c.Printer.TemplateName); c.Printer.TemplateName == "" {
		c.Printer.TemplateName = "Default"
	}
	if c.Printer.PrintQuantity <= 0 {
		c.Printer.PrintQuantity = 1
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = 10
	}
	if c.Scanner.QueueSize <= 0 {
		c.Scanner.QueueSize = 16
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	return nil
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

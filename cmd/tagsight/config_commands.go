package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"tagsight/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigSetupCommand(ctx))
	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigValidateCommand())
	configCmd.AddCommand(newConfigSampleCommand())

	return configCmd
}

// newConfigSetupCommand walks the operator through backend credentials and
// writes the encrypted config file. Values in brackets are kept on empty
// input.
func newConfigSetupCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "setup",
		Short:       "Interactively configure the backend connection",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var configPath string
			if ctx.configFlag != nil {
				configPath = strings.TrimSpace(*ctx.configFlag)
			}
			cfg, path, _, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			stdout := cmd.OutOrStdout()
			reader := bufio.NewReader(cmd.InOrStdin())

			fmt.Fprintf(stdout, "Configuring %s\n\n", path)
			cfg.API.BaseURL = promptString(reader, stdout, "Backend base URL", cfg.API.BaseURL)
			cfg.API.APIKey = promptSecret(reader, stdout, "API key or bearer token", cfg.API.APIKey)
			cfg.API.Username = promptString(reader, stdout, "Basic auth username (optional)", cfg.API.Username)
			if cfg.API.Username != "" {
				cfg.API.Password = promptSecret(reader, stdout, "Basic auth password", cfg.API.Password)
			}
			cfg.Notifications.NtfyTopic = promptString(reader, stdout, "ntfy topic URL (optional)", cfg.Notifications.NtfyTopic)

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("validate config: %w", err)
			}
			if err := config.Save(cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "\nSaved configuration to %s\n", path)
			return nil
		},
	}
}

func promptString(reader *bufio.Reader, stdout io.Writer, label, current string) string {
	return promptWithDisplay(reader, stdout, label, current, current)
}

// promptSecret shows a masked placeholder but keeps the real value when the
// operator accepts the default with an empty line.
func promptSecret(reader *bufio.Reader, stdout io.Writer, label, current string) string {
	return promptWithDisplay(reader, stdout, label, maskSecret(current), current)
}

func promptWithDisplay(reader *bufio.Reader, stdout io.Writer, label, display, current string) string {
	if display != "" {
		fmt.Fprintf(stdout, "%s [%s]: ", label, display)
	} else {
		fmt.Fprintf(stdout, "%s: ", label)
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		return current
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return current
	}
	return line
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			stdout := cmd.OutOrStdout()
			colorize := shouldColorize(stdout)

			for _, line := range renderSectionHeader("Backend", colorize) {
				fmt.Fprintln(stdout, line)
			}
			fmt.Fprintln(stdout, renderStatusLine("Base URL", statusKindFromBool(cfg.APIConfigured()), valueOrUnset(cfg.API.BaseURL), colorize))
			fmt.Fprintln(stdout, renderStatusLine("API key", statusInfo, valueOrUnset(maskSecret(cfg.API.APIKey)), colorize))
			fmt.Fprintln(stdout, renderStatusLine("Timeout", statusInfo, cfg.APITimeout().String(), colorize))
			fmt.Fprintln(stdout)

			for _, line := range renderSectionHeader("Paths", colorize) {
				fmt.Fprintln(stdout, line)
			}
			fmt.Fprintln(stdout, renderStatusLine("Data dir", statusInfo, cfg.Paths.DataDir, colorize))
			fmt.Fprintln(stdout, renderStatusLine("Log dir", statusInfo, cfg.Paths.LogDir, colorize))
			fmt.Fprintln(stdout, renderStatusLine("Artwork dir", statusInfo, valueOrUnset(cfg.Images.Dir), colorize))
			fmt.Fprintln(stdout)

			for _, line := range renderSectionHeader("Printing", colorize) {
				fmt.Fprintln(stdout, line)
			}
			fmt.Fprintln(stdout, renderStatusLine("Enabled", statusKindFromBool(cfg.Printer.Enabled), yesNo(cfg.Printer.Enabled), colorize))
			fmt.Fprintln(stdout, renderStatusLine("Method", statusInfo, valueOrUnset(cfg.Printer.Method), colorize))
			fmt.Fprintln(stdout)

			for _, line := range renderSectionHeader("Notifications", colorize) {
				fmt.Fprintln(stdout, line)
			}
			fmt.Fprintln(stdout, renderStatusLine("ntfy topic", statusInfo, valueOrUnset(cfg.Notifications.NtfyTopic), colorize))
			return nil
		},
	}
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, loaded, err := config.Load("")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !loaded {
				fmt.Fprintln(out, "Config file was absent or unreadable; defaults were used")
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func newConfigSampleCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "sample",
		Short:       "Write a plaintext sample configuration for reference",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				target = "tagsight-sample.toml"
			}
			expanded, err := config.ExpandPath(target)
			if err != nil {
				return fmt.Errorf("resolve sample path: %w", err)
			}
			target = expanded

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check sample path: %w", err)
				}
			}

			if dir := filepath.Dir(target); dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create directory %q: %w", dir, err)
				}
			}
			if err := config.CreateSample(target); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the values, then apply them with `tagsight config setup`.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the sample file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing file")
	return cmd
}

func maskSecret(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return "****"
	}
	return value[:2] + strings.Repeat("*", len(value)-4) + value[len(value)-2:]
}

func valueOrUnset(value string) string {
	if strings.TrimSpace(value) == "" {
		return "(unset)"
	}
	return value
}

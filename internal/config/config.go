package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// API contains connection settings for the order search backend.
type API struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	APIKey         string `toml:"api_key"`
	Username       string `toml:"username"`
	Password       string `toml:"password"`
}

// Paths contains directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Images contains configuration for the product artwork directory.
type Images struct {
	Dir                   string `toml:"dir"`
	ConvertCommand        string `toml:"convert_command"`
	ConvertTimeoutSeconds int    `toml:"convert_timeout_seconds"`
}

// Printer contains label-print integration settings.
type Printer struct {
	Enabled       bool   `toml:"enabled"`
	Method        string `toml:"method"`
	PipePath      string `toml:"pipe_path"`
	HTTPURL       string `toml:"http_url"`
	QueuePath     string `toml:"queue_path"`
	WorkbookPath  string `toml:"workbook_path"`
	TemplateName  string `toml:"template_name"`
	PrintQuantity int    `toml:"print_quantity"`
	AutoPrint     bool   `toml:"auto_print"`
	PrintCommand  string `toml:"print_command"`
}

// Notifications contains ntfy push notification settings.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Scanner contains barcode-scanner hotplug watch settings.
type Scanner struct {
	VendorMatch string `toml:"vendor_match"`
	QueueSize   int    `toml:"queue_size"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for TagSight.
type Config struct {
	API           API           `toml:"api"`
	Paths         Paths         `toml:"paths"`
	Images        Images        `toml:"images"`
	Printer       Printer       `toml:"printer"`
	Notifications Notifications `toml:"notifications"`
	Scanner       Scanner       `toml:"scanner"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/tagsight/config.enc")
}

// Load locates, decrypts, and validates the configuration file. The returned
// bool reports whether the config was read from disk; false means defaults
// were materialized (absent or unreadable file) and setup is required.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	loaded := false
	if exists {
		sealed, err := os.ReadFile(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("read config: %w", err)
		}
		plaintext, err := decrypt(string(sealed), encryptionSecret())
		if err == nil {
			err = toml.Unmarshal(plaintext, &cfg)
		}
		if err != nil {
			if !errors.Is(err, ErrUnreadableConfig) {
				return nil, "", false, fmt.Errorf("parse config: %w", err)
			}
			// Unreadable file: fall back to defaults and force setup.
			cfg = Default()
		} else {
			loaded = true
		}
	} else {
		if err := Save(&cfg, resolvedPath); err != nil {
			return nil, "", false, err
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, loaded, nil
}

// Save encrypts and writes the configuration to path.
func Save(cfg *Config, path string) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	plaintext, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	sealed, err := encrypt(plaintext, encryptionSecret())
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sealed), 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for daemon operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LedgerDBPath returns the path of the scan ledger database.
func (c *Config) LedgerDBPath() string {
	return filepath.Join(c.Paths.DataDir, "ledger.db")
}

// SocketPath returns the daemon IPC socket path.
func (c *Config) SocketPath() string {
	return filepath.Join(c.Paths.DataDir, "tagsightd.sock")
}

// LockPath returns the daemon single-instance lock path.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "tagsightd.lock")
}

// LogPath returns the daemon log file path.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.LogDir, "tagsight.log")
}

// APIConfigured reports whether a backend base URL is present. Search and
// probe short-circuit before any network call when this is false.
func (c *Config) APIConfigured() bool {
	return strings.TrimSpace(c.API.BaseURL) != ""
}

// APITimeout returns the configured per-request backend timeout.
func (c *Config) APITimeout() time.Duration {
	if c.API.TimeoutSeconds > 0 {
		return time.Duration(c.API.TimeoutSeconds) * time.Second
	}
	return 10 * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes the plaintext sample configuration to path for
// reference when editing settings.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

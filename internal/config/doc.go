// Package config loads and persists the TagSight configuration.
//
// The configuration is a TOML document encrypted at rest with AES-256-CBC.
// The cipher key is derived with scrypt from an operator-provided secret so
// backend credentials never touch disk in the clear. A missing or unreadable
// config file materializes the embedded defaults, which callers surface as
// "setup required" rather than an error.
package config

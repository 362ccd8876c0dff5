// Package config handles loading, validation, and access to application
// configuration from environment variables and optional config files.
package config

// Package config loads application configuration from environment variables
// and an optional .env file.
//
// Each core package owns its partial Config struct; this package composes
// them into one tree. Defaults are declared as struct tags and bound into
// Viper via reflection, so every key is also overridable through the
// environment (e.g. ENGINE_WORKERS=8, LOG_LEVEL=debug).
package config

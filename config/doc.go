// Package config provides configuration loading and validation for the
// rendering service and CLI.
//
// It uses Viper to load configuration from YAML files and environment
// variables, with .env support via godotenv. Environment variables override
// file values using underscore-separated paths (e.g. RENDER_DIRECTION,
// LOGGING_LEVEL).
//
// # Usage
//
//	var cfg daemon.Config
//	err := config.LoadConfig("yumlsvgd", &cfg)
package config

// Package config handles application configuration loading and validation.
//
// Configuration is loaded from a YAML file and validated using struct tags.
// Every setting has a working default for the SMART line, so an empty file
// is a valid configuration.
package config

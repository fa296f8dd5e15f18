// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Every threshold has a tuned default, so a missing config file is fine.
// The loaded value is passed explicitly into each pipeline stage; there is
// no package-level mutable state.
package config

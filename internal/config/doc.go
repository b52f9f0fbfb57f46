// Package config loads, normalizes, and validates Emblem configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// daemon and CLI need: data and log directories, the daemon socket, the icon
// publish directory, and the collection/upload ceilings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config

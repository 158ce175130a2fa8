// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Credentials are deliberately kept out of the file and read from the
// environment instead, with an optional KEY_FILE indirection for container
// secret mounts.
package config

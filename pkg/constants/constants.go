// Package constants provides shared constants used throughout the modeldex
// codebase: timeouts, file permissions, and other values that should be
// consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application.
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to provider APIs
	DefaultHTTPTimeout = 30 * time.Second

	// ProviderFetchTimeout is the timeout for fetching models from a single provider
	ProviderFetchTimeout = 2 * time.Minute

	// SyncTimeout is the timeout for a full aggregated-database sync
	SyncTimeout = 10 * time.Minute
)

// File permission constants define standard Unix file permissions.
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// DefaultConfigDir is the directory where per-provider model configuration
// files are stored, relative to the working directory.
const DefaultConfigDir = "config/models"

// UpdateSource identifies this tool in the metadata block of documents it writes.
const UpdateSource = "modeldex"

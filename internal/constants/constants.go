// Package constants provides named defaults used throughout walkheat.
// This centralizes magic numbers for better maintainability and documentation.
package constants

// Simulation defaults
const (
	// DefaultWalks is the number of walks in a batch when none is configured.
	DefaultWalks = 1000

	// DefaultBoundary is the default half-width of the boundary square.
	DefaultBoundary = 3
)

// Output defaults
const (
	// DefaultImagePath is where the heatmap PNG is written unless overridden.
	DefaultImagePath = "heatmap.png"

	// MaxPlotPixels caps the side of the heatmap plot area. Large boundaries
	// shrink the cell size instead of growing the image.
	MaxPlotPixels = 4096

	// DefaultRunListLimit caps how many recorded runs `runs list` prints.
	DefaultRunListLimit = 20
)

// Paths
const (
	// HomeDirName is the per-user directory holding config and the run ledger.
	HomeDirName = ".walkheat"

	// ConfigFileName is the YAML config file inside HomeDirName.
	ConfigFileName = "config.yaml"

	// RunsDBFileName is the SQLite run ledger inside HomeDirName.
	RunsDBFileName = "runs.db"

	// EnvFileName is the dotenv file read from the working directory.
	EnvFileName = ".env"
)

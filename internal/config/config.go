// Package config holds the resolved configuration values from the CLI.
package config

//nolint:lll // readablity
var (
	LogLevel  string // sets the log level (zap log level values)
	LogFormat string // text vs json
	Scenario  string // path to a JSON or YAML scenario; empty uses the built-in race
	Seed      uint64 // overrides the scenario seed when non-zero
	Frames    int    // overrides the scenario frame count when positive
	Width     int    // window or image width in pixels
	Height    int    // window or image height in pixels
	Hz        int    // headless tick rate
	Ticks     uint64 // headless ticks to run, 0 until interrupted
	Output    string // sim log path; "-" or empty means stdout
	ImageFile string // snapshot PNG path
	Watch     bool   // reload kinematics tuning when the config file changes
	Pretty    bool   // indent JSON output
)

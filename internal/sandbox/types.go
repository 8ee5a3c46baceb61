package sandbox

import "time"

// Config defines runtime configuration.
type Config struct {
	Timeout       time.Duration // execution timeout for a verification run
	EnableConsole bool          // capture console.log/warn/error/info
}

// Result holds the outcome of a verification run.
type Result struct {
	Value    interface{}   // value returned by the bundle callable
	Console  []LogEntry    // captured console output
	Duration time.Duration // evaluation plus invocation time
}

// LogEntry represents one captured console call.
type LogEntry struct {
	Level   string
	Message string
	Time    time.Time
}

// DefaultConfig returns the configuration used by `capsule -check`.
func DefaultConfig() Config {
	return Config{
		Timeout:       5 * time.Second,
		EnableConsole: true,
	}
}

package database

// Config holds configuration for the run history database.
type Config struct {
	// Path is the SQLite database file. The special value ":memory:"
	// keeps history for the lifetime of the process only.
	Path string `mapstructure:"path" default:"ditto.db"`
	// Disabled turns off run history persistence entirely.
	Disabled bool `mapstructure:"disabled" default:"false"`
}

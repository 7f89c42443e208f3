package server

// Config holds configuration for the status HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8712"`
	// Enabled turns the status server on in watch mode.
	Enabled bool `mapstructure:"enabled" default:"false"`
}

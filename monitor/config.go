package monitor

// Config for the profiling and metrics server
type Config struct {
	Enabled bool
	Host    string
	Port    string
}

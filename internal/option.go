package internal

// Option is a functional option for configuring the tracker application.
type Option func(*application)

type application struct {
	config *Config
}

// WithConfig sets the tracker configuration used by Run and RunMCP.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

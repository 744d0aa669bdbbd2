package domain

import "time"

// Config is the file-level configuration. Zero values mean "not set".
type Config struct {
	MaxConcurrency     int               `yaml:"maxConcurrency"`
	TimeoutPerManifest time.Duration     `yaml:"timeoutPerManifest"`
	FailFast           bool              `yaml:"failFast"`
	Env                map[string]string `yaml:"env"`
}

// Options converts the configuration into resolve options.
func (c *Config) Options() Options {
	env := make(map[string]string, len(c.Env))
	for k, v := range c.Env {
		env[k] = v
	}
	return Options{
		MaxConcurrency:     c.MaxConcurrency,
		TimeoutPerManifest: c.TimeoutPerManifest,
		FailFast:           c.FailFast,
		Env:                env,
	}
}

package config

// DefaultFilename is the configuration file looked up from the working directory upwards.
const DefaultFilename = "deptree.yaml"

// File represents the structure of the deptree.yaml configuration file.
type File struct {
	Version            string            `yaml:"version"`
	MaxConcurrency     int               `yaml:"maxConcurrency"`
	TimeoutPerManifest string            `yaml:"timeoutPerManifest"`
	FailFast           bool              `yaml:"failFast"`
	Env                map[string]string `yaml:"env"`
}

package ports

import "go.trai.ch/deptree/internal/core/domain"

// ConfigLoader defines the interface for loading resolver configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the configuration file starting at cwd. A missing file yields an empty config.
	Load(cwd string) (*domain.Config, error)
	// LoadFile reads the configuration from an explicit path.
	LoadFile(path string) (*domain.Config, error)
}

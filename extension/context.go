// context.go defines the Context interface for extension access to sift
// internals.
//
// Extensions receive the Context during Init(), not at construction, so
// they can register commands before the service exists.

package extension

import (
	"github.com/jpl-au/sift/internal/config"
	"github.com/jpl-au/sift/internal/service"
	"go.uber.org/zap"
)

// Context provides extensions controlled access to shared resources.
type Context interface {
	// Service returns the search service.
	Service() service.Service

	// Config returns the loaded configuration, including entity definitions.
	Config() *config.Config

	// Logger returns the diagnostic logger.
	Logger() *zap.Logger
}

// extContext implements Context.
type extContext struct {
	svc service.Service
	cfg *config.Config
	log *zap.Logger
}

// NewContext creates a new extension context. A nil logger is replaced by
// a no-op logger.
func NewContext(svc service.Service, cfg *config.Config, log *zap.Logger) Context {
	if log == nil {
		log = zap.NewNop()
	}
	return &extContext{
		svc: svc,
		cfg: cfg,
		log: log,
	}
}

// Service returns the search service.
func (c *extContext) Service() service.Service {
	return c.svc
}

// Config returns the loaded configuration.
func (c *extContext) Config() *config.Config {
	return c.cfg
}

// Logger returns the diagnostic logger.
func (c *extContext) Logger() *zap.Logger {
	return c.log
}

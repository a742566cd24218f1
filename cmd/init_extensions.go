/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Extensions register during init() but aren't initialised until first
// command execution. The service is created once and shared across all
// extensions via the Context.

package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/jpl-au/sift/extension"
	"github.com/jpl-au/sift/internal/config"
	"github.com/jpl-au/sift/internal/service"
)

// standaloneCommands lists commands that run without the search service.
// Built from bootstrap commands plus extension-declared standalone commands.
var standaloneCommands map[string]bool

// buildStandaloneCommands creates the set of commands that skip service
// initialisation. Bootstrap commands (init, guide, config) must work before
// a database or configuration exists; extensions add their own through
// extension.Standalone.
func buildStandaloneCommands() map[string]bool {
	cmds := map[string]bool{
		"init":       true,
		"guide":      true,
		"config":     true,
		"help":       true,
		"completion": true,
	}

	for _, name := range extension.StandaloneCommands() {
		cmds[name] = true
	}
	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	extService service.Service
	initOnce   sync.Once
	initErr    error
)

// initExtensions loads the configuration, opens the search service and
// injects both into every Initializable extension. Runs once per process.
func initExtensions(ctx context.Context) error {
	initOnce.Do(func() {
		if ctx == nil {
			ctx = context.Background()
		}

		cfg, err := LoadConfig()
		if err != nil {
			initErr = err
			return
		}
		if len(cfg.Entities) == 0 {
			initErr = fmt.Errorf("no entities configured (checked %s)\n\nRun: sift init --demo\n\nSee 'sift guide config' for the entity format", configSource(cfg))
			return
		}

		svc, err := service.New(ctx, cfg)
		if err != nil {
			initErr = fmt.Errorf("opening database: %w", err)
			return
		}
		extService = svc

		extContext = extension.NewContext(svc, cfg, diag)

		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

func configSource(cfg *config.Config) string {
	if p := cfg.Path(); p != "" {
		return p
	}
	return ".sift/config.yaml and ~/.sift/config.yaml"
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}

		standaloneCommands = buildStandaloneCommands()
	})
}

// Package catalog holds the searchable entities of a configuration.
//
// Each entity is normalised into a relevance.Config on first use and the
// result, or the error, is kept for the life of the catalog. Concurrent
// first use normalises once.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/jpl-au/sift/internal/config"
	"github.com/jpl-au/sift/internal/relevance"
)

// ErrUnknownEntity is returned for an entity name not in the catalog.
var ErrUnknownEntity = errors.New("unknown entity")

type entry struct {
	def  config.Entity
	once sync.Once
	cfg  *relevance.Config
	err  error
}

// Catalog maps entity names to their search configurations.
type Catalog struct {
	entries map[string]*entry
	names   []string
}

// New builds a catalog from entity definitions. Nothing is validated until
// an entity is first used or Validate is called.
func New(entities map[string]config.Entity) *Catalog {
	c := &Catalog{entries: make(map[string]*entry, len(entities))}
	for name, def := range entities {
		c.entries[name] = &entry{def: def}
		c.names = append(c.names, name)
	}
	slices.Sort(c.names)
	return c
}

// Names returns the entity names in sorted order.
func (c *Catalog) Names() []string {
	return slices.Clone(c.names)
}

// Definition returns the raw definition of an entity.
func (c *Catalog) Definition(name string) (config.Entity, error) {
	e, ok := c.entries[name]
	if !ok {
		return config.Entity{}, unknown(name)
	}
	return e.def, nil
}

// Config returns the normalised configuration of an entity.
func (c *Catalog) Config(name string) (*relevance.Config, error) {
	e, ok := c.entries[name]
	if !ok {
		return nil, unknown(name)
	}
	e.once.Do(func() {
		e.cfg, e.err = Normalise(name, e.def)
	})
	return e.cfg, e.err
}

// Validate normalises every entity and reports all failures.
func (c *Catalog) Validate() error {
	var errs []error
	for _, name := range c.names {
		if _, err := c.Config(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Normalise converts an entity definition into a relevance.Config.
func Normalise(name string, def config.Entity) (*relevance.Config, error) {
	entity := relevance.Entity{Table: def.TableName(name), Key: def.KeyName()}

	cols := make([]relevance.Column, len(def.Columns))
	for i, w := range def.Columns {
		cols[i] = relevance.Column{Name: w.Column, Weight: w.Weight}
	}
	joins := make([]relevance.Join, len(def.Joins))
	for i, j := range def.Joins {
		joins[i] = relevance.Join{Table: j.Table, LocalKey: j.LocalKey, ForeignKey: j.ForeignKey}
	}

	cfg, err := relevance.Configure(entity, cols, joins)
	if err != nil {
		return nil, fmt.Errorf("entity %s: %w", name, err)
	}
	return cfg, nil
}

func unknown(name string) error {
	return fmt.Errorf("%w: %s", ErrUnknownEntity, name)
}

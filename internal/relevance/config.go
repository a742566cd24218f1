// config.go implements the configuration normaliser.
//
// A Config is built once per entity, validated completely, and never
// modified afterwards. All accessors return copies so a shared Config can
// serve concurrent searches without locking.

package relevance

import (
	"math"
	"slices"
	"strings"

	"github.com/jpl-au/sift/internal/validate"
)

// Entity identifies the primary table searched and its identity key, used
// to collapse rows duplicated by one-to-many joins.
type Entity struct {
	Table string
	Key   string
}

// Column is a searchable column with its relative importance.
type Column struct {
	Table  string // empty means the entity table
	Name   string // bare name, or "table.name" when Table is empty
	Weight float64
}

// Qualified returns "table.name".
func (c Column) Qualified() string {
	return c.Table + "." + c.Name
}

// Join brings a related table into the search. LocalKey and ForeignKey are
// fully qualified columns compared for equality.
type Join struct {
	Table      string
	LocalKey   string
	ForeignKey string
}

// On returns the join condition.
func (j Join) On() string {
	return j.LocalKey + " = " + j.ForeignKey
}

// Config is a normalised, immutable search configuration.
type Config struct {
	entity  Entity
	columns []Column
	joins   []Join // every declared join
	used    []Join // joins referenced by at least one column, declaration order
}

// Configure validates and normalises a configuration. Column order is
// preserved and defines the order of terms in the relevance expression.
func Configure(entity Entity, columns []Column, joins []Join) (*Config, error) {
	if err := validate.Identifier(entity.Table); err != nil {
		return nil, configErr("entity.table", "invalid table name", err)
	}
	if err := validate.Identifier(entity.Key); err != nil {
		return nil, configErr("entity.key", "invalid key name", err)
	}
	if len(columns) == 0 {
		return nil, configErr("columns", "at least one searchable column is required", nil)
	}

	cfg := &Config{entity: entity}

	joined := make(map[string]bool, len(joins))
	for _, j := range joins {
		nj, err := normaliseJoin(entity, j)
		if err != nil {
			return nil, err
		}
		if joined[nj.Table] {
			return nil, configErr("joins."+nj.Table, "duplicate join", nil)
		}
		joined[nj.Table] = true
		cfg.joins = append(cfg.joins, nj)
	}

	seen := make(map[string]bool, len(columns))
	referenced := make(map[string]bool)
	for _, c := range columns {
		nc, err := normaliseColumn(entity, c)
		if err != nil {
			return nil, err
		}
		q := nc.Qualified()
		if seen[q] {
			return nil, configErr("columns."+q, "duplicate column", nil)
		}
		seen[q] = true

		if nc.Table != entity.Table {
			if !joined[nc.Table] {
				return nil, configErr("columns."+q, "table "+nc.Table+" has no join", nil)
			}
			referenced[nc.Table] = true
		}
		cfg.columns = append(cfg.columns, nc)
	}

	for _, j := range cfg.joins {
		if referenced[j.Table] {
			cfg.used = append(cfg.used, j)
		}
	}
	return cfg, nil
}

// ConfigureMap builds a Config from loosely structured input: column
// references mapped to weights and joined tables mapped to their
// [localKey, foreignKey] pair. Keys are processed in sorted order so
// identical input always yields an identical Config.
func ConfigureMap(entity Entity, columns map[string]float64, joins map[string][2]string) (*Config, error) {
	cols := make([]Column, 0, len(columns))
	for _, name := range sortedKeys(columns) {
		cols = append(cols, Column{Name: name, Weight: columns[name]})
	}
	js := make([]Join, 0, len(joins))
	for _, table := range sortedKeys(joins) {
		keys := joins[table]
		js = append(js, Join{Table: table, LocalKey: keys[0], ForeignKey: keys[1]})
	}
	return Configure(entity, cols, js)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func normaliseColumn(entity Entity, c Column) (Column, error) {
	field := "columns." + c.Name
	if c.Table != "" {
		field = "columns." + c.Table + "." + c.Name
	}

	table, name, err := validate.Qualified(c.Name)
	if err != nil {
		return Column{}, configErr(field, "invalid column name", err)
	}
	switch {
	case c.Table != "" && table != "" && c.Table != table:
		return Column{}, configErr(field, "conflicting table prefix", nil)
	case c.Table != "":
		if err := validate.Identifier(c.Table); err != nil {
			return Column{}, configErr(field, "invalid table name", err)
		}
		table = c.Table
	case table == "":
		table = entity.Table
	}

	if math.IsNaN(c.Weight) || math.IsInf(c.Weight, 0) {
		return Column{}, configErr(field, "weight must be a finite number", nil)
	}
	if c.Weight <= 0 {
		return Column{}, configErr(field, "weight must be positive", nil)
	}
	return Column{Table: table, Name: name, Weight: c.Weight}, nil
}

func normaliseJoin(entity Entity, j Join) (Join, error) {
	field := "joins." + j.Table
	if err := validate.Identifier(j.Table); err != nil {
		return Join{}, configErr(field, "invalid table name", err)
	}
	if j.Table == entity.Table {
		return Join{}, configErr(field, "cannot join the entity table to itself", nil)
	}

	localTable, _, err := validate.Qualified(j.LocalKey)
	if err != nil {
		return Join{}, configErr(field, "invalid local key", err)
	}
	foreignTable, _, err := validate.Qualified(j.ForeignKey)
	if err != nil {
		return Join{}, configErr(field, "invalid foreign key", err)
	}
	if localTable == "" || foreignTable == "" {
		return Join{}, configErr(field, "join keys must be table-qualified", nil)
	}
	if localTable != j.Table && foreignTable != j.Table {
		return Join{}, configErr(field, "neither join key references "+j.Table, nil)
	}
	return j, nil
}

// Entity returns the primary entity.
func (c *Config) Entity() Entity { return c.entity }

// Columns returns the searchable columns in configuration order.
func (c *Config) Columns() []Column { return slices.Clone(c.columns) }

// Joins returns every declared join.
func (c *Config) Joins() []Join { return slices.Clone(c.joins) }

// ActiveJoins returns the joins referenced by at least one column. Only
// these are applied to a search query.
func (c *Config) ActiveJoins() []Join { return slices.Clone(c.used) }

// TotalWeight returns the sum of all column weights.
func (c *Config) TotalWeight() float64 {
	var sum float64
	for _, col := range c.columns {
		sum += col.Weight
	}
	return sum
}

// DefaultThreshold is the mean column weight scaled by the substring
// multiplier: a lone substring hit on an average column does not pass,
// a whole-word hit does. Joined columns count like any other.
func (c *Config) DefaultThreshold() float64 {
	return c.TotalWeight() / float64(len(c.columns)) * SubstringMultiplier
}

// String renders the configuration as "table.col:weight" pairs.
func (c *Config) String() string {
	parts := make([]string, len(c.columns))
	for i, col := range c.columns {
		parts[i] = col.Qualified() + ":" + formatNumber(col.Weight)
	}
	return c.entity.Table + "(" + c.entity.Key + ") [" + strings.Join(parts, ", ") + "]"
}

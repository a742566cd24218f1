package relevance

// Builder is a fluent builder for Config values.
type Builder struct {
	entity  Entity
	columns []Column
	joins   []Join
}

// New starts building a configuration for the given table and identity key.
func New(table, key string) *Builder {
	return &Builder{entity: Entity{Table: table, Key: key}}
}

// Column adds a searchable column. name may be bare or "table.column".
func (b *Builder) Column(name string, weight float64) *Builder {
	b.columns = append(b.columns, Column{Name: name, Weight: weight})
	return b
}

// Join declares how to reach a related table.
func (b *Builder) Join(table, localKey, foreignKey string) *Builder {
	b.joins = append(b.joins, Join{Table: table, LocalKey: localKey, ForeignKey: foreignKey})
	return b
}

// Build validates and returns the configuration.
func (b *Builder) Build() (*Config, error) {
	return Configure(b.entity, b.columns, b.joins)
}

// MustBuild calls Build and panics on error.
func (b *Builder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil {
		panic(err)
	}
	return cfg
}

// entity.go defines searchable entity definitions.
//
// Columns and joins are YAML mappings, but mapping order matters: column
// order fixes the order of terms in the generated SQL. Both types decode
// from the yaml.Node so document order survives, and encode back the same
// way.

package config

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Entity describes one searchable table.
type Entity struct {
	Table   string  `yaml:"table,omitempty"` // defaults to the entity name
	Key     string  `yaml:"key,omitempty"`   // defaults to "id"
	Columns Weights `yaml:"columns"`
	Joins   Joins   `yaml:"joins,omitempty"`
}

// TableName returns the table searched for an entity called name.
func (e Entity) TableName(name string) string {
	if e.Table == "" {
		return name
	}
	return e.Table
}

// KeyName returns the identity key (defaults to "id").
func (e Entity) KeyName() string {
	if e.Key == "" {
		return DefaultKey
	}
	return e.Key
}

// Weight is one searchable column and its weight.
type Weight struct {
	Column string
	Weight float64
}

// Weights is an ordered "column: weight" mapping.
type Weights []Weight

// UnmarshalYAML implements yaml.Unmarshaler.
func (w *Weights) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: columns must be a mapping of column to weight", ErrInvalidValue, node.Line)
	}
	out := make(Weights, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		var weight float64
		if err := v.Decode(&weight); err != nil {
			return fmt.Errorf("%w: line %d: weight for %s must be a number, got %q", ErrInvalidValue, v.Line, k.Value, v.Value)
		}
		out = append(out, Weight{Column: k.Value, Weight: weight})
	}
	*w = out
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (w Weights) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range w {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: c.Column},
			&yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(c.Weight, 'f', -1, 64)},
		)
	}
	return node, nil
}

// JoinKeys links a related table to the entity.
type JoinKeys struct {
	Table      string
	LocalKey   string
	ForeignKey string
}

// Joins is an ordered "table: [localKey, foreignKey]" mapping.
type Joins []JoinKeys

// UnmarshalYAML implements yaml.Unmarshaler.
func (j *Joins) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: joins must be a mapping of table to [local_key, foreign_key]", ErrInvalidValue, node.Line)
	}
	out := make(Joins, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		var keys []string
		if err := v.Decode(&keys); err != nil || len(keys) != 2 {
			return fmt.Errorf("%w: line %d: join %s must be a [local_key, foreign_key] pair", ErrInvalidValue, v.Line, k.Value)
		}
		out = append(out, JoinKeys{Table: k.Value, LocalKey: keys[0], ForeignKey: keys[1]})
	}
	*j = out
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (j Joins) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, jk := range j {
		pair := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		pair.Content = []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: jk.LocalKey},
			{Kind: yaml.ScalarNode, Value: jk.ForeignKey},
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: jk.Table}, pair)
	}
	return node, nil
}

// Demo returns the configuration written by "sift init --demo": a users
// entity searched by name, bio, email and the titles of its posts.
func Demo(dsn string) *Config {
	limit := DefaultLimit
	return &Config{
		Database: Database{Driver: DefaultDriver, DSN: dsn},
		Search:   Search{Limit: &limit},
		Entities: map[string]Entity{
			"users": {
				Table: "users",
				Key:   "id",
				Columns: Weights{
					{Column: "first_name", Weight: 10},
					{Column: "last_name", Weight: 10},
					{Column: "bio", Weight: 2},
					{Column: "email", Weight: 5},
					{Column: "posts.title", Weight: 3},
				},
				Joins: Joins{{Table: "posts", LocalKey: "users.id", ForeignKey: "posts.user_id"}},
			},
			"posts": {
				Columns: Weights{
					{Column: "title", Weight: 10},
					{Column: "body", Weight: 1},
				},
			},
		},
	}
}

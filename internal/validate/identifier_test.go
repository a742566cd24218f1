package validate_test

import (
	"strings"
	"testing"

	"github.com/jpl-au/sift/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifier(t *testing.T) {
	valid := []string{"users", "first_name", "_private", "Col2", "a"}
	for _, name := range valid {
		assert.NoError(t, validate.Identifier(name), name)
	}

	invalid := []string{"", "2fast", "first name", "users;drop", `"quoted"`, "a-b", "naïve"}
	for _, name := range invalid {
		assert.ErrorIs(t, validate.Identifier(name), validate.ErrInvalidIdentifier, name)
	}
}

func TestIdentifier_TooLong(t *testing.T) {
	name := strings.Repeat("x", validate.MaxIdentifier+1)
	assert.ErrorIs(t, validate.Identifier(name), validate.ErrIdentifierTooLong)
	assert.NoError(t, validate.Identifier(name[:validate.MaxIdentifier]))
}

func TestQualified(t *testing.T) {
	tests := []struct {
		ref         string
		wantTable   string
		wantColumn  string
		wantInvalid bool
	}{
		{ref: "first_name", wantColumn: "first_name"},
		{ref: "posts.title", wantTable: "posts", wantColumn: "title"},
		{ref: "a.b.c", wantInvalid: true},
		{ref: "posts.", wantInvalid: true},
		{ref: ".title", wantInvalid: true},
		{ref: "posts.ti tle", wantInvalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			table, column, err := validate.Qualified(tt.ref)
			if tt.wantInvalid {
				require.ErrorIs(t, err, validate.ErrInvalidIdentifier)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTable, table)
			assert.Equal(t, tt.wantColumn, column)
		})
	}
}

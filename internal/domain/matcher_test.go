package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "modepack.dev/pkg/modepack/internal/model"
)

func catalogOf(names ...string) *LevelCatalog {
	levels := make([]m.Level, 0, len(names))
	for _, name := range names {
		levels = append(levels, m.Level{Name: name, Origin: m.OriginBuiltin})
	}

	return NewLevelCatalog(levels)
}

func TestResolveLevels(t *testing.T) {
	catalog := catalogOf("L1", "L2", "Lx", "Foo", "Foo_1", "Foo_2", "Foobar", "Straße_1")

	tests := []struct {
		name string
		rule m.SubregionDefinition
		want []string
	}{
		{
			name: "contains filter matches in catalog order",
			rule: m.SubregionDefinition{LevelNameContains: strPtr("L")},
			want: []string{"L1", "L2", "Lx"},
		},
		{
			name: "contains filter ignores case",
			rule: m.SubregionDefinition{LevelNameContains: strPtr("l")},
			want: []string{"L1", "L2", "Lx"},
		},
		{
			name: "contains filter folds unicode",
			rule: m.SubregionDefinition{LevelNameContains: strPtr("STRASSE")},
			want: []string{"Straße_1"},
		},
		{
			name: "contains filter with blacklist",
			rule: m.SubregionDefinition{LevelNameContains: strPtr("L"), Blacklist: []string{"L2"}},
			want: []string{"L1", "Lx"},
		},
		{
			name: "explicit list with blacklist",
			rule: m.SubregionDefinition{Levels: []string{"L1", "Lx"}, Blacklist: []string{"Lx"}},
			want: []string{"L1"},
		},
		{
			name: "explicit name pulls in its family",
			rule: m.SubregionDefinition{Levels: []string{"Foo"}},
			want: []string{"Foo", "Foo_1", "Foo_2"},
		},
		{
			name: "explicit list keeps duplicates",
			rule: m.SubregionDefinition{Levels: []string{"L1", "L1"}},
			want: []string{"L1", "L1"},
		},
		{
			name: "unknown names resolve to nothing",
			rule: m.SubregionDefinition{Levels: []string{"Nope", "L2"}},
			want: []string{"L2"},
		},
		{
			name: "empty list",
			rule: m.SubregionDefinition{Levels: []string{}},
			want: []string{},
		},
		{
			name: "filter takes precedence over list",
			rule: m.SubregionDefinition{LevelNameContains: strPtr("bar"), Levels: []string{"L1"}},
			want: []string{"Foobar"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			levels, err := ResolveLevels(tt.rule, catalog)
			require.NoError(t, err)
			assert.Equal(t, tt.want, levelNames(levels))
		})
	}
}

func TestResolveLevels_NoRule(t *testing.T) {
	_, err := ResolveLevels(m.SubregionDefinition{Name: "Empty", Blacklist: []string{"L1"}}, catalogOf("L1"))
	require.ErrorIs(t, err, ErrNoMatchingRule)
	assert.Contains(t, err.Error(), "Empty")
}

func TestLevelCatalog_FirstEntryWins(t *testing.T) {
	catalog := NewLevelCatalog([]m.Level{{Name: "Foo", Scene: "builtin", Origin: m.OriginBuiltin}})

	added := catalog.Merge([]m.Level{
		{Name: "Foo", Scene: "bundle", Origin: m.OriginBundle},
		{Name: "Bar", Scene: "bundle", Origin: m.OriginBundle},
	})

	assert.Equal(t, 1, added)
	assert.Equal(t, 2, catalog.Len())

	foo, ok := catalog.Lookup("Foo")
	require.True(t, ok)
	assert.Equal(t, m.OriginBuiltin, foo.Origin)
	assert.Equal(t, "builtin", foo.Scene)

	_, ok = catalog.Lookup("Baz")
	assert.False(t, ok)
}

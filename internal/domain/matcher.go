package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	m "modepack.dev/pkg/modepack/internal/model"
)

// LevelIndex is the catalog view the matcher resolves against.
type LevelIndex interface {
	Levels() []m.Level
	FindLevelsByName(name string) []m.Level
}

// ResolveLevels applies a subregion's selection rule to the index.
//
// A levelNameContains filter selects every level whose name contains it under
// Unicode case folding, in catalog order. Otherwise each entry of levels is
// resolved on its own and the results are concatenated without
// de-duplication. Blacklisted names are removed from the result either way.
func ResolveLevels(rule m.SubregionDefinition, index LevelIndex) ([]m.Level, error) {
	var levels []m.Level

	switch {
	case rule.LevelNameContains != nil:
		levels = filterContains(index.Levels(), *rule.LevelNameContains)
	case rule.Levels != nil:
		levels = make([]m.Level, 0, len(rule.Levels))
		for _, name := range rule.Levels {
			levels = append(levels, index.FindLevelsByName(name)...)
		}
	default:
		return nil, fmt.Errorf("%w for subregion %q", ErrNoMatchingRule, rule.Name)
	}

	return subtractBlacklist(levels, rule.Blacklist), nil
}

func filterContains(levels []m.Level, filter string) []m.Level {
	folder := cases.Fold()
	needle := folder.String(filter)

	matches := make([]m.Level, 0, len(levels))

	for _, level := range levels {
		if strings.Contains(folder.String(level.Name), needle) {
			matches = append(matches, level)
		}
	}

	return matches
}

func subtractBlacklist(levels []m.Level, blacklist []string) []m.Level {
	if len(blacklist) == 0 {
		return levels
	}

	banned := make(map[string]struct{}, len(blacklist))
	for _, name := range blacklist {
		banned[name] = struct{}{}
	}

	kept := levels[:0:0]

	for _, level := range levels {
		if _, ok := banned[level.Name]; ok {
			continue
		}

		kept = append(kept, level)
	}

	return kept
}

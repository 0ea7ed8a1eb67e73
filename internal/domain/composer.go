package domain

import (
	"fmt"

	m "modepack.dev/pkg/modepack/internal/model"
)

// ComposeRegions resolves region definitions into Region trees, in order.
// Subregions without a usable rule are left out and reported as warnings;
// their region keeps the remaining subregions.
func ComposeRegions(defs []m.RegionDefinition, index LevelIndex) ([]m.Region, []error) {
	regions := make([]m.Region, 0, len(defs))

	var warnings []error

	for _, def := range defs {
		region := m.Region{
			Name:       def.Name,
			Subregions: make([]m.Subregion, 0, len(def.Subregions)),
		}

		for _, subDef := range def.Subregions {
			levels, err := ResolveLevels(subDef, index)
			if err != nil {
				warnings = append(warnings, fmt.Errorf("%w: region %q: %w", ErrResolution, def.Name, err))
				continue
			}

			region.Subregions = append(region.Subregions, m.Subregion{
				Name:   subDef.Name,
				Levels: levels,
			})
		}

		regions = append(regions, region)
	}

	return regions, warnings
}

package model

// LevelOrigin records where a Level came from.
type LevelOrigin string

const (
	// OriginBuiltin marks levels from the pre-existing catalog.
	OriginBuiltin LevelOrigin = "builtin"
	// OriginBundle marks levels loaded from an asset bundle.
	OriginBundle LevelOrigin = "bundle"
)

// Level is an opaque playable unit keyed by a unique name.
type Level struct {
	Name   string
	Scene  string
	Origin LevelOrigin
	Bundle string // bundle name for OriginBundle levels
}

// Sprite is a decoded image ready for presentation.
type Sprite struct {
	Path   Path
	Format string
	Width  int
	Height int
}

// BundleLevel is a level entry of a bundle manifest.
type BundleLevel struct {
	Name  string `yaml:"name"`
	Scene string `yaml:"scene"`
}

// BundleSubregion lists the bundle levels of a ready-made subregion.
type BundleSubregion struct {
	Name   string   `yaml:"subregionName"`
	Levels []string `yaml:"levels"`
}

// BundleRegion is a ready-made region shipped inside a bundle.
type BundleRegion struct {
	Name       string            `yaml:"regionName"`
	Subregions []BundleSubregion `yaml:"subregions"`
}

// BundleGamemode is a ready-made gamemode shipped inside a bundle.
type BundleGamemode struct {
	Name       string         `yaml:"gamemodeName"`
	IntroText  string         `yaml:"introText"`
	IsEndless  bool           `yaml:"isEndless"`
	HasPerks   bool           `yaml:"hasPerks"`
	HasRevives bool           `yaml:"hasRevives"`
	GameType   string         `yaml:"gameType"`
	CapsuleArt string         `yaml:"capsuleArt"`
	ScreenArt  string         `yaml:"screenArt"`
	Regions    []BundleRegion `yaml:"regions"`
}

// BundleManifest is the decoded content of an asset bundle.
type BundleManifest struct {
	Name      string           `yaml:"name"`
	Levels    []BundleLevel    `yaml:"levels"`
	Gamemodes []BundleGamemode `yaml:"gamemodes"`
}

// BundleHandle is a loaded asset bundle.
type BundleHandle struct {
	Path     Path
	Dir      Path // directory bundle-relative art is resolved against
	Manifest BundleManifest
}

// Subregion is a named, resolved list of levels.
type Subregion struct {
	Name   string
	Levels []Level
}

// Region is a named, ordered list of resolved subregions.
type Region struct {
	Name       string
	Subregions []Subregion
}

// Gamemode is the terminal content object handed to the presentation layer.
// Values are built by the assembler and never mutated afterwards.
type Gamemode struct {
	Name          string
	Author        *string
	Category      string
	IntroText     string
	IsEndless     bool
	HasPerks      bool
	HasRevives    bool
	CapsuleArt    *Sprite
	ScreenArt     *Sprite
	ScreenArtPool []Sprite // slideshow pool when several screen arts were given
	GameType      string
	Regions       []Region
}

// LevelCount returns the number of level references across all regions.
func (g Gamemode) LevelCount() int {
	count := 0

	for _, region := range g.Regions {
		for _, sub := range region.Subregions {
			count += len(sub.Levels)
		}
	}

	return count
}

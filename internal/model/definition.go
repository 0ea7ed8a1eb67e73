package model

// DefaultGameType is applied when a definition leaves gameType unset.
const DefaultGameType = "single"

// DefaultCategory groups gamemodes that do not name a category.
const DefaultCategory = "default"

// GamemodeDefinition is the Standard schema of config.json.
// Optional strings are pointers: nil means "not provided".
type GamemodeDefinition struct {
	Name                string             `json:"gamemodeName"`
	Author              *string            `json:"author,omitempty"`
	Category            *string            `json:"category,omitempty"`
	IntroText           string             `json:"introText"`
	IsEndless           bool               `json:"isEndless"`
	HasPerks            bool               `json:"hasPerks"`
	HasRevives          bool               `json:"hasRevives"`
	CapsuleIcon         string             `json:"capsuleIcon"`
	ScreenIcon          string             `json:"screenIcon"`
	AssetBundleFileName *string            `json:"assetBundleFileName,omitempty"`
	GameType            *string            `json:"gameType,omitempty"`
	Regions             []RegionDefinition `json:"regions"`
}

// PremadeGamemodeDefinition is the Premade schema of config.json.
type PremadeGamemodeDefinition struct {
	AssetBundle string   `json:"assetBundle"`
	Name        string   `json:"gamemodeName"`
	Author      *string  `json:"author,omitempty"`
	Category    *string  `json:"category,omitempty"`
	CapsuleArts []string `json:"capsuleArts,omitempty"`
	ScreenArts  []string `json:"screenArts,omitempty"`
}

// RegionDefinition groups subregions under a name.
type RegionDefinition struct {
	Name       string                `json:"regionName"`
	Subregions []SubregionDefinition `json:"subregions"`
}

// SubregionDefinition carries exactly one level-selection rule: a substring
// filter over the whole catalog, or an explicit list of names with an
// optional blacklist.
type SubregionDefinition struct {
	Name              string   `json:"subregionName"`
	LevelNameContains *string  `json:"levelNameContains,omitempty"`
	Levels            []string `json:"levels,omitempty"`
	Blacklist         []string `json:"blacklist,omitempty"`
}

// StringOr dereferences s, falling back to def when it was not provided.
func StringOr(s *string, def string) string {
	if s == nil {
		return def
	}

	return *s
}

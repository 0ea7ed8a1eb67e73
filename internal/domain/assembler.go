package domain

import (
	"fmt"

	m "modepack.dev/pkg/modepack/internal/model"
)

// GamemodeOption sets an optional field of a Gamemode under construction.
type GamemodeOption func(*m.Gamemode)

// WithAuthor credits the gamemode's author.
func WithAuthor(author *string) GamemodeOption {
	return func(g *m.Gamemode) {
		if author == nil {
			g.Author = nil
			return
		}

		value := *author
		g.Author = &value
	}
}

// WithCategory groups the gamemode. An empty category keeps the default.
func WithCategory(category string) GamemodeOption {
	return func(g *m.Gamemode) {
		if category != "" {
			g.Category = category
		}
	}
}

// WithIntroText sets the text shown before the first level.
func WithIntroText(text string) GamemodeOption {
	return func(g *m.Gamemode) {
		g.IntroText = text
	}
}

// WithEndless marks the gamemode as endless.
func WithEndless(endless bool) GamemodeOption {
	return func(g *m.Gamemode) {
		g.IsEndless = endless
	}
}

// WithPerks enables perks.
func WithPerks(perks bool) GamemodeOption {
	return func(g *m.Gamemode) {
		g.HasPerks = perks
	}
}

// WithRevives enables revives.
func WithRevives(revives bool) GamemodeOption {
	return func(g *m.Gamemode) {
		g.HasRevives = revives
	}
}

// WithCapsuleArt sets the art shown on the gamemode's selection capsule.
func WithCapsuleArt(sprite *m.Sprite) GamemodeOption {
	return func(g *m.Gamemode) {
		g.CapsuleArt = copySprite(sprite)
	}
}

// WithScreenArt sets the art shown on the gamemode's loading screen.
func WithScreenArt(sprite *m.Sprite) GamemodeOption {
	return func(g *m.Gamemode) {
		g.ScreenArt = copySprite(sprite)
	}
}

// WithScreenArtPool sets the sprites the loading screen cycles through.
func WithScreenArtPool(pool []m.Sprite) GamemodeOption {
	return func(g *m.Gamemode) {
		if len(pool) == 0 {
			g.ScreenArtPool = nil
			return
		}

		g.ScreenArtPool = append([]m.Sprite(nil), pool...)
	}
}

// WithGameType overrides the default "single" game type. An empty value keeps
// the default.
func WithGameType(gameType string) GamemodeOption {
	return func(g *m.Gamemode) {
		if gameType != "" {
			g.GameType = gameType
		}
	}
}

// NewGamemode builds an immutable Gamemode. The name and regions are required;
// everything else comes from options. The result shares no slices with regions.
func NewGamemode(name string, regions []m.Region, opts ...GamemodeOption) (m.Gamemode, error) {
	if name == "" {
		return m.Gamemode{}, fmt.Errorf("%w: gamemode name is empty", ErrAssembly)
	}

	if regions == nil {
		return m.Gamemode{}, fmt.Errorf("%w: gamemode %q has no regions", ErrAssembly, name)
	}

	g := m.Gamemode{
		Name:     name,
		Category: m.DefaultCategory,
		GameType: m.DefaultGameType,
	}

	for _, opt := range opts {
		opt(&g)
	}

	g.Regions = copyRegions(regions)

	return g, nil
}

func copyRegions(regions []m.Region) []m.Region {
	out := make([]m.Region, len(regions))

	for i, region := range regions {
		subs := make([]m.Subregion, len(region.Subregions))

		for j, sub := range region.Subregions {
			subs[j] = m.Subregion{
				Name:   sub.Name,
				Levels: append(make([]m.Level, 0, len(sub.Levels)), sub.Levels...),
			}
		}

		out[i] = m.Region{Name: region.Name, Subregions: subs}
	}

	return out
}

func copySprite(sprite *m.Sprite) *m.Sprite {
	if sprite == nil {
		return nil
	}

	c := *sprite

	return &c
}

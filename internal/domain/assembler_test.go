package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "modepack.dev/pkg/modepack/internal/model"
)

func sampleRegions() []m.Region {
	return []m.Region{{
		Name: "Forest",
		Subregions: []m.Subregion{{
			Name:   "Woods",
			Levels: []m.Level{{Name: "Forest_1"}, {Name: "Forest_2"}},
		}},
	}}
}

func TestNewGamemode_Defaults(t *testing.T) {
	gm, err := NewGamemode("Marathon", sampleRegions())
	require.NoError(t, err)

	assert.Equal(t, "Marathon", gm.Name)
	assert.Equal(t, m.DefaultCategory, gm.Category)
	assert.Equal(t, m.DefaultGameType, gm.GameType)
	assert.Nil(t, gm.Author)
	assert.Nil(t, gm.CapsuleArt)
	assert.Nil(t, gm.ScreenArt)
	assert.False(t, gm.IsEndless)
	assert.Equal(t, 2, gm.LevelCount())
}

func TestNewGamemode_Options(t *testing.T) {
	author := "someone"
	capsule := &m.Sprite{Path: "capsule.png", Width: 4, Height: 2}
	pool := []m.Sprite{{Path: "a.png"}, {Path: "b.png"}}

	gm, err := NewGamemode("Rush", []m.Region{},
		WithAuthor(&author),
		WithCategory("arcade"),
		WithIntroText("go"),
		WithEndless(true),
		WithPerks(true),
		WithRevives(true),
		WithCapsuleArt(capsule),
		WithScreenArt(&pool[1]),
		WithScreenArtPool(pool),
		WithGameType("coop"),
	)
	require.NoError(t, err)

	require.NotNil(t, gm.Author)
	assert.Equal(t, "someone", *gm.Author)
	assert.Equal(t, "arcade", gm.Category)
	assert.Equal(t, "go", gm.IntroText)
	assert.True(t, gm.IsEndless)
	assert.True(t, gm.HasPerks)
	assert.True(t, gm.HasRevives)
	assert.Equal(t, "coop", gm.GameType)
	assert.Equal(t, *capsule, *gm.CapsuleArt)
	assert.Equal(t, m.Path("b.png"), gm.ScreenArt.Path)
	assert.Len(t, gm.ScreenArtPool, 2)
	assert.NotNil(t, gm.Regions)
	assert.Empty(t, gm.Regions)

	author = "changed"
	capsule.Width = 100
	pool[0].Path = "changed.png"

	assert.Equal(t, "someone", *gm.Author)
	assert.Equal(t, 4, gm.CapsuleArt.Width)
	assert.Equal(t, m.Path("a.png"), gm.ScreenArtPool[0].Path)
}

func TestNewGamemode_EmptyOptionValuesKeepDefaults(t *testing.T) {
	gm, err := NewGamemode("X", []m.Region{}, WithCategory(""), WithGameType(""))
	require.NoError(t, err)

	assert.Equal(t, m.DefaultCategory, gm.Category)
	assert.Equal(t, m.DefaultGameType, gm.GameType)
}

func TestNewGamemode_Invalid(t *testing.T) {
	_, err := NewGamemode("", sampleRegions())
	require.ErrorIs(t, err, ErrAssembly)

	_, err = NewGamemode("X", nil)
	require.ErrorIs(t, err, ErrAssembly)
}

func TestNewGamemode_SharesNoBackingArrays(t *testing.T) {
	regions := sampleRegions()

	gm, err := NewGamemode("Marathon", regions)
	require.NoError(t, err)

	regions[0].Name = "changed"
	regions[0].Subregions[0].Name = "changed"
	regions[0].Subregions[0].Levels[0].Name = "changed"

	assert.Equal(t, "Forest", gm.Regions[0].Name)
	assert.Equal(t, "Woods", gm.Regions[0].Subregions[0].Name)
	assert.Equal(t, "Forest_1", gm.Regions[0].Subregions[0].Levels[0].Name)
}

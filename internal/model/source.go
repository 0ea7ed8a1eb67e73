// Package model defines the data structures shared by the content pipeline.
package model

import (
	"bytes"
	"encoding/json"
	"path/filepath"
)

// Path represents a file system path.
type Path string

// ConfigFileName is the document every Source directory must carry.
const ConfigFileName = "config.json"

// AssetsDirName is the per-Source folder holding icons and bundles.
const AssetsDirName = "Assets"

// File represents a file inside a Source.
type File struct {
	ShortPath Path
	FullPath  Path
}

// Source is one candidate content pack: a directory with a config document
// and an optional assets folder.
type Source struct {
	Root   Path // discovery root the Source was found under
	Dir    Path // full path of the Source directory
	Name   string
	Config File
}

// AssetsDir returns the folder icons and bundles are resolved against.
func (s Source) AssetsDir() Path {
	return Path(filepath.Join(string(s.Dir), AssetsDirName))
}

// ConfigKind is the schema a config document conforms to.
type ConfigKind int

const (
	// KindUnknown matches no registered schema.
	KindUnknown ConfigKind = iota
	// KindStandard describes regions resolved against the level catalog.
	KindStandard
	// KindPremade points at a bundle that ships a ready-made gamemode.
	KindPremade
)

func (k ConfigKind) String() string {
	switch k {
	case KindStandard:
		return "standard"
	case KindPremade:
		return "premade"
	case KindUnknown:
		return "unknown"
	}

	return "unknown"
}

// PhaseCount is the number of progress phases a Source of this kind registers.
func (k ConfigKind) PhaseCount() int {
	switch k {
	case KindStandard:
		return 2
	case KindPremade:
		return 3
	case KindUnknown:
		return 0
	}

	return 0
}

// Document is a parsed but untyped config: the raw bytes plus the top-level
// keys of the JSON object.
type Document struct {
	Raw  []byte
	Keys map[string]json.RawMessage
}

// Has reports whether key is present with a non-null value.
func (d Document) Has(key string) bool {
	raw, ok := d.Keys[key]
	if !ok {
		return false
	}

	return !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

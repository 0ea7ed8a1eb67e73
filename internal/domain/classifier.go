package domain

import (
	"encoding/json"
	"fmt"

	m "modepack.dev/pkg/modepack/internal/model"
)

// Keys that discriminate the config schemas.
const (
	keyAssetBundle  = "assetBundle"
	keyGamemodeName = "gamemodeName"
	keyRegions      = "regions"
)

// ParseDocument parses a config file into an untyped document. The top level
// must be a JSON object.
func ParseDocument(data []byte) (m.Document, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return m.Document{}, fmt.Errorf("%w: %w", ErrSourceParse, err)
	}

	if keys == nil {
		return m.Document{}, fmt.Errorf("%w: document is null", ErrSourceParse)
	}

	return m.Document{Raw: data, Keys: keys}, nil
}

// Classify decides which schema a document conforms to by key presence alone:
// assetBundle together with gamemodeName is Premade, otherwise regions is
// Standard, otherwise Unknown.
func Classify(doc m.Document) m.ConfigKind {
	if doc.Has(keyAssetBundle) && doc.Has(keyGamemodeName) {
		return m.KindPremade
	}

	if doc.Has(keyRegions) {
		return m.KindStandard
	}

	return m.KindUnknown
}

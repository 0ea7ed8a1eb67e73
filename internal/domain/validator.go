package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"modepack.dev/pkg/modepack/internal/adapter"
	m "modepack.dev/pkg/modepack/internal/model"
)

// Validator turns classified documents into typed, field-checked definitions.
type Validator interface {
	ValidateStandard(ctx context.Context, source m.Source, doc m.Document) (m.GamemodeDefinition, error)
	ValidatePremade(ctx context.Context, source m.Source, doc m.Document) (m.PremadeGamemodeDefinition, error)
}

type validator struct {
	fs adapter.SourceFSAdapter
}

// NewValidator creates a Validator that checks referenced files through fsAdapter.
func NewValidator(fsAdapter adapter.SourceFSAdapter) Validator {
	return &validator{fs: fsAdapter}
}

func (v *validator) ValidateStandard(ctx context.Context, source m.Source, doc m.Document) (m.GamemodeDefinition, error) {
	var def m.GamemodeDefinition
	if err := decodeDefinition(doc, &def); err != nil {
		return m.GamemodeDefinition{}, fmt.Errorf("%w: invalid standard config: %w", ErrSchemaValidation, err)
	}

	if def.Regions == nil {
		return m.GamemodeDefinition{}, fmt.Errorf("%w: standard config is missing regions", ErrSchemaValidation)
	}

	missing := missingFields(
		requiredField{"gamemodeName", def.Name},
		requiredField{"capsuleIcon", def.CapsuleIcon},
		requiredField{"screenIcon", def.ScreenIcon},
	)
	if len(missing) > 0 {
		return m.GamemodeDefinition{}, fmt.Errorf("%w: standard config is missing %s", ErrSchemaValidation, strings.Join(missing, ", "))
	}

	if def.AssetBundleFileName != nil {
		bundlePath := v.fs.JoinPath(ctx, string(source.AssetsDir()), *def.AssetBundleFileName)
		if err := v.requireFile(ctx, bundlePath); err != nil {
			return m.GamemodeDefinition{}, fmt.Errorf("%w: standard config asset bundle: %w", ErrSchemaValidation, err)
		}
	}

	return def, nil
}

func (v *validator) ValidatePremade(ctx context.Context, source m.Source, doc m.Document) (m.PremadeGamemodeDefinition, error) {
	var def m.PremadeGamemodeDefinition
	if err := decodeDefinition(doc, &def); err != nil {
		return m.PremadeGamemodeDefinition{}, fmt.Errorf("%w: invalid premade config: %w", ErrSchemaValidation, err)
	}

	missing := missingFields(
		requiredField{"assetBundle", def.AssetBundle},
		requiredField{"gamemodeName", def.Name},
	)
	if len(missing) > 0 {
		return m.PremadeGamemodeDefinition{}, fmt.Errorf("%w: premade config is missing %s", ErrSchemaValidation, strings.Join(missing, ", "))
	}

	info, err := v.fs.FileInfo(ctx, source.AssetsDir())
	if err != nil || !info.IsDir() {
		return m.PremadeGamemodeDefinition{}, fmt.Errorf("%w: premade assets folder %s is missing", ErrSchemaValidation, source.AssetsDir())
	}

	return def, nil
}

func (v *validator) requireFile(ctx context.Context, path m.Path) error {
	info, err := v.fs.FileInfo(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s does not exist", path)
		}

		return err
	}

	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	return nil
}

// decodeDefinition decodes the document into target. Unknown fields are
// ignored; type mismatches fail.
func decodeDefinition(doc m.Document, target any) error {
	return json.Unmarshal(doc.Raw, target)
}

type requiredField struct {
	name  string
	value string
}

// missingFields lists the names of required fields left empty.
func missingFields(fields ...requiredField) []string {
	var missing []string

	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}

	return missing
}

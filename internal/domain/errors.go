package domain

import "errors"

// Source-level failures. Each one ends the processing of a single Source and
// never affects its siblings.
var (
	// ErrSourceIO marks an unreadable config document or asset.
	ErrSourceIO = errors.New("source io error")
	// ErrSourceParse marks a config document that is not a JSON object.
	ErrSourceParse = errors.New("source parse error")
	// ErrSchemaValidation marks a missing required field or referenced file.
	ErrSchemaValidation = errors.New("schema validation error")
	// ErrAssembly marks a Gamemode that violates the assembler's invariants.
	ErrAssembly = errors.New("assembly error")
	// ErrUnknownConfig marks a document that matches no schema.
	ErrUnknownConfig = errors.New("unknown config kind")
	// ErrRegistration marks a Gamemode the presentation sink refused.
	ErrRegistration = errors.New("registration error")
)

// Element-level warnings: the offending element is dropped and the Source
// keeps going.
var (
	// ErrResolution wraps every dropped subregion or unloadable art path.
	ErrResolution = errors.New("resolution warning")
	// ErrNoMatchingRule marks a subregion with neither a filter nor a level list.
	ErrNoMatchingRule = errors.New("no matching rule")
)

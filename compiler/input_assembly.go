package compiler

import (
	"encoding/hex"

	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"

	"github.com/HemeraProtocol/seismic-verify/compiler/types"
)

// NamedSource pairs a virtual file path with the source text stored under it.
type NamedSource struct {
	// Path is the virtual file path the source is registered under.
	Path string

	// Content is the literal source text.
	Content string
}

// AssembleInput constructs a standard JSON compiler input from the given named sources, applying
// the config's language and settings. Source order is preserved so repeated runs hand the driver
// a byte-identical input. No validation of source text is performed; syntactic and semantic
// validity is entirely the compiler's concern.
func AssembleInput(config *Config, sources ...NamedSource) (*types.SolcInput, error) {
	if len(sources) == 0 {
		return nil, errors.New("could not assemble compiler input: no sources provided")
	}

	sourceMap := types.NewSourceMap()
	for _, source := range sources {
		if source.Path == "" {
			return nil, errors.New("could not assemble compiler input: a source has an empty path")
		}
		if _, exists := sourceMap.Get(source.Path); exists {
			return nil, errors.Errorf("could not assemble compiler input: duplicate source path '%s'", source.Path)
		}

		unit := types.SourceUnit{Content: source.Content}
		if config.HashSources {
			unit.Keccak256 = hashSource(source.Content)
		}
		sourceMap.Set(source.Path, unit)
	}

	return &types.SolcInput{
		Language: config.Language,
		Sources:  sourceMap,
		Settings: config.settings(),
	}, nil
}

// hashSource computes the 0x-prefixed keccak-256 hash of the given source text, in the form the
// standard JSON schema expects for a source unit's keccak256 field.
func hashSource(content string) string {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write([]byte(content))
	return "0x" + hex.EncodeToString(hasher.Sum(nil))
}

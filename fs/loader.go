package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/diffcard"
	"gopkg.in/yaml.v3"
)

// Compile-time interface verification.
var _ diffcard.CardLoader = (*Loader)(nil)

// StdinSource is the source name that reads a JSON card from standard input.
const StdinSource = "-"

// Loader loads cards from JSON, YAML, or TOML files, chosen by extension.
// Loaded cards are validated.
type Loader struct {
	stdin io.Reader
}

// NewLoader creates a Loader that reads StdinSource from stdin.
func NewLoader(stdin io.Reader) *Loader {
	return &Loader{stdin: stdin}
}

// Load reads and validates the card at source.
func (l *Loader) Load(ctx context.Context, source string) (*diffcard.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	var err error
	if source == StdinSource {
		if l.stdin == nil {
			return nil, fmt.Errorf("read card from stdin: no stdin")
		}
		data, err = io.ReadAll(l.stdin)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("read card %s: %w", source, err)
	}

	card, err := DecodeCard(formatOf(source), data)
	if err != nil {
		return nil, fmt.Errorf("decode card %s: %w", source, err)
	}
	if err := card.Validate(); err != nil {
		return nil, fmt.Errorf("card %s: %w", source, err)
	}
	return card, nil
}

// Card file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

func formatOf(source string) string {
	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// DecodeCard decodes a card in the given format.
func DecodeCard(format string, data []byte) (*diffcard.Card, error) {
	var card diffcard.Card
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &card)
	case FormatYAML:
		err = yaml.Unmarshal(data, &card)
	case FormatTOML:
		err = toml.Unmarshal(data, &card)
	default:
		return nil, fmt.Errorf("unsupported card format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

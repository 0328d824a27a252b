// Package vocab loads the three tier dictionaries the tokenizer is built
// from. The persisted format is one JSON object per tier mapping token
// text to integer id, using the reference file names kokler.json (roots),
// ekler.json (suffixes) and bpe_tokenler.json (BPE fallback). The engine
// itself never touches the filesystem; it receives the parsed maps.
package vocab

import (
	"encoding/json"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/trnlp/turkish-tokenizer/tokenizer"
)

// Tier dictionary file names, as distributed by the reference vocabulary.
const (
	RootsFile    = "kokler.json"
	SuffixesFile = "ekler.json"
	BPEFile      = "bpe_tokenler.json"
)

// Dictionaries holds the parsed tier dictionaries.
type Dictionaries struct {
	Roots    map[string]int
	Suffixes map[string]int
	BPE      map[string]int
}

// LoadDir loads the three tier dictionaries from their standard file
// names under dir.
func LoadDir(dir string) (*Dictionaries, error) {
	return LoadFiles(
		filepath.Join(dir, RootsFile),
		filepath.Join(dir, SuffixesFile),
		filepath.Join(dir, BPEFile),
	)
}

// LoadFiles loads the three tier dictionaries from explicit paths.
func LoadFiles(rootsPath, suffixesPath, bpePath string) (*Dictionaries, error) {
	roots, err := parseFile(rootsPath)
	if err != nil {
		return nil, err
	}
	suffixes, err := parseFile(suffixesPath)
	if err != nil {
		return nil, err
	}
	bpe, err := parseFile(bpePath)
	if err != nil {
		return nil, err
	}
	klog.V(1).Infof("loaded tier dictionaries: %d roots, %d suffixes, %d bpe entries",
		len(roots), len(suffixes), len(bpe))
	return &Dictionaries{Roots: roots, Suffixes: suffixes, BPE: bpe}, nil
}

// Parse parses one tier dictionary from JSON content and validates it
// before the engine sees it: entries must be valid UTF-8 and ids
// non-negative.
func Parse(content []byte) (map[string]int, error) {
	var entries map[string]int
	if err := json.Unmarshal(content, &entries); err != nil {
		return nil, errors.Wrapf(err, "failed to parse tier dictionary")
	}
	for text, id := range entries {
		if !utf8.ValidString(text) {
			return nil, errors.Errorf("dictionary entry %q is not valid UTF-8", text)
		}
		if id < 0 {
			return nil, errors.Errorf("dictionary entry %q has negative id %d", text, id)
		}
	}
	return entries, nil
}

func parseFile(path string) (map[string]int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read tier dictionary %q", path)
	}
	entries, err := Parse(content)
	if err != nil {
		return nil, errors.WithMessagef(err, "in %q", path)
	}
	return entries, nil
}

// Tokenizer builds the engine from the loaded dictionaries.
func (d *Dictionaries) Tokenizer() (*tokenizer.Tokenizer, error) {
	return tokenizer.New(d.Roots, d.Suffixes, d.BPE)
}

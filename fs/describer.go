package fs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/diffcard"
)

// Compile-time interface verification.
var _ diffcard.Describer = (*Describer)(nil)

// Describer wraps a Describer with file-based caching keyed by the
// comparison's names and contents.
type Describer struct {
	inner    diffcard.Describer
	cacheDir string
	salt     string
}

// NewDescriber creates a new caching describer. salt separates cache entries
// that should not be shared, such as those of different models.
func NewDescriber(inner diffcard.Describer, cacheDir, salt string) *Describer {
	return &Describer{
		inner:    inner,
		cacheDir: cacheDir,
		salt:     salt,
	}
}

type cachedDescription struct {
	Description string `json:"description"`
}

// Describe returns a cached description or delegates to the inner describer.
func (d *Describer) Describe(ctx context.Context, c diffcard.Comparison) (string, error) {
	hash := d.hashComparison(c)

	if cached, err := d.loadFromCache(hash); err == nil {
		return cached, nil
	}

	desc, err := d.inner.Describe(ctx, c)
	if err != nil {
		return "", err
	}

	// Store in cache (best-effort)
	_ = d.saveToCache(hash, desc)

	return desc, nil
}

func (d *Describer) hashComparison(c diffcard.Comparison) string {
	data, _ := json.Marshal(struct {
		Salt    string `json:"salt"`
		OldName string `json:"old_name"`
		Old     string `json:"old"`
		NewName string `json:"new_name"`
		New     string `json:"new"`
	}{d.salt, c.Old.Name, c.Old.Content, c.New.Name, c.New.Content})
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (d *Describer) cachePath(hash string) string {
	return filepath.Join(d.cacheDir, "descriptions", hash+".json")
}

func (d *Describer) loadFromCache(hash string) (string, error) {
	data, err := os.ReadFile(d.cachePath(hash))
	if err != nil {
		return "", err
	}

	var entry cachedDescription
	if err := json.Unmarshal(data, &entry); err != nil {
		return "", err
	}
	return entry.Description, nil
}

func (d *Describer) saveToCache(hash, desc string) error {
	path := d.cachePath(hash)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.Marshal(cachedDescription{Description: desc})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

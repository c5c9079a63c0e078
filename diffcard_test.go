package diffcard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/diffcard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComparison_Key(t *testing.T) {
	t.Parallel()

	t.Run("uses old name when ID is empty", func(t *testing.T) {
		t.Parallel()

		c := diffcard.Comparison{
			Old: diffcard.CodeFile{Name: "A"},
			New: diffcard.CodeFile{Name: "A2"},
		}

		assert.Equal(t, "A", c.Key())
	})

	t.Run("prefers explicit ID", func(t *testing.T) {
		t.Parallel()

		c := diffcard.Comparison{
			ID:  "pair-1",
			Old: diffcard.CodeFile{Name: "A"},
		}

		assert.Equal(t, "pair-1", c.Key())
		assert.Equal(t, "A", c.Label())
	})
}

func TestCard_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a single comparison", func(t *testing.T) {
		t.Parallel()

		card := &diffcard.Card{
			Comparisons: []diffcard.Comparison{{Old: diffcard.CodeFile{Name: "A"}}},
		}

		assert.NoError(t, card.Validate())
	})

	t.Run("rejects empty card", func(t *testing.T) {
		t.Parallel()

		card := &diffcard.Card{Link: "https://example.com/pr/1"}

		assert.ErrorIs(t, card.Validate(), diffcard.ErrEmptyCard)
	})

	t.Run("rejects nil card", func(t *testing.T) {
		t.Parallel()

		var card *diffcard.Card

		assert.ErrorIs(t, card.Validate(), diffcard.ErrEmptyCard)
	})

	t.Run("rejects duplicate keys", func(t *testing.T) {
		t.Parallel()

		card := &diffcard.Card{
			Comparisons: []diffcard.Comparison{
				{Old: diffcard.CodeFile{Name: "foo.ts"}},
				{Old: diffcard.CodeFile{Name: "bar.ts"}},
				{Old: diffcard.CodeFile{Name: "foo.ts"}},
			},
		}

		err := card.Validate()

		require.ErrorIs(t, err, diffcard.ErrDuplicateKey)
		assert.Contains(t, err.Error(), "foo.ts")
	})

	t.Run("explicit IDs disambiguate equal names", func(t *testing.T) {
		t.Parallel()

		card := &diffcard.Card{
			Comparisons: []diffcard.Comparison{
				{ID: "1", Old: diffcard.CodeFile{Name: "foo.ts"}},
				{ID: "2", Old: diffcard.CodeFile{Name: "foo.ts"}},
			},
		}

		assert.NoError(t, card.Validate())
	})
}

func TestCardFromJobs(t *testing.T) {
	t.Parallel()

	t.Run("pairs git content with job output", func(t *testing.T) {
		t.Parallel()

		jobs := []diffcard.RefactorJob{
			{Path: "src/a.js", NewContent: "const a = 2\n", Comments: "Bump a"},
			{Path: "src/b.js", NewContent: "let b\n", Comments: "Use let"},
		}
		var requested []string
		card, err := diffcard.CardFromJobs(context.Background(), jobs, "https://example.com/pr/7",
			func(_ context.Context, path string) (string, error) {
				requested = append(requested, path)
				return "old " + path, nil
			})

		require.NoError(t, err)
		assert.Equal(t, []string{"src/a.js", "src/b.js"}, requested)
		assert.Equal(t, "https://example.com/pr/7", card.Link)
		require.Len(t, card.Comparisons, 2)
		assert.Equal(t, "src/a.js", card.Comparisons[0].Key())
		assert.Equal(t, "old src/a.js", card.Comparisons[0].Old.Content)
		assert.Equal(t, "const a = 2\n", card.Comparisons[0].New.Content)
		assert.Equal(t, "Bump a", card.Comparisons[0].Old.Description)
	})

	t.Run("returns ErrEmptyCard for no jobs", func(t *testing.T) {
		t.Parallel()

		_, err := diffcard.CardFromJobs(context.Background(), nil, "", nil)

		assert.ErrorIs(t, err, diffcard.ErrEmptyCard)
	})

	t.Run("propagates content errors", func(t *testing.T) {
		t.Parallel()

		readErr := errors.New("no such path")
		_, err := diffcard.CardFromJobs(context.Background(),
			[]diffcard.RefactorJob{{Path: "x"}}, "",
			func(context.Context, string) (string, error) { return "", readErr })

		assert.ErrorIs(t, err, readErr)
	})
}

func TestFileDiff_Stats(t *testing.T) {
	t.Parallel()

	file := diffcard.FileDiff{
		Hunks: []diffcard.Hunk{
			{
				Lines: []diffcard.Line{
					{Type: diffcard.LineContext},
					{Type: diffcard.LineDeleted},
					{Type: diffcard.LineAdded},
					{Type: diffcard.LineAdded},
				},
			},
			{
				Lines: []diffcard.Line{
					{Type: diffcard.LineDeleted},
				},
			},
		},
	}

	added, deleted := file.Stats()

	assert.Equal(t, 2, added)
	assert.Equal(t, 2, deleted)
}

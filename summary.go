package diffcard

import "strings"

// Summary holds the aggregate numbers shown in the card footer.
type Summary struct {
	FileCount  int // Number of comparisons
	TotalLines int // Lines of new content across all comparisons
}

// LineCount returns the number of newline-delimited segments in s.
// A trailing newline yields a trailing empty segment, and the empty
// string counts as one line.
func LineCount(s string) int {
	return strings.Count(s, "\n") + 1
}

// Summarize computes the summary of a comparison list.
func Summarize(comparisons []Comparison) Summary {
	total := 0
	for _, c := range comparisons {
		total += LineCount(c.New.Content)
	}
	return Summary{
		FileCount:  len(comparisons),
		TotalLines: total,
	}
}

// SummaryMemo caches a Summary for one comparison slice.
// The cache key is the slice identity (backing array and length), so the
// summary is computed again only when a different slice is passed in.
// A SummaryMemo is not safe for concurrent use.
type SummaryMemo struct {
	first   *Comparison
	length  int
	valid   bool
	summary Summary
}

// Summary returns the cached summary, computing it if comparisons is not
// the slice seen last time.
func (m *SummaryMemo) Summary(comparisons []Comparison) Summary {
	var first *Comparison
	if len(comparisons) > 0 {
		first = &comparisons[0]
	}
	if m.valid && m.first == first && m.length == len(comparisons) {
		return m.summary
	}
	m.first = first
	m.length = len(comparisons)
	m.summary = Summarize(comparisons)
	m.valid = true
	return m.summary
}

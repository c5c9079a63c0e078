package diffcard

// Tabs tracks which comparison of a card is active.
// Exactly one key is active at any time after construction.
type Tabs struct {
	comparisons []Comparison
	active      string
}

// NewTabs returns tabs over comparisons with the first one active.
// It returns ErrEmptyCard when comparisons is empty.
func NewTabs(comparisons []Comparison) (*Tabs, error) {
	if len(comparisons) == 0 {
		return nil, ErrEmptyCard
	}
	return &Tabs{
		comparisons: comparisons,
		active:      comparisons[0].Key(),
	}, nil
}

// Comparisons returns the comparisons the tabs were built from.
func (t *Tabs) Comparisons() []Comparison {
	return t.comparisons
}

// Len returns the number of tabs.
func (t *Tabs) Len() int {
	return len(t.comparisons)
}

// ActiveKey returns the key of the active comparison.
func (t *Tabs) ActiveKey() string {
	return t.active
}

// ActiveIndex returns the position of the active comparison, or -1 if no
// comparison carries the active key.
func (t *Tabs) ActiveIndex() int {
	return t.indexOf(t.active)
}

// Active returns the first comparison whose key equals the active key.
// The boolean is false when nothing matches; callers render nothing then.
func (t *Tabs) Active() (Comparison, bool) {
	i := t.ActiveIndex()
	if i < 0 {
		return Comparison{}, false
	}
	return t.comparisons[i], true
}

// Select makes key active. It reports false and leaves the selection alone
// when no comparison has that key.
func (t *Tabs) Select(key string) bool {
	if t.indexOf(key) < 0 {
		return false
	}
	t.active = key
	return true
}

// SelectIndex makes the comparison at position i active.
func (t *Tabs) SelectIndex(i int) bool {
	if i < 0 || i >= len(t.comparisons) {
		return false
	}
	t.active = t.comparisons[i].Key()
	return true
}

// Next activates the following tab, wrapping around at the end.
func (t *Tabs) Next() {
	t.SelectIndex((t.ActiveIndex() + 1) % len(t.comparisons))
}

// Prev activates the preceding tab, wrapping around at the start.
func (t *Tabs) Prev() {
	i := t.ActiveIndex() - 1
	if i < 0 {
		i = len(t.comparisons) - 1
	}
	t.SelectIndex(i)
}

// Reset swaps in a new comparison list. The active key survives when the
// new list still contains it; otherwise the first comparison becomes active.
func (t *Tabs) Reset(comparisons []Comparison) error {
	if len(comparisons) == 0 {
		return ErrEmptyCard
	}
	t.comparisons = comparisons
	if t.indexOf(t.active) < 0 {
		t.active = comparisons[0].Key()
	}
	return nil
}

func (t *Tabs) indexOf(key string) int {
	for i, c := range t.comparisons {
		if c.Key() == key {
			return i
		}
	}
	return -1
}

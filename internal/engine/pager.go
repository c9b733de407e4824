package engine

// Pager exposes "show next N rows" semantics over an already-derived row
// set without recomputing the derivation. The cursor belongs to the view,
// not the data: callers reset it whenever the underlying rows are
// rebuilt.
type Pager struct {
	Shown int
	Step  int
}

// NewPager returns a pager with the given page size.
func NewPager(step int) *Pager {
	return &Pager{Step: step}
}

// Next returns the next page of rows and advances the cursor. An
// exhausted pager returns an empty slice and leaves the cursor unchanged.
func Next[T any](p *Pager, rows []T) []T {
	remain := len(rows) - p.Shown
	if remain <= 0 {
		return nil
	}
	take := p.Step
	if take > remain {
		take = remain
	}
	slice := rows[p.Shown : p.Shown+take]
	p.Shown += take
	return slice
}

// Remaining reports how many rows are left past the cursor.
func (p *Pager) Remaining(total int) int {
	if total <= p.Shown {
		return 0
	}
	return total - p.Shown
}

// Done reports whether everything has been shown; the UI disables its
// "load more" action on true.
func (p *Pager) Done(total int) bool {
	return p.Shown >= total
}

// Reset rewinds the cursor; called when criteria change or a new job
// loads.
func (p *Pager) Reset() {
	p.Shown = 0
}

package diag

// Bag is the ordered diagnostics collector of one compilation.
// Items keep discovery order; nothing in the pipeline sorts them.
type Bag struct {
	items   []Diagnostic
	max     int
	dropped int
}

// NewBag creates a collector holding at most max diagnostics; max <= 0 means unlimited.
func NewBag(max int) *Bag {
	capacity := max
	if capacity <= 0 || capacity > 64 {
		capacity = 16
	}
	return &Bag{
		items: make([]Diagnostic, 0, capacity),
		max:   max,
	}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена (достигнут лимит).
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Dropped returns how many diagnostics were rejected because of the limit.
func (b *Bag) Dropped() int {
	return b.dropped
}

// HasErrors возвращает true, если есть хотя бы одна диагностика с Severity >= Error
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// длина
func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice диагностик.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Count returns how many collected diagnostics carry code.
func (b *Bag) Count(code Code) int {
	n := 0
	for i := range b.items {
		if b.items[i].Code == code {
			n++
		}
	}
	return n
}

// Merge appends diagnostics from other, growing the limit to fit them.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if b.max > 0 {
		if total := len(b.items) + len(other.items); total > b.max {
			b.max = total
		}
	}
	b.items = append(b.items, other.items...)
	b.dropped += other.dropped
}

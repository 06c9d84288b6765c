package game

// Copy-on-write helpers. None of them write into the backing array of the
// slice they are given, so the previous World keeps its contents.

func appendCopy[T any](items []T, vals ...T) []T {
	out := make([]T, len(items), len(items)+len(vals))
	copy(out, items)
	return append(out, vals...)
}

// replaceFirst returns a copy of items with the first match passed through fn.
// The input slice is returned untouched when nothing matches.
func replaceFirst[T any](items []T, match func(T) bool, fn func(T) T) ([]T, bool) {
	for i, v := range items {
		if match(v) {
			out := make([]T, len(items))
			copy(out, items)
			out[i] = fn(v)
			return out, true
		}
	}
	return items, false
}

// removeAll returns a copy of items without the matching elements.
func removeAll[T any](items []T, match func(T) bool) ([]T, bool) {
	out := make([]T, 0, len(items))
	removed := false
	for _, v := range items {
		if match(v) {
			removed = true
			continue
		}
		out = append(out, v)
	}
	if !removed {
		return items, false
	}
	return out, true
}

func cloneOrEmpty[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func projectID(id string) func(Project) bool   { return func(p Project) bool { return p.ID == id } }
func employeeID(id string) func(Employee) bool { return func(e Employee) bool { return e.ID == id } }
func stockID(id string) func(Stock) bool       { return func(s Stock) bool { return s.ID == id } }
func holdingOf(id string) func(Holding) bool   { return func(h Holding) bool { return h.StockID == id } }

package warranty

// Common reconciles one attribute across a set of claim lines. It returns
// the shared value and true when every line that has the attribute set
// agrees on it; lines with a zero value are ignored. When the remaining
// values disagree, or no line has the attribute at all, it returns the
// zero value and false.
//
// Picking creation uses this to ensure a single shipment only groups lines
// with one destination and one counterparty.
func Common[L any, V comparable](lines []L, sel func(L) V) (V, bool) {
	var zero V
	var common V
	found := false
	for _, l := range lines {
		v := sel(l)
		if v == zero {
			continue
		}
		if !found {
			common = v
			found = true
			continue
		}
		if v != common {
			return zero, false
		}
	}
	if !found {
		return zero, false
	}
	return common, true
}

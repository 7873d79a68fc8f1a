package tensor

import "fmt"

// ReduceTo2D collapses a tensor of rank >= 2 to rank 2 for display by
// repeatedly taking index 0 along the leading axis. This is a deterministic
// first-slice policy, not sampling or aggregation, so repeated calls are
// reproducible and cheap.
//
// The boolean result reports whether any data was discarded; it is true
// exactly when the input rank exceeds 2. Rank 0 and rank 1 inputs are the
// caller's responsibility and are rejected here.
func ReduceTo2D(t Strings) (Strings, bool, error) {
	if t.Rank() < 2 {
		return Strings{}, false, fmt.Errorf("tensor: cannot reduce rank %d to 2-D", t.Rank())
	}
	truncated := t.Rank() > 2
	for t.Rank() > 2 {
		t = t.first()
	}
	return t, truncated, nil
}

package skipscan

// Index returns the position of the first occurrence of needle in b,
// or -1. Grounded on the teacher's simd/memmem.go rare-byte heuristic:
// scan for needle's last byte (cheap, usually distinctive enough) with
// IndexByte, then verify the full needle at each candidate.
func Index(b, needle []byte) int {
	switch {
	case len(needle) == 0:
		return 0
	case len(needle) == 1:
		return IndexByte(b, needle[0])
	case len(needle) > len(b):
		return -1
	}

	rareIdx := len(needle) - 1
	rare := needle[rareIdx]

	search := 0
	for {
		cand := IndexByte(b[search:], rare)
		if cand < 0 {
			return -1
		}
		cand += search

		start := cand - rareIdx
		if start >= 0 && start+len(needle) <= len(b) && equal(b[start:start+len(needle)], needle) {
			return start
		}
		search = cand + 1
		if search >= len(b) {
			return -1
		}
	}
}

func equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

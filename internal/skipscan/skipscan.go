package skipscan

// IndexByte returns the index of the first occurrence of c in b, or -1
// if c does not occur.
func IndexByte(b []byte, c byte) int {
	return indexByte(b, c)
}

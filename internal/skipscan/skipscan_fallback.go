//go:build !amd64

package skipscan

func indexByte(b []byte, c byte) int {
	return swarIndexByte(b, c)
}

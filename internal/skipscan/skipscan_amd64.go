//go:build amd64

package skipscan

import "golang.org/x/sys/cpu"

// indexByte dispatches to a wider, two-word-per-iteration scan when
// AVX2 is available (keeping the branch-free SWAR core busy over more
// bytes per loop without requiring assembly), falling back to the
// portable 8-byte scan otherwise.
func indexByte(b []byte, c byte) int {
	if cpu.X86.HasAVX2 {
		return wideIndexByte(b, c)
	}
	return swarIndexByte(b, c)
}

func wideIndexByte(b []byte, c byte) int {
	n := len(b)
	i := 0
	if n >= 16 {
		rep := uint64(c) * loMask
		for ; i+16 <= n; i += 16 {
			if mask := zeroByteMask(leUint64(b[i:]) ^ rep); mask != 0 {
				return i + trailingZeroByteIndex(mask)
			}
			if mask := zeroByteMask(leUint64(b[i+8:]) ^ rep); mask != 0 {
				return i + 8 + trailingZeroByteIndex(mask)
			}
		}
	}
	rest := swarIndexByte(b[i:], c)
	if rest < 0 {
		return -1
	}
	return i + rest
}

package decode

import "bytes"

// repetitionFraction returns the length of buf's longest trailing
// repeated run divided by len(buf) (0 for an empty buffer). This is the
// one multiplicative factor the repetition/cycle guard (§4.5 step 6)
// contributes to a candidate's score once its bytes are hypothetically
// appended: a high fraction (buf is mostly a repeating tail) pushes the
// candidate's score toward 0, discouraging runaway loops without ever
// being a separate stop condition of its own.
func repetitionFraction(buf []byte) float64 {
	n := len(buf)
	if n == 0 {
		return 0
	}
	best := longestTrailingRepeat(buf)
	return float64(best) / float64(n)
}

// longestTrailingRepeat finds the longest suffix of buf that consists of
// some block of length p (1 <= p <= n/2) repeated at least twice with no
// remainder. Returns 0 if no such suffix exists. Complexity O(n^2),
// acceptable since buf is one cycle's emitted output, not graph-sized.
func longestTrailingRepeat(buf []byte) int {
	n := len(buf)
	best := 0
	for p := 1; p <= n/2; p++ {
		ref := buf[n-p:]
		k := 1
		for (k+1)*p <= n {
			block := buf[n-(k+1)*p : n-k*p]
			if !bytes.Equal(block, ref) {
				break
			}
			k++
		}
		if k >= 2 {
			length := k * p
			if length > best {
				best = length
			}
		}
	}
	return best
}

package aoc

import "math/bits"

// bitset is a fixed-size set of dense node indices.
type bitset []uint64

func newBitset(n int) bitset {
	return make(bitset, (n+63)/64)
}

// fullBitset returns a set containing 0..n-1.
func fullBitset(n int) bitset {
	s := newBitset(n)
	for i := range s {
		s[i] = ^uint64(0)
	}
	if r := n % 64; r != 0 {
		s[len(s)-1] = 1<<r - 1
	}
	return s
}

func (s bitset) set(i int)   { s[i>>6] |= 1 << (i & 63) }
func (s bitset) clear(i int) { s[i>>6] &^= 1 << (i & 63) }

func (s bitset) has(i int) bool {
	return s[i>>6]&(1<<(i&63)) != 0
}

func (s bitset) empty() bool {
	for _, w := range s {
		if w != 0 {
			return false
		}
	}
	return true
}

func (s bitset) count() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}

func (s bitset) clone() bitset {
	out := make(bitset, len(s))
	copy(out, s)
	return out
}

// and returns a new set s ∩ t.
func (s bitset) and(t bitset) bitset {
	out := make(bitset, len(s))
	for i := range s {
		out[i] = s[i] & t[i]
	}
	return out
}

// andNot returns a new set s \ t.
func (s bitset) andNot(t bitset) bitset {
	out := make(bitset, len(s))
	for i := range s {
		out[i] = s[i] &^ t[i]
	}
	return out
}

// andCount returns |s ∩ t| without allocating.
func (s bitset) andCount(t bitset) int {
	n := 0
	for i := range s {
		n += bits.OnesCount64(s[i] & t[i])
	}
	return n
}

// clearThrough removes every index <= i.
func (s bitset) clearThrough(i int) {
	w := i >> 6
	for j := 0; j < w; j++ {
		s[j] = 0
	}
	if b := i & 63; b == 63 {
		s[w] = 0
	} else {
		s[w] &^= 1<<(b+1) - 1
	}
}

// forEach calls f for each member in ascending order until f returns false.
// Members of s removed by f are still visited if they come later in the
// current word; callers that mutate s should iterate over a clone.
func (s bitset) forEach(f func(i int) (keepGoing bool)) {
	for wi, w := range s {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			if !f(wi<<6 | b) {
				return
			}
			w &= w - 1
		}
	}
}

func (s bitset) members() []int {
	out := make([]int, 0, s.count())
	s.forEach(func(i int) bool {
		out = append(out, i)
		return true
	})
	return out
}

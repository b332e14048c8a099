package aoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitset(t *testing.T) {
	for _, n := range []int{0, 1, 63, 64, 65, 130} {
		full := fullBitset(n)
		assert.Equal(t, n, full.count(), "fullBitset(%d)", n)
		assert.Equal(t, n == 0, full.empty())
	}

	s := newBitset(130)
	assert.True(t, s.empty())
	for _, i := range []int{0, 5, 63, 64, 129} {
		s.set(i)
	}
	assert.Equal(t, []int{0, 5, 63, 64, 129}, s.members())
	assert.True(t, s.has(64))
	assert.False(t, s.has(65))

	c := s.clone()
	c.clear(5)
	assert.True(t, s.has(5))
	assert.False(t, c.has(5))

	u := newBitset(130)
	u.set(5)
	u.set(64)
	u.set(100)
	assert.Equal(t, []int{5, 64}, s.and(u).members())
	assert.Equal(t, []int{0, 63, 129}, s.andNot(u).members())
	assert.Equal(t, 2, s.andCount(u))

	var first []int
	s.forEach(func(i int) bool {
		first = append(first, i)
		return len(first) < 2
	})
	assert.Equal(t, []int{0, 5}, first)
}

func TestBitsetClearThrough(t *testing.T) {
	tests := []struct {
		through int
		want    []int
	}{
		{0, []int{5, 63, 64, 129}},
		{5, []int{63, 64, 129}},
		{63, []int{64, 129}},
		{64, []int{129}},
		{128, []int{129}},
		{129, []int{}},
	}
	for _, tt := range tests {
		s := newBitset(130)
		for _, i := range []int{0, 5, 63, 64, 129} {
			s.set(i)
		}
		s.clearThrough(tt.through)
		assert.Equal(t, tt.want, s.members(), "clearThrough(%d)", tt.through)
	}
}

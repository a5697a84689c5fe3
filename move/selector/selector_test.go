package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightforge/concord/model"
	"github.com/brightforge/concord/move"
)

type sol struct {
	values []int
	route  []int
}

func valueOf(s *sol, i int) (int, bool) {
	if s.values[i] < 0 {
		return 0, false
	}
	return s.values[i], true
}

func setValue(s *sol, i, v int, ok bool) {
	if !ok {
		s.values[i] = -1
		return
	}
	s.values[i] = v
}

func TestChangeSelectorEnumeratesProduct(t *testing.T) {
	s := &sol{values: []int{0, 1}}
	desc := &model.Descriptor[sol, int]{Index: 0, Name: "v", Get: valueOf, Set: setValue}
	cs := Change[sol, int]{Descriptor: desc, Count: func(s *sol) int { return len(s.values) }, Values: func(*sol) []int { return []int{0, 1, 2} }}

	assert.Equal(t, 6, cs.Size(s))
	it := cs.Iterator(s)
	count := 0
	for {
		_, ok := it.Next()
		if !ok {
			break
		}
		count++
	}
	assert.Equal(t, 6, count)
}

func TestSwapSelectorEnumeratesUpperTriangle(t *testing.T) {
	s := &sol{values: []int{0, 1, 2, 3}}
	desc := &model.Descriptor[sol, int]{Index: 0, Name: "v", Get: valueOf, Set: setValue}
	ss := Swap[sol, int]{Descriptor: desc, Count: func(s *sol) int { return len(s.values) }}

	require.Equal(t, 6, ss.Size(s))
	it := ss.Iterator(s)
	pairs := 0
	for {
		m, ok := it.Next()
		if !ok {
			break
		}
		sw := m.(move.Swap[sol, int])
		assert.Less(t, sw.EntityA, sw.EntityB)
		pairs++
	}
	assert.Equal(t, 6, pairs)
}

func TestTwoOptSizeMatchesCombinatorialCount(t *testing.T) {
	s := &sol{route: []int{1, 2, 3, 4}}
	desc := &model.ListDescriptor[sol, int]{
		Index: 0, Name: "route",
		Len: func(s *sol, e int) int { return len(s.route) },
	}
	to := TwoOpt[sol, int]{Descriptor: desc, Entity: 0}
	// n=4: (start,end) pairs with end>start+1, end<=4: (0,2)(0,3)(0,4)(1,3)(1,4)(2,4) = 6
	assert.Equal(t, 6, to.Size(s))
}

func TestKOptPatternCountForThreeOpt(t *testing.T) {
	patterns := reconnectionPatterns(3)
	assert.Equal(t, 11, len(patterns))
}

func TestUnionConcatenatesBothSelectors(t *testing.T) {
	s := &sol{values: []int{0, 1}}
	desc := &model.Descriptor[sol, int]{Index: 0, Name: "v", Get: valueOf, Set: setValue}
	a := Change[sol, int]{Descriptor: desc, Count: func(s *sol) int { return len(s.values) }, Values: func(*sol) []int { return []int{0} }}
	b := Change[sol, int]{Descriptor: desc, Count: func(s *sol) int { return len(s.values) }, Values: func(*sol) []int { return []int{1} }}
	u := Union[sol]{A: a, B: b}

	assert.Equal(t, 4, u.Size(s))
	it := u.Iterator(s)
	count := 0
	for {
		_, ok := it.Next()
		if !ok {
			break
		}
		count++
	}
	assert.Equal(t, 4, count)
}

func TestCachingMaterializesOnceUntilReset(t *testing.T) {
	s := &sol{values: []int{0, 1}}
	desc := &model.Descriptor[sol, int]{Index: 0, Name: "v", Get: valueOf, Set: setValue}
	calls := 0
	inner := countingSelector{desc: desc, s: s, calls: &calls}
	c := NewCaching[sol](inner)

	c.Iterator(s)
	c.Iterator(s)
	assert.Equal(t, 1, calls)

	c.Reset()
	c.Iterator(s)
	assert.Equal(t, 2, calls)
}

type countingSelector struct {
	desc  *model.Descriptor[sol, int]
	s     *sol
	calls *int
}

func (c countingSelector) Iterator(s *sol) Iterator[move.Move[sol]] {
	*c.calls++
	return newSliceIterator([]move.Move[sol]{move.Change[sol, int]{Descriptor: c.desc, Entity: 0, Value: 1}})
}

func (c countingSelector) Size(s *sol) int      { return 1 }
func (c countingSelector) IsNeverEnding() bool { return false }

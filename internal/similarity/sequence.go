package similarity

import (
	"cmp"
	"slices"
)

// autoJunkMinLen is the length of b starting from which popular elements are
// excluded from block seeding.
const autoJunkMinLen = 200

// Block is a run of Size equal elements starting at A in the first sequence
// and at B in the second one.
type Block struct {
	A    int
	B    int
	Size int
}

// SequenceMatcher finds matching blocks between two rune sequences using the
// Ratcliff/Obershelp longest-block recursion.
//
// It is not safe for concurrent use; create one per comparison.
type SequenceMatcher struct {
	a, b     []rune
	autoJunk bool
	b2j      map[rune][]int
	blocks   []Block
}

// NewSequenceMatcher prepares a matcher for a and b. With autoJunk set, runes
// that make up more than 1% of a long b are not used to seed blocks.
func NewSequenceMatcher(a, b []rune, autoJunk bool) *SequenceMatcher {
	m := &SequenceMatcher{a: a, b: b, autoJunk: autoJunk}
	m.indexB()
	return m
}

func (m *SequenceMatcher) indexB() {
	m.b2j = make(map[rune][]int)
	for j, r := range m.b {
		m.b2j[r] = append(m.b2j[r], j)
	}

	n := len(m.b)
	if !m.autoJunk || n < autoJunkMinLen {
		return
	}

	limit := n/100 + 1
	for r, idxs := range m.b2j {
		if len(idxs) > limit {
			delete(m.b2j, r)
		}
	}
}

// FindLongestMatch returns the longest block in a[alo:ahi] and b[blo:bhi].
// Among equally long blocks the one starting earliest in a wins, then the one
// starting earliest in b. Size is zero when nothing matches.
func (m *SequenceMatcher) FindLongestMatch(alo, ahi, blo, bhi int) Block {
	besti, bestj, bestSize := alo, blo, 0

	j2len := map[int]int{}
	for i := alo; i < ahi; i++ {
		next := map[int]int{}
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > bestSize {
				besti, bestj, bestSize = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}

	// Popular runes never seed a block but may still extend one.
	for besti > alo && bestj > blo && m.a[besti-1] == m.b[bestj-1] {
		besti, bestj, bestSize = besti-1, bestj-1, bestSize+1
	}
	for besti+bestSize < ahi && bestj+bestSize < bhi && m.a[besti+bestSize] == m.b[bestj+bestSize] {
		bestSize++
	}

	return Block{A: besti, B: bestj, Size: bestSize}
}

// MatchingBlocks returns the non-adjacent matching blocks ordered by position,
// terminated by the sentinel {len(a), len(b), 0}.
func (m *SequenceMatcher) MatchingBlocks() []Block {
	if m.blocks != nil {
		return m.blocks
	}

	la, lb := len(m.a), len(m.b)
	type span struct{ alo, ahi, blo, bhi int }

	queue := []span{{0, la, 0, lb}}
	var found []Block
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		x := m.FindLongestMatch(s.alo, s.ahi, s.blo, s.bhi)
		if x.Size == 0 {
			continue
		}
		found = append(found, x)
		if s.alo < x.A && s.blo < x.B {
			queue = append(queue, span{s.alo, x.A, s.blo, x.B})
		}
		if x.A+x.Size < s.ahi && x.B+x.Size < s.bhi {
			queue = append(queue, span{x.A + x.Size, s.ahi, x.B + x.Size, s.bhi})
		}
	}

	slices.SortFunc(found, func(x, y Block) int {
		if c := cmp.Compare(x.A, y.A); c != 0 {
			return c
		}
		if c := cmp.Compare(x.B, y.B); c != 0 {
			return c
		}
		return cmp.Compare(x.Size, y.Size)
	})

	blocks := make([]Block, 0, len(found)+1)
	var cur Block
	for _, x := range found {
		if cur.A+cur.Size == x.A && cur.B+cur.Size == x.B {
			cur.Size += x.Size
			continue
		}
		if cur.Size > 0 {
			blocks = append(blocks, cur)
		}
		cur = x
	}
	if cur.Size > 0 {
		blocks = append(blocks, cur)
	}
	blocks = append(blocks, Block{A: la, B: lb})

	m.blocks = blocks
	return blocks
}

// Ratio returns 2*M/T where M is the number of matched runes and T the total
// number of runes in both sequences. Two empty sequences are identical.
func (m *SequenceMatcher) Ratio() float64 {
	total := len(m.a) + len(m.b)
	if total == 0 {
		return 1.0
	}

	matched := 0
	for _, b := range m.MatchingBlocks() {
		matched += b.Size
	}

	return 2.0 * float64(matched) / float64(total)
}

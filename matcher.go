package blocksearch

import (
	"slices"
	"strings"
)

// AttrMatch controls how attribute values are compared.
// Attribute names are always compared exactly.
type AttrMatch int

const (
	// AttrExact compares attribute values case-sensitively.
	AttrExact AttrMatch = iota

	// AttrFold compares attribute values case-insensitively.
	AttrFold
)

// Strategy selects how child blocks are assigned to child elements.
type Strategy int

const (
	// StrategyGreedy pairs each child block, in order, with the first
	// remaining child element that satisfies it locally. Pairings are never
	// reconsidered, so a later failure deep in the tree is not retried
	// with a different element.
	StrategyGreedy Strategy = iota

	// StrategyBacktrack tries child elements in document order for each
	// child block and only keeps a pairing whose subtree fully matches,
	// undoing earlier pairings when later blocks cannot be placed.
	StrategyBacktrack
)

// Searcher finds matches for blocks in a document tree.
type Searcher interface {
	// Search returns the matches of each block in turn, each block's
	// matches in document order.
	Search(root Node, blocks ...*Block) []*Block
}

var _ Searcher = Matcher{}

// Matcher matches blocks against document nodes. The zero value uses
// exact attribute values and greedy child assignment.
//
// A Matcher holds no state between calls and never modifies its inputs,
// so it is safe for concurrent use as long as the blocks and the document
// are not modified concurrently.
type Matcher struct {
	Attrs    AttrMatch
	Strategy Strategy
}

// Satisfies reports whether n satisfies the tag, attribute and text
// constraints of b. Children of both are ignored.
func (m Matcher) Satisfies(n Node, b *Block) bool {
	if n == nil || b == nil || !n.IsElement() {
		return false
	}
	if !strings.EqualFold(n.TagName(), b.Tag) {
		return false
	}
	for key, want := range b.Attributes {
		got, ok := n.Attr(key)
		if !ok || !m.equalValue(got, want) {
			return false
		}
	}
	if strings.TrimSpace(b.Text) != "" && !strings.Contains(n.TextContent(), b.Text) {
		return false
	}
	return true
}

func (m Matcher) equalValue(got, want string) bool {
	if m.Attrs == AttrFold {
		return strings.EqualFold(got, want)
	}
	return got == want
}

// MatchAt matches the whole of b, descendants included, against the
// subtree rooted at n. It returns a new block bound to n, with every child
// bound to the element it matched, or nil if the subtree does not match.
func (m Matcher) MatchAt(n Node, b *Block) *Block {
	if !m.Satisfies(n, b) {
		return nil
	}
	if len(b.Children) == 0 {
		return b.bind(n, nil)
	}

	var children []*Block
	switch m.Strategy {
	case StrategyBacktrack:
		children = m.assignBacktrack(n, b.Children)
	default:
		children = m.assignGreedy(n, b.Children)
	}
	if children == nil {
		return nil
	}
	return b.bind(n, children)
}

// assignGreedy pairs blocks with n's child elements first-fit on local
// constraints only, then requires every pairing to match recursively.
func (m Matcher) assignGreedy(n Node, blocks []*Block) []*Block {
	type pairing struct {
		el    Node
		block *Block
	}

	pool := Elements(n)
	pairs := make([]pairing, 0, len(blocks))
	for _, child := range blocks {
		i := slices.IndexFunc(pool, func(el Node) bool {
			return m.Satisfies(el, child)
		})
		if i < 0 {
			return nil
		}
		pairs = append(pairs, pairing{el: pool[i], block: child})
		pool = slices.Delete(pool, i, i+1)
	}

	matched := make([]*Block, 0, len(pairs))
	for _, p := range pairs {
		res := m.MatchAt(p.el, p.block)
		if res == nil {
			return nil
		}
		matched = append(matched, res)
	}
	return matched
}

// assignBacktrack searches assignments of blocks to n's child elements in
// lexicographic order and returns the first one where every pairing
// matches recursively.
func (m Matcher) assignBacktrack(n Node, blocks []*Block) []*Block {
	pool := Elements(n)
	used := make([]bool, len(pool))
	memo := make(map[[2]int]*Block)
	matched := make([]*Block, len(blocks))

	var assign func(i int) bool
	assign = func(i int) bool {
		if i == len(blocks) {
			return true
		}
		for j, el := range pool {
			if used[j] {
				continue
			}
			key := [2]int{i, j}
			res, ok := memo[key]
			if !ok {
				res = m.MatchAt(el, blocks[i])
				memo[key] = res
			}
			if res == nil {
				continue
			}
			used[j] = true
			matched[i] = res
			if assign(i + 1) {
				return true
			}
			used[j] = false
		}
		return false
	}

	if !assign(0) {
		return nil
	}
	return matched
}

// SearchAll walks the tree rooted at root in preorder and returns every
// match of b. Matching continues below both matched and unmatched nodes,
// so nested matches are reported separately.
func (m Matcher) SearchAll(root Node, b *Block) []*Block {
	var matches []*Block
	walk(root, func(n Node) {
		if res := m.MatchAt(n, b); res != nil {
			matches = append(matches, res)
		}
	})
	return matches
}

// Search runs SearchAll once per block and concatenates the results in
// block order.
func (m Matcher) Search(root Node, blocks ...*Block) []*Block {
	var matches []*Block
	for _, b := range blocks {
		matches = append(matches, m.SearchAll(root, b)...)
	}
	return matches
}

// walk calls fn for every element in the tree rooted at n, in preorder.
func walk(n Node, fn func(Node)) {
	if n == nil {
		return
	}
	if n.IsElement() {
		fn(n)
	}
	for _, child := range n.Children() {
		walk(child, fn)
	}
}

// Satisfies reports whether n satisfies b's local constraints using the
// default Matcher.
func Satisfies(n Node, b *Block) bool {
	return Matcher{}.Satisfies(n, b)
}

// MatchAt matches b against the subtree rooted at n using the default Matcher.
func MatchAt(n Node, b *Block) *Block {
	return Matcher{}.MatchAt(n, b)
}

// SearchAll returns every match of b in the tree rooted at root using the
// default Matcher.
func SearchAll(root Node, b *Block) []*Block {
	return Matcher{}.SearchAll(root, b)
}

// SearchAllBlocks returns the matches of each block in turn using the
// default Matcher.
func SearchAllBlocks(root Node, blocks []*Block) []*Block {
	return Matcher{}.Search(root, blocks...)
}

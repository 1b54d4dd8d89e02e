package engine

// exactEntry is one link in a bucket chain. The trie node reference is
// non-owning: nodes belong to the trie and outlive every entry.
type exactEntry struct {
	word string
	node *trieNode
	next *exactEntry
}

// exactIndex maps a canonical word straight to its terminal trie node so the
// common exact-match case skips the O(len(word)) trie walk.
type exactIndex struct {
	buckets []*exactEntry
	entries int
}

func newExactIndex(buckets int) *exactIndex {
	return &exactIndex{buckets: make([]*exactEntry, buckets)}
}

// hash is djb2 reduced onto the bucket count. Deterministic and well
// distributed for short ASCII words.
func (x *exactIndex) hash(word string) int {
	h := uint64(5381)
	for i := 0; i < len(word); i++ {
		h = h<<5 + h + uint64(word[i])
	}
	return int(h % uint64(len(x.buckets)))
}

// insert records word -> node. Idempotent: a word already present keeps its
// existing entry, which necessarily points at the same node since trie
// structure is shared.
func (x *exactIndex) insert(word string, node *trieNode) {
	idx := x.hash(word)
	for curr := x.buckets[idx]; curr != nil; curr = curr.next {
		if curr.word == word {
			return
		}
	}
	x.buckets[idx] = &exactEntry{word: word, node: node, next: x.buckets[idx]}
	x.entries++
}

// lookup returns the terminal trie node for word, or nil when the word was
// never indexed.
func (x *exactIndex) lookup(word string) *trieNode {
	for curr := x.buckets[x.hash(word)]; curr != nil; curr = curr.next {
		if curr.word == word {
			return curr.node
		}
	}
	return nil
}

// len reports the number of distinct indexed words.
func (x *exactIndex) len() int {
	return x.entries
}

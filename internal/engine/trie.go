package engine

const alphabetSize = 26

// posting records how often a word occurs in a single document. A node's
// posting list holds at most one entry per document id.
type posting struct {
	docID     int
	frequency int
}

// trieNode is one letter of the prefix trie. Each node exclusively owns its
// children and its posting list; the whole trie is released as a unit when
// the engine is dropped.
type trieNode struct {
	children  [alphabetSize]*trieNode
	terminal  bool
	totalFreq int
	postings  []posting
}

// addOccurrence registers one occurrence of the node's word in docID,
// incrementing the existing posting if the document is already present.
// The aggregate frequency always equals the sum of the posting frequencies.
func (n *trieNode) addOccurrence(docID int) {
	for i := range n.postings {
		if n.postings[i].docID == docID {
			n.postings[i].frequency++
			n.totalFreq++
			return
		}
	}
	n.postings = append(n.postings, posting{docID: docID, frequency: 1})
	n.totalFreq++
}

// insert walks word letter by letter from n, creating nodes as needed, marks
// the final node terminal, and records the occurrence. Bytes outside a-z are
// skipped rather than failing the whole word; normalization guarantees none
// remain, but the trie never indexes out of range.
func (n *trieNode) insert(word string, docID int) *trieNode {
	curr := n
	for i := 0; i < len(word); i++ {
		idx := int(word[i]) - 'a'
		if idx < 0 || idx >= alphabetSize {
			continue
		}
		if curr.children[idx] == nil {
			curr.children[idx] = &trieNode{}
		}
		curr = curr.children[idx]
	}
	curr.terminal = true
	curr.addOccurrence(docID)
	return curr
}

// lookup walks word from n and returns the final node only if the full path
// exists and is terminal. A node that is merely a prefix of indexed words
// yields nil.
func (n *trieNode) lookup(word string) *trieNode {
	curr := n
	for i := 0; i < len(word); i++ {
		idx := int(word[i]) - 'a'
		if idx < 0 || idx >= alphabetSize {
			return nil
		}
		if curr.children[idx] == nil {
			return nil
		}
		curr = curr.children[idx]
	}
	if !curr.terminal {
		return nil
	}
	return curr
}

// walk returns the node at the end of the prefix path, without requiring it
// to be terminal. Returns nil when the path does not fully exist.
func (n *trieNode) walk(prefix string) *trieNode {
	curr := n
	for i := 0; i < len(prefix); i++ {
		idx := int(prefix[i]) - 'a'
		if idx < 0 || idx >= alphabetSize {
			return nil
		}
		if curr.children[idx] == nil {
			return nil
		}
		curr = curr.children[idx]
	}
	return curr
}

// collect appends (word, aggregate frequency) records for every terminal
// node in the subtree, depth first in ascending letter order so output is
// lexicographically ascending. A terminal node is emitted before its
// children. Collection stops once limit entries have been gathered; the
// return value reports whether the subtree was fully enumerated.
func (n *trieNode) collect(prefix []byte, limit int, out *[]PrefixMatch) bool {
	if len(*out) >= limit {
		return false
	}
	if n.terminal {
		*out = append(*out, PrefixMatch{Word: string(prefix), Frequency: n.totalFreq})
	}
	for i := 0; i < alphabetSize; i++ {
		child := n.children[i]
		if child == nil {
			continue
		}
		if len(*out) >= limit {
			return false
		}
		if !child.collect(append(prefix, byte('a'+i)), limit, out) {
			return false
		}
	}
	return true
}

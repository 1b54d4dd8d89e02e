package engine

import "testing"

func TestTrieLookupRequiresTerminal(t *testing.T) {
	root := &trieNode{}
	root.insert("quick", 0)

	if node := root.lookup("quick"); node == nil {
		t.Fatalf("expected lookup to find inserted word")
	}
	// "qui" exists as an internal path but was never indexed as a word.
	if node := root.lookup("qui"); node != nil {
		t.Fatalf("expected prefix-only path to report not found")
	}
	if node := root.lookup("quickly"); node != nil {
		t.Fatalf("expected unindexed extension to report not found")
	}
}

func TestTrieAggregateEqualsPostingSum(t *testing.T) {
	root := &trieNode{}
	root.insert("fox", 0)
	root.insert("fox", 0)
	root.insert("fox", 1)

	node := root.lookup("fox")
	if node == nil {
		t.Fatalf("expected fox to be indexed")
	}

	sum := 0
	for _, p := range node.postings {
		sum += p.frequency
	}
	if node.totalFreq != sum {
		t.Fatalf("aggregate %d does not equal posting sum %d", node.totalFreq, sum)
	}
	if node.totalFreq != 3 {
		t.Fatalf("expected aggregate 3 got %d", node.totalFreq)
	}
	if len(node.postings) != 2 {
		t.Fatalf("expected one posting per document, got %d", len(node.postings))
	}
}

func TestTriePostingPerDocumentIsUnique(t *testing.T) {
	root := &trieNode{}
	for i := 0; i < 5; i++ {
		root.insert("data", 7)
	}

	node := root.lookup("data")
	if len(node.postings) != 1 {
		t.Fatalf("expected a single posting for repeated doc, got %d", len(node.postings))
	}
	if node.postings[0].frequency != 5 {
		t.Fatalf("expected frequency 5 got %d", node.postings[0].frequency)
	}
}

func TestTrieInsertSkipsOutOfRangeBytes(t *testing.T) {
	root := &trieNode{}
	// Normalization never lets these through, but the trie must not index
	// out of its 26 child slots either way.
	root.insert("a1b", 0)

	if node := root.lookup("ab"); node == nil {
		t.Fatalf("expected out-of-range byte to be skipped on insert")
	}
}

func TestTrieCollectLexicographicOrder(t *testing.T) {
	root := &trieNode{}
	for _, word := range []string{"quick", "quality", "question", "quiz", "queen"} {
		root.insert(word, 0)
	}

	start := root.walk("qu")
	if start == nil {
		t.Fatalf("expected qu path to exist")
	}

	var out []PrefixMatch
	complete := start.collect([]byte("qu"), 100, &out)
	if !complete {
		t.Fatalf("expected full enumeration under the limit")
	}

	want := []string{"quality", "queen", "question", "quick", "quiz"}
	if len(out) != len(want) {
		t.Fatalf("expected %d words got %d: %v", len(want), len(out), out)
	}
	for i, w := range want {
		if out[i].Word != w {
			t.Fatalf("position %d: expected %q got %q", i, w, out[i].Word)
		}
	}
}

func TestTrieCollectEmitsTerminalBeforeChildren(t *testing.T) {
	root := &trieNode{}
	root.insert("quick", 0)
	root.insert("quickly", 0)

	var out []PrefixMatch
	root.walk("quick").collect([]byte("quick"), 100, &out)

	if len(out) != 2 || out[0].Word != "quick" || out[1].Word != "quickly" {
		t.Fatalf("expected [quick quickly] got %v", out)
	}
}

func TestTrieCollectHonorsLimit(t *testing.T) {
	root := &trieNode{}
	for _, word := range []string{"aa", "ab", "ac", "ad", "ae"} {
		root.insert(word, 0)
	}

	var out []PrefixMatch
	complete := root.walk("a").collect([]byte("a"), 3, &out)
	if complete {
		t.Fatalf("expected truncation to be reported")
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 results got %d", len(out))
	}
	// Truncation keeps the lexicographically smallest entries.
	if out[0].Word != "aa" || out[2].Word != "ac" {
		t.Fatalf("unexpected truncated window: %v", out)
	}
}

func TestTrieWalkMissingPath(t *testing.T) {
	root := &trieNode{}
	root.insert("data", 0)

	if node := root.walk("dax"); node != nil {
		t.Fatalf("expected missing path to return nil")
	}
	if node := root.walk("da"); node == nil {
		t.Fatalf("expected existing internal path to be walkable")
	}
}

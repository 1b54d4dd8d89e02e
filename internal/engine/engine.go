// Package engine implements an in-memory full-text index: a prefix trie
// holding per-word posting lists, a chained hash table for O(1) exact
// lookup, and a document store with dense sequential ids. Queries cover
// exact terms, prefix enumeration, conjunctive multi-keyword search, and
// term-frequency statistics.
//
// The engine is deliberately unsynchronized; callers that share one engine
// across goroutines must serialize access externally.
package engine

const (
	// minWordLength is the shortest normalized word that gets indexed;
	// anything shorter is silently skipped.
	minWordLength = 2

	defaultMaxWordLength = 100
	defaultPrefixLimit   = 100
	defaultHashBuckets   = 1000
)

// Options tunes the engine's capacity knobs. Zero values fall back to the
// defaults.
type Options struct {
	// MaxWordLength truncates normalized words longer than this before they
	// reach the trie. Lossy but deterministic.
	MaxWordLength int
	// PrefixLimit bounds prefix enumeration; results beyond it are dropped
	// and the truncation is flagged on the result.
	PrefixLimit int
	// HashBuckets sizes the exact-lookup hash table.
	HashBuckets int
}

func (o Options) withDefaults() Options {
	if o.MaxWordLength <= 0 {
		o.MaxWordLength = defaultMaxWordLength
	}
	if o.PrefixLimit <= 0 {
		o.PrefixLimit = defaultPrefixLimit
	}
	if o.HashBuckets <= 0 {
		o.HashBuckets = defaultHashBuckets
	}
	return o
}

// Engine owns the trie, the exact index, and the document store. Create one
// with New, populate it with IndexText, then query it; the whole structure
// is released as a unit when the engine is garbage collected.
type Engine struct {
	opts  Options
	root  *trieNode
	exact *exactIndex
	docs  docStore
}

// New returns an empty engine with the given options applied over defaults.
func New(opts Options) *Engine {
	opts = opts.withDefaults()
	return &Engine{
		opts:  opts,
		root:  &trieNode{},
		exact: newExactIndex(opts.HashBuckets),
	}
}

// PostingInfo is one document occurrence of a word.
type PostingInfo struct {
	DocID     int    `json:"docId"`
	Filename  string `json:"filename"`
	Frequency int    `json:"frequency"`
}

// FrequencyResult reports a word's aggregate frequency and its per-document
// breakdown. Found is false when the word was never indexed.
type FrequencyResult struct {
	Word      string        `json:"word"`
	Found     bool          `json:"found"`
	TotalFreq int           `json:"totalFreq"`
	Documents []PostingInfo `json:"documents"`
}

// SearchHit is the richer per-document record returned by Search, carrying
// the target document's word count alongside the frequency.
type SearchHit struct {
	DocID     int    `json:"docId"`
	Filename  string `json:"filename"`
	Frequency int    `json:"frequency"`
	WordCount int    `json:"wordCount"`
}

// SearchResult is the outcome of an exact keyword search.
type SearchResult struct {
	Keyword   string      `json:"keyword"`
	Found     bool        `json:"found"`
	TotalFreq int         `json:"totalFreq"`
	Hits      []SearchHit `json:"results"`
}

// PrefixMatch pairs an indexed word with its aggregate frequency.
type PrefixMatch struct {
	Word      string `json:"word"`
	Frequency int    `json:"frequency"`
}

// PrefixResult lists the indexed words sharing a prefix in lexicographic
// ascending order. Truncated reports that the enumeration hit the configured
// limit and further matches were omitted.
type PrefixResult struct {
	Prefix    string        `json:"prefix"`
	Found     bool          `json:"found"`
	Truncated bool          `json:"truncated"`
	Words     []PrefixMatch `json:"words"`
}

// DocScore is a conjunctive-search hit: the document plus the summed
// frequencies of the requested keywords within it.
type DocScore struct {
	DocID    int    `json:"docId"`
	Filename string `json:"filename"`
	Score    int    `json:"score"`
}

// MultiSearchResult is the outcome of a conjunctive multi-keyword search.
// Found is false when any requested keyword is absent from the index, in
// which case no documents are reported at all.
type MultiSearchResult struct {
	Keywords []string   `json:"keywords"`
	Found    bool       `json:"found"`
	Docs     []DocScore `json:"documents"`
}

// TermStat reports a word's frequency and term frequency within one
// document. TF is frequency divided by the document's word count, computed
// in 32-bit floating point; a zero word count yields TF 0.
type TermStat struct {
	DocID     int     `json:"docId"`
	Filename  string  `json:"filename"`
	Frequency int     `json:"frequency"`
	TF        float32 `json:"tf"`
}

// Stats summarizes the engine's contents.
type Stats struct {
	DocCount    int `json:"totalDocs"`
	UniqueWords int `json:"uniqueWords"`
	TotalTokens int `json:"totalIndexed"`
}

// IndexText registers text as a new document named name and indexes every
// token of length >= 2 after normalization. The returned id is dense and
// never reused. The document's word count is the raw token count, including
// tokens dropped by normalization.
func (e *Engine) IndexText(name, text string) int {
	docID := e.docs.add(name)

	count := 0
	for token := range Tokens(text) {
		e.indexWord(token, docID)
		count++
	}
	e.docs.setWordCount(docID, count)
	return docID
}

// indexWord normalizes and indexes a single token for docID as one atomic
// step: trie insert, posting bookkeeping, and exact-index registration.
func (e *Engine) indexWord(token string, docID int) {
	word := Normalize(token)
	if len(word) > e.opts.MaxWordLength {
		word = word[:e.opts.MaxWordLength]
	}
	if len(word) < minWordLength {
		return
	}

	node := e.root.insert(word, docID)
	e.exact.insert(word, node)
}

// Frequency looks up word's aggregate frequency and per-document postings.
func (e *Engine) Frequency(word string) FrequencyResult {
	normalized := Normalize(word)
	result := FrequencyResult{Word: normalized, Documents: []PostingInfo{}}

	node := e.exact.lookup(normalized)
	if node == nil {
		return result
	}

	result.Found = true
	result.TotalFreq = node.totalFreq
	for _, p := range node.postings {
		doc, _ := e.docs.get(p.docID)
		result.Documents = append(result.Documents, PostingInfo{
			DocID:     p.docID,
			Filename:  doc.Name,
			Frequency: p.frequency,
		})
	}
	return result
}

// Search is the richer exact-keyword variant of Frequency, tagging each hit
// with the containing document's word count.
func (e *Engine) Search(keyword string) SearchResult {
	normalized := Normalize(keyword)
	result := SearchResult{Keyword: normalized, Hits: []SearchHit{}}

	node := e.exact.lookup(normalized)
	if node == nil {
		return result
	}

	result.Found = true
	result.TotalFreq = node.totalFreq
	for _, p := range node.postings {
		doc, _ := e.docs.get(p.docID)
		result.Hits = append(result.Hits, SearchHit{
			DocID:     p.docID,
			Filename:  doc.Name,
			Frequency: p.frequency,
			WordCount: doc.WordCount,
		})
	}
	return result
}

// PrefixSearch enumerates the indexed words starting with prefix, in
// lexicographic ascending order, capped at the configured limit.
func (e *Engine) PrefixSearch(prefix string) PrefixResult {
	normalized := Normalize(prefix)
	result := PrefixResult{Prefix: normalized, Words: []PrefixMatch{}}

	start := e.root.walk(normalized)
	if start == nil {
		return result
	}

	result.Found = true
	buffer := append(make([]byte, 0, len(normalized)+16), normalized...)
	complete := start.collect(buffer, e.opts.PrefixLimit, &result.Words)
	result.Truncated = !complete
	return result
}

// SearchAll finds the documents containing every one of the given keywords.
// If any keyword is entirely absent from the index the query short-circuits
// and reports no documents. Each qualifying document is scored with the sum
// of the keywords' frequencies within it, in ascending document-id order.
func (e *Engine) SearchAll(keywords []string) MultiSearchResult {
	result := MultiSearchResult{Keywords: make([]string, 0, len(keywords)), Docs: []DocScore{}}
	if len(keywords) == 0 {
		return result
	}

	type accum struct {
		matches int
		score   int
	}
	byDoc := make(map[int]*accum)

	for _, keyword := range keywords {
		normalized := Normalize(keyword)
		result.Keywords = append(result.Keywords, normalized)

		node := e.exact.lookup(normalized)
		if node == nil {
			// Hard AND at the keyword level: one missing keyword empties
			// the whole result.
			result.Docs = result.Docs[:0]
			return result
		}
		for _, p := range node.postings {
			a := byDoc[p.docID]
			if a == nil {
				a = &accum{}
				byDoc[p.docID] = a
			}
			a.matches++
			a.score += p.frequency
		}
	}

	result.Found = true
	for id := 0; id < e.docs.count(); id++ {
		a := byDoc[id]
		if a == nil || a.matches != len(keywords) {
			continue
		}
		doc, _ := e.docs.get(id)
		result.Docs = append(result.Docs, DocScore{DocID: id, Filename: doc.Name, Score: a.score})
	}
	return result
}

// TermFrequency reports, for every document containing word, the raw
// frequency and the term frequency relative to the document's word count.
func (e *Engine) TermFrequency(word string) []TermStat {
	normalized := Normalize(word)
	stats := []TermStat{}

	node := e.exact.lookup(normalized)
	if node == nil {
		return stats
	}

	for _, p := range node.postings {
		doc, _ := e.docs.get(p.docID)
		tf := float32(0)
		if doc.WordCount > 0 {
			tf = float32(p.frequency) / float32(doc.WordCount)
		}
		stats = append(stats, TermStat{
			DocID:     p.docID,
			Filename:  doc.Name,
			Frequency: p.frequency,
			TF:        tf,
		})
	}
	return stats
}

// GetDocument returns the metadata for a document id.
func (e *Engine) GetDocument(id int) (Document, bool) {
	return e.docs.get(id)
}

// Documents lists all indexed documents in id order.
func (e *Engine) Documents() []Document {
	out := make([]Document, e.docs.count())
	copy(out, e.docs.docs)
	return out
}

// Stats summarizes document count, distinct indexed words, and the total
// raw token count across all documents.
func (e *Engine) Stats() Stats {
	total := 0
	for _, doc := range e.docs.docs {
		total += doc.WordCount
	}
	return Stats{
		DocCount:    e.docs.count(),
		UniqueWords: e.exact.len(),
		TotalTokens: total,
	}
}

package engine

// Document holds per-document metadata. WordCount is the raw token count of
// the indexing pass, including tokens that normalized away; frequency math
// runs only over indexed words, so TF values for punctuation-heavy documents
// are skewed accordingly.
type Document struct {
	ID        int    `json:"docId"`
	Name      string `json:"filename"`
	WordCount int    `json:"wordCount"`
}

// docStore assigns dense sequential document ids starting at 0 and retains
// metadata for each.
type docStore struct {
	docs []Document
}

func (s *docStore) add(name string) int {
	id := len(s.docs)
	s.docs = append(s.docs, Document{ID: id, Name: name})
	return id
}

func (s *docStore) setWordCount(id, count int) {
	if id >= 0 && id < len(s.docs) {
		s.docs[id].WordCount = count
	}
}

// get is total over [0, count): every assigned id resolves.
func (s *docStore) get(id int) (Document, bool) {
	if id < 0 || id >= len(s.docs) {
		return Document{}, false
	}
	return s.docs[id], true
}

func (s *docStore) count() int {
	return len(s.docs)
}

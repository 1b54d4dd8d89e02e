package engine

import "testing"

func TestIndexTextWordCountIsRawTokenCount(t *testing.T) {
	e := New(Options{})
	// "a" and "42" normalize below the length floor but still count.
	id := e.IndexText("doc.txt", "a quick 42 fox")

	doc, ok := e.GetDocument(id)
	if !ok {
		t.Fatalf("expected document %d to resolve", id)
	}
	if doc.WordCount != 4 {
		t.Fatalf("expected raw word count 4 got %d", doc.WordCount)
	}

	if e.Frequency("a").Found {
		t.Fatalf("single-letter token must not be indexed")
	}
	if !e.Frequency("quick").Found {
		t.Fatalf("expected quick to be indexed")
	}
}

func TestDocumentIDsAreDenseAndSequential(t *testing.T) {
	e := New(Options{})
	for i := 0; i < 3; i++ {
		if id := e.IndexText("doc", "word here"); id != i {
			t.Fatalf("expected id %d got %d", i, id)
		}
	}
	for i := 0; i < 3; i++ {
		if _, ok := e.GetDocument(i); !ok {
			t.Fatalf("expected id %d to be total over the assigned range", i)
		}
	}
	if _, ok := e.GetDocument(3); ok {
		t.Fatalf("expected id 3 to be unassigned")
	}
}

func TestFrequencyScenario(t *testing.T) {
	e := New(Options{})
	id := e.IndexText("doc1", "the quick fox the fox")

	doc, _ := e.GetDocument(id)
	if doc.WordCount != 5 {
		t.Fatalf("expected word count 5 got %d", doc.WordCount)
	}

	result := e.Frequency("the")
	if !result.Found || result.TotalFreq != 2 {
		t.Fatalf("expected the with total 2, got %+v", result)
	}
	if len(result.Documents) != 1 || result.Documents[0].Frequency != 2 {
		t.Fatalf("expected single posting with frequency 2, got %+v", result.Documents)
	}
	if result.Documents[0].Filename != "doc1" {
		t.Fatalf("expected filename doc1 got %q", result.Documents[0].Filename)
	}

	if fox := e.Frequency("fox"); fox.TotalFreq != 2 {
		t.Fatalf("expected fox total 2 got %d", fox.TotalFreq)
	}

	stats := e.TermFrequency("the")
	if len(stats) != 1 {
		t.Fatalf("expected one TF record got %d", len(stats))
	}
	if stats[0].TF != 0.4 {
		t.Fatalf("expected TF 0.4 got %v", stats[0].TF)
	}
}

func TestFrequencyMissingWord(t *testing.T) {
	e := New(Options{})
	e.IndexText("doc1", "some indexed words")

	result := e.Frequency("zzz")
	if result.Found {
		t.Fatalf("expected found=false for unindexed word")
	}
	if result.TotalFreq != 0 || len(result.Documents) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestFrequencyNormalizesQuery(t *testing.T) {
	e := New(Options{})
	e.IndexText("doc1", "Quick brown fox")

	if !e.Frequency("QUICK!").Found {
		t.Fatalf("expected query normalization to match indexed word")
	}
}

func TestReindexingIncrementsExistingPosting(t *testing.T) {
	e := New(Options{})
	e.IndexText("d1", "data data data")
	e.IndexText("d2", "data")

	result := e.Frequency("data")
	if result.TotalFreq != 4 {
		t.Fatalf("expected aggregate 4 got %d", result.TotalFreq)
	}
	if len(result.Documents) != 2 {
		t.Fatalf("expected one posting per document, got %d", len(result.Documents))
	}
	for _, p := range result.Documents {
		switch p.DocID {
		case 0:
			if p.Frequency != 3 {
				t.Fatalf("expected d1 frequency 3 got %d", p.Frequency)
			}
		case 1:
			if p.Frequency != 1 {
				t.Fatalf("expected d2 frequency 1 got %d", p.Frequency)
			}
		default:
			t.Fatalf("unexpected doc id %d", p.DocID)
		}
	}
}

func TestSearchIncludesWordCount(t *testing.T) {
	e := New(Options{})
	e.IndexText("d1", "quick question quality")

	result := e.Search("quick")
	if !result.Found || len(result.Hits) != 1 {
		t.Fatalf("expected one hit, got %+v", result)
	}
	if result.Hits[0].WordCount != 3 {
		t.Fatalf("expected word count 3 on hit got %d", result.Hits[0].WordCount)
	}
}

func TestPrefixSearchScenario(t *testing.T) {
	e := New(Options{})
	e.IndexText("d1", "quick question quality")
	e.IndexText("d2", "quick answer")

	result := e.PrefixSearch("qu")
	if !result.Found || result.Truncated {
		t.Fatalf("expected complete prefix result, got %+v", result)
	}

	want := []PrefixMatch{
		{Word: "quality", Frequency: 1},
		{Word: "question", Frequency: 1},
		{Word: "quick", Frequency: 2},
	}
	if len(result.Words) != len(want) {
		t.Fatalf("expected %d matches got %d: %v", len(want), len(result.Words), result.Words)
	}
	for i, w := range want {
		if result.Words[i] != w {
			t.Fatalf("match %d: expected %+v got %+v", i, w, result.Words[i])
		}
	}
}

func TestPrefixSearchMissingPath(t *testing.T) {
	e := New(Options{})
	e.IndexText("d1", "quick")

	result := e.PrefixSearch("zz")
	if result.Found || len(result.Words) != 0 {
		t.Fatalf("expected empty not-found result, got %+v", result)
	}
}

func TestPrefixSearchConfigurableLimit(t *testing.T) {
	e := New(Options{PrefixLimit: 2})
	e.IndexText("d1", "quality queen question quick quiz")

	result := e.PrefixSearch("qu")
	if !result.Truncated {
		t.Fatalf("expected truncation flag when limit is hit")
	}
	if len(result.Words) != 2 {
		t.Fatalf("expected 2 capped results got %d", len(result.Words))
	}
	if result.Words[0].Word != "quality" || result.Words[1].Word != "queen" {
		t.Fatalf("expected lexicographically first entries, got %v", result.Words)
	}
}

func TestSearchAllConjunctiveScenario(t *testing.T) {
	e := New(Options{})
	e.IndexText("d1", "data structures are data")
	e.IndexText("d2", "data tables")

	result := e.SearchAll([]string{"data", "structures"})
	if !result.Found {
		t.Fatalf("expected both keywords present")
	}
	if len(result.Docs) != 1 {
		t.Fatalf("expected only d1 to qualify, got %+v", result.Docs)
	}
	hit := result.Docs[0]
	if hit.DocID != 0 || hit.Score != 3 {
		t.Fatalf("expected d1 with score 3, got %+v", hit)
	}
}

func TestSearchAllShortCircuitsOnMissingKeyword(t *testing.T) {
	e := New(Options{})
	e.IndexText("d1", "data structures everywhere")

	result := e.SearchAll([]string{"data", "unicorns"})
	if result.Found {
		t.Fatalf("expected found=false when a keyword is unindexed")
	}
	if len(result.Docs) != 0 {
		t.Fatalf("expected no documents regardless of other keywords, got %+v", result.Docs)
	}
}

func TestSearchAllEmptyKeywords(t *testing.T) {
	e := New(Options{})
	e.IndexText("d1", "data")

	result := e.SearchAll(nil)
	if result.Found || len(result.Docs) != 0 {
		t.Fatalf("expected empty result for empty keyword list, got %+v", result)
	}
}

func TestSearchAllReportsEachDocumentOnce(t *testing.T) {
	e := New(Options{})
	e.IndexText("d1", "quick brown fox quick brown")
	e.IndexText("d2", "quick brown bear")
	e.IndexText("d3", "quick only here")

	result := e.SearchAll([]string{"quick", "brown"})
	if len(result.Docs) != 2 {
		t.Fatalf("expected d1 and d2, got %+v", result.Docs)
	}
	seen := map[int]bool{}
	for _, d := range result.Docs {
		if seen[d.DocID] {
			t.Fatalf("document %d reported twice", d.DocID)
		}
		seen[d.DocID] = true
	}
	if !seen[0] || !seen[1] || seen[2] {
		t.Fatalf("wrong qualifying set: %+v", result.Docs)
	}
}

func TestTermFrequencyZeroWordCount(t *testing.T) {
	e := New(Options{})
	id := e.IndexText("d1", "fox")
	// Force the degenerate ratio directly.
	e.docs.setWordCount(id, 0)

	stats := e.TermFrequency("fox")
	if len(stats) != 1 || stats[0].TF != 0 {
		t.Fatalf("expected TF 0 for zero word count, got %+v", stats)
	}
}

func TestMaxWordLengthTruncation(t *testing.T) {
	e := New(Options{MaxWordLength: 4})
	e.IndexText("d1", "elephant")

	if e.Frequency("elephant").Found {
		t.Fatalf("expected overlong word to be truncated, not indexed whole")
	}
	if !e.Frequency("elep").Found {
		t.Fatalf("expected deterministic truncation to 4 letters")
	}
}

func TestTruncationBelowMinLengthDropsWord(t *testing.T) {
	e := New(Options{MaxWordLength: 1})
	id := e.IndexText("d1", "hello world")

	if stats := e.Stats(); stats.UniqueWords != 0 {
		t.Fatalf("expected no indexed words after truncation to 1 letter, got %+v", stats)
	}
	if e.Frequency("h").Found || e.Frequency("w").Found {
		t.Fatalf("expected single-letter remnants to be dropped")
	}
	if doc, ok := e.GetDocument(id); !ok || doc.WordCount != 2 {
		t.Fatalf("expected raw word count 2, got %+v", doc)
	}
}

func TestStats(t *testing.T) {
	e := New(Options{})
	e.IndexText("d1", "the quick fox")
	e.IndexText("d2", "the slow fox x")

	stats := e.Stats()
	if stats.DocCount != 2 {
		t.Fatalf("expected 2 docs got %d", stats.DocCount)
	}
	// the, quick, fox, slow — "x" is below the length floor.
	if stats.UniqueWords != 4 {
		t.Fatalf("expected 4 unique words got %d", stats.UniqueWords)
	}
	if stats.TotalTokens != 7 {
		t.Fatalf("expected 7 raw tokens got %d", stats.TotalTokens)
	}
}

func TestDocumentsListing(t *testing.T) {
	e := New(Options{})
	e.IndexText("first.txt", "one two")
	e.IndexText("second.txt", "three")

	docs := e.Documents()
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents got %d", len(docs))
	}
	if docs[0].Name != "first.txt" || docs[1].Name != "second.txt" {
		t.Fatalf("unexpected ordering: %+v", docs)
	}
	if docs[0].WordCount != 2 || docs[1].WordCount != 1 {
		t.Fatalf("unexpected word counts: %+v", docs)
	}
}

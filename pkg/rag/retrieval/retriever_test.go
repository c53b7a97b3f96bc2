package retrieval

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"sales-assistant-be/pkg/rag/optimizer"
	"sales-assistant-be/pkg/store"
)

type fakeIndex struct {
	healthy bool
	results []store.Passage
	err     error
}

func (f *fakeIndex) IsHealthy(ctx context.Context) bool { return f.healthy }

func (f *fakeIndex) Search(ctx context.Context, query string, topK int) ([]store.Passage, error) {
	return f.results, f.err
}

func (f *fakeIndex) Upsert(ctx context.Context, chunkId, documentId string, chunkIndex int, content string) error {
	return nil
}

type fakeFaq struct {
	results []store.Passage
	err     error
}

func (f *fakeFaq) Search(ctx context.Context, query string, keywords []string) ([]store.Passage, error) {
	return f.results, f.err
}

type fakeChunks struct {
	byCall  [][]store.Passage
	errs    []error
	calls   int
	termLog [][]string
}

func (f *fakeChunks) SearchByTerms(ctx context.Context, terms []string, limit int) ([]store.Passage, error) {
	call := f.calls
	f.calls++
	f.termLog = append(f.termLog, terms)
	var err error
	if call < len(f.errs) {
		err = f.errs[call]
	}
	var res []store.Passage
	if call < len(f.byCall) {
		res = f.byCall[call]
	}
	return res, err
}

func passages(ids ...string) []store.Passage {
	out := make([]store.Passage, len(ids))
	for i, id := range ids {
		out[i] = store.Passage{ID: id, DocumentID: id, Content: "content " + id}
	}
	return out
}

func newRetriever(index *fakeIndex, faq *fakeFaq, chunks *fakeChunks) *MultiSourceRetriever {
	return NewMultiSourceRetriever(
		index, faq, chunks,
		optimizer.NewQueryOptimizer(),
		time.Second,
		log.New(io.Discard, "", 0),
	)
}

func TestVectorTierShortCircuits(t *testing.T) {
	chunks := &fakeChunks{}
	r := newRetriever(
		&fakeIndex{healthy: true, results: passages("vec-1", "vec-2")},
		&fakeFaq{},
		chunks,
	)

	got, err := r.Retrieve(context.Background(), "clearent rates", 20)
	if err != nil {
		t.Fatalf("Retrieve returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d passages, want 2", len(got))
	}
	if chunks.calls != 0 {
		t.Errorf("chunk search ran %d times despite vector results", chunks.calls)
	}
}

func TestFallsThroughToKeywordTier(t *testing.T) {
	chunks := &fakeChunks{byCall: [][]store.Passage{passages("kw-1")}}
	r := newRetriever(
		&fakeIndex{healthy: true, results: nil}, // healthy but empty
		&fakeFaq{},
		chunks,
	)

	got, err := r.Retrieve(context.Background(), "clearent rates", 20)
	if err != nil {
		t.Fatalf("Retrieve returned error: %v", err)
	}
	if len(got) != 1 || got[0].DocumentID != "kw-1" {
		t.Fatalf("got %v, want keyword tier result", got)
	}
	if got[0].Score != keywordTierScore {
		t.Errorf("Score = %v, want %v", got[0].Score, keywordTierScore)
	}
}

func TestUnhealthyIndexSkipsTierOne(t *testing.T) {
	chunks := &fakeChunks{byCall: [][]store.Passage{passages("kw-1")}}
	index := &fakeIndex{healthy: false, err: errors.New("must not be called")}
	r := newRetriever(index, &fakeFaq{}, chunks)

	got, err := r.Retrieve(context.Background(), "clearent rates", 20)
	if err != nil {
		t.Fatalf("Retrieve returned error: %v", err)
	}
	if len(got) != 1 || got[0].DocumentID != "kw-1" {
		t.Fatalf("got %v, want keyword tier result", got)
	}
}

func TestSubstringFallbackScore(t *testing.T) {
	chunks := &fakeChunks{byCall: [][]store.Passage{nil, passages("fb-1")}}
	r := newRetriever(&fakeIndex{healthy: false}, &fakeFaq{}, chunks)

	got, err := r.Retrieve(context.Background(), "clearent rates", 20)
	if err != nil {
		t.Fatalf("Retrieve returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d passages, want 1", len(got))
	}
	if got[0].Score != substringTierScore {
		t.Errorf("Score = %v, want flat %v", got[0].Score, substringTierScore)
	}
	// The fallback tier must search with the synonym vocabulary, not
	// just the raw query.
	if chunks.calls != 2 || len(chunks.termLog[1]) < 2 {
		t.Errorf("fallback searched terms %v, want synonym expansion", chunks.termLog)
	}
}

func TestFaqAlwaysMergedFirst(t *testing.T) {
	faqHit := store.Passage{ID: "faq-7", DocumentID: "faq-7", Content: "Q: rates?\nA: yes"}
	r := newRetriever(
		&fakeIndex{healthy: true, results: passages("vec-1")},
		&fakeFaq{results: []store.Passage{faqHit}},
		&fakeChunks{},
	)

	got, err := r.Retrieve(context.Background(), "clearent rates", 20)
	if err != nil {
		t.Fatalf("Retrieve returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d passages, want faq + vector", len(got))
	}
	if got[0].DocumentID != "faq-7" {
		t.Errorf("first passage = %s, want the FAQ hit", got[0].DocumentID)
	}
	if got[0].Score != faqBoostScore {
		t.Errorf("FAQ score = %v, want %v", got[0].Score, faqBoostScore)
	}
}

func TestDedupFirstSeenWins(t *testing.T) {
	faqHit := store.Passage{ID: "doc-1", DocumentID: "doc-1", Content: "faq version"}
	r := newRetriever(
		&fakeIndex{healthy: true, results: passages("doc-1", "doc-2")},
		&fakeFaq{results: []store.Passage{faqHit}},
		&fakeChunks{},
	)

	got, err := r.Retrieve(context.Background(), "clearent rates", 20)
	if err != nil {
		t.Fatalf("Retrieve returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d passages, want 2 after dedup", len(got))
	}
	if got[0].Content != "faq version" {
		t.Errorf("dedup kept %q, want the first-seen FAQ passage", got[0].Content)
	}
}

func TestAllSourcesFailingYieldsEmptyNotError(t *testing.T) {
	r := newRetriever(
		&fakeIndex{healthy: true, err: errors.New("index down")},
		&fakeFaq{err: errors.New("faq down")},
		&fakeChunks{errs: []error{errors.New("db down"), errors.New("db down")}},
	)

	got, err := r.Retrieve(context.Background(), "clearent rates", 20)
	if err != nil {
		t.Fatalf("Retrieve returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d passages, want 0", len(got))
	}
}

package service

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"sales-assistant-be/internal/dto"
	"sales-assistant-be/internal/entity"
	"sales-assistant-be/internal/repository/contract"
	"sales-assistant-be/internal/repository/memory"
	"sales-assistant-be/internal/repository/specification"
	"sales-assistant-be/internal/repository/unitofwork"
	"sales-assistant-be/pkg/llm"
	"sales-assistant-be/pkg/rag/cache"
	"sales-assistant-be/pkg/rag/generate"
	"sales-assistant-be/pkg/rag/optimizer"
	"sales-assistant-be/pkg/rag/postprocess"
	"sales-assistant-be/pkg/rag/rerank"
	"sales-assistant-be/pkg/rag/retrieval"
	"sales-assistant-be/pkg/rag/routing"
	"sales-assistant-be/pkg/rag/usage"
	"sales-assistant-be/pkg/store"

	"github.com/google/uuid"
)

type fakeRepoFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeRepoFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeUnitOfWork struct {
	documents *fakeDocumentRepo
	chunks    *fakeChunkRepo
	faqs      *fakeFaqRepo
	folders   *fakeFolderRepo
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		documents: &fakeDocumentRepo{byId: map[uuid.UUID]*entity.Document{}},
		chunks:    &fakeChunkRepo{byDocument: map[uuid.UUID]*entity.DocumentChunk{}},
		faqs:      &fakeFaqRepo{byId: map[uuid.UUID]*entity.FaqEntry{}},
		folders:   &fakeFolderRepo{},
	}
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository {
	return u.documents
}
func (u *fakeUnitOfWork) DocumentChunkRepository() contract.DocumentChunkRepository {
	return u.chunks
}
func (u *fakeUnitOfWork) ChunkEmbeddingRepository() contract.ChunkEmbeddingRepository {
	return nil
}
func (u *fakeUnitOfWork) FaqRepository() contract.FaqRepository {
	return u.faqs
}
func (u *fakeUnitOfWork) FolderRepository() contract.FolderRepository {
	return u.folders
}
func (u *fakeUnitOfWork) UsageLogRepository() contract.UsageLogRepository {
	return nil
}

// specId digs the target id out of a spec list.
func specId(specs []specification.Specification) (uuid.UUID, bool) {
	for _, s := range specs {
		if byId, ok := s.(specification.ByID); ok {
			return byId.ID, true
		}
	}
	return uuid.Nil, false
}

type fakeDocumentRepo struct {
	mu        sync.Mutex
	byId      map[uuid.UUID]*entity.Document
	viewBumps int
}

func (r *fakeDocumentRepo) Create(ctx context.Context, document *entity.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byId[document.Id] = document
	return nil
}
func (r *fakeDocumentRepo) Update(ctx context.Context, document *entity.Document) error { return nil }
func (r *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error              { return nil }

func (r *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := specId(specs); ok {
		return r.byId[id], nil
	}
	return nil, nil
}

func (r *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Document
	for _, s := range specs {
		if byIds, ok := s.(specification.ByIDs); ok {
			for _, id := range byIds.IDs {
				if doc, found := r.byId[id]; found {
					result = append(result, doc)
				}
			}
			return result, nil
		}
	}
	for _, doc := range r.byId {
		result = append(result, doc)
	}
	return result, nil
}

func (r *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.byId)), nil
}

func (r *fakeDocumentRepo) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewBumps++
	return nil
}

func (r *fakeDocumentRepo) bumps() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewBumps
}

type fakeChunkRepo struct {
	byDocument map[uuid.UUID]*entity.DocumentChunk
	created    []*entity.DocumentChunk
}

func (r *fakeChunkRepo) Create(ctx context.Context, chunk *entity.DocumentChunk) error {
	r.created = append(r.created, chunk)
	return nil
}
func (r *fakeChunkRepo) Delete(ctx context.Context, id uuid.UUID) error                { return nil }
func (r *fakeChunkRepo) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return nil
}

func (r *fakeChunkRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentChunk, error) {
	for _, s := range specs {
		if byDoc, ok := s.(specification.ByDocumentID); ok {
			return r.byDocument[byDoc.DocumentID], nil
		}
	}
	return nil, nil
}

func (r *fakeChunkRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error) {
	return nil, nil
}

type fakeFaqRepo struct {
	byId map[uuid.UUID]*entity.FaqEntry
}

func (r *fakeFaqRepo) Create(ctx context.Context, faq *entity.FaqEntry) error { return nil }
func (r *fakeFaqRepo) Update(ctx context.Context, faq *entity.FaqEntry) error { return nil }
func (r *fakeFaqRepo) Delete(ctx context.Context, id uuid.UUID) error         { return nil }

func (r *fakeFaqRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FaqEntry, error) {
	if id, ok := specId(specs); ok {
		return r.byId[id], nil
	}
	return nil, nil
}

func (r *fakeFaqRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FaqEntry, error) {
	return nil, nil
}

type fakeFolderRepo struct{}

func (r *fakeFolderRepo) Create(ctx context.Context, folder *entity.Folder) error { return nil }
func (r *fakeFolderRepo) Delete(ctx context.Context, id uuid.UUID) error          { return nil }
func (r *fakeFolderRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Folder, error) {
	return nil, nil
}
func (r *fakeFolderRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Folder, error) {
	return nil, nil
}

type downIndex struct{}

func (downIndex) IsHealthy(ctx context.Context) bool { return false }
func (downIndex) Search(ctx context.Context, query string, topK int) ([]store.Passage, error) {
	return nil, errors.New("index down")
}
func (downIndex) Upsert(ctx context.Context, chunkId, documentId string, chunkIndex int, content string) error {
	return nil
}

type staticFaqSearcher struct {
	passages []store.Passage
}

func (s *staticFaqSearcher) Search(ctx context.Context, query string, keywords []string) ([]store.Passage, error) {
	return append([]store.Passage(nil), s.passages...), nil
}

type staticChunkSearcher struct {
	mu       sync.Mutex
	passages []store.Passage
	calls    int
}

func (s *staticChunkSearcher) SearchByTerms(ctx context.Context, terms []string, limit int) ([]store.Passage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return append([]store.Passage(nil), s.passages...), nil
}

func (s *staticChunkSearcher) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type countingProvider struct {
	mu    sync.Mutex
	text  string
	calls int
}

func (p *countingProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (*llm.ChatResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return &llm.ChatResult{Text: p.text, Model: "test-model"}, nil
}

func (p *countingProvider) Name() string { return "test" }

func (p *countingProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type noopUsage struct{}

func (noopUsage) LogUsage(userId string, record usage.Record) {}

type pipelineFixture struct {
	service  IAssistantService
	uow      *fakeUnitOfWork
	chunks   *staticChunkSearcher
	provider *countingProvider
}

func newPipeline(t *testing.T, faqPassages, chunkPassages []store.Passage, fastResponses memory.FastResponseRepository) *pipelineFixture {
	t.Helper()
	discard := log.New(io.Discard, "", 0)

	uow := newFakeUnitOfWork()
	factory := &fakeRepoFactory{uow: uow}

	chunkSearcher := &staticChunkSearcher{passages: chunkPassages}
	retriever := retrieval.NewMultiSourceRetriever(
		downIndex{},
		&staticFaqSearcher{passages: faqPassages},
		chunkSearcher,
		optimizer.NewQueryOptimizer(),
		time.Second,
		discard,
	)

	reranker, err := rerank.NewReranker(rerank.DefaultWeights(), discard)
	if err != nil {
		t.Fatalf("NewReranker: %v", err)
	}

	provider := &countingProvider{text: "## Answer\n\nRates depend on volume."}
	invoker := generate.NewInvoker(provider, nil, noopUsage{}, time.Second, discard)

	classifier := routing.NewClassifier()
	if fastResponses == nil {
		fastResponses = memory.NewFastResponseRepository()
	}

	svc := NewAssistantService(
		factory,
		fastResponses,
		cache.NewResultCache(100, time.Hour, discard),
		classifier,
		routing.NewRouter(classifier, factory, discard),
		retriever,
		reranker,
		invoker,
		postprocess.NewProcessor(),
		0.85,
		20,
		5,
		discard,
	)
	return &pipelineFixture{service: svc, uow: uow, chunks: chunkSearcher, provider: provider}
}

func docPassage(docId uuid.UUID, name, content string) store.Passage {
	created := time.Now().Add(-24 * time.Hour)
	return store.Passage{
		ID:         uuid.NewString(),
		DocumentID: docId.String(),
		Content:    content,
		Metadata: store.PassageMetadata{
			DocumentName: name,
			WebViewLink:  "/documents/" + docId.String(),
			MimeType:     "application/pdf",
			CreatedAt:    &created,
		},
	}
}

func TestAskRejectsEmptyQuery(t *testing.T) {
	fx := newPipeline(t, nil, nil, nil)

	_, err := fx.service.Ask(context.Background(), uuid.New(), &dto.AskRequest{Query: "   "})
	if !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestAskClassifiesRateComparison(t *testing.T) {
	docId := uuid.New()
	fx := newPipeline(t, nil, []store.Passage{
		docPassage(docId, "Clearent Rate Sheet", "Clearent interchange plus pricing for retail merchants."),
	}, nil)

	res, err := fx.service.Ask(context.Background(), uuid.New(), &dto.AskRequest{
		Query: "Compare Clearent and TracerPay processing rates",
	})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if res.Classification.Intent != routing.IntentRateComparison {
		t.Errorf("intent = %s, want %s", res.Classification.Intent, routing.IntentRateComparison)
	}
	if len(res.Classification.Processors) < 2 {
		t.Errorf("processors = %v, want clearent and tracerpay", res.Classification.Processors)
	}
	if res.Cached {
		t.Error("first request must not be served from cache")
	}
	if res.Response == "" {
		t.Error("expected non-empty response")
	}
}

func TestAskRanksFaqAboveDocuments(t *testing.T) {
	faqId := uuid.New()
	docId := uuid.New()
	question := "What are Clearent's rates?"

	// FAQ passages carry their question as the document name, so an
	// exact-question query gets a full title match.
	faqPassage := store.Passage{
		ID:         "faq-" + faqId.String(),
		DocumentID: "faq-" + faqId.String(),
		Content:    "Q: " + question + "\nA: Interchange plus 0.25%.",
		Metadata: store.PassageMetadata{
			DocumentName: question,
			WebViewLink:  "/faq/" + faqId.String(),
			MimeType:     "text/plain",
		},
	}
	// A document titled with the query text must still rank below the
	// exact-question FAQ.
	fx := newPipeline(t,
		[]store.Passage{faqPassage},
		[]store.Passage{docPassage(docId, question, "General info about payment processing.")},
		nil,
	)

	res, err := fx.service.Ask(context.Background(), uuid.New(), &dto.AskRequest{
		Query: question,
	})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if len(res.Sources) == 0 {
		t.Fatal("expected sources")
	}
	if res.Sources[0].Name != question {
		t.Errorf("top source name = %q, want the FAQ question", res.Sources[0].Name)
	}
	if !strings.HasPrefix(res.Sources[0].URL, "/faq/") {
		t.Errorf("top source url = %q, want the FAQ entry", res.Sources[0].URL)
	}
}

func TestAskServesCachedResultOnRepeat(t *testing.T) {
	docId := uuid.New()
	chunkId := uuid.New()

	fx := newPipeline(t, nil, []store.Passage{
		docPassage(docId, "Clearent Rate Sheet", "Clearent interchange plus pricing."),
	}, nil)

	// Make the cached document hydratable on the second pass.
	fx.uow.documents.byId[docId] = &entity.Document{
		Id:        docId,
		Name:      "Clearent Rate Sheet",
		MimeType:  "application/pdf",
		CreatedAt: time.Now().Add(-24 * time.Hour),
	}
	fx.uow.chunks.byDocument[docId] = &entity.DocumentChunk{
		Id:         chunkId,
		DocumentId: docId,
		Content:    "Clearent interchange plus pricing.",
	}

	query := "Tell me about Clearent pricing"
	first, err := fx.service.Ask(context.Background(), uuid.New(), &dto.AskRequest{Query: query})
	if err != nil {
		t.Fatalf("first Ask: %v", err)
	}
	if first.Cached {
		t.Fatal("first request must miss the cache")
	}
	callsAfterFirst := fx.chunks.callCount()

	second, err := fx.service.Ask(context.Background(), uuid.New(), &dto.AskRequest{Query: query})
	if err != nil {
		t.Fatalf("second Ask: %v", err)
	}
	if !second.Cached {
		t.Fatal("second request must hit the cache")
	}
	if fx.chunks.callCount() != callsAfterFirst {
		t.Error("cached request must not run retrieval again")
	}
	if len(second.Sources) == 0 || !strings.Contains(second.Sources[0].Name, "Clearent") {
		t.Errorf("cached sources = %+v, want rehydrated Clearent document", second.Sources)
	}
}

func TestAskRehydratesCachedFaqWithQuestionName(t *testing.T) {
	faqId := uuid.New()
	question := "What is a chargeback fee?"

	faqPassage := store.Passage{
		ID:         "faq-" + faqId.String(),
		DocumentID: "faq-" + faqId.String(),
		Content:    "Q: " + question + "\nA: A fee charged when a transaction is disputed.",
		Metadata: store.PassageMetadata{
			DocumentName: question,
			WebViewLink:  "/faq/" + faqId.String(),
			MimeType:     "text/plain",
		},
	}
	fx := newPipeline(t, []store.Passage{faqPassage}, nil, nil)
	fx.uow.faqs.byId[faqId] = &entity.FaqEntry{
		Id:        faqId,
		Question:  question,
		Answer:    "A fee charged when a transaction is disputed.",
		Category:  "fees",
		IsActive:  true,
		CreatedAt: time.Now().Add(-24 * time.Hour),
	}

	if _, err := fx.service.Ask(context.Background(), uuid.New(), &dto.AskRequest{Query: question}); err != nil {
		t.Fatalf("first Ask: %v", err)
	}

	second, err := fx.service.Ask(context.Background(), uuid.New(), &dto.AskRequest{Query: question})
	if err != nil {
		t.Fatalf("second Ask: %v", err)
	}
	if !second.Cached {
		t.Fatal("second request must hit the cache")
	}
	if len(second.Sources) == 0 {
		t.Fatal("expected rehydrated sources")
	}
	if second.Sources[0].Name != question {
		t.Errorf("rehydrated source name = %q, want the FAQ question", second.Sources[0].Name)
	}
}

func TestAskFastResponseSkipsGeneration(t *testing.T) {
	fastResponses := memory.NewFastResponseRepository()
	if err := memory.SeedFastResponses(context.Background(), fastResponses); err != nil {
		t.Fatalf("SeedFastResponses: %v", err)
	}
	fx := newPipeline(t, nil, nil, fastResponses)

	res, err := fx.service.Ask(context.Background(), uuid.New(), &dto.AskRequest{
		Query: "tracerpay rates",
	})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if !res.Cached {
		t.Error("fast response must be flagged as cached")
	}
	if !strings.Contains(res.Response, "TracerPay") {
		t.Errorf("response = %q, want canned TracerPay answer", res.Response)
	}
	if fx.provider.callCount() != 0 {
		t.Errorf("provider calls = %d, want 0", fx.provider.callCount())
	}
}

func TestAskAnswersWhenRetrievalIsEmpty(t *testing.T) {
	fx := newPipeline(t, nil, nil, nil)

	res, err := fx.service.Ask(context.Background(), uuid.New(), &dto.AskRequest{
		Query: "Something nobody ever uploaded",
	})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if len(res.Sources) != 0 {
		t.Errorf("sources = %+v, want none", res.Sources)
	}
	if len(res.Suggestions) != 3 {
		t.Fatalf("suggestions = %d, want 3 recovery hints", len(res.Suggestions))
	}
	if res.Suggestions[0] != "Try searching with different keywords" {
		t.Errorf("first suggestion = %q", res.Suggestions[0])
	}
	if fx.provider.callCount() != 1 {
		t.Errorf("provider calls = %d, want 1", fx.provider.callCount())
	}
}

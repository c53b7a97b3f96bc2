package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"sales-assistant-be/internal/dto"
	"sales-assistant-be/internal/repository/memory"
	"sales-assistant-be/internal/repository/specification"
	"sales-assistant-be/internal/repository/unitofwork"
	"sales-assistant-be/pkg/llm"
	"sales-assistant-be/pkg/rag/cache"
	"sales-assistant-be/pkg/rag/generate"
	"sales-assistant-be/pkg/rag/postprocess"
	"sales-assistant-be/pkg/rag/prompt"
	"sales-assistant-be/pkg/rag/rerank"
	"sales-assistant-be/pkg/rag/retrieval"
	"sales-assistant-be/pkg/rag/routing"
	"sales-assistant-be/pkg/store"

	"github.com/google/uuid"
)

var ErrEmptyQuery = errors.New("query must not be empty")

type IAssistantService interface {
	Ask(ctx context.Context, userId uuid.UUID, req *dto.AskRequest) (*dto.AskResponse, error)
	CacheStats() *dto.CacheStatsResponse
	ClearCache()
}

type assistantService struct {
	uowFactory          unitofwork.RepositoryFactory
	fastResponses       memory.FastResponseRepository
	resultCache         *cache.ResultCache
	classifier          *routing.Classifier
	router              *routing.Router
	retriever           *retrieval.MultiSourceRetriever
	reranker            *rerank.Reranker
	invoker             *generate.Invoker
	processor           *postprocess.Processor
	similarityThreshold float64
	retrievalLimit      int
	contextTopK         int
	logger              *log.Logger
}

func NewAssistantService(
	uowFactory unitofwork.RepositoryFactory,
	fastResponses memory.FastResponseRepository,
	resultCache *cache.ResultCache,
	classifier *routing.Classifier,
	router *routing.Router,
	retriever *retrieval.MultiSourceRetriever,
	reranker *rerank.Reranker,
	invoker *generate.Invoker,
	processor *postprocess.Processor,
	similarityThreshold float64,
	retrievalLimit int,
	contextTopK int,
	logger *log.Logger,
) IAssistantService {
	return &assistantService{
		uowFactory:          uowFactory,
		fastResponses:       fastResponses,
		resultCache:         resultCache,
		classifier:          classifier,
		router:              router,
		retriever:           retriever,
		reranker:            reranker,
		invoker:             invoker,
		processor:           processor,
		similarityThreshold: similarityThreshold,
		retrievalLimit:      retrievalLimit,
		contextTopK:         contextTopK,
		logger:              logger,
	}
}

// Ask runs the full pipeline: fast-response lookup, result cache,
// classification, tiered retrieval, reranking, generation and
// post-processing. Retrieval-side failures degrade to an answer built
// from whatever survived; only invalid input and generation failures
// surface as errors.
func (s *assistantService) Ask(ctx context.Context, userId uuid.UUID, req *dto.AskRequest) (*dto.AskResponse, error) {
	started := time.Now()

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	classification := s.classifier.Classify(query)
	s.logger.Printf("[ASK] %q intent=%s confidence=%d", query, classification.Intent, classification.Confidence)

	if fast, ok := s.fastResponses.Get(ctx, query); ok {
		s.logger.Printf("[ASK] fast response served for %q", query)
		return fastAskResponse(fast, classification, time.Since(started)), nil
	}

	passages, fromCache := s.cachedPassages(ctx, query)
	if !fromCache {
		passages = s.retrieveAndRank(ctx, query, classification)
	}

	assembler := prompt.NewAssembler(req.UserRole, query, passages, historyMessages(req.History))
	result, err := s.invoker.Invoke(ctx, userId.String(), assembler.Messages())
	if err != nil {
		return nil, err
	}

	answer := s.processor.Process(result.Text, passages, query)
	s.recordDocumentViews(passages)

	return &dto.AskResponse{
		Response:       answer.Response,
		Sources:        answer.Sources,
		ActionItems:    answer.ActionItems,
		FollowupTasks:  answer.FollowupTasks,
		Suggestions:    answer.Suggestions,
		Classification: classification,
		Cached:         fromCache,
		ResponseTimeMs: time.Since(started).Milliseconds(),
	}, nil
}

func (s *assistantService) CacheStats() *dto.CacheStatsResponse {
	return &dto.CacheStatsResponse{Stats: s.resultCache.Stats()}
}

func (s *assistantService) ClearCache() {
	s.resultCache.Clear()
}

// cachedPassages rebuilds the retrieval result from a cache entry. A
// hydration failure is treated as a miss so the request falls back to
// live retrieval.
func (s *assistantService) cachedPassages(ctx context.Context, query string) ([]store.Passage, bool) {
	entry := s.resultCache.Get(query)
	if entry == nil {
		entry = s.resultCache.FindSimilar(query, s.similarityThreshold)
	}
	if entry == nil {
		return nil, false
	}

	passages, err := s.hydratePassages(ctx, entry)
	if err != nil {
		s.logger.Printf("[WARN] cache hydration failed for %q: %v", query, err)
		return nil, false
	}
	s.logger.Printf("[ASK] cache hit for %q (%d documents)", query, len(passages))
	return passages, true
}

func (s *assistantService) retrieveAndRank(ctx context.Context, query string, classification routing.Classification) []store.Passage {
	passages, err := s.retriever.Retrieve(ctx, query, s.retrievalLimit)
	if err != nil {
		s.logger.Printf("[WARN] retrieval failed for %q: %v", query, err)
		return nil
	}
	if len(passages) == 0 {
		return nil
	}

	ranked := s.reranker.Rerank(passages, query, s.contextTerms(ctx, query, classification))
	if len(ranked) > s.contextTopK {
		ranked = ranked[:s.contextTopK]
	}

	documentIds := make([]string, 0, len(ranked))
	total := 0.0
	for _, p := range ranked {
		documentIds = append(documentIds, p.DocumentID)
		total += p.Score
	}
	s.resultCache.Set(query, documentIds, total/float64(len(ranked)), map[string]interface{}{
		"intent": string(classification.Intent),
	})
	return ranked
}

// contextTerms combines the classifier's namespaces with the folder
// routes so reranking favors passages from the folders the query is
// most likely about.
func (s *assistantService) contextTerms(ctx context.Context, query string, classification routing.Classification) []string {
	terms := make([]string, 0, len(classification.SuggestedNamespaces))
	terms = append(terms, classification.SuggestedNamespaces...)
	for _, route := range s.router.SuggestFolders(ctx, query) {
		terms = append(terms, route.Namespace)
	}
	return terms
}

func (s *assistantService) hydratePassages(ctx context.Context, entry *cache.Entry) ([]store.Passage, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	passages := make([]store.Passage, 0, len(entry.DocumentIds))
	for _, documentId := range entry.DocumentIds {
		var passage *store.Passage
		var err error
		if faqId, ok := strings.CutPrefix(documentId, "faq-"); ok {
			passage, err = s.hydrateFaq(ctx, uow, faqId)
		} else {
			passage, err = s.hydrateDocument(ctx, uow, documentId)
		}
		if err != nil {
			return nil, err
		}
		if passage == nil {
			continue
		}
		passage.Score = entry.Score
		passages = append(passages, *passage)
	}
	return passages, nil
}

func (s *assistantService) hydrateFaq(ctx context.Context, uow unitofwork.UnitOfWork, rawId string) (*store.Passage, error) {
	id, err := uuid.Parse(rawId)
	if err != nil {
		return nil, err
	}
	faq, err := uow.FaqRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil || faq == nil {
		return nil, err
	}

	createdAt := faq.CreatedAt
	return &store.Passage{
		ID:         "faq-" + faq.Id.String(),
		DocumentID: "faq-" + faq.Id.String(),
		Content:    "Q: " + faq.Question + "\nA: " + faq.Answer,
		Metadata: store.PassageMetadata{
			DocumentName: faq.Question,
			WebViewLink:  "/faq/" + faq.Id.String(),
			MimeType:     "text/plain",
			Category:     faq.Category,
			CreatedAt:    &createdAt,
		},
	}, nil
}

func (s *assistantService) hydrateDocument(ctx context.Context, uow unitofwork.UnitOfWork, rawId string) (*store.Passage, error) {
	id, err := uuid.Parse(rawId)
	if err != nil {
		return nil, err
	}
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil || doc == nil {
		return nil, err
	}

	chunk, err := uow.DocumentChunkRepository().FindOne(ctx,
		specification.ByDocumentID{DocumentID: id},
		specification.OrderBy{Field: "chunk_index", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	passage := store.Passage{
		ID:         doc.Id.String(),
		DocumentID: doc.Id.String(),
		Metadata:   documentMetadata(doc, 0),
	}
	if chunk != nil {
		passage.ID = chunk.Id.String()
		passage.Content = chunk.Content
		passage.Metadata.ChunkIndex = chunk.ChunkIndex
	}
	return &passage, nil
}

// recordDocumentViews bumps the popularity counter for documents that
// made it into the answer. Runs detached so a slow write never delays
// the response.
func (s *assistantService) recordDocumentViews(passages []store.Passage) {
	ids := make([]uuid.UUID, 0, len(passages))
	for _, p := range passages {
		if strings.HasPrefix(p.DocumentID, "faq-") {
			continue
		}
		if id, err := uuid.Parse(p.DocumentID); err == nil {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		uow := s.uowFactory.NewUnitOfWork(ctx)
		for _, id := range ids {
			if err := uow.DocumentRepository().IncrementViewCount(ctx, id); err != nil {
				s.logger.Printf("[WARN] view count update failed for %s: %v", id, err)
			}
		}
	}()
}

func fastAskResponse(fast *store.FastResponse, classification routing.Classification, elapsed time.Duration) *dto.AskResponse {
	sources := make([]store.Citation, 0, len(fast.Sources))
	for _, src := range fast.Sources {
		sources = append(sources, store.Citation{
			Name:           src.Name,
			URL:            src.Url,
			RelevanceScore: src.RelevanceScore,
			Type:           "document",
		})
	}
	return &dto.AskResponse{
		Response:       fast.Message,
		Sources:        sources,
		Classification: classification,
		Cached:         true,
		ResponseTimeMs: elapsed.Milliseconds(),
	}
}

func historyMessages(history []dto.ChatMessage) []llm.Message {
	messages := make([]llm.Message, 0, len(history))
	for _, m := range history {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}
	return messages
}

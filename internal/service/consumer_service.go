package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"sales-assistant-be/internal/dto"
	"sales-assistant-be/internal/entity"
	"sales-assistant-be/internal/repository/specification"
	"sales-assistant-be/internal/repository/unitofwork"
	"sales-assistant-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage embeds one document chunk. Ack rules: invalid payloads
// and deleted chunks are acked (retrying cannot fix them), everything
// else nacks for redelivery.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedChunkMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack()
		return
	}

	log.Printf("[INFO] Processing embedding for ChunkId: %s", payload.ChunkId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chunk, err := uow.DocumentChunkRepository().FindOne(ctx, specification.ByID{ID: payload.ChunkId})
	if err != nil {
		log.Printf("[ERROR] Failed to get chunk %s: %v", payload.ChunkId, err)
		msg.Nack()
		return
	}
	if chunk == nil {
		log.Printf("[ERROR] Chunk not found: %s", payload.ChunkId)
		msg.Ack()
		return
	}

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: chunk.DocumentId})
	if err != nil {
		log.Printf("[ERROR] Failed to get document %s: %v", chunk.DocumentId, err)
		msg.Nack()
		return
	}

	documentName := "Unknown"
	category := ""
	if document != nil {
		documentName = document.Name
		category = document.Category
	} else {
		log.Printf("[WARN] Chunk %s has no document (implied id %s)", chunk.Id, chunk.DocumentId)
	}

	content := fmt.Sprintf(`Document: %s
Category: %s

%s

Created At: %s`,
		documentName,
		category,
		chunk.Content,
		chunk.CreatedAt.Format(time.RFC3339),
	)

	res, err := cs.embeddingProvider.Generate(content, "RETRIEVAL_DOCUMENT")
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for chunk %s: %v", payload.ChunkId, err)
		msg.Nack()
		return
	}

	newEmbedding := &entity.ChunkEmbedding{
		Id:             uuid.New(),
		ChunkId:        chunk.Id,
		DocumentId:     chunk.DocumentId,
		Document:       content,
		EmbeddingValue: res.Embedding.Values,
		ChunkIndex:     chunk.ChunkIndex,
		CreatedAt:      time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.ChunkEmbeddingRepository().DeleteByChunkId(ctx, chunk.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old embedding: %v", err)
		msg.Nack()
		return
	}

	if err := uow.ChunkEmbeddingRepository().Create(ctx, newEmbedding); err != nil {
		log.Printf("[ERROR] Failed to create embedding: %v", err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Chunk embedded: %s (document %s)", chunk.Id, chunk.DocumentId)
	msg.Ack()
}

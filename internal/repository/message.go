package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"medical_chat/internal/domain"
	apperrors "medical_chat/pkg/errors"
	"medical_chat/pkg/logger"
)

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	GetByID(ctx context.Context, messageID uuid.UUID) (*domain.Message, error)
	SetTranslatedContent(ctx context.Context, messageID uuid.UUID, translatedContent string) error
}

type messageRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewMessageRepository(db *pgxpool.Pool, log logger.Logger) MessageRepository {
	return &messageRepository{db: db, log: log}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (conversation_id, sender_id, sender_role, content, message_type, audio_data)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		message.ConversationID, message.SenderID, message.SenderRole,
		message.Content, message.MessageType, message.AudioData,
	).Scan(&message.ID, &message.CreatedAt)

	if err != nil {
		r.log.Error("Failed to create message", "error", err, "conversation_id", message.ConversationID)
		return err
	}

	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, messageID uuid.UUID) (*domain.Message, error) {
	query := `
		SELECT id, conversation_id, sender_id, sender_role, content, translated_content, message_type, audio_data, created_at
		FROM messages
		WHERE id = $1
	`

	message := &domain.Message{}
	err := r.db.QueryRow(ctx, query, messageID).Scan(
		&message.ID, &message.ConversationID, &message.SenderID, &message.SenderRole,
		&message.Content, &message.TranslatedContent, &message.MessageType,
		&message.AudioData, &message.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMessageNotFound
		}
		r.log.Error("Failed to get message", "error", err, "message_id", messageID)
		return nil, err
	}

	return message, nil
}

// SetTranslatedContent записывает перевод ровно один раз: условие
// translated_content IS NULL защищает уже записанный перевод от перезаписи.
func (r *messageRepository) SetTranslatedContent(ctx context.Context, messageID uuid.UUID, translatedContent string) error {
	query := `
		UPDATE messages
		SET translated_content = $2
		WHERE id = $1 AND translated_content IS NULL
	`

	tag, err := r.db.Exec(ctx, query, messageID, translatedContent)
	if err != nil {
		r.log.Error("Failed to set translated content", "error", err, "message_id", messageID)
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMessageNotFound
	}

	return nil
}

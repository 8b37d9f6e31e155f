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

type ConversationRepository interface {
	GetByID(ctx context.Context, conversationID uuid.UUID) (*domain.Conversation, error)
	UpdateLanguage(ctx context.Context, conversationID uuid.UUID, role, language string) error
	Touch(ctx context.Context, conversationID uuid.UUID) error
}

type conversationRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewConversationRepository(db *pgxpool.Pool, log logger.Logger) ConversationRepository {
	return &conversationRepository{db: db, log: log}
}

func (r *conversationRepository) GetByID(ctx context.Context, conversationID uuid.UUID) (*domain.Conversation, error) {
	query := `
		SELECT id, doctor_id, patient_id, doctor_language, patient_language, status, created_at, updated_at
		FROM conversations
		WHERE id = $1
	`

	conversation := &domain.Conversation{}
	err := r.db.QueryRow(ctx, query, conversationID).Scan(
		&conversation.ID, &conversation.DoctorID, &conversation.PatientID,
		&conversation.DoctorLanguage, &conversation.PatientLanguage,
		&conversation.Status, &conversation.CreatedAt, &conversation.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConversationNotFound
		}
		r.log.Error("Failed to get conversation", "error", err, "conversation_id", conversationID)
		return nil, err
	}

	return conversation, nil
}

func (r *conversationRepository) UpdateLanguage(ctx context.Context, conversationID uuid.UUID, role, language string) error {
	// Каждый участник меняет только язык своей роли
	column := "patient_language"
	if role == domain.RoleDoctor {
		column = "doctor_language"
	}

	query := `UPDATE conversations SET ` + column + ` = $2, updated_at = now() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, conversationID, language)
	if err != nil {
		r.log.Error("Failed to update conversation language", "error", err, "conversation_id", conversationID)
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConversationNotFound
	}

	return nil
}

func (r *conversationRepository) Touch(ctx context.Context, conversationID uuid.UUID) error {
	query := `UPDATE conversations SET updated_at = now() WHERE id = $1`

	_, err := r.db.Exec(ctx, query, conversationID)
	if err != nil {
		r.log.Error("Failed to touch conversation", "error", err, "conversation_id", conversationID)
		return err
	}

	return nil
}

package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medical_chat/internal/domain"
	apperrors "medical_chat/pkg/errors"
	"medical_chat/pkg/logger"
)

func TestGetForParticipant(t *testing.T) {
	conversation := &domain.Conversation{
		ID:        uuid.New(),
		DoctorID:  uuid.New(),
		PatientID: uuid.New(),
	}
	svc := NewConversationService(&fakeConversationRepo{conversation: conversation}, logger.New("error"))

	got, err := svc.GetForParticipant(context.Background(), conversation.ID, conversation.DoctorID)
	require.NoError(t, err)
	assert.Equal(t, conversation.ID, got.ID)

	_, err = svc.GetForParticipant(context.Background(), conversation.ID, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrConversationNotFound)
}

func TestUpdateLanguage(t *testing.T) {
	conversation := &domain.Conversation{
		ID:              uuid.New(),
		DoctorID:        uuid.New(),
		PatientID:       uuid.New(),
		DoctorLanguage:  "en",
		PatientLanguage: "es",
	}
	svc := NewConversationService(&fakeConversationRepo{conversation: conversation}, logger.New("error"))

	updated, err := svc.UpdateLanguage(context.Background(), conversation.ID, conversation.PatientID, domain.RolePatient, "fr")
	require.NoError(t, err)
	assert.Equal(t, "fr", updated.PatientLanguage)
	assert.Equal(t, "en", updated.DoctorLanguage, "only the caller's side changes")

	_, err = svc.UpdateLanguage(context.Background(), conversation.ID, conversation.PatientID, domain.RolePatient, "x")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.UpdateLanguage(context.Background(), conversation.ID, uuid.New(), domain.RolePatient, "fr")
	assert.ErrorIs(t, err, apperrors.ErrConversationNotFound)
}

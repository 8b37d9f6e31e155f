package domain

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	ID              uuid.UUID `json:"id"`
	DoctorID        uuid.UUID `json:"doctor_id"`
	PatientID       uuid.UUID `json:"patient_id"`
	DoctorLanguage  string    `json:"doctor_language"`
	PatientLanguage string    `json:"patient_language"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

const (
	ConversationStatusActive   = "active"
	ConversationStatusArchived = "archived"
)

const (
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// IsParticipant проверяет, является ли пользователь участником разговора
func (c *Conversation) IsParticipant(userID uuid.UUID) bool {
	return c.DoctorID == userID || c.PatientID == userID
}

// LanguageFor возвращает предпочитаемый язык для указанной роли
func (c *Conversation) LanguageFor(role string) string {
	if role == RoleDoctor {
		return c.DoctorLanguage
	}
	return c.PatientLanguage
}

// LanguageForOther возвращает язык второго участника разговора
func (c *Conversation) LanguageForOther(role string) string {
	if role == RoleDoctor {
		return c.PatientLanguage
	}
	return c.DoctorLanguage
}

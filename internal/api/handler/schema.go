package handler

import (
	"time"

	"github.com/openjournal/diary-system/internal/core/ports"
)

const (
	statusSuccess = "success"
	statusFail    = "fail"
)

// response is the common envelope: every reply carries status plus a message
// or a data payload.
type response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func failResponse(message string) response {
	return response{Status: statusFail, Message: message}
}

// --- Request types ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password"`
}

type createEntryRequest struct {
	Text string `json:"text" validate:"required,max=255"`
}

// --- Response types ---

type authResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	AuthToken string `json:"auth_token,omitempty"`
}

type profileData struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	Admin        bool      `json:"admin"`
	RegisteredOn time.Time `json:"registered_on"`
}

type createEntryResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	DiaryID string `json:"diary_id"`
}

type entryData struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	UserID     string    `json:"user_id"`
	InProgress bool      `json:"in_progress"`
	Result     *string   `json:"result"`
	CreatedOn  time.Time `json:"created_on"`
}

type statsData = ports.Stats

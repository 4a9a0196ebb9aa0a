package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openjournal/diary-system/internal/core/domain"
	"github.com/openjournal/diary-system/internal/core/ports"
)

// DiaryHandler handles diary entry resources and user stats.
type DiaryHandler struct {
	entries ports.EntryService
	users   ports.UserRepository
}

func NewDiaryHandler(entries ports.EntryService, users ports.UserRepository) *DiaryHandler {
	return &DiaryHandler{entries: entries, users: users}
}

// List returns the caller's entries, or every entry for admins.
//
// @Summary      List diary entries
// @Tags         diary
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response
// @Failure      401  {object}  response
// @Router       /api/diary [get]
func (h *DiaryHandler) List(c echo.Context) error {
	actor, _, err := ctxActor(c, h.users)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, failResponse("A user with this auth token does not exist."))
	}

	entries, err := h.entries.List(reqCtx(c), actor)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, failResponse("Try again"))
	}

	data := make([]entryData, 0, len(entries))
	for _, e := range entries {
		data = append(data, toEntryData(e))
	}
	return c.JSON(http.StatusOK, response{Status: statusSuccess, Data: data})
}

// Get returns a single entry if the caller owns it or is an admin.
//
// @Summary      Get a diary entry
// @Tags         diary
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Entry id"
// @Success      200  {object}  response
// @Failure      401  {object}  response
// @Failure      404  {object}  response
// @Router       /api/diary/{id} [get]
func (h *DiaryHandler) Get(c echo.Context) error {
	actor, _, err := ctxActor(c, h.users)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, failResponse("A user with this auth token does not exist."))
	}

	entry, err := h.entries.Get(reqCtx(c), actor, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEntryNotFound):
			return c.JSON(http.StatusNotFound, failResponse("A diary with this id does not exist."))
		case errors.Is(err, domain.ErrForbidden):
			return c.JSON(http.StatusUnauthorized, failResponse("Authorization failed."))
		default:
			return c.JSON(http.StatusInternalServerError, failResponse("Try again"))
		}
	}

	return c.JSON(http.StatusOK, response{Status: statusSuccess, Data: toEntryData(*entry)})
}

// Create inserts a new in-progress entry and dispatches it for processing.
//
// @Summary      Create a diary entry
// @Tags         diary
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEntryRequest  true  "Entry text"
// @Success      201   {object}  createEntryResponse
// @Failure      401   {object}  response
// @Failure      404   {object}  response
// @Router       /api/diary [post]
func (h *DiaryHandler) Create(c echo.Context) error {
	actor, _, err := ctxActor(c, h.users)
	if err != nil {
		return c.JSON(http.StatusNotFound, failResponse("No such user."))
	}

	var req createEntryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnauthorized, failResponse("Some error occurred. Please try again."))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnauthorized, failResponse(err.Error()))
	}

	entry, err := h.entries.Create(reqCtx(c), actor.ID, req.Text)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, failResponse("Some error occurred. Please try again."))
	}

	return c.JSON(http.StatusCreated, createEntryResponse{
		Status:  statusSuccess,
		Message: "Diary successfully created.",
		DiaryID: entry.ID,
	})
}

// Stats returns aggregates over the caller's own entries.
//
// @Summary      Get diary stats
// @Tags         diary
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response
// @Failure      401  {object}  response
// @Failure      404  {object}  response
// @Router       /api/stats [get]
func (h *DiaryHandler) Stats(c echo.Context) error {
	actor, _, err := ctxActor(c, h.users)
	if err != nil {
		return c.JSON(http.StatusNotFound, failResponse("No such user."))
	}

	stats, err := h.entries.Stats(reqCtx(c), actor.ID)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return c.JSON(http.StatusNotFound, failResponse("This user has no diaries."))
		}
		return c.JSON(http.StatusInternalServerError, failResponse("Try again"))
	}

	return c.JSON(http.StatusOK, response{Status: statusSuccess, Data: statsData(*stats)})
}

func toEntryData(e domain.Entry) entryData {
	return entryData{
		ID:         e.ID,
		Text:       e.Text,
		UserID:     e.UserID,
		InProgress: e.InProgress,
		Result:     e.Result,
		CreatedOn:  e.CreatedOn,
	}
}

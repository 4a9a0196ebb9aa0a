package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/openjournal/diary-system/internal/api/middleware"
	"github.com/openjournal/diary-system/internal/core/domain"
	"github.com/openjournal/diary-system/internal/core/ports"
)

// ctxActor resolves the authenticated caller from the user id the Auth
// middleware injected, loading the user row so the admin flag reflects
// current state rather than anything baked into the token.
func ctxActor(c echo.Context, users ports.UserRepository) (domain.Actor, *domain.User, error) {
	userID, _ := c.Get(middleware.ContextUserID).(string)
	if userID == "" {
		return domain.Actor{}, nil, domain.ErrUserNotFound
	}

	user, err := users.FindByID(reqCtx(c), userID)
	if err != nil {
		return domain.Actor{}, nil, err
	}
	return domain.Actor{ID: user.ID, Admin: user.Admin}, user, nil
}

func reqCtx(c echo.Context) context.Context {
	return c.Request().Context()
}

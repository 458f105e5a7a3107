package main

import (
	"context"
	"net/http"

	"github.com/clovermist/folio/internal/authservice"
)

type contextKey string

const userContextKey = contextKey("user")

func (app *application) createUserContext(r *http.Request, user *authservice.User) *http.Request {
	ctx := context.WithValue(r.Context(), userContextKey, user)
	return r.WithContext(ctx)
}

func (app *application) getUserContext(r *http.Request) *authservice.User {
	user, ok := r.Context().Value(userContextKey).(*authservice.User)
	if !ok {
		return nil
	}
	return user
}

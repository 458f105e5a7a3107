package main

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)

	// The blog paths answer an unsupported method with a 400 envelope, a
	// contract the site's frontend already depends on. Everything else gets
	// a plain 405.
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/blog") {
			app.invalidMethodErrorResponse(w, r)
			return
		}
		app.methodNotAllowedErrorResponse(w, r)
	})

	// auth service
	router.HandlerFunc(http.MethodPost, "/api/auth/login", app.loginHandler)

	// blog service
	router.HandlerFunc(http.MethodGet, "/api/blog", app.getPostsHandler)
	router.HandlerFunc(http.MethodPost, "/api/blog", app.requireAdmin(app.createPostHandler))
	router.HandlerFunc(http.MethodGet, "/api/blog/:slug", app.getPostHandler)
	router.HandlerFunc(http.MethodPut, "/api/blog/:slug", app.requireAdmin(app.updatePostHandler))
	router.HandlerFunc(http.MethodDelete, "/api/blog/:slug", app.requireAdmin(app.deletePostHandler))

	// contact
	router.HandlerFunc(http.MethodPost, "/api/contact", app.contactHandler)

	router.HandlerFunc(http.MethodGet, "/api/healthcheck", app.healthCheckHandler)

	return app.recoverPanic(app.rateLimit(app.logRequest(app.authenticate(router))))
}

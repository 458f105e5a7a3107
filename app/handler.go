package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/clovermist/folio/internal/authservice"
	"github.com/clovermist/folio/internal/blogservice"
	"github.com/clovermist/folio/internal/common"
	"github.com/clovermist/folio/internal/mailservice"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var input loginRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user, token, err := app.authService.Login(input.Username, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrAuthenticationFailure):
			app.invalidCredentialsErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			app.invalidCredentialsErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	// The login response predates the envelope and stays flat.
	err = app.writeJSON(w, http.StatusOK, loginResponse{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Role:     user.Role,
		Token:    token,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type createPostRequest struct {
	Title    string    `json:"title"`
	Excerpt  string    `json:"excerpt"`
	Slug     string    `json:"slug"`
	Date     time.Time `json:"date"`
	Featured bool      `json:"featured"`
	Content  string    `json:"content"`
}

func (app *application) createPostHandler(w http.ResponseWriter, r *http.Request) {
	var input createPostRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	req := &blogservice.CreatePostRequest{
		Title:    input.Title,
		Excerpt:  input.Excerpt,
		Slug:     input.Slug,
		Date:     input.Date,
		Featured: input.Featured,
		Content:  input.Content,
	}

	post, err := app.blogService.CreatePost(r.Context(), req)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{Success: true, Data: post}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getPostsHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := app.blogService.GetPosts(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{Success: true, Data: posts}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getPostHandler(w http.ResponseWriter, r *http.Request) {
	slug, err := app.readSlugParam(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	post, err := app.blogService.GetPostBySlug(r.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{Success: true, Data: post}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type updatePostRequest struct {
	Title    *string    `json:"title"`
	Excerpt  *string    `json:"excerpt"`
	Slug     *string    `json:"slug"`
	Date     *time.Time `json:"date"`
	Featured *bool      `json:"featured"`
	Content  *string    `json:"content"`
}

func (app *application) updatePostHandler(w http.ResponseWriter, r *http.Request) {
	slug, err := app.readSlugParam(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input updatePostRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	req := &blogservice.UpdatePostRequest{
		Title:    input.Title,
		Excerpt:  input.Excerpt,
		Slug:     input.Slug,
		Date:     input.Date,
		Featured: input.Featured,
		Content:  input.Content,
	}

	post, err := app.blogService.UpdatePost(r.Context(), slug, req)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{Success: true, Data: post}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) deletePostHandler(w http.ResponseWriter, r *http.Request) {
	slug, err := app.readSlugParam(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.blogService.DeletePost(r.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{Success: true, Data: struct{}{}}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (app *application) contactHandler(w http.ResponseWriter, r *http.Request) {
	var input contactRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	msg := mailservice.ContactMessage{
		Name:    input.Name,
		Email:   input.Email,
		Message: input.Message,
	}

	v := common.NewValidator()
	mailservice.ValidateContactMessage(v, &msg)
	if !v.Valid() {
		app.failedValidationErrorResponse(w, r, v.Errors)
		return
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.producer.Publish(r.Context(), payload, common.ContactMessageKey, common.ContactExchange)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusAccepted, envelope{Success: true, Data: map[string]string{"message": "thanks for reaching out, your message has been received"}}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

// AngelaMos | 2026
// handler.go

package article

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/raj-p26/inklink-backend/internal/core"
	"github.com/raj-p26/inklink-backend/internal/middleware"
	"github.com/raj-p26/inklink-backend/internal/patch"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the public feed and, behind authenticator and
// writeLimit, the owner-only operations.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	writeLimit func(http.Handler) http.Handler,
) {
	r.Route("/articles", func(r chi.Router) {
		r.Get("/all", h.ListAll)
		r.Get("/latest", h.ListLatest)
		r.Get("/{articleID}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Get("/mine", h.ListMine)

			r.Group(func(r chi.Router) {
				if writeLimit != nil {
					r.Use(writeLimit)
				}
				r.Post("/new", h.Create)
				r.Put("/{articleID}", h.Update)
				r.Put("/{articleID}/status", h.UpdateStatus)
				r.Delete("/{articleID}", h.Delete)
			})
		})
	})
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	articles, err := h.service.ListAll(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToArticleResponseList(articles))
}

func (h *Handler) ListLatest(w http.ResponseWriter, r *http.Request) {
	articles, err := h.service.ListLatest(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToArticleResponseList(articles))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	article, err := h.service.GetPublished(r.Context(), chi.URLParam(r, "articleID"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToArticleResponse(article))
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	articles, err := h.service.ListMine(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToArticleResponseList(articles))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	article, err := h.service.Create(r.Context(), middleware.GetIdentity(r.Context()), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Created(w, ToArticleResponse(article))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	article, err := h.service.Update(
		r.Context(),
		middleware.GetIdentity(r.Context()),
		chi.URLParam(r, "articleID"),
		req,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToArticleResponse(article))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	article, err := h.service.UpdateStatus(
		r.Context(),
		middleware.GetIdentity(r.Context()),
		chi.URLParam(r, "articleID"),
		req.Status,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToArticleResponse(article))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(
		r.Context(),
		middleware.GetIdentity(r.Context()),
		chi.URLParam(r, "articleID"),
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "article")
	case errors.Is(err, ErrNotOwner):
		core.Forbidden(w, "only the author can modify this article")
	case errors.Is(err, ErrOwnerInactive):
		core.Forbidden(w, "account is not active")
	case errors.Is(err, ErrArticlePublished):
		core.Conflict(w, "published articles cannot be deleted")
	case errors.Is(err, patch.ErrNoFieldsToUpdate):
		core.BadRequest(w, "no fields to update")
	default:
		core.JSONError(w, err)
	}
}

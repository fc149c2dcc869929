package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/blog-site/errs"
	"github.com/rpupo63/blog-site/views"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type pageHandler struct {
	responder Responder
	logger    zerolog.Logger
	assembler *views.Assembler
}

func newPageHandler(assembler *views.Assembler, pages pages) pageHandler {
	logger := log.With().Str("handlerName", "pageHandler").Logger()

	return pageHandler{
		responder: NewResponder(logger, pages),
		logger:    logger,
		assembler: assembler,
	}
}

// home renders the index page: popular posts, the freshest posts and popular tags.
func (h pageHandler) home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.assembler.Home(r.Context())
		if err != nil {
			h.responder.WritePageError(w, r, err)
			return
		}
		h.responder.WritePage(w, r, pageIndex, page)
	}
}

func (h pageHandler) postDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WritePageError(w, r, errs.NewBadRequestError("missing slug"))
			return
		}

		page, err := h.assembler.PostDetail(r.Context(), slug)
		if err != nil {
			h.responder.WritePageError(w, r, err)
			return
		}
		h.responder.WritePage(w, r, pagePostDetails, page)
	}
}

func (h pageHandler) tagFilter() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		title := chi.URLParam(r, "tagTitle")
		if title == "" {
			h.responder.WritePageError(w, r, errs.NewBadRequestError("missing tag title"))
			return
		}

		page, err := h.assembler.TagFilter(r.Context(), title)
		if err != nil {
			h.responder.WritePageError(w, r, err)
			return
		}
		h.responder.WritePage(w, r, pagePostsList, page)
	}
}

func (h pageHandler) contacts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WritePage(w, r, pageContacts, struct{}{})
	}
}

func (h pageHandler) notFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WritePageError(w, r, errs.NewNotFoundError("no route for "+r.URL.Path))
	}
}

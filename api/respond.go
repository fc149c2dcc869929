package api

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/rpupo63/blog-site/errs"
	"github.com/rs/zerolog"
)

type Responder struct {
	logger zerolog.Logger
	pages  pages
}

func NewResponder(logger zerolog.Logger, pages pages) Responder {
	return Responder{logger: logger, pages: pages}
}

// wantsJSON reports whether the client asked for the view model instead of HTML.
func wantsJSON(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mediaType == "application/json" {
			return true
		}
	}
	return false
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.writeJSON(w, http.StatusOK, data)
}

func (r Responder) writeJSON(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:  "Internal Server Error",
			Status: "error",
		})
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Str("error", apiErr.GetFullError()).Int("status", apiErr.StatusCode).Msg("request failed")
	}

	response := ErrorResponse{
		Error:   apiErr.Error(),
		Status:  "error",
		Field:   apiErr.Field,
		Details: apiErr.Details,
	}
	if apiErr.Cause != nil && apiErr.StatusCode < http.StatusInternalServerError {
		response.Cause = apiErr.GetFullError()
	}

	r.writeJSON(w, apiErr.StatusCode, response)
}

// WritePage answers with the JSON view model or the rendered HTML page depending on Accept.
func (r Responder) WritePage(w http.ResponseWriter, req *http.Request, page string, data any) {
	if wantsJSON(req) {
		r.WriteJSON(w, data)
		return
	}
	r.writeHTML(w, http.StatusOK, page, data)
}

// WritePageError is WriteError for page routes: browsers get the error page, API clients JSON.
func (r Responder) WritePageError(w http.ResponseWriter, req *http.Request, err error) {
	if wantsJSON(req) {
		r.WriteError(w, err)
		return
	}

	status := errs.StatusCode(err)
	message := "Something went wrong on our side. Please try again later."
	switch {
	case status == http.StatusNotFound:
		message = "The page you are looking for does not exist."
	case status < http.StatusInternalServerError:
		message = err.Error()
	default:
		var apiErr *errs.ApiErr
		if errors.As(err, &apiErr) {
			r.logger.Error().Str("error", apiErr.GetFullError()).Int("status", status).Msg("request failed")
		} else {
			r.logger.Error().Err(err).Msg("unexpected error")
		}
	}

	r.writeHTML(w, status, pageError, errorPage{StatusCode: status, Message: message})
}

func (r Responder) writeHTML(w http.ResponseWriter, status int, page string, data any) {
	body, err := r.pages.render(page, data)
	if err != nil {
		renderErr := errs.NewInternalErrorWithCause("error rendering page", err)
		r.logger.Error().Str("page", page).Msg(renderErr.GetFullError())
		http.Error(w, http.StatusText(renderErr.StatusCode), renderErr.StatusCode)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// Package handlers provides the HTTP surface of the backend.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/alienxp03/folio/internal/config"
	"github.com/alienxp03/folio/internal/contact"
	"github.com/alienxp03/folio/internal/core"
	"github.com/alienxp03/folio/internal/debate"
	"github.com/alienxp03/folio/internal/export"
	"github.com/alienxp03/folio/internal/storage"
)

// Handler holds dependencies for HTTP handlers. engine and contact are nil
// when the model credential is not configured; the affected endpoints then
// answer with a configuration error instead of failing at startup.
type Handler struct {
	engine  *debate.Engine
	contact *contact.Service
	store   storage.Storage
	cfg     *config.Config
}

// New creates a new Handler.
func New(engine *debate.Engine, contactSvc *contact.Service, store storage.Storage, cfg *config.Config) *Handler {
	return &Handler{
		engine:  engine,
		contact: contactSvc,
		store:   store,
		cfg:     cfg,
	}
}

// Routes builds the router with CORS and all endpoints registered.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/", h.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/debate/generate", h.handleDebateGenerate)
		r.Post("/debate/export/{format}", h.handleDebateExport)
		r.Post("/contact/draft", h.handleContactDraft)
		r.Post("/contact/draft/improve", h.handleContactImprove)
		r.Get("/sessions", h.handleListSessions)

		// Route listing is exposed in development only.
		if h.cfg.IsDevelopment() {
			r.Get("/docs", h.handleDocs)
		}
	})

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleDocs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name": h.cfg.App.Name,
		"env":  h.cfg.App.Env,
		"routes": []map[string]string{
			{"method": "GET", "path": "/", "description": "Liveness probe"},
			{"method": "POST", "path": "/api/debate/generate", "description": "Stream a six-turn debate over SSE"},
			{"method": "POST", "path": "/api/debate/export/{format}", "description": "Render a transcript as markdown, json, or pdf"},
			{"method": "POST", "path": "/api/contact/draft", "description": "Draft a contact-form message"},
			{"method": "POST", "path": "/api/contact/draft/improve", "description": "Improve a contact-form draft"},
			{"method": "GET", "path": "/api/sessions", "description": "List recent debate session records"},
		},
	})
}

// Contact endpoints

type draftRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
}

type improveRequest struct {
	Draft   string `json:"draft"`
	Comment string `json:"comment"`
}

type draftResponse struct {
	Draft string `json:"draft"`
}

func (h *Handler) handleContactDraft(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Subject = strings.TrimSpace(req.Subject)

	if req.Name == "" || utf8.RuneCountInString(req.Name) > 100 {
		writeError(w, http.StatusBadRequest, "name must be 1-100 characters")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeError(w, http.StatusBadRequest, "email is not valid")
		return
	}
	if req.Subject == "" || utf8.RuneCountInString(req.Subject) > 200 {
		writeError(w, http.StatusBadRequest, "subject must be 1-200 characters")
		return
	}

	if h.contact == nil {
		writeError(w, http.StatusInternalServerError, "Server configuration error")
		return
	}

	draft, err := h.contact.Draft(r.Context(), req.Name, req.Email, req.Subject)
	if err != nil {
		slog.Error("Failed to draft contact message", "error", err)
		writeError(w, http.StatusBadGateway, "Failed to generate draft")
		return
	}
	if draft == "" {
		writeError(w, http.StatusBadGateway, "Empty draft returned by the model")
		return
	}

	h.recordContactEvent(storage.ContactEventDraft)
	writeJSON(w, http.StatusOK, draftResponse{Draft: draft})
}

func (h *Handler) handleContactImprove(w http.ResponseWriter, r *http.Request) {
	var req improveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Draft) == "" {
		writeError(w, http.StatusBadRequest, "draft cannot be empty")
		return
	}
	if strings.TrimSpace(req.Comment) == "" {
		writeError(w, http.StatusBadRequest, "comment cannot be empty")
		return
	}

	if h.contact == nil {
		writeError(w, http.StatusInternalServerError, "Server configuration error")
		return
	}

	improved, err := h.contact.Improve(r.Context(), req.Draft, req.Comment)
	if err != nil {
		slog.Error("Failed to improve contact draft", "error", err)
		writeError(w, http.StatusBadGateway, "Failed to generate draft")
		return
	}
	if improved == "" {
		writeError(w, http.StatusBadGateway, "Empty draft returned by the model")
		return
	}

	h.recordContactEvent(storage.ContactEventImprove)
	writeJSON(w, http.StatusOK, draftResponse{Draft: improved})
}

func (h *Handler) recordContactEvent(kind storage.ContactEventKind) {
	if h.store == nil {
		return
	}
	if err := h.store.RecordContactEvent(kind); err != nil {
		slog.Warn("Failed to record contact event", "kind", kind, "error", err)
	}
}

// Session log

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusOK, []*core.Session{})
		return
	}

	sessions, err := h.store.ListSessions(50, 0)
	if err != nil {
		slog.Error("Failed to list sessions", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}
	if sessions == nil {
		sessions = []*core.Session{}
	}

	writeJSON(w, http.StatusOK, sessions)
}

// Transcript export

func (h *Handler) handleDebateExport(w http.ResponseWriter, r *http.Request) {
	format := export.Format(chi.URLParam(r, "format"))

	exporter, err := export.GetExporter(format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var transcript core.Transcript
	if err := json.NewDecoder(r.Body).Decode(&transcript); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if _, err := core.ValidateTopic(transcript.Topic); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	filename := export.GenerateFilename(&transcript, exporter.FileExtension())
	w.Header().Set("Content-Type", exporter.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := exporter.Export(&transcript, w); err != nil {
		slog.Error("Failed to export transcript", "format", format, "error", err)
	}
}

// Helpers

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

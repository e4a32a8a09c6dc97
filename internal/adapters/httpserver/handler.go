package httpserver

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/badnails/TestProjectGateway/internal/adapters/render/web"
	"github.com/badnails/TestProjectGateway/internal/domain"
	"github.com/google/uuid"
)

const ScopeCookieName = "paygate_tab"

// Flow is the confirmation flow as seen by the web front end.
type Flow interface {
	Load(ctx context.Context, scope domain.Scope, currentID domain.TransactionID) (domain.Session, error)
	SubmitUsername(ctx context.Context, scope domain.Scope, currentID domain.TransactionID, username string) (domain.Session, error)
	SubmitPIN(ctx context.Context, scope domain.Scope, currentID domain.TransactionID, pin string) (domain.Session, error)
	Close(ctx context.Context, scope domain.Scope, currentID domain.TransactionID) (domain.Session, error)
	Retry(ctx context.Context, scope domain.Scope, currentID domain.TransactionID) (domain.Session, error)
}

type Handler struct {
	flow   Flow
	logger *slog.Logger
}

func NewHandler(flow Flow, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{flow: flow, logger: logger}
}

func (h *Handler) handleShow(w http.ResponseWriter, r *http.Request) {
	scope := h.scope(w, r)
	session, err := h.flow.Load(r.Context(), scope, transactionID(r))
	h.respond(w, r, session, err)
}

func (h *Handler) handleSubmitUsername(w http.ResponseWriter, r *http.Request) {
	scope := h.scope(w, r)
	session, err := h.flow.SubmitUsername(r.Context(), scope, transactionID(r), r.PostFormValue("username"))
	h.respond(w, r, session, err)
}

func (h *Handler) handleSubmitPIN(w http.ResponseWriter, r *http.Request) {
	scope := h.scope(w, r)
	session, err := h.flow.SubmitPIN(r.Context(), scope, transactionID(r), r.PostFormValue("pin"))
	h.respond(w, r, session, err)
}

func (h *Handler) handleRetry(w http.ResponseWriter, r *http.Request) {
	scope := h.scope(w, r)
	id := transactionID(r)
	session, err := h.flow.Retry(r.Context(), scope, id)
	if err != nil {
		h.respond(w, r, session, err)
		return
	}

	http.Redirect(w, r, "/"+web.Query(id), http.StatusSeeOther)
}

func (h *Handler) handleClose(w http.ResponseWriter, r *http.Request) {
	scope := h.scope(w, r)
	session, err := h.flow.Close(r.Context(), scope, transactionID(r))
	if err != nil {
		h.respond(w, r, session, err)
		return
	}

	var buf bytes.Buffer
	if err := web.RenderClosed(&buf); err != nil {
		h.internalError(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, session domain.Session, err error) {
	status := http.StatusOK
	if err != nil {
		if !domain.IsRejection(err) {
			h.internalError(w, r, err)
			return
		}
		status = rejectionStatus(err)
	}

	var buf bytes.Buffer
	if err := web.RenderPage(&buf, session); err != nil {
		h.internalError(w, r, err)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed", "path", r.URL.Path, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// scope identifies the browser tab session, issuing a new cookie on first visit.
func (h *Handler) scope(w http.ResponseWriter, r *http.Request) domain.Scope {
	if cookie, err := r.Cookie(ScopeCookieName); err == nil {
		if _, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
			return domain.Scope(cookie.Value)
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     ScopeCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return domain.Scope(id)
}

func transactionID(r *http.Request) domain.TransactionID {
	return domain.TransactionIDFromQuery(r.URL.Query())
}

func rejectionStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrActionInFlight), errors.Is(err, domain.ErrActionNotAllowed):
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

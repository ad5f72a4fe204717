package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"smartcommute/internal/account"
	"smartcommute/internal/platform/metrics"
	"smartcommute/internal/platform/middleware"
	dErrors "smartcommute/pkg/domain-errors"
)

// Service defines the account operations the HTTP layer exposes.
type Service interface {
	GetBalance(ctx context.Context, cardNumber string) (int, error)
	Recharge(ctx context.Context, cardNumber string, amount int) (int, error)
	Authenticate(ctx context.Context, username, password string) (*account.User, error)
	GetUser(ctx context.Context, id int) (*account.User, error)
	CreateUser(ctx context.Context, candidate account.UserCandidate) (*account.User, error)
}

// Handler handles the user and card endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
	metrics *metrics.Metrics
}

// New creates an account Handler.
func New(service Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
		metrics: m,
	}
}

// Register registers the account routes with the chi router. The
// middleware chain is scoped to these routes so operational endpoints
// (health, metrics) stay outside it.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Recovery(h.logger))
		r.Use(middleware.RequestID)
		r.Use(middleware.Logger(h.logger))
		r.Use(middleware.Timeout(15 * time.Second))
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.LatencyMiddleware(h.metrics))

		r.Get("/v1/users/{id}", h.handleGetUser)
		r.Post("/v1/users", h.handleCreateUser)
		r.Post("/v1/auth/login", h.handleLogin)
		r.Get("/v1/cards/{cardNumber}/balance", h.handleGetBalance)
		r.Post("/v1/cards/{cardNumber}/recharge", h.handleRecharge)
	})
}

// handleGetUser returns a user record by id.
func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "user id must be an integer"))
		return
	}

	record, err := h.service.GetUser(ctx, id)
	if err != nil {
		h.logFailure(ctx, "get user", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(record))
}

// handleCreateUser registers a new user and returns the created record.
func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid create user request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}

	record, err := h.service.CreateUser(ctx, account.UserCandidate{
		Username:   req.Username,
		Password:   req.Password,
		CardNumber: req.CardNumber,
	})
	if err != nil {
		h.logFailure(ctx, "create user", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(record))
}

// handleLogin authenticates a credential pair and returns the matching
// record. No token or session is issued.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid login request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}

	record, err := h.service.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		h.logFailure(ctx, "login", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(record))
}

// handleGetBalance returns the balance of a card.
func (h *Handler) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cardNumber := chi.URLParam(r, "cardNumber")

	balance, err := h.service.GetBalance(ctx, cardNumber)
	if err != nil {
		h.logFailure(ctx, "get balance", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{CardNumber: cardNumber, Amount: balance})
}

// handleRecharge sets a card balance to the amount in the request body.
func (h *Handler) handleRecharge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cardNumber := chi.URLParam(r, "cardNumber")

	var req rechargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid recharge request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}

	balance, err := h.service.Recharge(ctx, cardNumber, req.Amount)
	if err != nil {
		h.logFailure(ctx, "recharge", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{CardNumber: cardNumber, Amount: balance})
}

// logFailure logs rejected operations at a severity matching the error
// class: caller mistakes are warnings, everything else is an error.
func (h *Handler) logFailure(ctx context.Context, operation string, err error) {
	attrs := []any{
		"request_id", middleware.GetRequestID(ctx),
		"error", err.Error(),
	}
	switch dErrors.CodeOf(err) {
	case dErrors.CodeInvalidInput, dErrors.CodeNotFound, dErrors.CodeUnauthorized:
		h.logger.WarnContext(ctx, operation+" rejected", attrs...)
	default:
		h.logger.ErrorContext(ctx, operation+" failed", attrs...)
	}
}

package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/averaldo/permissions-app/internal"
	"github.com/averaldo/permissions-app/pkg/logger"
)

// Result is the response envelope every API endpoint writes. IsError false
// implies ErrorMessage is empty; IsError true implies Data is absent.
type Result struct {
	Data         any    `json:"data,omitempty"`
	IsError      bool   `json:"isError"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteResult writes a success envelope.
func (h *BaseHandler) WriteResult(w http.ResponseWriter, status int, data any) {
	h.writeJSON(w, status, Result{Data: data})
}

// WriteError writes a failure envelope.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Error("http error", "status", status, "message", message)
	h.writeJSON(w, status, Result{IsError: true, ErrorMessage: message})
}

// HandleServiceError maps a service error onto the envelope, using the
// AppError status when available and 500 otherwise.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		h.WriteError(w, appErr.StatusCode, appErr.Message)
		return
	}
	h.WriteError(w, http.StatusInternalServerError, err.Error())
}

func (h *BaseHandler) writeJSON(w http.ResponseWriter, status int, body Result) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

package permission

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/averaldo/permissions-app/internal/transport"
	"github.com/averaldo/permissions-app/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(ctx context.Context, dto CreatePermissionDTO) (*Permission, error)
	Update(ctx context.Context, id int64, dto UpdatePermissionDTO) (*Permission, error)
	GetAll(ctx context.Context) ([]*Permission, error)
	GetByID(ctx context.Context, id int64) (*Permission, error)
	Search(ctx context.Context, term string) ([]*Permission, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) GetPermissions(w http.ResponseWriter, r *http.Request) {
	permissions, err := h.Service.GetAll(r.Context())
	if err != nil {
		h.Logger.Error("GetPermissions: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteResult(w, http.StatusOK, permissions)
}

func (h *Handler) GetPermission(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	result, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.Logger.Error("GetPermission: service error", "error", err, "permission_id", id)
		h.HandleServiceError(w, err)
		return
	}
	if result == nil {
		h.WriteError(w, http.StatusNotFound, NotFoundError(id).Message)
		return
	}

	h.WriteResult(w, http.StatusOK, result)
}

func (h *Handler) CreatePermission(w http.ResponseWriter, r *http.Request) {
	var dto CreatePermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreatePermission: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreatePermission: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreatePermission: permission created",
		"permission_id", result.ID,
		"employee_name", result.EmployeeName)

	h.WriteResult(w, http.StatusCreated, result)
}

func (h *Handler) UpdatePermission(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var dto UpdatePermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdatePermission: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Contract check at the boundary, before any store access.
	if dto.ID != id {
		h.Logger.Error("UpdatePermission: id mismatch", "path_id", id, "body_id", dto.ID)
		h.WriteError(w, http.StatusBadRequest, "ID in URL does not match ID in request body")
		return
	}

	result, err := h.Service.Update(r.Context(), id, dto)
	if err != nil {
		h.Logger.Error("UpdatePermission: service error", "error", err, "permission_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteResult(w, http.StatusOK, result)
}

func (h *Handler) SearchPermissions(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		h.WriteError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	results, err := h.Service.Search(r.Context(), term)
	if err != nil {
		h.Logger.Error("SearchPermissions: service error", "error", err, "term", term)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteResult(w, http.StatusOK, results)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid permission ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid permission ID")
		return 0, false
	}
	return id, true
}

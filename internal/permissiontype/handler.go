package permissiontype

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/averaldo/permissions-app/internal/transport"
	"github.com/averaldo/permissions-app/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetAllTypes() ([]*PermissionType, error)
	GetTypeByID(id int64) (*PermissionType, error)
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

func (h *Handler) GetPermissionTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Service.GetAllTypes()
	if err != nil {
		h.Logger.Error("GetPermissionTypes: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteResult(w, http.StatusOK, types)
}

func (h *Handler) GetPermissionType(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("GetPermissionType: invalid ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid permission type ID")
		return
	}

	result, err := h.Service.GetTypeByID(id)
	if err != nil {
		h.Logger.Error("GetPermissionType: service error", "error", err, "permission_type_id", id)
		h.HandleServiceError(w, err)
		return
	}
	if result == nil {
		h.WriteError(w, http.StatusNotFound, fmt.Sprintf("Permission type with ID %d not found", id))
		return
	}

	h.WriteResult(w, http.StatusOK, result)
}

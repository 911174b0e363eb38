package permissiontype

import (
	permissionDatamodel "github.com/averaldo/permissions-app/internal/core/datamodel/permission"
)

// PermissionType is read-only reference data; the default levels are seeded
// once at bootstrap.
type PermissionType struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

func ToDataModel(t *PermissionType) *permissionDatamodel.PermissionType {
	return &permissionDatamodel.PermissionType{
		ID:          t.ID,
		Description: t.Description,
	}
}

func FromDataModel(t *permissionDatamodel.PermissionType) *PermissionType {
	return &PermissionType{
		ID:          t.ID,
		Description: t.Description,
	}
}

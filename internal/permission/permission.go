package permission

import (
	"fmt"
	"time"

	"github.com/averaldo/permissions-app/internal"
	permissionDatamodel "github.com/averaldo/permissions-app/internal/core/datamodel/permission"
)

// Permission is an employee leave request joined with its type description.
type Permission struct {
	ID                        int64     `json:"id"`
	EmployeeName              string    `json:"employeeName"`
	EmployeeLastName          string    `json:"employeeLastName"`
	Date                      time.Time `json:"date"`
	PermissionTypeID          int64     `json:"permissionTypeId"`
	PermissionTypeDescription string    `json:"permissionTypeDescription,omitempty"`
}

const MaxEmployeeNameLength = 100

// Operation tags carried on every notification message.
const (
	OperationRequest = "request"
	OperationModify  = "modify"
	OperationGet     = "get"
)

func OperationGetByID(id int64) string {
	return fmt.Sprintf("%s-%d", OperationGet, id)
}

var ErrDuplicateEmployee = internal.NewConflictError(
	"a permission for this employee already exists", internal.ErrCodeDuplicatePermission)

func NotFoundError(id int64) *internal.AppError {
	return internal.NewNotFoundError(
		fmt.Sprintf("Permission with ID %d not found", id), internal.ErrCodePermissionNotFound)
}

func TypeDoesNotExistError(typeID int64) *internal.AppError {
	return internal.NewValidationError(
		fmt.Sprintf("permission type with ID %d does not exist", typeID), internal.ErrCodeInvalidPermissionType)
}

func ToDataModel(p *Permission) *permissionDatamodel.Permission {
	return &permissionDatamodel.Permission{
		ID:               p.ID,
		EmployeeName:     p.EmployeeName,
		EmployeeLastName: p.EmployeeLastName,
		Date:             p.Date,
		PermissionTypeID: p.PermissionTypeID,
	}
}

func FromDataModel(p *permissionDatamodel.Permission) *Permission {
	result := &Permission{
		ID:               p.ID,
		EmployeeName:     p.EmployeeName,
		EmployeeLastName: p.EmployeeLastName,
		Date:             p.Date,
		PermissionTypeID: p.PermissionTypeID,
	}
	if p.PermissionType != nil {
		result.PermissionTypeDescription = p.PermissionType.Description
	}
	return result
}

func FromDataModelSlice(permissions []*permissionDatamodel.Permission) []*Permission {
	result := make([]*Permission, len(permissions))
	for i, p := range permissions {
		result[i] = FromDataModel(p)
	}
	return result
}

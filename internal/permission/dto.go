package permission

import (
	"fmt"
	"time"

	"github.com/averaldo/permissions-app/internal"
)

// CreatePermissionDTO is the request payload for creating a permission.
// Date is not accepted from the caller; it is assigned by the service.
type CreatePermissionDTO struct {
	EmployeeName     string `json:"employeeName"`
	EmployeeLastName string `json:"employeeLastName"`
	PermissionTypeID int64  `json:"permissionTypeId"`
}

func (dto CreatePermissionDTO) Validate() error {
	if err := validateEmployeeField("employeeName", dto.EmployeeName); err != nil {
		return err
	}
	if err := validateEmployeeField("employeeLastName", dto.EmployeeLastName); err != nil {
		return err
	}
	if dto.PermissionTypeID <= 0 {
		return internal.NewValidationError("permissionTypeId is required", internal.ErrCodeInvalidPermissionType)
	}
	return nil
}

// UpdatePermissionDTO replaces every mutable field of an existing permission,
// including the caller-supplied date.
type UpdatePermissionDTO struct {
	ID               int64     `json:"id"`
	EmployeeName     string    `json:"employeeName"`
	EmployeeLastName string    `json:"employeeLastName"`
	Date             time.Time `json:"date"`
	PermissionTypeID int64     `json:"permissionTypeId"`
}

func (dto UpdatePermissionDTO) Validate() error {
	if err := validateEmployeeField("employeeName", dto.EmployeeName); err != nil {
		return err
	}
	if err := validateEmployeeField("employeeLastName", dto.EmployeeLastName); err != nil {
		return err
	}
	if dto.PermissionTypeID <= 0 {
		return internal.NewValidationError("permissionTypeId is required", internal.ErrCodeInvalidPermissionType)
	}
	if dto.Date.IsZero() {
		return internal.NewValidationError("date is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

func validateEmployeeField(field, value string) error {
	if value == "" {
		return internal.NewValidationError(fmt.Sprintf("%s is required", field), internal.ErrCodeInvalidEmployeeName)
	}
	if len(value) > MaxEmployeeNameLength {
		return internal.NewValidationError(
			fmt.Sprintf("%s must be at most %d characters", field, MaxEmployeeNameLength),
			internal.ErrCodeInvalidEmployeeName)
	}
	return nil
}

package permission

import "time"

// Permission is the persistence model for an employee permission request.
type Permission struct {
	ID               int64           `gorm:"primaryKey"`
	EmployeeName     string          `gorm:"column:employee_name;not null"`
	EmployeeLastName string          `gorm:"column:employee_last_name;not null"`
	Date             time.Time       `gorm:"column:date;not null"`
	PermissionTypeID int64           `gorm:"column:permission_type_id;not null"`
	PermissionType   *PermissionType `gorm:"foreignKey:PermissionTypeID"`
}

func (Permission) TableName() string {
	return "permissions"
}

// PermissionType is immutable reference data seeded at bootstrap.
type PermissionType struct {
	ID          int64  `gorm:"primaryKey"`
	Description string `gorm:"column:description;not null"`
}

func (PermissionType) TableName() string {
	return "permission_types"
}

package postgres

import (
	"errors"

	permissionDatamodel "github.com/averaldo/permissions-app/internal/core/datamodel/permission"
	"github.com/averaldo/permissions-app/internal/permission"
	"gorm.io/gorm"
)

// PermissionRepository implements the permission.Repository interface using GORM
type PermissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository creates a new permission repository
func NewPermissionRepository(db *gorm.DB) permission.Repository {
	return &PermissionRepository{db: db}
}

// Create saves a new permission; the store assigns its ID.
func (r *PermissionRepository) Create(p *permissionDatamodel.Permission) error {
	return r.db.Create(p).Error
}

// Update persists all fields of an existing permission in place.
func (r *PermissionRepository) Update(p *permissionDatamodel.Permission) error {
	return r.db.Save(p).Error
}

// GetByID retrieves a permission without joining its type; nil when absent.
func (r *PermissionRepository) GetByID(id int64) (*permissionDatamodel.Permission, error) {
	var p permissionDatamodel.Permission
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetByIDWithType retrieves a permission with its type joined; nil when absent.
func (r *PermissionRepository) GetByIDWithType(id int64) (*permissionDatamodel.Permission, error) {
	var p permissionDatamodel.Permission
	err := r.db.Preload("PermissionType").Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetAllWithType retrieves every permission with its type joined.
func (r *PermissionRepository) GetAllWithType() ([]*permissionDatamodel.Permission, error) {
	var permissions []*permissionDatamodel.Permission
	err := r.db.Preload("PermissionType").
		Order("id ASC").
		Find(&permissions).Error
	return permissions, err
}

// FindByEmployee retrieves the permission for a (name, last name) pair, nil
// when none exists. Used by the duplicate check on create.
func (r *PermissionRepository) FindByEmployee(employeeName, employeeLastName string) (*permissionDatamodel.Permission, error) {
	var p permissionDatamodel.Permission
	err := r.db.Where("employee_name = ? AND employee_last_name = ?", employeeName, employeeLastName).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

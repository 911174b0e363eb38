package postgres

import (
	"errors"

	permissionDatamodel "github.com/averaldo/permissions-app/internal/core/datamodel/permission"
	"github.com/averaldo/permissions-app/internal/permissiontype"
	"gorm.io/gorm"
)

// PermissionTypeRepository implements permissiontype.RepositoryAPI using GORM
type PermissionTypeRepository struct {
	db *gorm.DB
}

func NewPermissionTypeRepository(db *gorm.DB) permissiontype.RepositoryAPI {
	return &PermissionTypeRepository{db: db}
}

func (r *PermissionTypeRepository) GetAll() ([]*permissionDatamodel.PermissionType, error) {
	var types []*permissionDatamodel.PermissionType
	err := r.db.Order("id ASC").Find(&types).Error
	return types, err
}

func (r *PermissionTypeRepository) GetByID(id int64) (*permissionDatamodel.PermissionType, error) {
	var t permissionDatamodel.PermissionType
	err := r.db.Where("id = ?", id).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// Create is only exercised by the bootstrap seeding; types are read-only
// through the API surface.
func (r *PermissionTypeRepository) Create(t *permissionDatamodel.PermissionType) error {
	return r.db.Create(t).Error
}

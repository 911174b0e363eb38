package permissiontype

import (
	"log/slog"

	permissionDatamodel "github.com/averaldo/permissions-app/internal/core/datamodel/permission"
)

// RepositoryAPI defines the data access methods for permission types.
// Lookups return (nil, nil) when no row matches.
type RepositoryAPI interface {
	GetAll() ([]*permissionDatamodel.PermissionType, error)
	GetByID(id int64) (*permissionDatamodel.PermissionType, error)
	Create(t *permissionDatamodel.PermissionType) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAllTypes() ([]*PermissionType, error) {
	records, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get permission types", "error", err)
		return nil, err
	}

	types := make([]*PermissionType, len(records))
	for i, record := range records {
		types[i] = FromDataModel(record)
	}
	return types, nil
}

// GetTypeByID returns (nil, nil) when the type does not exist.
func (s *Service) GetTypeByID(id int64) (*PermissionType, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get permission type", "error", err, "permission_type_id", id)
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	return FromDataModel(record), nil
}

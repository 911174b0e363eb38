package permission

import (
	"context"
	"log/slog"
	"time"

	permissionDatamodel "github.com/averaldo/permissions-app/internal/core/datamodel/permission"
)

// Repository defines the data access methods for permissions.
// Lookups return (nil, nil) when no row matches.
type Repository interface {
	Create(p *permissionDatamodel.Permission) error
	Update(p *permissionDatamodel.Permission) error
	GetByID(id int64) (*permissionDatamodel.Permission, error)
	GetByIDWithType(id int64) (*permissionDatamodel.Permission, error)
	GetAllWithType() ([]*permissionDatamodel.Permission, error)
	FindByEmployee(employeeName, employeeLastName string) (*permissionDatamodel.Permission, error)
}

// TypeResolver resolves permission type references at write time.
type TypeResolver interface {
	GetByID(id int64) (*permissionDatamodel.PermissionType, error)
}

// Indexer mirrors permission records into the search index.
type Indexer interface {
	IndexPermission(ctx context.Context, p *Permission) error
	SearchPermissions(ctx context.Context, term string) ([]*Permission, error)
}

// Notifier emits a fire-and-forget message tagged with the operation that ran.
type Notifier interface {
	Notify(ctx context.Context, operation string) error
}

// Service orchestrates the write path: validate, persist, then propagate to
// the search index and the notifier in that order. Index and notify failures
// after a successful persist are logged and swallowed; the committed write
// wins.
type Service struct {
	repo     Repository
	types    TypeResolver
	index    Indexer
	notifier Notifier
	logger   *slog.Logger
}

func NewService(repo Repository, types TypeResolver, index Indexer, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		types:    types,
		index:    index,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *Service) Create(ctx context.Context, dto CreatePermissionDTO) (*Permission, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("permission validation failed", "error", err)
		return nil, err
	}

	existing, err := s.repo.FindByEmployee(dto.EmployeeName, dto.EmployeeLastName)
	if err != nil {
		s.logger.Error("failed to check for existing permission", "error", err)
		return nil, err
	}
	if existing != nil {
		s.logger.Warn("duplicate permission rejected",
			"employee_name", dto.EmployeeName,
			"employee_last_name", dto.EmployeeLastName,
			"existing_id", existing.ID)
		return nil, ErrDuplicateEmployee
	}

	permissionType, err := s.types.GetByID(dto.PermissionTypeID)
	if err != nil {
		s.logger.Error("failed to resolve permission type", "error", err, "permission_type_id", dto.PermissionTypeID)
		return nil, err
	}
	if permissionType == nil {
		return nil, TypeDoesNotExistError(dto.PermissionTypeID)
	}

	record := &permissionDatamodel.Permission{
		EmployeeName:     dto.EmployeeName,
		EmployeeLastName: dto.EmployeeLastName,
		Date:             time.Now(),
		PermissionTypeID: dto.PermissionTypeID,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create permission", "error", err)
		return nil, err
	}

	record.PermissionType = permissionType
	result := FromDataModel(record)

	s.propagate(ctx, result, OperationRequest)

	s.logger.Info("permission created",
		"permission_id", result.ID,
		"employee_name", result.EmployeeName,
		"permission_type_id", result.PermissionTypeID)

	return result, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto UpdatePermissionDTO) (*Permission, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to look up permission", "error", err, "permission_id", id)
		return nil, err
	}
	if existing == nil {
		return nil, NotFoundError(id)
	}

	if err := dto.Validate(); err != nil {
		s.logger.Error("permission validation failed", "error", err, "permission_id", id)
		return nil, err
	}

	permissionType, err := s.types.GetByID(dto.PermissionTypeID)
	if err != nil {
		s.logger.Error("failed to resolve permission type", "error", err, "permission_type_id", dto.PermissionTypeID)
		return nil, err
	}
	if permissionType == nil {
		return nil, TypeDoesNotExistError(dto.PermissionTypeID)
	}

	existing.EmployeeName = dto.EmployeeName
	existing.EmployeeLastName = dto.EmployeeLastName
	existing.Date = dto.Date
	existing.PermissionTypeID = dto.PermissionTypeID

	if err := s.repo.Update(existing); err != nil {
		s.logger.Error("failed to update permission", "error", err, "permission_id", id)
		return nil, err
	}

	existing.PermissionType = permissionType
	result := FromDataModel(existing)

	s.propagate(ctx, result, OperationModify)

	s.logger.Info("permission updated", "permission_id", id)

	return result, nil
}

func (s *Service) GetAll(ctx context.Context) ([]*Permission, error) {
	records, err := s.repo.GetAllWithType()
	if err != nil {
		s.logger.Error("failed to get permissions", "error", err)
		return nil, err
	}

	s.notify(ctx, OperationGet)

	return FromDataModelSlice(records), nil
}

// GetByID returns (nil, nil) when no permission matches; the transport layer
// translates that into a not-found response.
func (s *Service) GetByID(ctx context.Context, id int64) (*Permission, error) {
	record, err := s.repo.GetByIDWithType(id)
	if err != nil {
		s.logger.Error("failed to get permission", "error", err, "permission_id", id)
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	s.notify(ctx, OperationGetByID(id))

	return FromDataModel(record), nil
}

func (s *Service) Search(ctx context.Context, term string) ([]*Permission, error) {
	results, err := s.index.SearchPermissions(ctx, term)
	if err != nil {
		s.logger.Error("search failed", "error", err, "term", term)
		return nil, err
	}
	return results, nil
}

// propagate pushes a committed write to the index mirror and the notifier.
// Both are best effort: the record is already durable, so failures here must
// not fail the caller's request.
func (s *Service) propagate(ctx context.Context, p *Permission, operation string) {
	if err := s.index.IndexPermission(ctx, p); err != nil {
		s.logger.Error("failed to index permission", "error", err, "permission_id", p.ID)
	}
	s.notify(ctx, operation)
}

func (s *Service) notify(ctx context.Context, operation string) {
	if err := s.notifier.Notify(ctx, operation); err != nil {
		s.logger.Error("failed to send notification", "error", err, "operation", operation)
	}
}

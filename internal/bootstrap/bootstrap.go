package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	permissionDatamodel "github.com/averaldo/permissions-app/internal/core/datamodel/permission"
)

// TypeStore is the slice of the permission type repository bootstrap needs.
type TypeStore interface {
	GetAll() ([]*permissionDatamodel.PermissionType, error)
	Create(t *permissionDatamodel.PermissionType) error
}

// IndexInitializer prepares the search index backing store.
type IndexInitializer interface {
	EnsureIndex(ctx context.Context) error
}

var defaultTypeDescriptions = []string{"Level 1", "Level 2", "Level 3"}

// Run seeds the default permission types when none exist and makes sure the
// search index is present. It is idempotent and meant to be invoked exactly
// once at process start with explicit handles.
func Run(ctx context.Context, types TypeStore, index IndexInitializer, logger *slog.Logger) error {
	if err := seedTypes(types, logger); err != nil {
		return err
	}

	if err := index.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("failed to ensure search index: %w", err)
	}

	return nil
}

func seedTypes(types TypeStore, logger *slog.Logger) error {
	existing, err := types.GetAll()
	if err != nil {
		return fmt.Errorf("failed to read permission types: %w", err)
	}
	if len(existing) > 0 {
		logger.Debug("permission types already seeded", "count", len(existing))
		return nil
	}

	for _, description := range defaultTypeDescriptions {
		t := &permissionDatamodel.PermissionType{Description: description}
		if err := types.Create(t); err != nil {
			return fmt.Errorf("failed to seed permission type %q: %w", description, err)
		}
	}

	logger.Info("seeded default permission types", "count", len(defaultTypeDescriptions))
	return nil
}

package permissiontype_test

import (
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	permissionDatamodel "github.com/averaldo/permissions-app/internal/core/datamodel/permission"
	"github.com/averaldo/permissions-app/internal/permissiontype"
)

type mockTypeRepository struct {
	types    map[int64]*permissionDatamodel.PermissionType
	getError error
}

func newMockTypeRepository() *mockTypeRepository {
	return &mockTypeRepository{
		types: map[int64]*permissionDatamodel.PermissionType{
			1: {ID: 1, Description: "Level 1"},
			2: {ID: 2, Description: "Level 2"},
			3: {ID: 3, Description: "Level 3"},
		},
	}
}

func (m *mockTypeRepository) GetAll() ([]*permissionDatamodel.PermissionType, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	all := make([]*permissionDatamodel.PermissionType, 0, len(m.types))
	for id := int64(1); id <= int64(len(m.types)); id++ {
		all = append(all, m.types[id])
	}
	return all, nil
}

func (m *mockTypeRepository) GetByID(id int64) (*permissionDatamodel.PermissionType, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	return m.types[id], nil
}

func (m *mockTypeRepository) Create(t *permissionDatamodel.PermissionType) error {
	t.ID = int64(len(m.types) + 1)
	m.types[t.ID] = t
	return nil
}

var _ = Describe("PermissionType Service", func() {
	var (
		repo    *mockTypeRepository
		service *permissiontype.Service
	)

	BeforeEach(func() {
		repo = newMockTypeRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = permissiontype.NewService(repo, logger)
	})

	Describe("GetAllTypes", func() {
		It("should return all seeded types", func() {
			types, err := service.GetAllTypes()

			Expect(err).NotTo(HaveOccurred())
			Expect(types).To(HaveLen(3))
			Expect(types[0].Description).To(Equal("Level 1"))
			Expect(types[2].Description).To(Equal("Level 3"))
		})

		It("should surface repository errors", func() {
			repo.getError = errors.New("db down")

			types, err := service.GetAllTypes()

			Expect(err).To(HaveOccurred())
			Expect(types).To(BeNil())
		})
	})

	Describe("GetTypeByID", func() {
		It("should return the matching type", func() {
			result, err := service.GetTypeByID(2)

			Expect(err).NotTo(HaveOccurred())
			Expect(result).NotTo(BeNil())
			Expect(result.Description).To(Equal("Level 2"))
		})

		It("should return nil without an error for an unknown id", func() {
			result, err := service.GetTypeByID(99)

			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeNil())
		})
	})
})

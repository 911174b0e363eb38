package permission_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	permissionDatamodel "github.com/averaldo/permissions-app/internal/core/datamodel/permission"
	"github.com/averaldo/permissions-app/internal/permission"
	permissionPostgres "github.com/averaldo/permissions-app/internal/permission/postgres"
	"github.com/go-chi/chi"
)

type envelope struct {
	Data         json.RawMessage `json:"data"`
	IsError      bool            `json:"isError"`
	ErrorMessage string          `json:"errorMessage"`
}

var _ = Describe("Permission Handler Integration", func() {
	var (
		db       *gorm.DB
		indexer  *mockIndexer
		notifier *mockNotifier
		router   *chi.Mux
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&permissionDatamodel.PermissionType{}, &permissionDatamodel.Permission{})
		Expect(err).NotTo(HaveOccurred())

		for _, description := range []string{"Level 1", "Level 2"} {
			err = db.Create(&permissionDatamodel.PermissionType{Description: description}).Error
			Expect(err).NotTo(HaveOccurred())
		}

		repo := permissionPostgres.NewPermissionRepository(db)
		typeRepo := &gormTypeResolver{db: db}
		indexer = &mockIndexer{}
		notifier = &mockNotifier{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := permission.NewService(repo, typeRepo, indexer, notifier, logger)
		handler := permission.NewHandler(service)

		router = chi.NewRouter()
		router.Route("/api/permissions", func(r chi.Router) {
			r.Get("/", handler.GetPermissions)
			r.Get("/search", handler.SearchPermissions)
			r.Get("/{id}", handler.GetPermission)
			r.Post("/request", handler.CreatePermission)
			r.Put("/{id}", handler.UpdatePermission)
		})
	})

	createPermission := func(name, lastName string, typeID int64) envelope {
		body, err := json.Marshal(permission.CreatePermissionDTO{
			EmployeeName:     name,
			EmployeeLastName: lastName,
			PermissionTypeID: typeID,
		})
		Expect(err).NotTo(HaveOccurred())

		req := httptest.NewRequest(http.MethodPost, "/api/permissions/request", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))

		var resp envelope
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		return resp
	}

	Describe("POST /api/permissions/request", func() {
		It("should create a permission and return the envelope with the joined record", func() {
			resp := createPermission("New", "Employee", 2)

			Expect(resp.IsError).To(BeFalse())
			Expect(resp.ErrorMessage).To(BeEmpty())

			var created permission.Permission
			Expect(json.Unmarshal(resp.Data, &created)).To(Succeed())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.EmployeeName).To(Equal("New"))
			Expect(created.PermissionTypeID).To(Equal(int64(2)))
			Expect(created.PermissionTypeDescription).To(Equal("Level 2"))
		})

		It("should return 409 with an error envelope for a duplicate employee", func() {
			createPermission("New", "Employee", 1)

			body, _ := json.Marshal(permission.CreatePermissionDTO{
				EmployeeName:     "New",
				EmployeeLastName: "Employee",
				PermissionTypeID: 1,
			})
			req := httptest.NewRequest(http.MethodPost, "/api/permissions/request", bytes.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))

			var resp envelope
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.IsError).To(BeTrue())
			Expect(resp.ErrorMessage).To(ContainSubstring("already exists"))
			Expect(resp.Data).To(BeEmpty())
		})

		It("should return 400 for an unknown permission type", func() {
			body, _ := json.Marshal(permission.CreatePermissionDTO{
				EmployeeName:     "New",
				EmployeeLastName: "Employee",
				PermissionTypeID: 99,
			})
			req := httptest.NewRequest(http.MethodPost, "/api/permissions/request", bytes.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var resp envelope
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.IsError).To(BeTrue())
			Expect(resp.ErrorMessage).To(ContainSubstring("does not exist"))
		})

		It("should return 400 for an empty employee name", func() {
			body, _ := json.Marshal(permission.CreatePermissionDTO{
				EmployeeLastName: "Employee",
				PermissionTypeID: 1,
			})
			req := httptest.NewRequest(http.MethodPost, "/api/permissions/request", bytes.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /api/permissions", func() {
		It("should include previously created permissions", func() {
			resp := createPermission("New", "Employee", 2)
			var created permission.Permission
			Expect(json.Unmarshal(resp.Data, &created)).To(Succeed())

			req := httptest.NewRequest(http.MethodGet, "/api/permissions/", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var listResp envelope
			Expect(json.NewDecoder(w.Body).Decode(&listResp)).To(Succeed())
			Expect(listResp.IsError).To(BeFalse())

			var permissions []permission.Permission
			Expect(json.Unmarshal(listResp.Data, &permissions)).To(Succeed())
			Expect(permissions).To(HaveLen(1))
			Expect(permissions[0].ID).To(Equal(created.ID))
			Expect(permissions[0].PermissionTypeDescription).To(Equal("Level 2"))
		})
	})

	Describe("GET /api/permissions/{id}", func() {
		It("should return 404 with a not found message for an absent id", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/permissions/999", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))

			var resp envelope
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.IsError).To(BeTrue())
			Expect(resp.ErrorMessage).To(ContainSubstring("not found"))
		})

		It("should return the permission for an existing id", func() {
			created := createPermission("New", "Employee", 1)
			var createdPermission permission.Permission
			Expect(json.Unmarshal(created.Data, &createdPermission)).To(Succeed())

			req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/permissions/%d", createdPermission.ID), nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
		})
	})

	Describe("PUT /api/permissions/{id}", func() {
		It("should reject a body id that differs from the path id before touching the store", func() {
			body, _ := json.Marshal(permission.UpdatePermissionDTO{
				ID:               2,
				EmployeeName:     "Updated",
				EmployeeLastName: "Person",
				Date:             time.Now(),
				PermissionTypeID: 1,
			})
			req := httptest.NewRequest(http.MethodPut, "/api/permissions/1", bytes.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var resp envelope
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.ErrorMessage).To(Equal("ID in URL does not match ID in request body"))
		})

		It("should return 404 for a nonexistent id", func() {
			body, _ := json.Marshal(permission.UpdatePermissionDTO{
				ID:               999,
				EmployeeName:     "Updated",
				EmployeeLastName: "Person",
				Date:             time.Now(),
				PermissionTypeID: 1,
			})
			req := httptest.NewRequest(http.MethodPut, "/api/permissions/999", bytes.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))

			var resp envelope
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.ErrorMessage).To(ContainSubstring("not found"))
		})

		It("should update all fields of an existing permission", func() {
			created := createPermission("New", "Employee", 1)
			var createdPermission permission.Permission
			Expect(json.Unmarshal(created.Data, &createdPermission)).To(Succeed())

			newDate := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
			body, _ := json.Marshal(permission.UpdatePermissionDTO{
				ID:               createdPermission.ID,
				EmployeeName:     "Updated",
				EmployeeLastName: "Person",
				Date:             newDate,
				PermissionTypeID: 2,
			})
			req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/permissions/%d", createdPermission.ID), bytes.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp envelope
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.IsError).To(BeFalse())

			var updated permission.Permission
			Expect(json.Unmarshal(resp.Data, &updated)).To(Succeed())
			Expect(updated.EmployeeName).To(Equal("Updated"))
			Expect(updated.EmployeeLastName).To(Equal("Person"))
			Expect(updated.Date).To(BeTemporally("==", newDate))
			Expect(updated.PermissionTypeID).To(Equal(int64(2)))
		})
	})

	Describe("GET /api/permissions/search", func() {
		It("should require the q parameter", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/permissions/search", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return index hits", func() {
			indexer.searchHits = []*permission.Permission{
				{ID: 1, EmployeeName: "New", EmployeeLastName: "Employee"},
			}

			req := httptest.NewRequest(http.MethodGet, "/api/permissions/search?q=New", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp envelope
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.IsError).To(BeFalse())
		})
	})
})

// gormTypeResolver backs the type lookup with the same sqlite database used
// by the repository under test.
type gormTypeResolver struct {
	db *gorm.DB
}

func (r *gormTypeResolver) GetByID(id int64) (*permissionDatamodel.PermissionType, error) {
	var t permissionDatamodel.PermissionType
	err := r.db.Where("id = ?", id).First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

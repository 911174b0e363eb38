package permissiontype_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/go-chi/chi"

	"github.com/averaldo/permissions-app/internal/permissiontype"
)

type typeEnvelope struct {
	Data         json.RawMessage `json:"data"`
	IsError      bool            `json:"isError"`
	ErrorMessage string          `json:"errorMessage"`
}

var _ = Describe("PermissionType Handler", func() {
	var router *chi.Mux

	BeforeEach(func() {
		repo := newMockTypeRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := permissiontype.NewService(repo, logger)
		handler := permissiontype.NewHandler(service)

		router = chi.NewRouter()
		router.Route("/api/permissions-type", func(r chi.Router) {
			r.Get("/", handler.GetPermissionTypes)
			r.Get("/{id}", handler.GetPermissionType)
		})
	})

	Describe("GET /api/permissions-type", func() {
		It("should list the seeded types in the result envelope", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/permissions-type/", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp typeEnvelope
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.IsError).To(BeFalse())

			var types []*permissiontype.PermissionType
			Expect(json.Unmarshal(resp.Data, &types)).To(Succeed())
			Expect(types).To(HaveLen(3))
		})
	})

	Describe("GET /api/permissions-type/{id}", func() {
		It("should return the matching type", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/permissions-type/1", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp typeEnvelope
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())

			var result permissiontype.PermissionType
			Expect(json.Unmarshal(resp.Data, &result)).To(Succeed())
			Expect(result.Description).To(Equal("Level 1"))
		})

		It("should return 404 for an unknown id", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/permissions-type/99", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))

			var resp typeEnvelope
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.IsError).To(BeTrue())
			Expect(resp.ErrorMessage).To(Equal("Permission type with ID 99 not found"))
		})

		It("should return 400 for a non-numeric id", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/permissions-type/abc", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})

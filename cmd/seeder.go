package cmd

import (
	"fmt"
	"log"

	permissionTypePostgres "github.com/averaldo/permissions-app/internal/permissiontype/postgres"
	"github.com/averaldo/permissions-app/pkg/logger"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	permissionDatamodel "github.com/averaldo/permissions-app/internal/core/datamodel/permission"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the default permission types",
	Long:  `Seed the database with the default permission type levels for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm connection: %v", err)
		}

		repo := permissionTypePostgres.NewPermissionTypeRepository(gormDB)
		lg := logger.LoggerWrapper()

		existing, err := repo.GetAll()
		if err != nil {
			log.Fatalf("failed to read permission types: %v", err)
		}
		if len(existing) > 0 {
			fmt.Println("permission types already seeded:", len(existing))
			return
		}

		for _, description := range []string{"Level 1", "Level 2", "Level 3"} {
			t := &permissionDatamodel.PermissionType{Description: description}
			if err := repo.Create(t); err != nil {
				log.Fatalf("failed to seed permission type %q: %v", description, err)
			}
			lg.Info("seeded permission type", "id", t.ID, "description", description)
		}

		fmt.Println("Seeded default permission types")
	},
}

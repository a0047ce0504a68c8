package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"misto-helper/internal/models"
	"misto-helper/internal/repository"
	"misto-helper/internal/service"
	"misto-helper/pkg/config"
	"misto-helper/pkg/logger"
	"misto-helper/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	categoryRepo := repository.NewCategoryRepository(db, appLogger)
	exampleRepo := repository.NewExampleRepository(db, appLogger)
	serviceRepo := repository.NewServiceRepository(db, appLogger)

	// LLM service is needed for example embeddings
	llmService, err := service.NewLLMService(&cfg.GigaChat, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}
	defer llmService.Close()

	appLogger.Info("Starting database seeding...")

	categoriesFile := filepath.Join("cmd", "seed", "categories.json")
	if err := seedCategoriesAndExamples(ctx, categoriesFile, categoryRepo, exampleRepo, llmService, appLogger); err != nil {
		appLogger.Fatal("Failed to seed categories", zap.Error(err))
	}

	if err := seedServiceRegistry(ctx, serviceRepo, appLogger); err != nil {
		appLogger.Fatal("Failed to seed service registry", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!")
}

type seedExample struct {
	Text     string `json:"text"`
	IsUrgent bool   `json:"is_urgent"`
}

type seedCategory struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Examples    []seedExample `json:"examples"`
}

type seedCatalog struct {
	Categories []seedCategory `json:"categories"`
}

// seedCategoriesAndExamples upserts the category catalog and embeds every
// example text that is not already stored. Embeddings are the expensive
// part, so existing examples are skipped instead of re-embedded.
func seedCategoriesAndExamples(
	ctx context.Context,
	categoriesFile string,
	categories *repository.CategoryRepository,
	examples *repository.ExampleRepository,
	embedder service.Embedder,
	appLogger *zap.Logger,
) error {
	data, err := os.ReadFile(categoriesFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", categoriesFile, err)
	}

	var catalog seedCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return fmt.Errorf("failed to parse %s: %w", categoriesFile, err)
	}

	addedExamples, skippedExamples := 0, 0
	for _, cat := range catalog.Categories {
		if err := categories.Upsert(ctx, &models.Category{
			ID:          cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
		}); err != nil {
			return fmt.Errorf("failed to upsert category %s: %w", cat.ID, err)
		}

		for _, ex := range cat.Examples {
			existing, err := examples.GetByText(ctx, cat.ID, ex.Text)
			if err != nil {
				return fmt.Errorf("failed to look up example: %w", err)
			}
			if existing != nil {
				skippedExamples++
				continue
			}

			appLogger.Info("Generating embedding", zap.String("category", cat.ID), zap.String("text", ex.Text))
			embedding, err := embedder.Embed(ctx, ex.Text)
			if err != nil {
				return fmt.Errorf("failed to embed example %q: %w", ex.Text, err)
			}

			if err := examples.Create(ctx, &models.Example{
				CategoryID: cat.ID,
				Text:       ex.Text,
				IsUrgent:   ex.IsUrgent,
				Embedding:  embedding,
			}); err != nil {
				return fmt.Errorf("failed to create example: %w", err)
			}
			addedExamples++
		}
	}

	appLogger.Info("Category seeding done",
		zap.Int("categories", len(catalog.Categories)),
		zap.Int("examples_added", addedExamples),
		zap.Int("examples_skipped", skippedExamples),
	)
	return nil
}

// seedServiceRegistry loads the initial set of responsible organizations,
// sample buildings and their category assignments.
func seedServiceRegistry(ctx context.Context, services *repository.ServiceRepository, appLogger *zap.Logger) error {
	dispatcher, err := services.CreateService(ctx, &models.Service{
		Name:         "Міська гаряча лінія 1580",
		Type:         models.ServiceTypeDispatch,
		PhoneMain:    "1580",
		AddressLegal: "м. Львів, пл. Ринок, 1",
		Website:      "https://city-adm.lviv.ua",
		IsEmergency:  true,
	})
	if err != nil {
		return err
	}

	lvivsvitlo, err := services.CreateService(ctx, &models.Service{
		Name:         "КП «Львівсвітло»",
		Type:         models.ServiceTypeUtility,
		PhoneMain:    "+38 (032) 297-51-11",
		AddressLegal: "м. Львів, вул. Стрийська, 45",
		Website:      "https://kp-lvivsvitlo.lviv.ua",
	})
	if err != nil {
		return err
	}

	vodokanal, err := services.CreateService(ctx, &models.Service{
		Name:         "КП «Львівводоканал» (аварійна служба)",
		Type:         models.ServiceTypeUtility,
		PhoneMain:    "+38 (032) 297-10-00",
		AddressLegal: "м. Львів, вул. Зелена, 64",
		Website:      "https://lvivvodokanal.com.ua",
		IsEmergency:  true,
	})
	if err != nil {
		return err
	}

	osbb, err := services.CreateService(ctx, &models.Service{
		Name:         "ОСББ «Затишок на Шевченка»",
		Type:         models.ServiceTypeHOA,
		PhoneMain:    "+38 (067) 500-11-22",
		AddressLegal: "м. Львів, вул. Шевченка, 12",
	})
	if err != nil {
		return err
	}

	zaliznychna, err := services.CreateService(ctx, &models.Service{
		Name:         "Залізнична районна адміністрація",
		Type:         models.ServiceTypeDistrictAdmin,
		PhoneMain:    "+38 (032) 297-58-11",
		AddressLegal: "м. Львів, вул. Виговського, 34",
		Website:      "https://city-adm.lviv.ua/zaliznychna",
	})
	if err != nil {
		return err
	}

	buildingShev, err := services.CreateBuilding(ctx, &models.Building{
		City:        "Львів",
		District:    "Залізничний",
		StreetName:  "Шевченка",
		HouseNumber: "12",
	})
	if err != nil {
		return err
	}

	assignments := []models.ServiceAssignment{
		{ServiceID: dispatcher.ID, CategoryID: "other", CoverageLevel: models.CoverageCitywide, IsPrimary: true},
		{ServiceID: lvivsvitlo.ID, CategoryID: "lighting", CoverageLevel: models.CoverageCitywide, IsPrimary: true},
		{ServiceID: vodokanal.ID, CategoryID: "water_supply", CoverageLevel: models.CoverageCitywide, IsPrimary: true},
		{ServiceID: osbb.ID, CategoryID: "property_mgmt", BuildingID: &buildingShev.ID, CoverageLevel: models.CoverageBuilding, IsPrimary: true},
		{ServiceID: zaliznychna.ID, CategoryID: "roads", CoverageLevel: models.CoverageDistrict, IsPrimary: true},
		{ServiceID: zaliznychna.ID, CategoryID: "trees", CoverageLevel: models.CoverageDistrict, IsPrimary: true},
		{ServiceID: zaliznychna.ID, CategoryID: "yard", CoverageLevel: models.CoverageDistrict, IsPrimary: true},
	}
	for _, a := range assignments {
		assignment := a
		if err := services.CreateAssignment(ctx, &assignment); err != nil {
			return fmt.Errorf("failed to create assignment for service %d: %w", a.ServiceID, err)
		}
	}

	appLogger.Info("Service registry seeding done",
		zap.Int("services", 5),
		zap.Int("assignments", len(assignments)),
	)
	return nil
}

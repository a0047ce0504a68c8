package service

import (
	"context"
	"fmt"

	"misto-helper/internal/dto"
	"misto-helper/internal/models"
	"misto-helper/pkg/config"

	"go.uber.org/zap"
)

// Resolution confidences per hierarchy level.
const (
	confidenceEmergency = 0.95
	confidenceBuilding  = 0.90
	confidenceDistrict  = 0.85
	confidenceCitywide  = 0.70
	confidenceHotline   = 0.10
)

// ServiceDirectory is the read interface over the service registry used
// by the resolver.
type ServiceDirectory interface {
	FindEmergencyByCategory(ctx context.Context, categoryID string) (*models.Service, error)
	FindBuildingPrimary(ctx context.Context, categoryID string, buildingID int) (*models.Service, error)
	FindDistrictAdmin(ctx context.Context, categoryID, districtPattern string) (*models.Service, error)
	FindCitywideMonopolist(ctx context.Context, categoryID string) (*models.Service, error)
	FindByName(ctx context.Context, name string) (*models.Service, error)
	FindBuildingCandidates(ctx context.Context, city string, tokens []string) ([]models.Building, error)
}

// ServiceResolver maps (category, urgency, address) to the responsible
// organization through an ordered chain of specificity levels:
// emergency → building → district → citywide → hotline.
type ServiceResolver struct {
	cfg        *config.RouterConfig
	directory  ServiceDirectory
	categories CategoryStore
	logger     *zap.Logger

	districtSet map[string]struct{}
	citywideSet map[string]struct{}
}

func NewServiceResolver(
	cfg *config.RouterConfig,
	directory ServiceDirectory,
	categories CategoryStore,
	logger *zap.Logger,
) *ServiceResolver {
	r := &ServiceResolver{
		cfg:         cfg,
		directory:   directory,
		categories:  categories,
		logger:      logger,
		districtSet: make(map[string]struct{}, len(cfg.DistrictCategories)),
		citywideSet: make(map[string]struct{}, len(cfg.CitywideCategories)),
	}
	for _, c := range cfg.DistrictCategories {
		r.districtSet[c] = struct{}{}
	}
	for _, c := range cfg.CitywideCategories {
		r.citywideSet[c] = struct{}{}
	}
	return r
}

// Resolve walks the hierarchy strictly in order and returns at the first
// match. It never fails on missing data: the worst case is the hotline
// fallback, or the zero-confidence sentinel when even the hotline is gone.
func (r *ServiceResolver) Resolve(ctx context.Context, categoryID string, isUrgent bool, streetName, houseNumber string) (*dto.ServiceResponse, error) {
	categoryName := r.categoryName(ctx, categoryID)

	// 1. Emergency override: checked before any address lookup so urgent
	// problems route even when the address is unknown.
	if isUrgent {
		svc, err := r.directory.FindEmergencyByCategory(ctx, categoryID)
		if err != nil {
			return nil, fmt.Errorf("emergency lookup failed: %w", err)
		}
		if svc != nil {
			return r.respond(svc, confidenceEmergency, categoryID, categoryName, true,
				fmt.Sprintf("Пріоритет: знайдено аварійну службу %s для термінової проблеми '%s'.", svc.Name, categoryID),
			), nil
		}
		return r.hotlineFallback(ctx, categoryID, categoryName, true)
	}

	building, err := r.findBuilding(ctx, streetName, houseNumber)
	if err != nil {
		return nil, fmt.Errorf("building lookup failed: %w", err)
	}

	_, isDistrict := r.districtSet[categoryID]
	_, isCitywide := r.citywideSet[categoryID]

	// 2. Building-level responsibility (HOA / management company)
	if !isDistrict && !isCitywide && building != nil {
		svc, err := r.directory.FindBuildingPrimary(ctx, categoryID, building.ID)
		if err != nil {
			return nil, fmt.Errorf("building-level lookup failed: %w", err)
		}
		if svc != nil {
			return r.respond(svc, confidenceBuilding, categoryID, categoryName, false,
				fmt.Sprintf("Адресна прив'язка: будинок %s на вул. %s обслуговується %s.", building.HouseNumber, building.StreetName, svc.Name),
			), nil
		}
	}

	// 3. District administration
	if isDistrict && building != nil && building.District != "" && building.District != "Невідомий" {
		pattern := normalizeDistrictAdjective(building.District)
		svc, err := r.directory.FindDistrictAdmin(ctx, categoryID, pattern)
		if err != nil {
			return nil, fmt.Errorf("district lookup failed: %w", err)
		}
		if svc != nil {
			return r.respond(svc, confidenceDistrict, categoryID, categoryName, false,
				fmt.Sprintf("Районний рівень: проблема '%s' на вулиці %s належить до юрисдикції %s.", categoryID, streetName, svc.Name),
			), nil
		}
	}

	// 4. Citywide monopolist
	if isCitywide {
		svc, err := r.directory.FindCitywideMonopolist(ctx, categoryID)
		if err != nil {
			return nil, fmt.Errorf("citywide lookup failed: %w", err)
		}
		if svc != nil {
			return r.respond(svc, confidenceCitywide, categoryID, categoryName, false,
				fmt.Sprintf("Міський монополіст: проблема '%s' є загальноміською та обслуговується %s.", categoryID, svc.Name),
			), nil
		}
	}

	// 5. Hotline fallback
	return r.hotlineFallback(ctx, categoryID, categoryName, false)
}

// findBuilding fuzzy-matches the address: candidates by the first two
// significant street tokens, disambiguated by house number (exact first,
// then digit-only). Ambiguity resolves to the lowest building id.
func (r *ServiceResolver) findBuilding(ctx context.Context, streetName, houseNumber string) (*models.Building, error) {
	tokens := significantStreetTokens(streetName)
	if len(tokens) == 0 {
		return nil, nil
	}
	if len(tokens) > 2 {
		tokens = tokens[:2]
	}

	candidates, err := r.directory.FindBuildingCandidates(ctx, r.cfg.City, tokens)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	for _, b := range candidates {
		if equalHouseNumbers(b.HouseNumber, houseNumber) {
			return &b, nil
		}
	}
	for _, b := range candidates {
		if houseNumbersMatch(b.HouseNumber, houseNumber) {
			return &b, nil
		}
	}
	return nil, nil
}

func (r *ServiceResolver) hotlineFallback(ctx context.Context, categoryID, categoryName string, isUrgent bool) (*dto.ServiceResponse, error) {
	hotline, err := r.directory.FindByName(ctx, r.cfg.HotlineName)
	if err != nil {
		return nil, fmt.Errorf("hotline lookup failed: %w", err)
	}

	if hotline == nil {
		// Registry corruption: surface an explicit sentinel instead of a
		// silent default so operators can detect it.
		r.logger.Error("Hotline service missing from registry", zap.String("hotline", r.cfg.HotlineName))
		return &dto.ServiceResponse{
			CategoryID:   categoryID,
			CategoryName: categoryName,
			IsUrgent:     isUrgent,
			ServiceType:  string(models.ServiceTypeDispatch),
			ServiceName:  "Невідома служба",
			ServicePhone: "1580",
			Confidence:   0.0,
			Reasoning:    "Критична помилка: не вдалося знайти навіть диспетчерську службу в реєстрі.",
		}, nil
	}

	reasoning := "Проблема не була ідентифікована жодним спеціалізованим виконавцем. Звернення перенаправлено на міську гарячу лінію для ручної диспетчеризації."
	if isUrgent {
		reasoning = "Не було знайдено спеціальну аварійну службу для цієї термінової проблеми. Звернення перенаправлено на міську гарячу лінію для ручної диспетчеризації."
	}

	return r.respond(hotline, confidenceHotline, categoryID, categoryName, isUrgent, reasoning), nil
}

func (r *ServiceResolver) respond(svc *models.Service, confidence float64, categoryID, categoryName string, isUrgent bool, reasoning string) *dto.ServiceResponse {
	return &dto.ServiceResponse{
		CategoryID:   categoryID,
		CategoryName: categoryName,
		IsUrgent:     isUrgent,
		ServiceType:  string(svc.Type),
		ServiceName:  svc.Name,
		ServicePhone: svc.PhoneMain,
		ServiceEmail: svc.EmailMain,
		ServiceAddr:  svc.AddressLegal,
		ServiceSite:  svc.Website,
		Confidence:   confidence,
		Reasoning:    reasoning,
	}
}

func (r *ServiceResolver) categoryName(ctx context.Context, categoryID string) string {
	category, err := r.categories.GetByID(ctx, categoryID)
	if err != nil || category == nil {
		return categoryID
	}
	return category.Name
}

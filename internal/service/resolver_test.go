package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"misto-helper/internal/models"
	"misto-helper/pkg/config"
)

func routerConfig() *config.RouterConfig {
	return &config.RouterConfig{
		City:               "Львів",
		HotlineName:        "Міська гаряча лінія 1580",
		DistrictCategories: []string{"roads", "trees", "yard", "infrastructure"},
		CitywideCategories: []string{"water_supply", "heating", "gas", "lighting"},
	}
}

func hotlineService() *models.Service {
	return &models.Service{
		ID: 1, Name: "Міська гаряча лінія 1580",
		Type: models.ServiceTypeDispatch, PhoneMain: "1580",
	}
}

func resolverFixture(directory *fakeDirectory) *ServiceResolver {
	categories := newFakeCategories(
		models.Category{ID: "water_supply", Name: "Водопостачання"},
		models.Category{ID: "lighting", Name: "Освітлення"},
		models.Category{ID: "roads", Name: "Дороги"},
		models.Category{ID: "property_mgmt", Name: "Утримання будинку"},
	)
	return NewServiceResolver(routerConfig(), directory, categories, zap.NewNop())
}

func TestResolveUrgentPrefersEmergencyServiceOverAddress(t *testing.T) {
	emergency := &models.Service{ID: 7, Name: "Львівводоканал (аварійна)", Type: models.ServiceTypeUtility, PhoneMain: "+380322971000", IsEmergency: true}
	directory := &fakeDirectory{
		emergency: map[string]*models.Service{"water_supply": emergency},
		byName:    map[string]*models.Service{"Міська гаряча лінія 1580": hotlineService()},
	}

	resp, err := resolverFixture(directory).Resolve(context.Background(), "water_supply", true, "Стрийська", "45")

	require.NoError(t, err)
	assert.Equal(t, "Львівводоканал (аварійна)", resp.ServiceName)
	assert.Equal(t, 0.95, resp.Confidence)
	assert.True(t, resp.IsUrgent)
}

func TestResolveUrgentWithoutEmergencyServiceHitsHotline(t *testing.T) {
	directory := &fakeDirectory{
		byName: map[string]*models.Service{"Міська гаряча лінія 1580": hotlineService()},
	}

	resp, err := resolverFixture(directory).Resolve(context.Background(), "roads", true, "Стрийська", "45")

	require.NoError(t, err)
	assert.Equal(t, "Міська гаряча лінія 1580", resp.ServiceName)
	assert.Equal(t, 0.10, resp.Confidence)
	assert.Contains(t, resp.Reasoning, "аварійну службу")
}

func TestResolveBuildingLevelManager(t *testing.T) {
	hoa := &models.Service{ID: 3, Name: "ОСББ «Затишок на Шевченка»", Type: models.ServiceTypeHOA, PhoneMain: "+380671234567"}
	directory := &fakeDirectory{
		buildings: []models.Building{
			{ID: 10, City: "Львів", District: "Галицький", StreetName: "Шевченка", HouseNumber: "12"},
		},
		buildingPrimary: map[string]*models.Service{"property_mgmt:10": hoa},
		byName:          map[string]*models.Service{"Міська гаряча лінія 1580": hotlineService()},
	}

	resp, err := resolverFixture(directory).Resolve(context.Background(), "property_mgmt", false, "вул. Т. Шевченка", "12")

	require.NoError(t, err)
	assert.Equal(t, "ОСББ «Затишок на Шевченка»", resp.ServiceName)
	assert.Equal(t, 0.90, resp.Confidence)
}

func TestResolveDistrictAdminWithNormalizedName(t *testing.T) {
	admin := &models.Service{ID: 4, Name: "Залізнична районна адміністрація", Type: models.ServiceTypeDistrictAdmin}
	directory := &fakeDirectory{
		buildings: []models.Building{
			{ID: 20, City: "Львів", District: "Залізничний", StreetName: "Городоцька", HouseNumber: "100"},
		},
		districtAdmin: map[string]*models.Service{"roads:Залізнична": admin},
		byName:        map[string]*models.Service{"Міська гаряча лінія 1580": hotlineService()},
	}
	resolver := resolverFixture(directory)

	resp, err := resolver.Resolve(context.Background(), "roads", false, "вул. Городоцька", "100")

	require.NoError(t, err)
	assert.Equal(t, "Залізнична районна адміністрація", resp.ServiceName)
	assert.Equal(t, 0.85, resp.Confidence)
	require.NotEmpty(t, directory.districtPatterns)
	assert.Equal(t, "Залізнична", directory.districtPatterns[0])
}

func TestResolveCitywideMonopolistWithoutBuilding(t *testing.T) {
	svitlo := &models.Service{ID: 5, Name: "КП «Львівсвітло»", Type: models.ServiceTypeUtility, PhoneMain: "+380322970000"}
	directory := &fakeDirectory{
		citywide: map[string]*models.Service{"lighting": svitlo},
		byName:   map[string]*models.Service{"Міська гаряча лінія 1580": hotlineService()},
	}

	resp, err := resolverFixture(directory).Resolve(context.Background(), "lighting", false, "невідома вулиця", "")

	require.NoError(t, err)
	assert.Equal(t, "КП «Львівсвітло»", resp.ServiceName)
	assert.Equal(t, 0.70, resp.Confidence)
}

func TestResolveDistrictCategorySkipsBuildingLevel(t *testing.T) {
	// A matched building must not short-circuit a district-tier category
	// into a building-level assignment.
	admin := &models.Service{ID: 4, Name: "Залізнична районна адміністрація", Type: models.ServiceTypeDistrictAdmin}
	directory := &fakeDirectory{
		buildings: []models.Building{
			{ID: 20, City: "Львів", District: "Залізничний", StreetName: "Городоцька", HouseNumber: "100"},
		},
		buildingPrimary: map[string]*models.Service{
			"roads:20": {ID: 9, Name: "ОСББ, яке не ремонтує дороги", Type: models.ServiceTypeHOA},
		},
		districtAdmin: map[string]*models.Service{"roads:Залізнична": admin},
		byName:        map[string]*models.Service{"Міська гаряча лінія 1580": hotlineService()},
	}

	resp, err := resolverFixture(directory).Resolve(context.Background(), "roads", false, "Городоцька", "100")

	require.NoError(t, err)
	assert.Equal(t, "Залізнична районна адміністрація", resp.ServiceName)
}

func TestResolveHouseNumberDigitFallback(t *testing.T) {
	hoa := &models.Service{ID: 3, Name: "ОСББ «Затишок»", Type: models.ServiceTypeHOA}
	directory := &fakeDirectory{
		buildings: []models.Building{
			{ID: 10, City: "Львів", District: "Галицький", StreetName: "Зелена", HouseNumber: "12А"},
		},
		buildingPrimary: map[string]*models.Service{"property_mgmt:10": hoa},
		byName:          map[string]*models.Service{"Міська гаряча лінія 1580": hotlineService()},
	}

	resp, err := resolverFixture(directory).Resolve(context.Background(), "property_mgmt", false, "вул. Зелена", "12")

	require.NoError(t, err)
	assert.Equal(t, "ОСББ «Затишок»", resp.ServiceName)
	assert.Equal(t, 0.90, resp.Confidence)
}

func TestResolveUnmatchedFallsBackToHotline(t *testing.T) {
	directory := &fakeDirectory{
		byName: map[string]*models.Service{"Міська гаряча лінія 1580": hotlineService()},
	}

	resp, err := resolverFixture(directory).Resolve(context.Background(), "other", false, "", "")

	require.NoError(t, err)
	assert.Equal(t, "Міська гаряча лінія 1580", resp.ServiceName)
	assert.Equal(t, "1580", resp.ServicePhone)
	assert.Equal(t, 0.10, resp.Confidence)
}

func TestResolveMissingHotlineReturnsSentinel(t *testing.T) {
	resp, err := resolverFixture(&fakeDirectory{}).Resolve(context.Background(), "other", false, "", "")

	require.NoError(t, err)
	assert.Equal(t, "Невідома служба", resp.ServiceName)
	assert.Equal(t, "1580", resp.ServicePhone)
	assert.Zero(t, resp.Confidence)
}

package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"misto-helper/internal/models"
	"misto-helper/pkg/vector"
)

// fakeEmbedder returns canned vectors by exact text.
type fakeEmbedder struct {
	vectors  map[string][]float32
	fallback []float32
	seen     []string
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.seen = append(f.seen, text)
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	if f.fallback != nil {
		return f.fallback, nil
	}
	return nil, fmt.Errorf("no canned embedding for %q", text)
}

// fakeSearcher scans an in-memory example store by cosine distance,
// mirroring what the pgvector query does in production.
type fakeSearcher struct {
	examples []models.Example
}

func (f *fakeSearcher) SearchNearest(_ context.Context, embedding []float32, k int, filter *models.ExampleFilter) ([]models.ScoredExample, error) {
	var scored []models.ScoredExample
	for _, ex := range f.examples {
		if filter != nil && (ex.ID < filter.IDFrom || ex.ID > filter.IDTo) {
			continue
		}
		scored = append(scored, models.ScoredExample{
			Example:  ex,
			Distance: vector.CosineDistance(embedding, ex.Embedding),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Distance < scored[j].Distance
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

// fakeGenerator returns a canned completion and records every call.
type fakeGenerator struct {
	response     string
	err          error
	calls        int
	prompts      []string
	temperatures []float64
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeGenerator) GenerateWithTemperature(_ context.Context, prompt string, temperature float64) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.temperatures = append(f.temperatures, temperature)
	return f.response, f.err
}

// fakeCategories is an in-memory category catalog.
type fakeCategories struct {
	byID map[string]models.Category
}

func newFakeCategories(cats ...models.Category) *fakeCategories {
	f := &fakeCategories{byID: make(map[string]models.Category, len(cats))}
	for _, c := range cats {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeCategories) GetByID(_ context.Context, id string) (*models.Category, error) {
	if c, ok := f.byID[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (f *fakeCategories) List(_ context.Context) ([]models.Category, error) {
	cats := make([]models.Category, 0, len(f.byID))
	for _, c := range f.byID {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].ID < cats[j].ID })
	return cats, nil
}

// fakeDirectory is an in-memory service registry.
type fakeDirectory struct {
	emergency        map[string]*models.Service // category id
	buildingPrimary  map[string]*models.Service // "category:buildingID"
	districtAdmin    map[string]*models.Service // "category:pattern"
	citywide         map[string]*models.Service // category id
	byName           map[string]*models.Service
	buildings        []models.Building
	districtPatterns []string
}

func (f *fakeDirectory) FindEmergencyByCategory(_ context.Context, categoryID string) (*models.Service, error) {
	return f.emergency[categoryID], nil
}

func (f *fakeDirectory) FindBuildingPrimary(_ context.Context, categoryID string, buildingID int) (*models.Service, error) {
	return f.buildingPrimary[fmt.Sprintf("%s:%d", categoryID, buildingID)], nil
}

func (f *fakeDirectory) FindDistrictAdmin(_ context.Context, categoryID, districtPattern string) (*models.Service, error) {
	f.districtPatterns = append(f.districtPatterns, districtPattern)
	return f.districtAdmin[categoryID+":"+districtPattern], nil
}

func (f *fakeDirectory) FindCitywideMonopolist(_ context.Context, categoryID string) (*models.Service, error) {
	return f.citywide[categoryID], nil
}

func (f *fakeDirectory) FindByName(_ context.Context, name string) (*models.Service, error) {
	return f.byName[name], nil
}

func (f *fakeDirectory) FindBuildingCandidates(_ context.Context, city string, tokens []string) ([]models.Building, error) {
	var out []models.Building
	for _, b := range f.buildings {
		if b.City != city {
			continue
		}
		street := strings.ToLower(b.StreetName)
		for _, t := range tokens {
			if strings.Contains(street, strings.ToLower(t)) {
				out = append(out, b)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

package repository

import (
	"context"
	"errors"

	"misto-helper/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ServiceRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewServiceRepository(db *pgxpool.Pool, logger *zap.Logger) *ServiceRepository {
	return &ServiceRepository{
		db:     db,
		logger: logger,
	}
}

var serviceColumns = []string{
	"s.service_id",
	"s.name_ua",
	"s.type",
	"COALESCE(s.phone_main, '')",
	"COALESCE(s.email_main, '')",
	"COALESCE(s.address_legal, '')",
	"COALESCE(s.website, '')",
	"s.is_emergency",
}

func scanService(row pgx.Row) (*models.Service, error) {
	var svc models.Service
	err := row.Scan(
		&svc.ID, &svc.Name, &svc.Type,
		&svc.PhoneMain, &svc.EmailMain, &svc.AddressLegal, &svc.Website,
		&svc.IsEmergency,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *ServiceRepository) queryOne(ctx context.Context, query squirrel.SelectBuilder) (*models.Service, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	return scanService(r.db.QueryRow(ctx, sql, args...))
}

// assignmentJoin builds the base service+assignment query for a category.
// Results are ordered by assignment id so that collisions between multiple
// matching assignments resolve to the earliest-seeded one, deterministically.
func assignmentJoin(categoryID string) squirrel.SelectBuilder {
	return squirrel.Select(serviceColumns...).
		From("services s").
		Join("service_assignments sa ON sa.service_id = s.service_id").
		Where(squirrel.Eq{"sa.category_id": categoryID}).
		OrderBy("sa.assignment_id ASC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)
}

// FindEmergencyByCategory returns an emergency-flagged service assigned to
// the category at any coverage level, or nil.
func (r *ServiceRepository) FindEmergencyByCategory(ctx context.Context, categoryID string) (*models.Service, error) {
	query := assignmentJoin(categoryID).
		Where(squirrel.Eq{"s.is_emergency": true})
	return r.queryOne(ctx, query)
}

// FindBuildingPrimary returns the primary building-manager service assigned
// to the category for the exact building, or nil.
func (r *ServiceRepository) FindBuildingPrimary(ctx context.Context, categoryID string, buildingID int) (*models.Service, error) {
	managerTypes := make([]string, len(models.BuildingManagerTypes))
	for i, t := range models.BuildingManagerTypes {
		managerTypes[i] = string(t)
	}

	query := assignmentJoin(categoryID).
		Where(squirrel.Eq{
			"sa.building_id": buildingID,
			"sa.is_primary":  true,
		}).
		Where(squirrel.Eq{"s.type": managerTypes})
	return r.queryOne(ctx, query)
}

// FindDistrictAdmin returns a district-administration service assigned to
// the category whose name matches the district pattern, or nil.
func (r *ServiceRepository) FindDistrictAdmin(ctx context.Context, categoryID, districtPattern string) (*models.Service, error) {
	query := assignmentJoin(categoryID).
		Where(squirrel.Eq{"s.type": string(models.ServiceTypeDistrictAdmin)}).
		Where(squirrel.ILike{"s.name_ua": "%" + districtPattern + "%"})
	return r.queryOne(ctx, query)
}

// FindCitywideMonopolist returns the utility company holding a citywide
// assignment for the category, or nil.
func (r *ServiceRepository) FindCitywideMonopolist(ctx context.Context, categoryID string) (*models.Service, error) {
	query := assignmentJoin(categoryID).
		Where(squirrel.Eq{
			"sa.coverage_level": string(models.CoverageCitywide),
			"s.type":            string(models.ServiceTypeUtility),
		})
	return r.queryOne(ctx, query)
}

// FindByName returns a service by its exact registry name, or nil.
// Used to locate the city hotline.
func (r *ServiceRepository) FindByName(ctx context.Context, name string) (*models.Service, error) {
	query := squirrel.Select(serviceColumns...).
		From("services s").
		Where(squirrel.Eq{"s.name_ua": name}).
		OrderBy("s.service_id ASC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)
	return r.queryOne(ctx, query)
}

// FindBuildingCandidates returns buildings in the city whose street name
// contains any of the given tokens, ordered by id so ambiguous matches
// resolve deterministically to the lowest id.
func (r *ServiceRepository) FindBuildingCandidates(ctx context.Context, city string, tokens []string) ([]models.Building, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	var streetMatch squirrel.Or
	for _, token := range tokens {
		streetMatch = append(streetMatch, squirrel.ILike{"street_name": "%" + token + "%"})
	}

	query := squirrel.Select("building_id", "city", "COALESCE(district, '')", "street_name", "house_number").
		From("buildings").
		Where(squirrel.Eq{"city": city}).
		Where(streetMatch).
		OrderBy("building_id ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buildings []models.Building
	for rows.Next() {
		var b models.Building
		if err := rows.Scan(&b.ID, &b.City, &b.District, &b.StreetName, &b.HouseNumber); err != nil {
			return nil, err
		}
		buildings = append(buildings, b)
	}

	return buildings, rows.Err()
}

// CreateService inserts the service unless one with the same name exists.
// Returns the stored row either way. Seeding only.
func (r *ServiceRepository) CreateService(ctx context.Context, svc *models.Service) (*models.Service, error) {
	existing, err := r.FindByName(ctx, svc.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	query := squirrel.Insert("services").
		Columns("name_ua", "type", "phone_main", "email_main", "address_legal", "website", "is_emergency").
		Values(svc.Name, string(svc.Type), svc.PhoneMain, svc.EmailMain, svc.AddressLegal, svc.Website, svc.IsEmergency).
		Suffix("RETURNING service_id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&svc.ID); err != nil {
		return nil, err
	}

	r.logger.Info("Created service", zap.String("name", svc.Name), zap.Int("id", svc.ID))
	return svc, nil
}

// CreateBuilding inserts the building unless the address already exists.
// Seeding only.
func (r *ServiceRepository) CreateBuilding(ctx context.Context, b *models.Building) (*models.Building, error) {
	find := squirrel.Select("building_id", "city", "COALESCE(district, '')", "street_name", "house_number").
		From("buildings").
		Where(squirrel.Eq{
			"city":         b.City,
			"street_name":  b.StreetName,
			"house_number": b.HouseNumber,
		}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := find.ToSql()
	if err != nil {
		return nil, err
	}

	var existing models.Building
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&existing.ID, &existing.City, &existing.District, &existing.StreetName, &existing.HouseNumber,
	)
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	insert := squirrel.Insert("buildings").
		Columns("city", "district", "street_name", "house_number").
		Values(b.City, b.District, b.StreetName, b.HouseNumber).
		Suffix("RETURNING building_id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err = insert.ToSql()
	if err != nil {
		return nil, err
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&b.ID); err != nil {
		return nil, err
	}

	r.logger.Info("Created building",
		zap.String("street", b.StreetName),
		zap.String("house", b.HouseNumber),
	)
	return b, nil
}

// CreateAssignment inserts the assignment unless an identical one exists.
// Seeding only.
func (r *ServiceRepository) CreateAssignment(ctx context.Context, a *models.ServiceAssignment) error {
	find := squirrel.Select("assignment_id").
		From("service_assignments").
		Where(squirrel.Eq{
			"service_id":     a.ServiceID,
			"category_id":    a.CategoryID,
			"coverage_level": string(a.CoverageLevel),
			"building_id":    a.BuildingID,
		}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := find.ToSql()
	if err != nil {
		return err
	}

	var id int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err == nil {
		a.ID = id
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	insert := squirrel.Insert("service_assignments").
		Columns("service_id", "category_id", "building_id", "coverage_level", "is_primary").
		Values(a.ServiceID, a.CategoryID, a.BuildingID, string(a.CoverageLevel), a.IsPrimary).
		Suffix("RETURNING assignment_id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err = insert.ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, sql, args...).Scan(&a.ID)
}

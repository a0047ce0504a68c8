package models

// Service types as stored in the registry. Ukrainian abbreviations match
// the official registry: КП — communal (utility) enterprise, ОСББ —
// homeowners association, ЛКП/УК — housing management company, РА —
// district administration.
type ServiceType string

const (
	ServiceTypeDispatch      ServiceType = "Диспетчерська"
	ServiceTypeUtility       ServiceType = "КП"
	ServiceTypeHOA           ServiceType = "ОСББ"
	ServiceTypeManagement    ServiceType = "ЛКП/УК"
	ServiceTypeDistrictAdmin ServiceType = "РА"
)

// BuildingManagerTypes are the service types eligible for building-level
// (most specific) assignments.
var BuildingManagerTypes = []ServiceType{ServiceTypeHOA, ServiceTypeManagement}

type CoverageLevel string

const (
	CoverageBuilding CoverageLevel = "building"
	CoverageDistrict CoverageLevel = "district"
	CoverageCitywide CoverageLevel = "citywide"
)

// Service is a responsible organization from the city registry.
type Service struct {
	ID           int         `db:"service_id"`
	Name         string      `db:"name_ua"`
	Type         ServiceType `db:"type"`
	PhoneMain    string      `db:"phone_main"`
	EmailMain    string      `db:"email_main"`
	AddressLegal string      `db:"address_legal"`
	Website      string      `db:"website"`
	IsEmergency  bool        `db:"is_emergency"`
}

// Building is an addressable house, unique on (city, street_name, house_number).
type Building struct {
	ID          int    `db:"building_id"`
	City        string `db:"city"`
	District    string `db:"district"`
	StreetName  string `db:"street_name"`
	HouseNumber string `db:"house_number"`
}

// ServiceAssignment links a service to a category at a given specificity.
// A nil BuildingID means coverage beyond a single building.
type ServiceAssignment struct {
	ID            int           `db:"assignment_id"`
	ServiceID     int           `db:"service_id"`
	CategoryID    string        `db:"category_id"`
	BuildingID    *int          `db:"building_id"`
	CoverageLevel CoverageLevel `db:"coverage_level"`
	IsPrimary     bool          `db:"is_primary"`
}

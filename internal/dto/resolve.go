package dto

type ResolveRequest struct {
	CategoryID  string `json:"category_id"`
	IsUrgent    bool   `json:"is_urgent"`
	StreetName  string `json:"street_name"`
	HouseNumber string `json:"house_number"`
}

type ServiceResponse struct {
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	IsUrgent     bool    `json:"is_urgent"`
	ServiceType  string  `json:"service_type"`
	ServiceName  string  `json:"service_name"`
	ServicePhone string  `json:"service_phone,omitempty"`
	ServiceEmail string  `json:"service_email,omitempty"`
	ServiceAddr  string  `json:"service_address,omitempty"`
	ServiceSite  string  `json:"service_website,omitempty"`
	Confidence   float64 `json:"confidence"`
	Reasoning    string  `json:"reasoning"`
}

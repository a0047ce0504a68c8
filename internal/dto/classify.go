package dto

type PersonalInfo struct {
	Name      string `json:"name,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Apartment string `json:"apartment,omitempty"`
}

type ClassifyRequest struct {
	ProblemText string       `json:"problem_text"`
	UserInfo    PersonalInfo `json:"user_info"`
}

type ClassificationResponse struct {
	CategoryID          string  `json:"category_id"`
	CategoryName        string  `json:"category_name"`
	CategoryDescription string  `json:"category_description"`
	Confidence          float64 `json:"confidence"`
	Reasoning           string  `json:"reasoning"`
	IsUrgent            bool    `json:"is_urgent"`
	IsRelevant          bool    `json:"is_relevant"`
}

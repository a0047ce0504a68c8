package dto

type AppealRequest struct {
	ProblemText string `json:"problem_text"`
	Street      string `json:"street"`
	Building    string `json:"building"`
	Apartment   string `json:"apartment,omitempty"`
}

type AppealResponse struct {
	LetterText string `json:"letter_text"`
}

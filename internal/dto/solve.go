package dto

type SolveRequest struct {
	UserInfo    PersonalInfo `json:"user_info"`
	ProblemText string       `json:"problem_text"`
}

type SolveResponse struct {
	UserInfo       PersonalInfo           `json:"user_info"`
	Classification ClassificationResponse `json:"classification"`
	Service        ServiceResponse        `json:"service"`
	AppealText     string                 `json:"appeal_text"`
}

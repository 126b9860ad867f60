package dto

// CreateSurveyRequest opens a pulse survey. InvitedCount defaults to the
// current active headcount when omitted.
type CreateSurveyRequest struct {
	Title        string `json:"title"         binding:"required,min=2,max=200"`
	InvitedCount *int   `json:"invited_count" binding:"omitempty,min=0"`
	ClosesAt     string `json:"closes_at"     binding:"omitempty,datetime=2006-01-02"`
}

// SubmitSurveyResponseRequest records one employee's answer.
type SubmitSurveyResponseRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Score      int    `json:"score"       binding:"required,min=1,max=10"`
	Comment    string `json:"comment"     binding:"omitempty,max=2000"`
}

// SurveyView is the survey with its aggregate results.
type SurveyView struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Status        string  `json:"status"`
	InvitedCount  int     `json:"invited_count"`
	ClosesAt      string  `json:"closes_at,omitempty"`
	ResponseCount int     `json:"response_count"`
	ResponseRate  float64 `json:"response_rate"` // 0..100
	AvgScore      float64 `json:"avg_score"`
}

package admission

type CreateApplicationRequest struct {
	ProgramID        string  `json:"program_id" binding:"required,uuid"`
	ApplicantName    string  `json:"applicant_name" binding:"required"`
	Email            string  `json:"email" binding:"required,email"`
	Phone            string  `json:"phone"`
	EligibilityScore float64 `json:"eligibility_score" binding:"gte=0,lte=100"`
}

type UpdateApplicationRequest struct {
	ApplicantName    string  `json:"applicant_name" binding:"required"`
	Email            string  `json:"email" binding:"required,email"`
	Phone            string  `json:"phone"`
	EligibilityScore float64 `json:"eligibility_score" binding:"gte=0,lte=100"`
}

type GenerateMeritListRequest struct {
	ProgramID  string `json:"program_id" binding:"required,uuid"`
	TotalSeats int    `json:"total_seats" binding:"required,gt=0"`
}

type ApplicationResponse struct {
	ID               string  `json:"id"`
	CampusID         string  `json:"campus_id"`
	ProgramID        string  `json:"program_id"`
	ApplicantName    string  `json:"applicant_name"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone,omitempty"`
	EligibilityScore float64 `json:"eligibility_score"`
	Status           string  `json:"status"`
	MeritRank        *int    `json:"merit_rank,omitempty"`
	SubmittedAt      string  `json:"submitted_at"`
}

type MeritListResponse struct {
	ProgramID    string                `json:"program_id"`
	TotalSeats   int                   `json:"total_seats"`
	Applications []ApplicationResponse `json:"applications"`
}

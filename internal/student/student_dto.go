package student

type CreateStudentRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	Email          string `json:"email" binding:"omitempty,email"`
	Phone          string `json:"phone"`
	Program        string `json:"program" binding:"required"`
	EnrollmentDate string `json:"enrollment_date" binding:"required"`
}

type UpdateStudentRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Program  string `json:"program" binding:"required"`
	Status   string `json:"status" binding:"required,oneof=ACTIVE TRANSFERRED GRADUATED WITHDRAWN"`
}

type StudentResponse struct {
	ID             string `json:"id"`
	CampusID       string `json:"campus_id"`
	RollNumber     string `json:"roll_number"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Program        string `json:"program"`
	EnrollmentDate string `json:"enrollment_date"`
	Status         string `json:"status"`
}

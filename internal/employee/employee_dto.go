package employee

type CreateEmployeeRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	JoinDate    string `json:"join_date" binding:"required"`
}

type UpdateEmployeeRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Phone       string `json:"phone"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	Status      string `json:"status" binding:"required,oneof=ACTIVE INACTIVE TRANSFERRED"`
}

type EmployeeResponse struct {
	ID           string `json:"id"`
	CampusID     string `json:"campus_id"`
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Designation  string `json:"designation"`
	Department   string `json:"department"`
	JoinDate     string `json:"join_date"`
	Status       string `json:"status"`
}

package payroll

type CreateSalaryRequest struct {
	EmployeeID      string `json:"employee_id" binding:"required,uuid"`
	PeriodStart     string `json:"period_start" binding:"required"`
	PeriodEnd       string `json:"period_end" binding:"required"`
	BasicSalary     int64  `json:"basic_salary" binding:"gte=0"`
	HouseRent       int64  `json:"house_rent" binding:"gte=0"`
	MedicalAllow    int64  `json:"medical_allowance" binding:"gte=0"`
	TransportAllow  int64  `json:"transport_allowance" binding:"gte=0"`
	OtherAllowances int64  `json:"other_allowances" binding:"gte=0"`
	ProvidentFund   int64  `json:"provident_fund" binding:"gte=0"`
	Tax             int64  `json:"tax" binding:"gte=0"`
	OtherDeductions int64  `json:"other_deductions" binding:"gte=0"`
}

type ApproveSalaryRequest struct {
	Remarks string `json:"remarks"`
}

type SalaryResponse struct {
	ID              string  `json:"id"`
	CampusID        string  `json:"campus_id"`
	EmployeeID      string  `json:"employee_id"`
	PeriodStart     string  `json:"period_start"`
	PeriodEnd       string  `json:"period_end"`
	BasicSalary     int64   `json:"basic_salary"`
	HouseRent       int64   `json:"house_rent"`
	MedicalAllow    int64   `json:"medical_allowance"`
	TransportAllow  int64   `json:"transport_allowance"`
	OtherAllowances int64   `json:"other_allowances"`
	ProvidentFund   int64   `json:"provident_fund"`
	Tax             int64   `json:"tax"`
	OtherDeductions int64   `json:"other_deductions"`
	GrossSalary     int64   `json:"gross_salary"`
	NetSalary       int64   `json:"net_salary"`
	Status          string  `json:"status"`
	CreatedBy       string  `json:"created_by"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	PaidAt          *string `json:"paid_at,omitempty"`
	Remarks         *string `json:"remarks,omitempty"`
}

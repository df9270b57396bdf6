package auth

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	User        UserResponse `json:"user"`
}

type RegisterUserRequest struct {
	CampusID   string  `json:"campus_id" binding:"required,uuid"`
	EmployeeID *string `json:"employee_id" binding:"omitempty,uuid"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=8"`
	FullName   string  `json:"full_name" binding:"required"`
	Role       string  `json:"role" binding:"required,oneof=ADMIN HR_OFFICER REGISTRAR FINANCE_OFFICER STAFF"`
}

type UserResponse struct {
	ID         string  `json:"id"`
	CampusID   string  `json:"campus_id"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Email      string  `json:"email"`
	FullName   string  `json:"full_name"`
	Role       string  `json:"role"`
	IsActive   bool    `json:"is_active"`
}

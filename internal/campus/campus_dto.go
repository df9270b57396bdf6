package campus

type CreateCampusRequest struct {
	Name    string `json:"name" binding:"required"`
	Code    string `json:"code" binding:"required,alphanum,max=20"`
	City    string `json:"city"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type UpdateCampusRequest struct {
	Name     string `json:"name" binding:"required"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	IsActive *bool  `json:"is_active"`
}

type CampusResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"is_active"`
}

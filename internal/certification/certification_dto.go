package certification

type CreateRequestRequest struct {
	StudentID       string `json:"student_id" binding:"required,uuid"`
	CertificateType string `json:"certificate_type" binding:"required,oneof=TRANSCRIPT PROVISIONAL DEGREE CHARACTER MIGRATION"`
	Purpose         string `json:"purpose"`
	FeeAmount       int64  `json:"fee_amount" binding:"gte=0"`
}

type ApproveRequestRequest struct {
	Remarks string `json:"remarks"`
}

type RejectRequestRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

type VerifyRequest struct {
	VerificationCode  string `json:"verification_code"`
	CertificateNumber string `json:"certificate_number"`
}

type RequestResponse struct {
	ID              string  `json:"id"`
	CampusID        string  `json:"campus_id"`
	StudentID       string  `json:"student_id"`
	CertificateType string  `json:"certificate_type"`
	Purpose         string  `json:"purpose,omitempty"`
	FeeAmount       int64   `json:"fee_amount"`
	FeePaid         bool    `json:"fee_paid"`
	Status          string  `json:"status"`
	CreatedBy       string  `json:"created_by"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	Remarks         *string `json:"remarks,omitempty"`

	Certificate *CertificateResponse `json:"certificate,omitempty"`
}

type CertificateResponse struct {
	ID                string `json:"id"`
	RequestID         string `json:"request_id"`
	CampusID          string `json:"campus_id"`
	StudentID         string `json:"student_id"`
	CertificateType   string `json:"certificate_type"`
	CertificateNumber string `json:"certificate_number"`
	VerificationCode  string `json:"verification_code"`
	IsVerified        bool   `json:"is_verified"`
	IssuedAt          string `json:"issued_at"`
}

type VerifyResponse struct {
	Valid             bool   `json:"valid"`
	CertificateNumber string `json:"certificate_number,omitempty"`
	CertificateType   string `json:"certificate_type,omitempty"`
	StudentID         string `json:"student_id,omitempty"`
	IssuedAt          string `json:"issued_at,omitempty"`
	IsVerified        bool   `json:"is_verified"`
}

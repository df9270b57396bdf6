package transfer

type CreateTransferRequest struct {
	SubjectType string `json:"subject_type" binding:"required,oneof=STUDENT STAFF"`
	SubjectID   string `json:"subject_id" binding:"required,uuid"`
	ToCampusID  string `json:"to_campus_id" binding:"required,uuid"`
	Reason      string `json:"reason"`
}

type ApproveTransferRequest struct {
	Remarks string `json:"remarks"`
}

type RejectTransferRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

type TransferResponse struct {
	ID              string  `json:"id"`
	SubjectType     string  `json:"subject_type"`
	SubjectID       string  `json:"subject_id"`
	FromCampusID    string  `json:"from_campus_id"`
	ToCampusID      string  `json:"to_campus_id"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	CreatedBy       string  `json:"created_by"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	Remarks         *string `json:"remarks,omitempty"`
}

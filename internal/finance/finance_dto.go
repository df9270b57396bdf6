package finance

type CreateFeeRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	FeeType   string `json:"fee_type" binding:"required,oneof=TUITION ADMISSION EXAMINATION CERTIFICATE HOSTEL TRANSPORT"`
	Amount    int64  `json:"amount" binding:"required,gt=0"`
	DueDate   string `json:"due_date" binding:"required"`
}

type RecordPaymentRequest struct {
	Amount    int64   `json:"amount" binding:"required,gt=0"`
	Method    string  `json:"method" binding:"required,oneof=CASH BANK_TRANSFER CARD ONLINE"`
	Reference *string `json:"reference"`
}

type FeeResponse struct {
	ID         string `json:"id"`
	CampusID   string `json:"campus_id"`
	StudentID  string `json:"student_id"`
	FeeType    string `json:"fee_type"`
	Amount     int64  `json:"amount"`
	PaidAmount int64  `json:"paid_amount"`
	DueDate    string `json:"due_date"`
	Status     string `json:"status"`
	CreatedBy  string `json:"created_by"`
}

type PaymentResponse struct {
	ID         string  `json:"id"`
	CampusID   string  `json:"campus_id"`
	FeeID      string  `json:"fee_id"`
	Amount     int64   `json:"amount"`
	Method     string  `json:"method"`
	Reference  *string `json:"reference,omitempty"`
	ReceivedBy string  `json:"received_by"`
	PaidAt     string  `json:"paid_at"`

	Fee *FeeResponse `json:"fee,omitempty"`
}

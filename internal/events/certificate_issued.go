package events

import "time"

const CertificateIssuedTopic = "erp.certificate.lifecycle.v1"

type CertificateIssuedEvent struct {
	EventType         string    `json:"event_type"`
	CertificateID     string    `json:"certificate_id"`
	CertificateNumber string    `json:"certificate_number"`
	StudentID         string    `json:"student_id"`
	CampusID          string    `json:"campus_id"`
	OccurredAt        time.Time `json:"occurred_at"`
}

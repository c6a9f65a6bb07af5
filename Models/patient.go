package Models

import (
	"gorm.io/gorm"
)

type Patient struct {
	gorm.Model
	Name          string         `json:"name"`
	DocumentID    string         `json:"document_id"`
	Phone         string         `json:"phone"`
	Gender        string         `json:"gender"`
	Age           int            `json:"age"`
	Diagnosis     string         `json:"diagnosis"`
	Notes         string         `json:"notes"`
	MedicalOrders []MedicalOrder `json:"medical_orders"`
}

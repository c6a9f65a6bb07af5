package Models

import (
	"gorm.io/gorm"
)

type Therapist struct {
	gorm.Model
	Name          string         `json:"name"`
	UserID        uint           `json:"user_id"`
	Phone         string         `json:"phone"`
	Specialty     string         `json:"specialty"`
	IsActive      bool           `json:"is_active"`
	MedicalOrders []MedicalOrder `json:"medical_orders"`
	Rates         []TherapistRate
}

// TherapistRate is the pay configuration for one therapist and specialty.
// Home-visit values are optional; when zero the intramural value applies.
type TherapistRate struct {
	gorm.Model
	TherapistID      uint    `json:"therapist_id"`
	Specialty        string  `json:"specialty"`
	IsHourly         bool    `json:"es_por_hora"`
	SessionValue     float64 `json:"valor_sesion"`
	HourValue        float64 `json:"valor_hora"`
	SessionValueHome float64 `json:"valor_sesion_domiciliaria"`
	HourValueHome    float64 `json:"valor_hora_domiciliaria"`
}

func GetTherapistByUserID(userID uint) (Therapist, error) {
	var therapist Therapist
	err := DB.Model(&Therapist{}).Where("user_id = ?", userID).First(&therapist).Error
	return therapist, err
}

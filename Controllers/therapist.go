package Controllers

import (
	"log"
	"net/http"

	"ErpClinico/Models"

	"github.com/gin-gonic/gin"
)

func GetTherapists(c *gin.Context) {
	var therapists []Models.Therapist
	if err := Models.DB.Model(&Models.Therapist{}).Preload("Rates").Find(&therapists).Error; err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, therapists)
}

// SetTherapistRate creates or replaces the rate for one therapist and
// specialty. Rates are shared payroll input, only admins reach this route.
func SetTherapistRate(c *gin.Context) {
	var input Models.TherapistRate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.TherapistID == 0 || input.Specialty == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Therapist and specialty are required"})
		return
	}

	var existing Models.TherapistRate
	err := Models.DB.Model(&Models.TherapistRate{}).
		Where("therapist_id = ? AND specialty = ?", input.TherapistID, input.Specialty).
		First(&existing).Error
	if err == nil {
		input.ID = existing.ID
	}

	if err := Models.DB.Save(&input).Error; err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rate Saved Successfully"})
}

func FetchTherapistRates(c *gin.Context) {
	var input struct {
		TherapistID uint `json:"therapist_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var rates []Models.TherapistRate
	if err := Models.DB.Model(&Models.TherapistRate{}).Where("therapist_id = ?", input.TherapistID).Find(&rates).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rates)
}

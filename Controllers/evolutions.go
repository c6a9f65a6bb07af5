package Controllers

import (
	"log"
	"net/http"
	"time"

	"ErpClinico/Models"

	"github.com/gin-gonic/gin"
)

func FetchSessionEvolution(c *gin.Context) {
	var input struct {
		SessionID uint `json:"session_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var evolution Models.Evolution
	if err := Models.DB.Model(&Models.Evolution{}).Where("session_id = ?", input.SessionID).First(&evolution).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Evolution not found"})
		return
	}

	now := time.Now()
	c.JSON(http.StatusOK, gin.H{
		"evolution":       evolution,
		"editable":        evolution.Editable(now),
		"remaining_hours": evolution.RemainingHours(now),
	})
}

// UpdateEvolution edits a clinical note while it is still inside the
// 24-hour window. The check runs against created_at at write time, so an
// expired note is rejected even if the sweep has not flagged it yet.
func UpdateEvolution(c *gin.Context) {
	var input struct {
		EvolutionID  uint   `json:"evolution_id"`
		Content      string `json:"content"`
		Objectives   string `json:"objectives"`
		Observations string `json:"observations"`
		IsClosure    bool   `json:"es_cierre"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Evolution content is required"})
		return
	}

	var evolution Models.Evolution
	if err := Models.DB.Model(&Models.Evolution{}).Where("id = ?", input.EvolutionID).First(&evolution).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Evolution not found"})
		return
	}

	if evolution.TherapistID != currentTherapistID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author can edit this evolution"})
		return
	}

	if !evolution.Editable(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Evolution is locked and can no longer be edited"})
		return
	}

	evolution.Content = input.Content
	evolution.Objectives = input.Objectives
	evolution.Observations = input.Observations
	evolution.IsClosure = input.IsClosure

	if err := Models.DB.Save(&evolution).Error; err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Evolution updated successfully"})
}

// LockEvolution is the explicit administrative lock, used before the window
// expires when a note must be frozen for an audit.
func LockEvolution(c *gin.Context) {
	var input struct {
		EvolutionID uint `json:"evolution_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	if err := Models.DB.Model(&Models.Evolution{}).Where("id = ?", input.EvolutionID).
		Updates(map[string]interface{}{"locked": true, "locked_at": now}).Error; err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Evolution locked"})
}

// CreateInitialEvaluation records the intake of a medical order. Only the
// originally assigned therapist may create it, exactly once; there is no
// update endpoint on purpose.
func CreateInitialEvaluation(c *gin.Context) {
	var input struct {
		OrderID        uint   `json:"order_id"`
		Anamnesis      string `json:"anamnesis"`
		Assessment     string `json:"assessment"`
		TreatmentGoals string `json:"treatment_goals"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order Models.MedicalOrder
	if err := Models.DB.Model(&Models.MedicalOrder{}).Where("id = ?", input.OrderID).First(&order).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order not found"})
		return
	}

	therapistID := currentTherapistID(c)
	if err := order.CanCreateInitialEvaluation(therapistID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	evaluation := Models.InitialEvaluation{
		MedicalOrderID: order.ID,
		TherapistID:    therapistID,
		Anamnesis:      input.Anamnesis,
		Assessment:     input.Assessment,
		TreatmentGoals: input.TreatmentGoals,
	}
	if err := Models.DB.Create(&evaluation).Error; err != nil {
		// The unique order reference rejects a second intake.
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Initial evaluation already exists for this order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Initial evaluation created", "evaluation_id": evaluation.ID})
}

func FetchInitialEvaluation(c *gin.Context) {
	var input struct {
		OrderID uint `json:"order_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var evaluation Models.InitialEvaluation
	if err := Models.DB.Model(&Models.InitialEvaluation{}).Where("medical_order_id = ?", input.OrderID).First(&evaluation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Initial evaluation not found"})
		return
	}
	c.JSON(http.StatusOK, evaluation)
}

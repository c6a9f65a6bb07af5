package Controllers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"ErpClinico/Models"
	"ErpClinico/SSE"
	"ErpClinico/Scheduling"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateMedicalOrder registers the order and its full session batch in one
// transaction. The batch is produced by the recurrence generator; if the
// weekday set cannot yield the requested count within a year the whole
// operation is rejected rather than persisting a short order.
func CreateMedicalOrder(c *gin.Context) {
	var input struct {
		PatientID     uint    `json:"patient_id"`
		TherapistID   uint    `json:"therapist_id"`
		Specialty     string  `json:"specialty"`
		OrderCode     string  `json:"order_code"`
		Diagnosis     string  `json:"diagnosis"`
		TotalSessions uint    `json:"total_sesiones"`
		LocationType  string  `json:"location_type"`
		StartDate     string  `json:"start_date"` // 2006-01-02
		StartTime     string  `json:"start_time"` // 15:04
		Weekdays      []int   `json:"weekdays"`   // ISO, Sunday may arrive as 0
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		log.Println(err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.TotalSessions == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session count must be greater than zero"})
		return
	}
	weekdaySet := Scheduling.NormalizeWeekdays(input.Weekdays)
	if len(weekdaySet) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one weekday must be selected"})
		return
	}
	if input.LocationType != Models.LocationIntramural && input.LocationType != Models.LocationHome {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location type"})
		return
	}

	startDate, err := time.Parse("2006-01-02", input.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date"})
		return
	}
	if _, err := time.Parse("15:04", input.StartTime); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start time"})
		return
	}

	var therapist Models.Therapist
	if err := Models.DB.Model(&Models.Therapist{}).Where("id = ?", input.TherapistID).First(&therapist).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Therapist not found"})
		return
	}
	if therapist.Specialty != input.Specialty {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Therapist does not cover the requested specialty"})
		return
	}

	sessions := Scheduling.GenerateSessions(startDate, input.StartTime, input.TotalSessions, weekdaySet, input.LocationType)
	if uint(len(sessions)) != input.TotalSessions {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Only %d of %d sessions fit within a year of the start date", len(sessions), input.TotalSessions)})
		return
	}

	tx := Models.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	order := Models.MedicalOrder{
		PatientID:          input.PatientID,
		TherapistID:        input.TherapistID,
		InitialTherapistID: input.TherapistID,
		Specialty:          input.Specialty,
		OrderCode:          input.OrderCode,
		Diagnosis:          input.Diagnosis,
		TotalSessions:      input.TotalSessions,
		LocationType:       input.LocationType,
		State:              Models.OrderActive,
	}
	if err := tx.Create(&order).Error; err != nil {
		log.Println(err)
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create medical order"})
		return
	}

	for index := range sessions {
		sessions[index].MedicalOrderID = order.ID
	}
	if err := tx.Create(&sessions).Error; err != nil {
		log.Println(err)
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create session batch"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		log.Println(err)
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	SSE.Broadcaster.Broadcast(SSE.EventRefresh)
	c.JSON(http.StatusOK, gin.H{"message": "Order registered successfully", "order_id": order.ID})
}

func FetchMedicalOrders(c *gin.Context) {
	var input struct {
		PatientID   uint   `json:"patient_id"`
		TherapistID uint   `json:"therapist_id"`
		State       string `json:"state"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := Models.DB.Model(&Models.MedicalOrder{})
	if input.PatientID != 0 {
		query = query.Where("patient_id = ?", input.PatientID)
	}
	if input.TherapistID != 0 {
		query = query.Where("therapist_id = ?", input.TherapistID)
	}
	if input.State != "" {
		query = query.Where("state = ?", input.State)
	}

	var orders []Models.MedicalOrder
	if err := query.Find(&orders).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func FetchOrderSessions(c *gin.Context) {
	var input struct {
		OrderID uint `json:"order_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var sessions []Models.Session
	if err := Models.DB.Model(&Models.Session{}).
		Where("medical_order_id = ?", input.OrderID).
		Order("sequence_number asc, id asc").
		Find(&sessions).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// TransferMedicalOrder moves an active order to another therapist of the
// same specialty. Session history stays with the order untouched.
func TransferMedicalOrder(c *gin.Context) {
	var input struct {
		OrderID     uint `json:"order_id"`
		TherapistID uint `json:"therapist_id"`
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
	if order.State != Models.OrderActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only active orders can be transferred"})
		return
	}

	var therapist Models.Therapist
	if err := Models.DB.Model(&Models.Therapist{}).Where("id = ?", input.TherapistID).First(&therapist).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Therapist not found"})
		return
	}
	if therapist.Specialty != order.Specialty {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Target therapist must share the order's specialty"})
		return
	}
	if !therapist.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Target therapist is not active"})
		return
	}

	if err := Models.DB.Model(&Models.MedicalOrder{}).Where("id = ?", order.ID).Update("therapist_id", therapist.ID).Error; err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to transfer order"})
		return
	}

	SSE.Broadcaster.Broadcast(SSE.EventRefresh)
	c.JSON(http.StatusOK, gin.H{"message": "Order transferred successfully"})
}

// CloseMedicalOrder closes an active order by hand. Without force the order
// must already be resolved; with force the remaining scheduled sessions are
// cancelled with the given reason and the order closes anyway, all in one
// transaction.
func CloseMedicalOrder(c *gin.Context) {
	var input struct {
		OrderID uint   `json:"order_id"`
		Force   bool   `json:"force"`
		Reason  string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Force && input.Reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A reason is required to force-close an order"})
		return
	}

	tx := Models.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var order Models.MedicalOrder
	if err := tx.Model(&Models.MedicalOrder{}).Where("id = ?", input.OrderID).First(&order).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order not found"})
		return
	}

	var sessions []Models.Session
	if err := tx.Model(&Models.Session{}).Where("medical_order_id = ?", order.ID).Find(&sessions).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := order.CanClose(sessions, input.Force); err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Force {
		if err := tx.Model(&Models.Session{}).
			Where("medical_order_id = ? AND state = ?", order.ID, Models.SessionScheduled).
			Updates(map[string]interface{}{"state": Models.SessionCancelled, "cancel_reason": input.Reason}).Error; err != nil {
			log.Println(err)
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to cancel remaining sessions"})
			return
		}
	}

	if err := tx.Model(&Models.MedicalOrder{}).Where("id = ?", order.ID).Update("state", Models.OrderClosed).Error; err != nil {
		log.Println(err)
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to close order"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		log.Println(err)
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	SSE.Broadcaster.Broadcast(SSE.EventRefresh)
	c.JSON(http.StatusOK, gin.H{"message": "Order closed successfully"})
}

// closeOrderIfResolved flips the order to cerrada once no session is left
// programada or pending reschedule. Runs inside the caller's transaction.
func closeOrderIfResolved(tx *gorm.DB, orderID uint) (bool, error) {
	var sessions []Models.Session
	if err := tx.Model(&Models.Session{}).Where("medical_order_id = ?", orderID).Find(&sessions).Error; err != nil {
		return false, err
	}
	if !Models.OrderResolved(sessions) {
		return false, nil
	}
	if err := tx.Model(&Models.MedicalOrder{}).Where("id = ?", orderID).Update("state", Models.OrderClosed).Error; err != nil {
		return false, err
	}
	return true, nil
}

package Controllers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"ErpClinico/FirebaseMessaging"
	"ErpClinico/Models"
	"ErpClinico/SSE"
	"ErpClinico/Whatsapp"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// buildTransitionContext gathers the guard inputs for a session transition:
// who is calling, who owns the order, the session's position in the order and
// the state of its effective predecessor.
func buildTransitionContext(c *gin.Context, db *gorm.DB, session Models.Session, order Models.MedicalOrder) (Models.TransitionContext, error) {
	ctx := Models.TransitionContext{
		ActorTherapistID: currentTherapistID(c),
		OrderTherapistID: order.TherapistID,
		IsFirst:          session.SequenceNumber == 1,
		IsLast:           session.SequenceNumber == order.TotalSessions,
	}

	var evaluationCount int64
	if err := db.Model(&Models.InitialEvaluation{}).Where("medical_order_id = ?", order.ID).Count(&evaluationCount).Error; err != nil {
		return ctx, err
	}
	ctx.HasInitialEvaluation = evaluationCount > 0

	if session.SequenceNumber > 1 {
		// A rescheduled predecessor leaves two rows with the same sequence
		// number; the reprogramada one is history, its successor counts.
		var predecessor Models.Session
		err := db.Model(&Models.Session{}).
			Where("medical_order_id = ? AND sequence_number = ? AND state <> ?",
				order.ID, session.SequenceNumber-1, Models.SessionRescheduled).
			Order("id desc").
			First(&predecessor).Error
		if err == nil {
			ctx.PredecessorState = predecessor.State
		} else if err != gorm.ErrRecordNotFound {
			return ctx, err
		}
	}

	return ctx, nil
}

// CompleteSession runs the two-step closure protocol in one transaction:
// persist the evolution first, then flip the session state. If the note
// cannot be written the state never changes.
func CompleteSession(c *gin.Context) {
	closeSessionWithEvolution(c, Models.SessionCompleted)
}

// MarkPlanCasero is the lighter home-plan closure for mid-order sessions.
func MarkPlanCasero(c *gin.Context) {
	closeSessionWithEvolution(c, Models.SessionHomePlan)
}

func closeSessionWithEvolution(c *gin.Context, targetState string) {
	var input struct {
		SessionID    uint   `json:"session_id"`
		EndTime      string `json:"end_time"`
		Content      string `json:"content"`
		Objectives   string `json:"objectives"`
		Observations string `json:"observations"`
		IsClosure    bool   `json:"es_cierre"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Println(err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Evolution content is required"})
		return
	}
	if input.EndTime != "" {
		if _, err := time.Parse("15:04", input.EndTime); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end time"})
			return
		}
	}

	tx := Models.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var session Models.Session
	if err := tx.Model(&Models.Session{}).Where("id = ?", input.SessionID).First(&session).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session not found"})
		return
	}

	var order Models.MedicalOrder
	if err := tx.Model(&Models.MedicalOrder{}).Where("id = ?", session.MedicalOrderID).First(&order).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Medical order not found"})
		return
	}

	transitionCtx, err := buildTransitionContext(c, tx, session, order)
	if err != nil {
		log.Println(err)
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session context"})
		return
	}
	transitionCtx.HasEvolution = true
	transitionCtx.EvolutionIsClosure = input.IsClosure

	if err := session.CanTransition(targetState, transitionCtx); err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Step 1: the clinical note. The unique session reference makes a
	// duplicate insert fail here, before the state changes.
	evolution := Models.Evolution{
		SessionID:    session.ID,
		TherapistID:  transitionCtx.ActorTherapistID,
		Content:      input.Content,
		Objectives:   input.Objectives,
		Observations: input.Observations,
		IsClosure:    input.IsClosure,
	}
	if err := tx.Create(&evolution).Error; err != nil {
		log.Println(err)
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to save evolution"})
		return
	}

	// Step 2: the state flip.
	session.State = targetState
	if input.EndTime != "" {
		session.EndTime = input.EndTime
	}
	if err := tx.Save(&session).Error; err != nil {
		log.Println(err)
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update session"})
		return
	}

	if targetState == Models.SessionCompleted {
		if order.CompletedSessions >= order.TotalSessions {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order already has all sessions completed"})
			return
		}
		order.CompletedSessions++
		if err := tx.Model(&Models.MedicalOrder{}).Where("id = ?", order.ID).
			Update("completed_sessions", order.CompletedSessions).Error; err != nil {
			log.Println(err)
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update order progress"})
			return
		}
	}

	closed, err := closeOrderIfResolved(tx, order.ID)
	if err != nil {
		log.Println(err)
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update order state"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		log.Println(err)
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session closed successfully", "evolution_id": evolution.ID})
	SSE.Broadcaster.Broadcast(SSE.EventRefresh)

	if closed {
		fcms, _ := Models.GetAdminFCMs()
		if len(fcms) > 0 {
			FirebaseMessaging.SendMessage(Models.NotificationRequest{
				Tokens: fcms,
				Title:  "Medical Order Closed",
				Body:   fmt.Sprintf("Order %s finished all of its sessions", order.OrderCode),
			})
		}
	}
}

func CancelSession(c *gin.Context) {
	var input struct {
		SessionID uint   `json:"session_id"`
		Reason    string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx := Models.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var session Models.Session
	if err := tx.Model(&Models.Session{}).Where("id = ?", input.SessionID).First(&session).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session not found"})
		return
	}

	var order Models.MedicalOrder
	if err := tx.Model(&Models.MedicalOrder{}).Where("id = ?", session.MedicalOrderID).First(&order).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Medical order not found"})
		return
	}

	transitionCtx, err := buildTransitionContext(c, tx, session, order)
	if err != nil {
		log.Println(err)
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session context"})
		return
	}
	transitionCtx.CancelReason = input.Reason

	if err := session.CanTransition(Models.SessionCancelled, transitionCtx); err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session.State = Models.SessionCancelled
	session.CancelReason = input.Reason
	if err := tx.Save(&session).Error; err != nil {
		log.Println(err)
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to cancel session"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		log.Println(err)
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session cancelled successfully"})
	SSE.Broadcaster.Broadcast(SSE.EventRefresh)

	fcms, _ := Models.GetAdminFCMs()
	if len(fcms) > 0 {
		FirebaseMessaging.SendMessage(Models.NotificationRequest{
			Tokens: fcms,
			Title:  "Session Pending Reschedule",
			Body:   fmt.Sprintf("Session %d of order %s was cancelled: %s", session.SequenceNumber, order.OrderCode, input.Reason),
		})
	}
}

// RescheduleSession converts a cancelled session into a new scheduled one.
// Both writes happen in one transaction: the successor insert and the link
// back on the original. Admin only; therapists cannot reschedule their own
// cancellations.
func RescheduleSession(c *gin.Context) {
	var input struct {
		SessionID uint   `json:"session_id"`
		NewDate   string `json:"new_date"` // 2006-01-02
		NewTime   string `json:"new_time"` // 15:04
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := time.Parse("2006-01-02", input.NewDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
		return
	}
	if _, err := time.Parse("15:04", input.NewTime); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time"})
		return
	}

	tx := Models.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var original Models.Session
	if err := tx.Model(&Models.Session{}).Where("id = ?", input.SessionID).First(&original).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session not found"})
		return
	}

	if err := original.CanReschedule(); err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	successor := Models.Session{
		MedicalOrderID:  original.MedicalOrderID,
		SequenceNumber:  original.SequenceNumber,
		Date:            input.NewDate,
		StartTime:       input.NewTime,
		LocationType:    original.LocationType,
		State:           Models.SessionScheduled,
		RescheduledFrom: &original.ID,
	}
	if err := tx.Create(&successor).Error; err != nil {
		log.Println(err)
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create rescheduled session"})
		return
	}

	original.State = Models.SessionRescheduled
	original.RescheduledTo = &successor.ID
	if err := tx.Save(&original).Error; err != nil {
		log.Println(err)
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to link original session"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		log.Println(err)
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Session rescheduled successfully",
		"original_id":  original.ID,
		"successor_id": successor.ID,
	})
	SSE.Broadcaster.Broadcast(SSE.EventRefresh)

	var order Models.MedicalOrder
	if err := Models.DB.Model(&Models.MedicalOrder{}).Where("id = ?", original.MedicalOrderID).First(&order).Error; err == nil {
		var patient Models.Patient
		if err := Models.DB.Model(&Models.Patient{}).Where("id = ?", order.PatientID).First(&patient).Error; err == nil && patient.Phone != "" {
			Whatsapp.SendMessage(patient.Phone, fmt.Sprintf("Your session has been rescheduled to %s at %s", input.NewDate, input.NewTime))
		}
	}
}

// FetchPendingReschedules lists cancelled sessions that were never linked to
// a successor, the exact set the office still has to act on.
func FetchPendingReschedules(c *gin.Context) {
	var sessions []Models.Session
	if err := Models.DB.Model(&Models.Session{}).
		Where("state = ? AND rescheduled_to IS NULL", Models.SessionCancelled).
		Order("date asc").
		Find(&sessions).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func FetchTherapistAgenda(c *gin.Context) {
	var input struct {
		DateFrom string `json:"date_from"`
		DateTo   string `json:"date_to"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	therapistID := currentTherapistID(c)
	if therapistID == 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only therapists have an agenda"})
		return
	}

	query := Models.DB.Model(&Models.Session{}).
		Joins("JOIN medical_orders ON medical_orders.id = sessions.medical_order_id").
		Where("medical_orders.therapist_id = ?", therapistID)
	if input.DateFrom != "" && input.DateTo != "" {
		query = query.Where("sessions.date BETWEEN ? AND ?", input.DateFrom, input.DateTo)
	}

	var sessions []Models.Session
	if err := query.Order("sessions.date asc, sessions.start_time asc").Find(&sessions).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

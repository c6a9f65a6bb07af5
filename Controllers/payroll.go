package Controllers

import (
	"fmt"
	"log"
	"net/http"

	"ErpClinico/FirebaseMessaging"
	"ErpClinico/Models"
	"ErpClinico/Payroll"
	"ErpClinico/SSE"

	"github.com/gin-gonic/gin"
)

func CreatePayrollPeriod(c *gin.Context) {
	var input struct {
		Month int `json:"month"`
		Year  int `json:"year"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Month < 1 || input.Month > 12 || input.Year < 2000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month or year"})
		return
	}

	period := Models.PayrollPeriod{Month: input.Month, Year: input.Year, State: Models.PeriodOpen}
	if err := Models.DB.Create(&period).Error; err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Period already exists"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Period created", "period_id": period.ID})
}

func FetchPayrollPeriods(c *gin.Context) {
	var periods []Models.PayrollPeriod
	if err := Models.DB.Model(&Models.PayrollPeriod{}).Order("year desc, month desc").Find(&periods).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, periods)
}

// ComputePayroll recomputes the payable summary for an open period. Every
// run wipes the period's detail rows and reinserts them, so repeating it
// with unchanged inputs yields the same result.
func ComputePayroll(c *gin.Context) {
	var input struct {
		PeriodID uint `json:"period_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var period Models.PayrollPeriod
	if err := Models.DB.Model(&Models.PayrollPeriod{}).Where("id = ?", input.PeriodID).First(&period).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Period not found"})
		return
	}
	if period.State != Models.PeriodOpen {
		c.JSON(http.StatusBadRequest, gin.H{"error": Models.ErrPeriodNotOpen.Error()})
		return
	}

	startDate, endDate := period.Bounds()

	var sessions []Models.Session
	if err := Models.DB.Model(&Models.Session{}).
		Where("state IN ? AND date BETWEEN ? AND ?",
			[]string{Models.SessionCompleted, Models.SessionHomePlan}, startDate, endDate).
		Find(&sessions).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var orderRows []Models.MedicalOrder
	if err := Models.DB.Model(&Models.MedicalOrder{}).Find(&orderRows).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	orders := make(map[uint]Models.MedicalOrder, len(orderRows))
	for _, order := range orderRows {
		orders[order.ID] = order
	}

	var therapistRows []Models.Therapist
	if err := Models.DB.Model(&Models.Therapist{}).Find(&therapistRows).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	therapists := make(map[uint]Models.Therapist, len(therapistRows))
	for _, therapist := range therapistRows {
		therapists[therapist.ID] = therapist
	}

	var rateRows []Models.TherapistRate
	if err := Models.DB.Model(&Models.TherapistRate{}).Find(&rateRows).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rates := make(map[uint]Models.TherapistRate, len(rateRows))
	for _, rate := range rateRows {
		if therapist, ok := therapists[rate.TherapistID]; ok && rate.Specialty == therapist.Specialty {
			rates[rate.TherapistID] = rate
		}
	}

	details, warnings := Payroll.Compute(period.ID, sessions, orders, rates, therapists)

	tx := Models.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Unscoped().Where("payroll_period_id = ?", period.ID).Delete(&Models.PayrollDetail{}).Error; err != nil {
		log.Println(err)
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to clear previous details"})
		return
	}
	if len(details) > 0 {
		if err := tx.Create(&details).Error; err != nil {
			log.Println(err)
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to save payroll details"})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Println(err)
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"details": details, "warnings": warnings})
	SSE.Broadcaster.Broadcast(SSE.EventRefresh)

	fcms, _ := Models.GetAdminFCMs()
	if len(fcms) > 0 {
		FirebaseMessaging.SendMessage(Models.NotificationRequest{
			Tokens: fcms,
			Title:  "Payroll Computed",
			Body:   fmt.Sprintf("Payroll for %s recalculated with %d therapists", period.Label(), len(details)),
		})
	}
}

func FetchPayrollDetails(c *gin.Context) {
	var input struct {
		PeriodID uint `json:"period_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var details []Models.PayrollDetail
	if err := Models.DB.Model(&Models.PayrollDetail{}).
		Where("payroll_period_id = ?", input.PeriodID).
		Order("therapist_id asc").
		Find(&details).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, details)
}

// ClosePayrollPeriod locks further recomputation. The state machine only
// moves forward: abierto -> cerrado -> pagado.
func ClosePayrollPeriod(c *gin.Context) {
	transitionPeriod(c, Models.PeriodOpen, Models.PeriodClosed, Models.ErrPeriodNotOpen.Error())
}

func MarkPayrollPeriodPaid(c *gin.Context) {
	transitionPeriod(c, Models.PeriodClosed, Models.PeriodPaid, Models.ErrPeriodNotClosed.Error())
}

func transitionPeriod(c *gin.Context, fromState, toState, rejection string) {
	var input struct {
		PeriodID uint `json:"period_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var period Models.PayrollPeriod
	if err := Models.DB.Model(&Models.PayrollPeriod{}).Where("id = ?", input.PeriodID).First(&period).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Period not found"})
		return
	}
	if period.State != fromState {
		c.JSON(http.StatusBadRequest, gin.H{"error": rejection})
		return
	}

	if err := Models.DB.Model(&Models.PayrollPeriod{}).Where("id = ?", period.ID).Update("state", toState).Error; err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Period updated", "state": toState})
}

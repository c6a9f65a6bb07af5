package CronJobs

import (
	"ErpClinico/Constants"
	"ErpClinico/Models"
	"ErpClinico/Whatsapp"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"gorm.io/gorm"
)

// ClinicWorkers runs the background jobs: the evolution lock sweep and the
// session reminder messages.
type ClinicWorkers struct {
	DB *gorm.DB
}

func NewClinicWorkers(db *gorm.DB) *ClinicWorkers {
	return &ClinicWorkers{
		DB: db,
	}
}

// StartCron schedules both workers. The sweep runs every 10 minutes, the
// reminder check every minute.
func (cw *ClinicWorkers) StartCron() *gocron.Scheduler {
	scheduler := gocron.NewScheduler(time.Local)

	scheduler.Every(10).Minutes().Do(func() {
		if err := cw.LockExpiredEvolutions(); err != nil {
			log.Printf("Error locking expired evolutions: %v", err)
		}
	})

	scheduler.Every(1).Minutes().Do(func() {
		if err := cw.SendSessionReminders(); err != nil {
			log.Printf("Error sending session reminders: %v", err)
		}
	})

	scheduler.StartAsync()
	log.Println("Clinic cron jobs started")

	return scheduler
}

// LockExpiredEvolutions flips the stored flag on notes older than the edit
// window. Write-time checks already reject edits on expired notes; the sweep
// keeps the persisted flag in line so reports and exports see the truth.
func (cw *ClinicWorkers) LockExpiredEvolutions() error {
	cutoff := time.Now().Add(-Constants.EvolutionEditWindowHours * time.Hour)
	now := time.Now()

	result := cw.DB.Model(&Models.Evolution{}).
		Where("locked = ? AND created_at <= ?", false, cutoff).
		Updates(map[string]interface{}{"locked": true, "locked_at": now})
	if result.Error != nil {
		return fmt.Errorf("failed to lock expired evolutions: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		log.Printf("Locked %d expired evolutions", result.RowsAffected)
	}
	return nil
}

// SendSessionReminders messages patients roughly three hours before their
// scheduled session, once per session.
func (cw *ClinicWorkers) SendSessionReminders() error {
	now := time.Now()

	startWindow := now.Add(2*time.Hour + 53*time.Minute)
	endWindow := now.Add(3*time.Hour + 7*time.Minute)

	var sessions []Models.Session

	result := cw.DB.Model(&Models.Session{}).
		Where("state = ? AND reminder_sent = ? AND date = ? AND start_time BETWEEN ? AND ?",
			Models.SessionScheduled,
			false,
			now.Format("2006-01-02"),
			startWindow.Format("15:04"),
			endWindow.Format("15:04")).
		Find(&sessions)

	if result.Error != nil {
		return fmt.Errorf("failed to query upcoming sessions: %w", result.Error)
	}

	for _, session := range sessions {
		var order Models.MedicalOrder
		if err := cw.DB.First(&order, session.MedicalOrderID).Error; err != nil {
			log.Printf("Failed to find order for session ID %d: %v", session.ID, err)
			continue
		}

		var patient Models.Patient
		if err := cw.DB.First(&patient, order.PatientID).Error; err != nil {
			log.Printf("Failed to find patient for session ID %d: %v", session.ID, err)
			continue
		}

		if patient.Phone == "" {
			continue
		}

		var therapist Models.Therapist
		if err := cw.DB.First(&therapist, order.TherapistID).Error; err != nil {
			log.Printf("Failed to find therapist for session ID %d: %v", session.ID, err)
			continue
		}

		message := fmt.Sprintf(
			"Reminder: You have session %d of %d with %s today at %s (in 3 hours). "+
				"If you need to reschedule, please contact the clinic.",
			session.SequenceNumber,
			order.TotalSessions,
			therapist.Name,
			session.StartTime,
		)

		if err := Whatsapp.SendMessage(patient.Phone, message); err != nil {
			log.Printf("Failed to send reminder to patient %s: %v", patient.Name, err)
			continue
		}

		if err := cw.DB.Model(&Models.Session{}).Where("id = ?", session.ID).Update("reminder_sent", true).Error; err != nil {
			log.Printf("Failed to flag reminder for session ID %d: %v", session.ID, err)
			continue
		}

		log.Printf("Reminder sent to %s for session on %s %s", patient.Name, session.Date, session.StartTime)
	}

	return nil
}

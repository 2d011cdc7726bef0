package cron

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"themison-be/notification"
	"themison-be/patient"
	"themison-be/trial"
)

// VisitReminderScheduler notifies trial staff about visits coming up
// within the configured lead window.
type VisitReminderScheduler struct {
	patients *patient.PatientRepository
	trials   *trial.TrialRepository
	notify   *notification.NotificationService
}

func NewVisitReminderScheduler(patients *patient.PatientRepository, trials *trial.TrialRepository, notify *notification.NotificationService) *VisitReminderScheduler {
	return &VisitReminderScheduler{
		patients: patients,
		trials:   trials,
		notify:   notify,
	}
}

func (v *VisitReminderScheduler) SendUpcomingVisitReminders() {
	leadStr := os.Getenv("VISIT_REMINDER_LEAD_HOURS")
	lead, err := strconv.Atoi(leadStr)
	if err != nil || lead <= 0 {
		lead = 24
	}

	now := time.Now().UTC()
	from := now
	to := now.Add(time.Duration(lead) * time.Hour)

	visits, err := v.patients.GetVisitsDueBetween(from, to)
	if err != nil {
		log.Printf("Error querying upcoming visits: %v", err)
		return
	}
	if len(visits) == 0 {
		return
	}

	sent := 0
	for _, visit := range visits {
		assignments, err := v.trials.GetAssignments(visit.TrialID)
		if err != nil {
			log.Printf("Error getting assignments for trial %s: %v", visit.TrialID, err)
			continue
		}
		title := fmt.Sprintf("Upcoming visit: %s", visit.VisitName)
		body := fmt.Sprintf("Patient %s in trial %s has visit %q scheduled at %s",
			visit.PatientCode, visit.TrialName, visit.VisitName,
			visit.ScheduledAt.Format(time.RFC3339))
		for _, a := range assignments {
			if err := v.notify.Notify(a.MemberID, title, body); err != nil {
				log.Printf("Error notifying member %d: %v", a.MemberID, err)
				continue
			}
			sent++
		}
	}

	if sent > 0 {
		log.Printf("Sent %d visit reminder(s) for %d upcoming visit(s)", sent, len(visits))
	}
}

func (v *VisitReminderScheduler) RegisterJobs(scheduler *Scheduler) error {
	spec := os.Getenv("VISIT_REMINDER_CRON")
	if spec == "" {
		// Top of every hour.
		spec = "0 0 * * * *"
	}

	if err := scheduler.AddJob(spec, v.SendUpcomingVisitReminders); err != nil {
		return err
	}

	log.Println("Visit reminder jobs registered successfully")
	return nil
}

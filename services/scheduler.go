// services/scheduler.go
package services

import (
	"log"
	"time"

	"contest-scoring-system/models"

	"github.com/go-co-op/gocron/v2"
)

// StartAutoCloseScheduler deactivates the active contest once its end time
// has passed. Opt-in via CONTEST_AUTO_CLOSE: by default a contest stays
// active past its end and clients decide from debut/fin whether validations
// are still accepted.
func (s *ContestService) StartAutoCloseScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			var contests []models.Contest
			now := time.Now()
			err := s.DB.Where("active = ? AND end_time <= ?", true, now).
				Find(&contests).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}

			for _, contest := range contests {
				if err := s.DB.Model(&contest).Update("active", false).Error; err != nil {
					log.Printf("[Scheduler] Failed to close contest %s: %v", contest.ID, err)
					continue
				}
				log.Printf("✅ Auto-closed contest: %s (ended %s)", contest.Name, contest.EndTime.Format(time.RFC3339))
				s.Notifier.Notify()
			}
		}),
	)
}

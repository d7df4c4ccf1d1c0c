package service

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

const DefaultCleanupSchedule = "*/10 * * * *"

// StartCleanupCron purges expired wizard sessions on schedule. The returned
// cron is already running; stop it on shutdown.
func StartCleanupCron(svc *Service, schedule string) (*cron.Cron, error) {
	if schedule == "" {
		schedule = DefaultCleanupSchedule
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := svc.PurgeExpired(ctx)
		if err != nil {
			log.Printf("[WIZARD-REAPER] purge failed: %v", err)
			return
		}
		if n > 0 {
			log.Printf("[WIZARD-REAPER] purged %d expired session(s)", n)
		}
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[WIZARD-REAPER] started schedule=%q", schedule)
	c.Start()
	return c, nil
}

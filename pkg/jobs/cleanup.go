package jobs

import (
	"context"
	"log"
	"time"

	"github.com/dimal11/comments-api/pkg/comments_api/services"
	"github.com/dimal11/comments-api/pkg/tools"
	"github.com/robfig/cron/v3"
)

// orphanMinAge keeps files from in-flight uploads out of the sweep.
const orphanMinAge = 24 * time.Hour

// ScheduleDailyCleanup sets up a cron job that removes orphaned upload files
// every day.
func ScheduleDailyCleanup(ctx context.Context, svc *services.AttachmentService) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("@daily", func() {
		tools.Dispatch(context.Background(), "sweep_orphans", func(ctx context.Context) error {
			n, err := svc.SweepOrphans(ctx, orphanMinAge)
			if err != nil {
				return err
			}
			if n > 0 {
				log.Printf("orphan sweep removed %d file(s)", n)
			}
			return nil
		})
	})
	if err != nil {
		log.Printf("[WARN] schedule orphan sweep: %v", err)
	}
	c.Start()

	go func() {
		<-ctx.Done()
		c.Stop()
	}()
	return c
}

package devotional

import (
	"context"
	"log"
	"time"

	"github.com/talitapaixao/terapia-com-deus-api/pkg/config"
)

// StartScheduler pre-generates the shared daily record so the first reader
// of the day never waits for generation.
// - In dev: checks every minute.
// - In prod: checks every 15 minutes (the insert is idempotent per day).
func (s *Service) StartScheduler(ctx context.Context) {
	tickerDuration := time.Minute

	if config.GetAppEnv() == "production" {
		tickerDuration = 15 * time.Minute
	}

	ticker := time.NewTicker(tickerDuration)
	defer ticker.Stop()

	log.Printf("Devotional scheduler started (%s interval)\n", tickerDuration)

	// Warm today's record immediately on boot.
	s.warmDailyRecord(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("Scheduler stopped gracefully")
			return
		case <-ticker.C:
			s.warmDailyRecord(ctx)
		}
	}
}

func (s *Service) warmDailyRecord(ctx context.Context) {
	exists, err := s.HasTodayRecord(ctx)
	if err != nil {
		log.Printf("Failed to check today's devotional: %v", err)
		return
	}
	if exists {
		return
	}

	// Force the publish path: a plain resolve could be satisfied by the local
	// cache and leave the shared record unwritten.
	log.Println("No shared devotional for today yet, pre-generating")
	res := s.ResolveDaily(ctx, true)
	if res.Content.IsFallback {
		log.Println("Pre-generation hit the fallback, will retry on next tick")
		return
	}

	exists, err = s.HasTodayRecord(ctx)
	if err != nil || !exists {
		log.Println("Pre-generation did not publish, will retry on next tick")
		return
	}
	log.Printf("Pre-generated today's devotional: %s", res.Content.Title)
}

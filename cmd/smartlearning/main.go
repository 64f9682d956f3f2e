package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mummayiz/SmartLearning/internal/bot"
	"github.com/Mummayiz/SmartLearning/internal/config"
	"github.com/Mummayiz/SmartLearning/internal/repository"
	"github.com/Mummayiz/SmartLearning/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	if cfg.SeedDemo {
		if err := repository.SeedDemo(ctx, db, time.Now().UTC().Truncate(24*time.Hour)); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	taskRepo := repository.NewTaskRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	quizRepo := repository.NewQuizRepository(db)

	speedSvc := service.NewSpeedService(sessionRepo)
	plannerSvc := service.NewPlannerService(taskRepo, reviewRepo, speedSvc)
	statsSvc := service.NewStatsService(taskRepo, sessionRepo, progressRepo, speedSvc)

	telegramBot, err := bot.New(cfg.TelegramToken, &cfg, plannerSvc, statsSvc,
		taskRepo, sessionRepo, progressRepo, quizRepo)
	if err != nil {
		log.Fatalf("bot: %v", err)
	}

	cronSvc := service.NewCronService(time.Local)
	if _, err := cronSvc.ScheduleDaily(cfg.PlanTime, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		scheduled, report, err := plannerSvc.Schedule(jobCtx, cfg.DailyMinutes, cfg.ReviewOffsets, cfg.LookaheadDays)
		if err != nil {
			log.Printf("nightly plan: %v", err)
			return
		}
		log.Printf("nightly plan: scheduled %d task(s), %d review(s), %d review failure(s)",
			scheduled, report.Created(), report.Failed())
		rescheduled, err := plannerSvc.RescheduleMissed(jobCtx, cfg.DailyMinutes, cfg.LookaheadDays)
		if err != nil {
			log.Printf("nightly replan: %v", err)
			return
		}
		log.Printf("nightly replan: re-placed %d missed task(s)", rescheduled)
	}); err != nil {
		log.Fatalf("schedule nightly plan: %v", err)
	}
	cronSvc.Start()
	defer cronSvc.Stop()

	log.Println("Smart Learning planner started.")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("bot stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}

package service

import (
	"context"
	"sort"
	"time"

	"github.com/Mummayiz/SmartLearning/internal/model"
	"github.com/Mummayiz/SmartLearning/internal/repository"
)

// Overview summarizes the state of the whole task base.
type Overview struct {
	Total     int
	Done      int
	Missed    int
	Pending   int
	TimeSpent map[string]int // minutes per subject
	Progress  map[string]model.Progress
}

// Suggestion reports a subject whose session history deviates from its
// estimates enough to warrant adjusting future estimates.
type Suggestion struct {
	Subject    string
	Multiplier float64
}

// Faster reports whether the subject is finished quicker than estimated.
func (s Suggestion) Faster() bool {
	return s.Multiplier < 0.9
}

// Slower reports whether the subject needs more time than estimated.
func (s Suggestion) Slower() bool {
	return s.Multiplier > 1.1
}

// StatsService builds read-only analytics over tasks, sessions and progress.
type StatsService struct {
	tasks    *repository.TaskRepository
	sessions *repository.SessionRepository
	progress *repository.ProgressRepository
	speed    *SpeedService
	now      func() time.Time
}

func NewStatsService(tasks *repository.TaskRepository, sessions *repository.SessionRepository, progress *repository.ProgressRepository, speed *SpeedService) *StatsService {
	return &StatsService{
		tasks:    tasks,
		sessions: sessions,
		progress: progress,
		speed:    speed,
		now:      time.Now,
	}
}

func (s *StatsService) Overview(ctx context.Context) (Overview, error) {
	tasks, err := s.tasks.ListAll(ctx)
	if err != nil {
		return Overview{}, err
	}

	overview := Overview{Total: len(tasks)}
	for _, task := range tasks {
		switch task.Status {
		case model.StatusDone:
			overview.Done++
		case model.StatusMissed:
			overview.Missed++
		case model.StatusPending:
			overview.Pending++
		}
	}

	overview.TimeSpent, err = s.sessions.MinutesBySubject(ctx)
	if err != nil {
		return Overview{}, err
	}

	overview.Progress, err = s.progress.Map(ctx)
	if err != nil {
		return Overview{}, err
	}

	return overview, nil
}

// UpcomingDeadlines lists tasks due within the next given days.
func (s *StatsService) UpcomingDeadlines(ctx context.Context, days int) ([]model.Task, error) {
	today := dateOnly(s.now())
	return s.tasks.DeadlinesWithin(ctx, today, today.AddDate(0, 0, days+1))
}

// Suggestions returns every subject's calibration multiplier, sorted by
// subject. Callers highlight the Faster/Slower ones.
func (s *StatsService) Suggestions(ctx context.Context) ([]Suggestion, error) {
	multipliers, err := s.speed.Multipliers(ctx)
	if err != nil {
		return nil, err
	}
	suggestions := make([]Suggestion, 0, len(multipliers))
	for subject, multiplier := range multipliers {
		suggestions = append(suggestions, Suggestion{Subject: subject, Multiplier: multiplier})
	}
	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].Subject < suggestions[j].Subject
	})
	return suggestions, nil
}

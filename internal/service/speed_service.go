package service

import (
	"context"

	"github.com/Mummayiz/SmartLearning/internal/repository"
)

// Multiplier clamp bounds. A single outlier session should not be able to
// double or halve every future estimate for a subject.
const (
	minMultiplier = 0.6
	maxMultiplier = 1.6
)

// SpeedService derives per-subject duration-calibration multipliers from
// recorded sessions. A multiplier below 1 means the subject is consistently
// finished faster than estimated.
type SpeedService struct {
	sessions *repository.SessionRepository
}

func NewSpeedService(sessions *repository.SessionRepository) *SpeedService {
	return &SpeedService{sessions: sessions}
}

// Multipliers returns mean(actual)/mean(estimated) per subject, clamped to
// [0.6, 1.6]. Subjects without any session history are absent; callers treat
// absence as 1.0.
func (s *SpeedService) Multipliers(ctx context.Context) (map[string]float64, error) {
	samples, err := s.sessions.CalibrationSamples(ctx)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return map[string]float64{}, nil
	}

	type sums struct {
		estimated float64
		actual    float64
		count     float64
	}
	bySubject := make(map[string]*sums)
	for _, sample := range samples {
		agg := bySubject[sample.Subject]
		if agg == nil {
			agg = &sums{}
			bySubject[sample.Subject] = agg
		}
		agg.estimated += float64(sample.Estimated)
		agg.actual += float64(sample.Actual)
		agg.count++
	}

	multipliers := make(map[string]float64, len(bySubject))
	for subject, agg := range bySubject {
		estimated := agg.estimated / agg.count
		actual := agg.actual / agg.count
		if estimated <= 0 {
			estimated = 1
		}
		if actual <= 0 {
			actual = estimated
		}
		multipliers[subject] = clampMultiplier(actual / estimated)
	}
	return multipliers, nil
}

func clampMultiplier(m float64) float64 {
	if m < minMultiplier {
		return minMultiplier
	}
	if m > maxMultiplier {
		return maxMultiplier
	}
	return m
}

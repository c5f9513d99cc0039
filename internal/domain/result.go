package domain

import (
	"fmt"
	"math"
	"time"
)

type ScoringMethod string

const (
	ScoringSubMetrics ScoringMethod = "sub_metrics"
	ScoringAggregate  ScoringMethod = "aggregate"
)

type ScoredQuestion struct {
	Question string
	Answer   string
	// Score is nil when the backend returned neither sub-scores nor marks for it.
	Score    *float64
	Feedback string
}

// Result is the normalized terminal record of an interview.
type Result struct {
	SessionID         string
	Role              string
	Company           string
	Mode              InterviewMode
	RoundsPlayed      int
	Passed            *bool
	Method            ScoringMethod
	Questions         []ScoredQuestion
	AverageScore      float64
	TotalScore        float64
	FitPercentage     int
	ImprovementNeeded *float64
	Roadmap           string
	Message           string
	Strengths         []string
	WeakAreas         []string
	CompletedAt       time.Time
}

// NormalizeResult turns a terminal outcome into a Result.
//
// With sub-scores present each question scores the mean of its four
// sub-scores and the average is the mean of those means; server aggregates
// are ignored. Without sub-scores the server aggregate is used as-is. The
// two paths never mix.
func NormalizeResult(session InterviewSession, terminal Terminal, completedAt time.Time) (Result, error) {
	result := Result{
		SessionID:         session.ID,
		Role:              session.Role,
		Company:           session.Company,
		Mode:              session.Mode,
		RoundsPlayed:      session.RoundNumber(),
		Passed:            terminal.Passed,
		ImprovementNeeded: terminal.ImprovementNeeded,
		Roadmap:           terminal.Roadmap,
		Message:           terminal.Message,
		Strengths:         append([]string(nil), terminal.Strengths...),
		WeakAreas:         append([]string(nil), terminal.WeakAreas...),
		CompletedAt:       completedAt,
	}

	switch {
	case len(terminal.Scores) > 0:
		if err := scoreFromSubMetrics(&result, session, terminal.Scores); err != nil {
			return Result{}, err
		}
	case terminal.AverageScore != nil || hasMarks(terminal.Feedback):
		scoreFromAggregate(&result, session, terminal)
	default:
		return Result{}, fmt.Errorf("%w: terminal outcome carries no scores", ErrMalformedOutcome)
	}

	if terminal.FitPercentage != nil {
		result.FitPercentage = clampPercent(*terminal.FitPercentage)
	} else {
		result.FitPercentage = clampPercent(int(result.AverageScore * 10))
	}

	return result, nil
}

func scoreFromSubMetrics(result *Result, session InterviewSession, scores []QuestionScore) error {
	result.Method = ScoringSubMetrics

	var total float64
	for i, score := range scores {
		if !score.inRange() {
			return fmt.Errorf("%w: sub-score for question %d outside 0-10", ErrMalformedOutcome, i+1)
		}
		mean := score.Mean()
		total += mean
		result.Questions = append(result.Questions, ScoredQuestion{
			Question: at(session.Questions, i),
			Answer:   at(session.Answers, i),
			Score:    &mean,
			Feedback: score.Feedback,
		})
	}

	result.TotalScore = total
	result.AverageScore = total / float64(len(scores))
	return nil
}

func scoreFromAggregate(result *Result, session InterviewSession, terminal Terminal) {
	result.Method = ScoringAggregate

	var marksSum float64
	var marksCount int
	count := max(len(session.Questions), len(terminal.Feedback))
	for i := 0; i < count; i++ {
		question := ScoredQuestion{
			Question: at(session.Questions, i),
			Answer:   at(session.Answers, i),
		}
		if i < len(terminal.Feedback) {
			fb := terminal.Feedback[i]
			question.Feedback = fb.Feedback
			if fb.Marks != nil {
				marks := *fb.Marks
				question.Score = &marks
				marksSum += marks
				marksCount++
			}
		}
		result.Questions = append(result.Questions, question)
	}

	switch {
	case terminal.AverageScore != nil:
		result.AverageScore = *terminal.AverageScore
	case marksCount > 0:
		result.AverageScore = marksSum / float64(marksCount)
	}

	switch {
	case terminal.TotalScore != nil:
		result.TotalScore = *terminal.TotalScore
	case marksCount > 0:
		result.TotalScore = marksSum
	}
}

func hasMarks(feedback []QuestionFeedback) bool {
	for _, fb := range feedback {
		if fb.Marks != nil {
			return true
		}
	}

	return false
}

func at(values []string, i int) string {
	if i < 0 || i >= len(values) {
		return ""
	}

	return values[i]
}

func clampPercent(v int) int {
	return min(max(v, 0), 100)
}

// RoundScore rounds a score to one decimal for display.
func RoundScore(v float64) float64 {
	return math.Round(v*10) / 10
}

package domain

// RoundOutcome is either a Continuation or a Terminal, never both.
type RoundOutcome interface {
	roundOutcome()
}

type Continuation struct {
	NextQuestions        []string
	NextRoundIndex       int
	NextRoundName        string
	NextRoundDescription string
	Message              string
	// Completed round details, informational only.
	CompletedRound       RoundSummary
}

type Terminal struct {
	Passed            *bool
	Scores            []QuestionScore
	Feedback          []QuestionFeedback
	Roadmap           string
	TotalScore        *float64
	AverageScore      *float64
	FitPercentage     *int
	Message           string
	Strengths         []string
	WeakAreas         []string
	ImprovementNeeded *float64
	CompletedRound    RoundSummary
}

func (Continuation) roundOutcome() {}
func (Terminal) roundOutcome()     {}

type RoundSummary struct {
	Number       int
	Name         string
	Passed       bool
	AverageScore float64
	Summary      string
}

// QuestionScore carries the four 0-10 sub-scores for one answer.
type QuestionScore struct {
	Correctness float64
	Clarity     float64
	Structure   float64
	Depth       float64
	Feedback    string
}

func (q QuestionScore) Mean() float64 {
	return (q.Correctness + q.Clarity + q.Structure + q.Depth) / 4
}

func (q QuestionScore) inRange() bool {
	for _, v := range []float64{q.Correctness, q.Clarity, q.Structure, q.Depth} {
		if v < 0 || v > 10 {
			return false
		}
	}

	return true
}

type QuestionFeedback struct {
	Marks    *float64
	Feedback string
}

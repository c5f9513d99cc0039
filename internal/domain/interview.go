package domain

import (
	"fmt"
	"strings"
)

type InterviewMode string

const (
	InterviewModeShort    InterviewMode = "short"
	InterviewModeDetailed InterviewMode = "detailed"
)

func ParseInterviewMode(raw string) (InterviewMode, error) {
	switch InterviewMode(strings.ToLower(strings.TrimSpace(raw))) {
	case InterviewModeShort, "":
		return InterviewModeShort, nil
	case InterviewModeDetailed:
		return InterviewModeDetailed, nil
	default:
		return "", fmt.Errorf("unsupported interview mode %q", raw)
	}
}

type InterviewSession struct {
	ID          string
	Role        string
	Company     string
	Mode        InterviewMode
	RoundIndex  int
	RoundName   string
	TotalRounds int
	Description string
	Questions   []string
	Answers     []string
}

// RoundNumber is the 1-based round number the backend expects.
func (s InterviewSession) RoundNumber() int {
	return s.RoundIndex + 1
}

// NormalizeAnswers truncates or pads answers to the question count.
func (s *InterviewSession) NormalizeAnswers() {
	switch {
	case len(s.Answers) > len(s.Questions):
		s.Answers = s.Answers[:len(s.Questions)]
	case len(s.Answers) < len(s.Questions):
		padded := make([]string, len(s.Questions))
		copy(padded, s.Answers)
		s.Answers = padded
	}
}

func (s *InterviewSession) SetAnswer(index int, text string) error {
	s.NormalizeAnswers()
	if index < 0 || index >= len(s.Questions) {
		return fmt.Errorf("%w: %d (round has %d questions)", ErrInvalidQuestionIndex, index+1, len(s.Questions))
	}

	s.Answers[index] = text
	return nil
}

// Unanswered lists the indexes whose answers are blank after trimming.
func (s InterviewSession) Unanswered() []int {
	var missing []int
	for i := range s.Questions {
		if i >= len(s.Answers) || strings.TrimSpace(s.Answers[i]) == "" {
			missing = append(missing, i)
		}
	}

	return missing
}

func (s InterviewSession) ValidateAnswers() error {
	if len(s.Questions) == 0 {
		return &ValidationError{Field: "questions", Message: "round has no questions"}
	}
	if missing := s.Unanswered(); len(missing) > 0 {
		return &ValidationError{Field: "answers", Indexes: missing, Message: "all questions must be answered"}
	}

	return nil
}

// ReplaceRound swaps in the next round wholesale; answers reset to empty.
func (s *InterviewSession) ReplaceRound(next Continuation) {
	s.RoundIndex = next.NextRoundIndex
	s.RoundName = next.NextRoundName
	s.Description = next.NextRoundDescription
	s.Questions = append([]string(nil), next.NextQuestions...)
	s.Answers = make([]string, len(s.Questions))
}

func (s InterviewSession) Clone() InterviewSession {
	cloned := s
	cloned.Questions = append([]string(nil), s.Questions...)
	cloned.Answers = append([]string(nil), s.Answers...)
	return cloned
}

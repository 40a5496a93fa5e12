package challenges

import (
	"fmt"
	"strconv"
	"strings"
)

// Session walks a player through a puzzle one question at a time. A wrong
// answer keeps the player on the same question.
type Session struct {
	puzzle   Puzzle
	index    int
	mistakes int
}

// NewSession starts a session at the first question.
func NewSession(p Puzzle) *Session {
	return &Session{puzzle: p}
}

// Puzzle returns the puzzle being played.
func (s *Session) Puzzle() Puzzle { return s.puzzle }

// Current returns the question awaiting an answer. ok is false once the
// puzzle is solved.
func (s *Session) Current() (q Question, ok bool) {
	if s.Done() {
		return Question{}, false
	}
	return s.puzzle.Questions[s.index], true
}

// Position returns the 1-based number of the current question and the
// question count.
func (s *Session) Position() (n, total int) {
	return min(s.index+1, len(s.puzzle.Questions)), len(s.puzzle.Questions)
}

// Mistakes returns how many wrong answers were submitted.
func (s *Session) Mistakes() int { return s.mistakes }

// Done reports whether every question has been answered correctly.
func (s *Session) Done() bool { return s.index >= len(s.puzzle.Questions) }

// Submit checks answers against the current question and advances on a
// correct answer.
func (s *Session) Submit(answers []int) (correct bool) {
	q, ok := s.Current()
	if !ok {
		return false
	}
	if !q.Check(answers) {
		s.mistakes++
		return false
	}
	s.index++
	return true
}

// SubmitText parses free-form input and submits it. A wrong number of
// answers is reported as an error and does not count as a mistake.
func (s *Session) SubmitText(input string) (bool, error) {
	q, ok := s.Current()
	if !ok {
		return false, fmt.Errorf("puzzle already solved")
	}
	answers, err := ParseAnswers(input)
	if err != nil {
		return false, fmt.Errorf("answers must be whole numbers: %w", err)
	}
	if len(answers) != q.Blanks() {
		return false, fmt.Errorf("expected %d number(s), got %d", q.Blanks(), len(answers))
	}
	return s.Submit(answers), nil
}

// Describe returns the question as plain text for line-based play.
func (q Question) Describe() string {
	var b strings.Builder
	b.WriteString(q.Prompt)
	switch q.Kind {
	case KindFill, KindOrder:
		b.WriteString("\n  ")
		b.WriteString(q.Render())
	case KindChoice:
		opts := make([]string, len(q.Options))
		for i, o := range q.Options {
			opts[i] = strconv.Itoa(o)
		}
		b.WriteString("\n  Options: ")
		b.WriteString(strings.Join(opts, ", "))
	}
	return b.String()
}

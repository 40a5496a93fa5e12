package challenges

import (
	"slices"
	"strconv"
	"strings"
)

// Kind describes how a question is answered.
type Kind int

const (
	// KindFill asks for the value of every blank cell, left to right.
	KindFill Kind = iota
	// KindOrder asks for all cell values rearranged into order.
	KindOrder
	// KindChoice asks for one of Options.
	KindChoice
)

// Cell is one slot of a displayed number sequence.
type Cell struct {
	Value int
	Blank bool
}

// Question is one step of a puzzle.
type Question struct {
	Kind    Kind
	Prompt  string
	Cells   []Cell
	Options []int
	// Answer holds the expected answers in input order.
	Answer []int
}

// Blanks returns how many answers the question expects.
func (q Question) Blanks() int { return len(q.Answer) }

// Check reports whether answers solve the question.
func (q Question) Check(answers []int) bool {
	return slices.Equal(q.Answer, answers)
}

// Render returns the cells as text with blanks shown as "__".
func (q Question) Render() string {
	parts := make([]string, len(q.Cells))
	for i, c := range q.Cells {
		if c.Blank {
			parts[i] = "__"
		} else {
			parts[i] = strconv.Itoa(c.Value)
		}
	}
	return strings.Join(parts, "  ")
}

// Puzzle is a generated instance of a challenge. It is solved when every
// question is answered correctly, in order.
type Puzzle struct {
	Title     string
	Questions []Question
}

// ParseAnswers splits free-form input ("3, 4 5") into integers.
func ParseAnswers(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == ';'
	})
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

package challenges

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sort"
)

const (
	topicNumbersAndCounting = "numbers-and-counting"
	topicForwardsBackwards  = "counting-forwards-and-backwards"
)

// DefaultRegistry returns a registry holding every built-in challenge.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for key, h := range year2Math() {
		if err := r.Register(key, h); err != nil {
			panic(err)
		}
	}
	return r
}

func year2Math() map[Key]Handler {
	key := func(topic string, n int) Key {
		return Key{Subject: "math", Year: 2, TopicID: topic, ChallengeID: fmt.Sprintf("challenge-%d", n)}
	}
	return map[Key]Handler{
		key(topicNumbersAndCounting, 1): HandlerFunc{"Order Numbers: Lowest to Highest", orderNumbers(true)},
		key(topicNumbersAndCounting, 2): HandlerFunc{"Order Numbers: Greatest to Lowest", orderNumbers(false)},
		key(topicNumbersAndCounting, 3): HandlerFunc{"Missing Numbers in a Run", missingInRun},
		key(topicNumbersAndCounting, 4): HandlerFunc{"Missing Numbers in Steps", missingInSteps},
		key(topicForwardsBackwards, 1):  HandlerFunc{"Counting Backwards Practice", countBack},
		key(topicForwardsBackwards, 2):  HandlerFunc{"More and Less Word Problems", wordProblems},
		key(topicForwardsBackwards, 3):  HandlerFunc{"Sequence Challenge", sequences(forwardSequences, 1)},
		key(topicForwardsBackwards, 4):  HandlerFunc{"Backward Counting Challenge", sequences(backwardSequences, -1)},
	}
}

// orderNumbers asks for five numbers from 1-100 sorted ascending or
// descending.
func orderNumbers(ascending bool) func(*rand.Rand) Puzzle {
	return func(rng *rand.Rand) Puzzle {
		nums := make([]int, 5)
		for i := range nums {
			nums[i] = rng.IntN(100) + 1
		}
		want := slices.Clone(nums)
		sort.Ints(want)
		prompt := "Arrange the numbers from lowest to highest"
		if !ascending {
			slices.Reverse(want)
			prompt = "Arrange the numbers from greatest to lowest"
		}

		cells := make([]Cell, len(nums))
		for i, n := range nums {
			cells[i] = Cell{Value: n}
		}
		return Puzzle{
			Title:     prompt,
			Questions: []Question{{Kind: KindOrder, Prompt: prompt, Cells: cells, Answer: want}},
		}
	}
}

// blankSequence turns values into cells with `missing` distinct blanks.
func blankSequence(rng *rand.Rand, values []int, missing int) Question {
	idx := rng.Perm(len(values))[:missing]
	sort.Ints(idx)

	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Cell{Value: v}
	}
	answer := make([]int, 0, missing)
	for _, i := range idx {
		cells[i].Blank = true
		answer = append(answer, values[i])
	}
	return Question{Kind: KindFill, Prompt: "Fill in the missing numbers", Cells: cells, Answer: answer}
}

func arithmetic(start, step, length int) []int {
	out := make([]int, length)
	for i := range out {
		out[i] = start + i*step
	}
	return out
}

// missingInRun hides 3-5 numbers in ten consecutive numbers starting 0-99.
func missingInRun(rng *rand.Rand) Puzzle {
	q := blankSequence(rng, arithmetic(rng.IntN(100), 1, 10), 3+rng.IntN(3))
	q.Prompt = "Fill in the missing numbers in the sequence"
	return Puzzle{Title: "Missing Numbers in a Run", Questions: []Question{q}}
}

// missingInSteps hides 3-5 numbers in a step-2/5/10 sequence starting 1-50.
func missingInSteps(rng *rand.Rand) Puzzle {
	step := []int{2, 5, 10}[rng.IntN(3)]
	q := blankSequence(rng, arithmetic(rng.IntN(50)+1, step, 10), 3+rng.IntN(3))
	return Puzzle{Title: "Missing Numbers in Steps", Questions: []Question{q}}
}

var countBackAmounts = []int{6, 9, 10, 13, 16, 11}

// countBack asks for the result of counting back from one start number.
func countBack(rng *rand.Rand) Puzzle {
	start := 20 + rng.IntN(11)
	p := Puzzle{Title: "Counting Backwards Practice"}
	for _, n := range countBackAmounts {
		if n > start {
			continue
		}
		p.Questions = append(p.Questions, Question{
			Kind:   KindFill,
			Prompt: fmt.Sprintf("Start at %d and count back %d", start, n),
			Cells:  []Cell{{Blank: true}},
			Answer: []int{start - n},
		})
	}
	return p
}

type wordProblem struct {
	prompt  string
	answer  int
	options []int
}

var wordProblemBank = []wordProblem{
	{"26 fish are swimming in a pond. Five fish swim away and hide in weeds. How many fish are not hiding in weeds?", 21, []int{21, 19, 23}},
	{"18 birds are sitting in a tree. 6 birds fly away. How many birds are left?", 12, []int{13, 12, 10}},
	{"You have 14 sweets. Your friend gives you 5 more. How many sweets do you have now?", 19, []int{17, 19, 20}},
	{"There are 30 ducks in a lake. 8 swim away. How many ducks remain?", 22, []int{22, 24, 18}},
	{"You count 11 steps going upstairs. You go back down 4 steps. What step number are you on?", 7, []int{6, 7, 8}},
	{"A farmer has 40 apples. He sells 15. How many apples does he have left?", 25, []int{28, 25, 23}},
	{"There are 22 frogs on a log. 7 hop away. How many remain?", 15, []int{15, 14, 17}},
	{"You count forward 9 from 12. What number do you reach?", 21, []int{20, 21, 22}},
	{"You count backward 6 from 19. What number do you reach?", 13, []int{14, 13, 15}},
	{"A class has 35 books. They buy 12 more. How many books now?", 47, []int{45, 47, 49}},
}

// wordProblems asks the ten more/less questions in order.
func wordProblems(_ *rand.Rand) Puzzle {
	p := Puzzle{Title: "More and Less Word Problems"}
	for _, wp := range wordProblemBank {
		p.Questions = append(p.Questions, Question{
			Kind:    KindChoice,
			Prompt:  wp.prompt,
			Options: slices.Clone(wp.options),
			Answer:  []int{wp.answer},
		})
	}
	return p
}

type sequenceSpec struct{ start, step, length int }

var forwardSequences = []sequenceSpec{
	{1, 1, 10}, {2, 2, 10}, {3, 3, 8}, {4, 4, 7}, {5, 5, 6},
	{10, 10, 7}, {7, 2, 9}, {15, 3, 8}, {20, 5, 7}, {50, 10, 6},
}

var backwardSequences = []sequenceSpec{
	{20, 1, 10}, {30, 2, 10}, {25, 3, 8}, {40, 4, 7}, {50, 5, 6},
	{70, 10, 7}, {15, 2, 9}, {45, 3, 8}, {60, 5, 7}, {100, 10, 6},
}

// sequences builds one question per sequence with three blanks each. dir is 1
// for counting on and -1 for counting back.
func sequences(specs []sequenceSpec, dir int) func(*rand.Rand) Puzzle {
	return func(rng *rand.Rand) Puzzle {
		p := Puzzle{Title: "Sequence Challenge"}
		if dir < 0 {
			p.Title = "Backward Counting Challenge"
		}
		for i, s := range specs {
			q := blankSequence(rng, arithmetic(s.start, dir*s.step, s.length), 3)
			q.Prompt = fmt.Sprintf("%d / %d: Fill in the missing numbers", i+1, len(specs))
			p.Questions = append(p.Questions, q)
		}
		return p
	}
}

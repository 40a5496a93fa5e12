package progress

import "github.com/abhisek/kidquest/internal/curriculum"

// NodeState is a challenge's position in its lifecycle.
type NodeState int

const (
	StateLocked NodeState = iota
	StateUnlocked
	StateCompleted
)

// String returns the lowercase name of the state.
func (s NodeState) String() string {
	switch s {
	case StateLocked:
		return "locked"
	case StateUnlocked:
		return "unlocked"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Icon returns the display icon for the state.
func (s NodeState) Icon() string {
	switch s {
	case StateLocked:
		return "🔒"
	case StateUnlocked:
		return "▶"
	case StateCompleted:
		return "✓"
	default:
		return "?"
	}
}

// ChallengeStatus is the derived state of one challenge.
type ChallengeStatus struct {
	Challenge curriculum.Challenge
	State     NodeState
}

// Locked reports whether the challenge cannot be played.
func (c ChallengeStatus) Locked() bool { return c.State == StateLocked }

// TopicStatus is the derived state of one topic.
type TopicStatus struct {
	Topic      curriculum.Topic
	Locked     bool
	Complete   bool
	Done       int
	Challenges []ChallengeStatus
}

// CategoryStatus is the derived state of one category.
type CategoryStatus struct {
	Category curriculum.Category
	Locked   bool
	Complete bool
	Topics   []TopicStatus
}

// Board is the lock/completion view of a whole curriculum. It is derived
// from a record on demand and never stored.
type Board struct {
	Subject    string
	Year       int
	FirstTime  bool
	Categories []CategoryStatus
}

// BuildBoard derives the board for a curriculum from a record.
func BuildBoard(c *curriculum.Curriculum, r Record) Board {
	b := Board{
		Subject:   c.Subject(),
		Year:      c.Year(),
		FirstTime: IsFirstTimeUser(r),
	}

	for ci, cat := range c.Categories() {
		cs := CategoryStatus{
			Category: cat,
			Locked:   CategoryLocked(r, c, ci),
			Complete: IsCategoryComplete(r, cat),
		}
		for ti, topic := range cat.Topics {
			ts := TopicStatus{
				Topic:    topic,
				Locked:   TopicLocked(r, c, ci, ti),
				Complete: IsTopicComplete(r, cat.ID, topic),
				Done:     len(r.Completed(cat.ID, topic.ID)),
			}
			for chi, ch := range topic.Challenges {
				state := StateUnlocked
				switch {
				case ChallengeLocked(r, c, ci, ti, chi):
					state = StateLocked
				case r.HasCompleted(cat.ID, topic.ID, ch.ID):
					state = StateCompleted
				}
				ts.Challenges = append(ts.Challenges, ChallengeStatus{Challenge: ch, State: state})
			}
			cs.Topics = append(cs.Topics, ts)
		}
		b.Categories = append(b.Categories, cs)
	}
	return b
}

// Counts returns how many challenges are completed and how many exist.
func (b Board) Counts() (completed, total int) {
	for _, cat := range b.Categories {
		for _, topic := range cat.Topics {
			for _, ch := range topic.Challenges {
				total++
				if ch.State == StateCompleted {
					completed++
				}
			}
		}
	}
	return completed, total
}

// Next returns the first unlocked challenge that has not been completed.
func (b Board) Next() (categoryID, topicID, challengeID string, ok bool) {
	for _, cat := range b.Categories {
		for _, topic := range cat.Topics {
			for _, ch := range topic.Challenges {
				if ch.State == StateUnlocked {
					return cat.Category.ID, topic.Topic.ID, ch.Challenge.ID, true
				}
			}
		}
	}
	return "", "", "", false
}

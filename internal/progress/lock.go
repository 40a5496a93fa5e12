package progress

import "github.com/abhisek/kidquest/internal/curriculum"

// IsFirstTimeUser reports whether the learner has no recorded progress.
func IsFirstTimeUser(r Record) bool {
	return len(r) == 0
}

// IsTopicComplete reports whether every challenge of the topic has been
// completed. There is no partial credit.
func IsTopicComplete(r Record, categoryID string, topic curriculum.Topic) bool {
	return len(r.Completed(categoryID, topic.ID)) == len(topic.Challenges)
}

// IsCategoryComplete reports whether every topic in the category is complete.
func IsCategoryComplete(r Record, cat curriculum.Category) bool {
	for _, topic := range cat.Topics {
		if !IsTopicComplete(r, cat.ID, topic) {
			return false
		}
	}
	return true
}

// CategoryLocked reports whether the category at catIdx is locked. A
// category opens once the one before it is complete. Out-of-range indices
// are locked.
func CategoryLocked(r Record, c *curriculum.Curriculum, catIdx int) bool {
	if catIdx < 0 || catIdx >= c.NumCategories() {
		return true
	}
	if catIdx == 0 {
		return false
	}
	if IsFirstTimeUser(r) {
		return true
	}
	prev, _ := c.CategoryAt(catIdx - 1)
	return !IsCategoryComplete(r, prev)
}

// TopicLocked reports whether a topic is locked: its category is locked, or
// the topic before it in the same category is incomplete.
func TopicLocked(r Record, c *curriculum.Curriculum, catIdx, topicIdx int) bool {
	if CategoryLocked(r, c, catIdx) {
		return true
	}
	cat, _ := c.CategoryAt(catIdx)
	if topicIdx < 0 || topicIdx >= len(cat.Topics) {
		return true
	}
	if topicIdx == 0 {
		return false
	}
	if IsFirstTimeUser(r) {
		return true
	}
	return !IsTopicComplete(r, cat.ID, cat.Topics[topicIdx-1])
}

// ChallengeLocked reports whether a challenge is locked. Within an open topic
// a challenge is playable when it has already been completed or when it is
// the next one in sequence; skipping ahead is not allowed.
func ChallengeLocked(r Record, c *curriculum.Curriculum, catIdx, topicIdx, chIdx int) bool {
	if TopicLocked(r, c, catIdx, topicIdx) {
		return true
	}
	cat, _ := c.CategoryAt(catIdx)
	topic := cat.Topics[topicIdx]
	if chIdx < 0 || chIdx >= len(topic.Challenges) {
		return true
	}

	completed := r.Completed(cat.ID, topic.ID)
	if len(completed) == 0 {
		return chIdx != 0
	}
	for _, id := range completed {
		if id == topic.Challenges[chIdx].ID {
			return false
		}
	}
	return chIdx != len(completed)
}

// ComputeLock resolves the lock state of any node. Pass -1 for topicIdx or
// chIdx to ask about a category or topic instead of a challenge.
func ComputeLock(r Record, c *curriculum.Curriculum, catIdx, topicIdx, chIdx int) bool {
	switch {
	case topicIdx < 0:
		return CategoryLocked(r, c, catIdx)
	case chIdx < 0:
		return TopicLocked(r, c, catIdx, topicIdx)
	default:
		return ChallengeLocked(r, c, catIdx, topicIdx, chIdx)
	}
}

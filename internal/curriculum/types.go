package curriculum

// Challenge is a single playable exercise inside a topic.
type Challenge struct {
	ID    string
	Title string
}

// Topic groups an ordered list of challenges.
type Topic struct {
	ID         string
	Name       string
	Challenges []Challenge
}

// Category groups an ordered list of topics.
type Category struct {
	ID     string
	Title  string
	Topics []Topic
}

// Curriculum is the static category → topic → challenge tree for one
// subject and school year. It is immutable once built; accessors return
// copies.
type Curriculum struct {
	subject    string
	year       int
	categories []Category
}

// Subject returns the subject slug (e.g. "math").
func (c *Curriculum) Subject() string { return c.subject }

// Year returns the school year.
func (c *Curriculum) Year() int { return c.year }

// Categories returns the categories in display order.
func (c *Curriculum) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = cloneCategory(cat)
	}
	return out
}

// NumCategories returns the number of categories.
func (c *Curriculum) NumCategories() int { return len(c.categories) }

// CategoryAt returns the category at index i.
func (c *Curriculum) CategoryAt(i int) (Category, bool) {
	if i < 0 || i >= len(c.categories) {
		return Category{}, false
	}
	return cloneCategory(c.categories[i]), true
}

// Category looks up a category by ID and returns it with its index.
func (c *Curriculum) Category(id string) (Category, int, bool) {
	for i, cat := range c.categories {
		if cat.ID == id {
			return cloneCategory(cat), i, true
		}
	}
	return Category{}, -1, false
}

// Topic looks up a topic by category and topic ID and returns it with its
// index inside the category.
func (c *Curriculum) Topic(categoryID, topicID string) (Topic, int, bool) {
	cat, _, ok := c.Category(categoryID)
	if !ok {
		return Topic{}, -1, false
	}
	for i, t := range cat.Topics {
		if t.ID == topicID {
			return t, i, true
		}
	}
	return Topic{}, -1, false
}

// Challenge looks up a challenge and returns it with its index inside the
// topic.
func (c *Curriculum) Challenge(categoryID, topicID, challengeID string) (Challenge, int, bool) {
	t, _, ok := c.Topic(categoryID, topicID)
	if !ok {
		return Challenge{}, -1, false
	}
	for i, ch := range t.Challenges {
		if ch.ID == challengeID {
			return ch, i, true
		}
	}
	return Challenge{}, -1, false
}

// Locate resolves category, topic and challenge IDs into their indices.
func (c *Curriculum) Locate(categoryID, topicID, challengeID string) (catIdx, topicIdx, chIdx int, ok bool) {
	_, catIdx, ok = c.Category(categoryID)
	if !ok {
		return -1, -1, -1, false
	}
	_, topicIdx, ok = c.Topic(categoryID, topicID)
	if !ok {
		return -1, -1, -1, false
	}
	_, chIdx, ok = c.Challenge(categoryID, topicID, challengeID)
	if !ok {
		return -1, -1, -1, false
	}
	return catIdx, topicIdx, chIdx, true
}

// TotalChallenges counts every challenge in the tree.
func (c *Curriculum) TotalChallenges() int {
	n := 0
	for _, cat := range c.categories {
		for _, t := range cat.Topics {
			n += len(t.Challenges)
		}
	}
	return n
}

func cloneCategory(cat Category) Category {
	out := Category{ID: cat.ID, Title: cat.Title, Topics: make([]Topic, len(cat.Topics))}
	for i, t := range cat.Topics {
		out.Topics[i] = Topic{
			ID:         t.ID,
			Name:       t.Name,
			Challenges: append([]Challenge(nil), t.Challenges...),
		}
	}
	return out
}

package curriculum

import "fmt"

// DefaultChallengesPerTopic is how many challenges a topic gets when its
// source document does not list any.
const DefaultChallengesPerTopic = 4

// RawCategory is the author-facing shape of a category before IDs are
// derived.
type RawCategory struct {
	Title  string     `yaml:"title"`
	Topics []RawTopic `yaml:"topics"`
}

// RawTopic is the author-facing shape of a topic.
type RawTopic struct {
	Name       string   `yaml:"name"`
	Challenges []string `yaml:"challenges,omitempty"`
}

// Build derives every ID with Slug, fills default challenges and validates
// the resulting tree.
func Build(subject string, year int, raw []RawCategory) (*Curriculum, error) {
	c := &Curriculum{
		subject:    Slug(subject),
		year:       year,
		categories: make([]Category, 0, len(raw)),
	}

	for _, rc := range raw {
		cat := Category{
			ID:     Slug(rc.Title),
			Title:  rc.Title,
			Topics: make([]Topic, 0, len(rc.Topics)),
		}
		for _, rt := range rc.Topics {
			titles := rt.Challenges
			if len(titles) == 0 {
				titles = defaultChallengeTitles()
			}
			topic := Topic{ID: Slug(rt.Name), Name: rt.Name}
			for _, title := range titles {
				topic.Challenges = append(topic.Challenges, Challenge{ID: Slug(title), Title: title})
			}
			cat.Topics = append(cat.Topics, topic)
		}
		c.categories = append(c.categories, cat)
	}

	if err := Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

// MustBuild is Build for package-level data that is known to be valid.
func MustBuild(subject string, year int, raw []RawCategory) *Curriculum {
	c, err := Build(subject, year, raw)
	if err != nil {
		panic(err)
	}
	return c
}

func defaultChallengeTitles() []string {
	titles := make([]string, DefaultChallengesPerTopic)
	for i := range titles {
		titles[i] = fmt.Sprintf("Challenge %d", i+1)
	}
	return titles
}

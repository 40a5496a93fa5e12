package curriculum

import (
	"fmt"
	"strings"
)

// Validate performs all structural checks on a curriculum tree.
// Returns a combined error describing all problems found, or nil if valid.
func Validate(c *Curriculum) error {
	var errs []string

	if c.subject == "" {
		errs = append(errs, "subject is empty")
	}
	if c.year <= 0 {
		errs = append(errs, fmt.Sprintf("year must be > 0, got %d", c.year))
	}
	if len(c.categories) == 0 {
		errs = append(errs, "no categories defined")
	}

	catIDs := make(map[string]bool, len(c.categories))
	for ci, cat := range c.categories {
		if cat.ID == "" {
			errs = append(errs, fmt.Sprintf("category %d (%q) has an empty ID", ci, cat.Title))
		} else if catIDs[cat.ID] {
			errs = append(errs, fmt.Sprintf("duplicate category ID: %q", cat.ID))
		}
		catIDs[cat.ID] = true

		if len(cat.Topics) == 0 {
			errs = append(errs, fmt.Sprintf("category %q has no topics", cat.ID))
		}

		topicIDs := make(map[string]bool, len(cat.Topics))
		for ti, topic := range cat.Topics {
			if topic.ID == "" {
				errs = append(errs, fmt.Sprintf("category %q topic %d (%q) has an empty ID", cat.ID, ti, topic.Name))
			} else if topicIDs[topic.ID] {
				errs = append(errs, fmt.Sprintf("category %q: duplicate topic ID %q", cat.ID, topic.ID))
			}
			topicIDs[topic.ID] = true

			if len(topic.Challenges) == 0 {
				errs = append(errs, fmt.Sprintf("topic %q has no challenges", topic.ID))
			}

			chIDs := make(map[string]bool, len(topic.Challenges))
			for _, ch := range topic.Challenges {
				if ch.ID == "" {
					errs = append(errs, fmt.Sprintf("topic %q has a challenge with an empty ID", topic.ID))
					continue
				}
				if chIDs[ch.ID] {
					errs = append(errs, fmt.Sprintf("topic %q: duplicate challenge ID %q", topic.ID, ch.ID))
				}
				chIDs[ch.ID] = true
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("curriculum validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

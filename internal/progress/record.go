// Package progress computes curriculum lock state from a learner's
// completion record and persists completions through a kv.Store.
package progress

import (
	"encoding/json"
	"fmt"
	"slices"
)

// TopicProgress lists the challenges finished inside one topic, in the order
// they were completed. It never contains duplicates.
type TopicProgress struct {
	CompletedChallenges []string `json:"completedChallenges"`
}

// CategoryProgress holds per-topic progress for one category.
type CategoryProgress struct {
	Topics map[string]TopicProgress `json:"topics"`
}

// Record is the persisted completion document, keyed by category ID.
type Record map[string]CategoryProgress

// StorageKey returns the key a subject/year record is stored under.
func StorageKey(subject string, year int) string {
	return fmt.Sprintf("%sProgress_year%d", subject, year)
}

// DataShapeError reports a stored document that is not a valid record.
type DataShapeError struct {
	Err error
}

func (e *DataShapeError) Error() string {
	return fmt.Sprintf("malformed progress record: %v", e.Err)
}

func (e *DataShapeError) Unwrap() error {
	return e.Err
}

// ParseRecord decodes a stored document. Empty input and JSON null yield an
// empty record. Anything that fails the record schema returns an empty
// record together with a *DataShapeError.
func ParseRecord(data []byte) (Record, error) {
	if len(data) == 0 {
		return Record{}, nil
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return Record{}, &DataShapeError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if parsed == nil {
		return Record{}, nil
	}
	if err := validateShape(parsed); err != nil {
		return Record{}, &DataShapeError{Err: err}
	}

	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, &DataShapeError{Err: err}
	}
	return r.normalized(), nil
}

// Decode is ParseRecord with the error dropped: malformed data degrades to
// an empty record.
func Decode(data []byte) Record {
	r, _ := ParseRecord(data)
	return r
}

// Encode serializes a record for storage.
func Encode(r Record) ([]byte, error) {
	if r == nil {
		r = Record{}
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode progress record: %w", err)
	}
	return data, nil
}

// Completed returns the completed challenge IDs of a topic. The returned
// slice must not be modified.
func (r Record) Completed(categoryID, topicID string) []string {
	return r[categoryID].Topics[topicID].CompletedChallenges
}

// HasCompleted reports whether a challenge is in the record.
func (r Record) HasCompleted(categoryID, topicID, challengeID string) bool {
	return slices.Contains(r.Completed(categoryID, topicID), challengeID)
}

// normalized collapses duplicate challenge IDs keeping first occurrences and
// fills nil topic maps.
func (r Record) normalized() Record {
	out := make(Record, len(r))
	for catID, cp := range r {
		topics := make(map[string]TopicProgress, len(cp.Topics))
		for topicID, tp := range cp.Topics {
			seen := make(map[string]bool, len(tp.CompletedChallenges))
			ids := make([]string, 0, len(tp.CompletedChallenges))
			for _, id := range tp.CompletedChallenges {
				if seen[id] {
					continue
				}
				seen[id] = true
				ids = append(ids, id)
			}
			topics[topicID] = TopicProgress{CompletedChallenges: ids}
		}
		out[catID] = CategoryProgress{Topics: topics}
	}
	return out
}

// RecordCompletion returns a record with challengeID appended to the topic's
// completed list. The input record is never modified. When the challenge is
// already present the same record is returned with added == false.
func RecordCompletion(r Record, categoryID, topicID, challengeID string) (Record, bool) {
	if r.HasCompleted(categoryID, topicID, challengeID) {
		return r, false
	}

	out := make(Record, len(r)+1)
	for k, v := range r {
		out[k] = v
	}

	old := r[categoryID]
	topics := make(map[string]TopicProgress, len(old.Topics)+1)
	for k, v := range old.Topics {
		topics[k] = v
	}

	prev := old.Topics[topicID].CompletedChallenges
	ids := make([]string, len(prev), len(prev)+1)
	copy(ids, prev)
	topics[topicID] = TopicProgress{CompletedChallenges: append(ids, challengeID)}

	out[categoryID] = CategoryProgress{Topics: topics}
	return out, true
}

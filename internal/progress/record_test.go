package progress

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageKey(t *testing.T) {
	assert.Equal(t, "mathProgress_year2", StorageKey("math", 2))
	assert.Equal(t, "geographyProgress_year4", StorageKey("geography", 4))
}

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantEmpty bool
		wantErr   bool
	}{
		{"empty input", ``, true, false},
		{"json null", `null`, true, false},
		{"empty object", `{}`, true, false},
		{"valid", `{"a":{"topics":{"t":{"completedChallenges":["challenge-1"]}}}}`, false, false},
		{"category without topics", `{"a":{}}`, false, false},
		{"not json", `{"a":`, true, true},
		{"array root", `[1,2,3]`, true, true},
		{"topics wrong type", `{"a":{"topics":[]}}`, true, true},
		{"numeric challenge ids", `{"a":{"topics":{"t":{"completedChallenges":[1,2]}}}}`, true, true},
		{"empty challenge id", `{"a":{"topics":{"t":{"completedChallenges":[""]}}}}`, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRecord([]byte(tt.in))
			require.NotNil(t, r)
			assert.Equal(t, tt.wantEmpty, len(r) == 0)
			if tt.wantErr {
				var shapeErr *DataShapeError
				assert.True(t, errors.As(err, &shapeErr), "want *DataShapeError, got %v", err)
			} else {
				assert.NoError(t, err)
			}
			// Decode never fails.
			assert.NotNil(t, Decode([]byte(tt.in)))
		})
	}
}

func TestParseRecord_CollapsesDuplicates(t *testing.T) {
	r, err := ParseRecord([]byte(`{"a":{"topics":{"t":{"completedChallenges":["c2","c1","c2","c1","c3"]}}}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"c2", "c1", "c3"}, r.Completed("a", "t"))
}

func TestEncode_RoundTripLayout(t *testing.T) {
	r, _ := RecordCompletion(Record{}, "cat", "topic", "challenge-1")
	data, err := Encode(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"cat":{"topics":{"topic":{"completedChallenges":["challenge-1"]}}}}`, string(data))

	empty, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(empty))
}

func TestRecordCompletion_Idempotent(t *testing.T) {
	base := Record{}
	for _, ch := range []string{"c1", "c2", "c3"} {
		once, added := RecordCompletion(base, "cat", "topic", ch)
		require.True(t, added)

		twice, added := RecordCompletion(once, "cat", "topic", ch)
		assert.False(t, added)
		assert.Equal(t, once, twice)

		base = once
	}
	assert.Equal(t, []string{"c1", "c2", "c3"}, base.Completed("cat", "topic"))
}

func TestRecordCompletion_DoesNotMutateInput(t *testing.T) {
	orig, _ := RecordCompletion(Record{}, "cat", "topic", "c1")
	snapshot := append([]string(nil), orig.Completed("cat", "topic")...)

	next, _ := RecordCompletion(orig, "cat", "topic", "c2")
	_, _ = RecordCompletion(orig, "cat", "other", "c1")
	_, _ = RecordCompletion(orig, "other", "topic", "c1")

	assert.Equal(t, snapshot, orig.Completed("cat", "topic"))
	assert.Len(t, orig, 1)
	assert.Len(t, orig["cat"].Topics, 1)
	assert.Equal(t, []string{"c1", "c2"}, next.Completed("cat", "topic"))
}

func TestRecordCompletion_CreatesIntermediateEntries(t *testing.T) {
	r, added := RecordCompletion(nil, "cat", "topic", "c1")
	require.True(t, added)
	assert.True(t, r.HasCompleted("cat", "topic", "c1"))
	assert.False(t, r.HasCompleted("cat", "topic", "c2"))
	assert.False(t, r.HasCompleted("missing", "topic", "c1"))
}

package progress

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/kidquest/internal/curriculum"
	"github.com/abhisek/kidquest/internal/kv"
)

var (
	// ErrUnknownNode is returned when an ID does not exist in the curriculum.
	ErrUnknownNode = errors.New("unknown curriculum node")
	// ErrChallengeLocked is returned when completing a challenge that is not
	// yet playable.
	ErrChallengeLocked = errors.New("challenge is locked")
)

// CompletionResult describes what a completion changed.
type CompletionResult struct {
	CategoryID  string
	TopicID     string
	ChallengeID string

	// AlreadyCompleted is set when the challenge was replayed; the record is
	// unchanged.
	AlreadyCompleted  bool
	TopicCompleted    bool
	CategoryCompleted bool
}

// Service reads and updates one learner's completion record for a single
// curriculum.
type Service struct {
	store      kv.Store
	curriculum *curriculum.Curriculum
	key        string
	logger     *zap.Logger
}

// NewService creates a progress service storing its record under
// StorageKey(subject, year) of the curriculum.
func NewService(store kv.Store, c *curriculum.Curriculum, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:      store,
		curriculum: c,
		key:        StorageKey(c.Subject(), c.Year()),
		logger:     logger.Named("progress"),
	}
}

// Curriculum returns the curriculum the service gates.
func (s *Service) Curriculum() *curriculum.Curriculum { return s.curriculum }

// Key returns the storage key of the record.
func (s *Service) Key() string { return s.key }

// Record reads the current record from storage. Read failures and malformed
// documents degrade to an empty record.
func (s *Service) Record(ctx context.Context) Record {
	raw, ok, err := s.store.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn("reading progress failed, starting empty", zap.String("key", s.key), zap.Error(err))
		return Record{}
	}
	if !ok {
		return Record{}
	}
	r, err := ParseRecord([]byte(raw))
	if err != nil {
		s.logger.Warn("discarding malformed progress record", zap.String("key", s.key), zap.Error(err))
	}
	return r
}

// Board returns a freshly derived board.
func (s *Service) Board(ctx context.Context) Board {
	return BuildBoard(s.curriculum, s.Record(ctx))
}

// Locked reports whether a challenge is currently locked.
func (s *Service) Locked(ctx context.Context, categoryID, topicID, challengeID string) (bool, error) {
	ci, ti, chi, ok := s.curriculum.Locate(categoryID, topicID, challengeID)
	if !ok {
		return true, fmt.Errorf("%w: %s/%s/%s", ErrUnknownNode, categoryID, topicID, challengeID)
	}
	return ChallengeLocked(s.Record(ctx), s.curriculum, ci, ti, chi), nil
}

// Complete records a successful challenge submission. The whole record is
// read, updated and written back; concurrent writers are not coordinated.
func (s *Service) Complete(ctx context.Context, categoryID, topicID, challengeID string) (CompletionResult, error) {
	res := CompletionResult{CategoryID: categoryID, TopicID: topicID, ChallengeID: challengeID}

	ci, ti, chi, ok := s.curriculum.Locate(categoryID, topicID, challengeID)
	if !ok {
		return res, fmt.Errorf("%w: %s/%s/%s", ErrUnknownNode, categoryID, topicID, challengeID)
	}

	rec := s.Record(ctx)
	if ChallengeLocked(rec, s.curriculum, ci, ti, chi) {
		return res, fmt.Errorf("%w: %s/%s/%s", ErrChallengeLocked, categoryID, topicID, challengeID)
	}

	updated, added := RecordCompletion(rec, categoryID, topicID, challengeID)
	if !added {
		res.AlreadyCompleted = true
		return res, nil
	}

	data, err := Encode(updated)
	if err != nil {
		return res, err
	}
	if err := s.store.Set(ctx, s.key, string(data)); err != nil {
		return res, fmt.Errorf("save progress: %w", err)
	}

	cat, _ := s.curriculum.CategoryAt(ci)
	res.TopicCompleted = IsTopicComplete(updated, categoryID, cat.Topics[ti])
	res.CategoryCompleted = res.TopicCompleted && IsCategoryComplete(updated, cat)

	s.logger.Info("challenge completed",
		zap.String("category", categoryID),
		zap.String("topic", topicID),
		zap.String("challenge", challengeID),
		zap.Bool("topic_completed", res.TopicCompleted),
		zap.Bool("category_completed", res.CategoryCompleted),
	)
	return res, nil
}

// Reset deletes the stored record.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	s.logger.Info("progress reset", zap.String("key", s.key))
	return nil
}

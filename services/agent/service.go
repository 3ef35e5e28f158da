package agent

import (
	"context"
	"errors"
	"sync"
	"time"

	"slotbot/models"
	"slotbot/services/calendar"
	"slotbot/utils"

	"go.uber.org/zap"
)

// DefaultConversationID is used when the caller does not identify a
// conversation; all such requests share one session.
const DefaultConversationID = "default"

// Service processes one chat turn against a conversation's session and
// always produces a user-facing reply.
type Service interface {
	ProcessMessage(ctx context.Context, conversationID, message string) string
}

// DefaultService wires the extractor, the router, the scheduling handlers
// and the session store together.
type DefaultService struct {
	Extractor *Extractor
	Calendar  calendar.Service
	Store     SessionStore

	loc *time.Location
	now func() time.Time

	// One mutex per conversation: extraction, handling and the session
	// merge must not interleave for the same conversation.
	locks sync.Map
}

func NewDefaultService(extractor *Extractor, cal calendar.Service, store SessionStore, loc *time.Location) *DefaultService {
	return &DefaultService{
		Extractor: extractor,
		Calendar:  cal,
		Store:     store,
		loc:       loc,
		now:       time.Now,
	}
}

func (s *DefaultService) lockFor(conversationID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(conversationID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// ProcessMessage runs one full turn: load session, extract, route, handle,
// merge back. Failures of any collaborator degrade to a templated reply.
func (s *DefaultService) ProcessMessage(ctx context.Context, conversationID, message string) string {
	logger := utils.GetLogger()

	if conversationID == "" {
		conversationID = DefaultConversationID
	}
	mu := s.lockFor(conversationID)
	mu.Lock()
	defer mu.Unlock()

	sess, err := s.Store.Get(ctx, conversationID)
	if err != nil {
		logger.Warn("failed to load session, starting fresh",
			zap.String("conversationID", conversationID), zap.Error(err))
		sess = &models.SessionState{}
	}

	turn, err := s.Extractor.Extract(ctx, message, sess)
	if err != nil {
		if errors.Is(err, ErrModelUnavailable) {
			logger.Error("model call failed", zap.Error(err))
			return msgModelUnavailable
		}
		logger.Error("extraction failed unexpectedly", zap.Error(err))
		return msgModelUnavailable
	}

	reply := s.route(turn.Intent)(ctx, turn, sess)

	mergeSession(sess, turn)
	if err := s.Store.Set(ctx, conversationID, sess); err != nil {
		logger.Warn("failed to persist session",
			zap.String("conversationID", conversationID), zap.Error(err))
	}

	return reply
}

// mergeSession folds a finished turn into the carried session state.
// Non-empty slot values overwrite; empty ones never clear. The carried
// intent survives a turn whose extraction failed outright.
func mergeSession(sess *models.SessionState, turn *models.TurnContext) {
	if !turn.ExtractionFailed {
		sess.LastIntent = turn.Intent
	}
	if turn.Date != "" {
		sess.LastDate = turn.Date
	}
	if turn.Time != "" {
		sess.LastTime = turn.Time
	}
	if turn.Name != "" {
		sess.LastName = turn.Name
	}
}

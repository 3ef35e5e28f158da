package agent

import (
	"context"
	"time"

	"slotbot/utils"

	"go.uber.org/zap"
)

const (
	suggestionWindow = 120 * time.Minute
	suggestionStep   = 15 * time.Minute
	maxSuggestions   = 3
)

// suggestAlternateSlots scans candidate starts at 15-minute steps within
// [seed, seed+window) and collects up to three free ones, formatted HH:MM.
// Probes run sequentially so suggestions come back in time order; a failed
// probe counts as busy.
func (s *DefaultService) suggestAlternateSlots(ctx context.Context, seed time.Time, duration, window time.Duration) []string {
	logger := utils.GetLogger()

	var suggestions []string
	limit := seed.Add(window)
	for candidate := seed; candidate.Before(limit); candidate = candidate.Add(suggestionStep) {
		free, err := s.Calendar.IsFree(ctx, candidate, candidate.Add(duration))
		if err != nil {
			logger.Warn("suggestion probe failed", zap.Time("candidate", candidate), zap.Error(err))
			continue
		}
		if !free {
			continue
		}
		suggestions = append(suggestions, candidate.Format("15:04"))
		if len(suggestions) >= maxSuggestions {
			break
		}
	}
	return suggestions
}

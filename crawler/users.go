package crawler

import (
	"context"
	"errors"
	"sort"

	"github.com/quasitext/redharvest/model"
	"github.com/quasitext/redharvest/redditapi"
)

// LoadUsers fetches the full profile and posting history of every user
// stubbed during the crawl and persists one activity snapshot per
// tracked bucket. A user whose profile fetch exhausts its retries is
// skipped; history fetch failures abort the run.
func (s *Session) LoadUsers(ctx context.Context) error {
	names := make([]string, 0, len(s.seen))
	for name := range s.seen {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		name := name
		account, err := redditapi.Do(s.Retry, func() (*redditapi.Account, error) {
			return s.Client.AccountByName(ctx, name)
		})
		if err != nil {
			if errors.Is(err, redditapi.ErrAttemptsExhausted) {
				s.Log.WithField("user", name).Error("Failed to get user")
				continue
			}
			return err
		}

		commentHistory, err := s.Client.CommentHistory(ctx, name, s.HistoryLimit)
		if err != nil {
			return err
		}
		submissionHistory, err := s.Client.SubmissionHistory(ctx, name, s.HistoryLimit)
		if err != nil {
			return err
		}
		commentStats := s.bucketStats(commentHistory)
		submissionStats := s.bucketStats(submissionHistory)

		if err := s.Store.Merge(model.NewUser(account)); err != nil {
			s.Log.WithError(err).WithField("user", name).Warn("Could not merge user")
		}

		for _, sr := range s.trackedSubreddits() {
			activity := model.NewUserActivity(name, sr, commentStats[sr.Name], submissionStats[sr.Name])
			if _, err := s.Store.Add(activity); err != nil {
				s.Log.WithError(err).WithField("user", name).Warn("Could not store activity")
			}
		}
		s.Log.WithField("user", name).Debug("Stored user activity")
	}
	return nil
}

// bucketStats buckets a user's history items by tracked subreddit.
// Every item also lands in the GLOBAL bucket regardless of origin, and
// every tracked bucket gets finalized stats even with zero activity.
func (s *Session) bucketStats(items []redditapi.HistoryItem) map[string]model.PostStats {
	acc := make(map[string]*model.PostStats, len(s.tracked))
	for name := range s.tracked {
		acc[name] = &model.PostStats{}
	}
	for _, item := range items {
		if ps, ok := acc[item.SubredditName]; ok {
			ps.Count++
			ps.PosKarma += item.Ups
			ps.NegKarma += item.Downs
		}
		global := acc[GlobalBucket]
		global.Count++
		global.PosKarma += item.Ups
		global.NegKarma += item.Downs
	}

	stats := make(map[string]model.PostStats, len(acc))
	for name, ps := range acc {
		ps.Finalize()
		stats[name] = *ps
	}
	return stats
}

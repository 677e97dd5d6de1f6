package crawler

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/quasitext/redharvest/database"
	"github.com/quasitext/redharvest/model"
	"github.com/quasitext/redharvest/redditapi"
	"github.com/sirupsen/logrus"
)

// GlobalBucket is the sentinel subreddit aggregating a user's activity
// across the whole site.
const GlobalBucket = "GLOBAL"

// DefaultHistoryLimit matches the deepest history the remote API pages
// out, which also means the aggregates skew toward recent activity.
const DefaultHistoryLimit = 1000

// DefaultFlairs are the flair tags searched within the target subreddit.
var DefaultFlairs = []string{
	"Physics", "Maths", "Astro", "Computing", "Geo", "Eng",
	"Chem", "Soc", "Bio", "Psych", "Med", "Neuro",
}

// Session owns the state of one crawl pass: the remote client, the
// store, the subreddit buckets tracked for activity snapshots and the
// set of usernames already stubbed during this run.
type Session struct {
	Client       redditapi.Client
	Store        *database.Store
	Log          *logrus.Logger
	Retry        redditapi.Policy
	Flairs       []string
	PostLimit    int // submissions per flair search, 0 for no bound
	HistoryLimit int

	tracked map[string]*model.Subreddit
	seen    map[string]bool
}

func NewSession(client redditapi.Client, store *database.Store, log *logrus.Logger) *Session {
	return &Session{
		Client:       client,
		Store:        store,
		Log:          log,
		Retry:        redditapi.DefaultPolicy(log),
		Flairs:       DefaultFlairs,
		HistoryLimit: DefaultHistoryLimit,
		tracked:      make(map[string]*model.Subreddit),
		seen:         make(map[string]bool),
	}
}

// Run crawls the named subreddit end to end: the GLOBAL sentinel, the
// subreddit row, its flair-tagged self posts with their comment trees,
// then an activity snapshot for every user discovered along the way.
func (s *Session) Run(ctx context.Context, subredditName string) error {
	global := &model.Subreddit{SubredditID: GlobalBucket, Name: GlobalBucket}
	if _, err := s.Store.Add(global); err != nil {
		return err
	}
	s.tracked[GlobalBucket] = global

	raw, err := s.Client.SubredditByName(ctx, subredditName)
	if err != nil {
		return err
	}
	sr := model.NewSubreddit(raw)
	if _, err := s.Store.Add(sr); err != nil {
		return err
	}
	s.tracked[sr.Name] = sr

	if err := s.LoadSubreddit(ctx, sr); err != nil {
		return err
	}
	return s.LoadUsers(ctx)
}

// LoadSubreddit harvests the subreddit's self posts for every configured
// flair tag. Submissions already stored by an earlier pass are skipped
// along with their comments.
func (s *Session) LoadSubreddit(ctx context.Context, sr *model.Subreddit) error {
	for _, flair := range s.Flairs {
		query := fmt.Sprintf("flair:'%s'", flair)
		submissions, err := s.Client.SearchSubmissions(ctx, sr.Name, query, "top", s.PostLimit)
		if err != nil {
			return err
		}
		s.Log.WithFields(logrus.Fields{
			"subreddit": sr.Name,
			"flair":     flair,
			"count":     len(submissions),
		}).Info("Search returned submissions")

		for _, raw := range submissions {
			if !raw.IsSelf {
				continue
			}
			s.registerUser(raw.Author)

			added, err := s.Store.Add(model.NewSubmission(raw))
			if err != nil {
				s.Log.WithError(err).WithField("submission", raw.FullID).Warn("Could not store submission")
				continue
			}
			if !added {
				continue
			}

			comments, err := redditapi.Do(s.Retry, func() ([]*redditapi.Comment, error) {
				return s.Client.SubmissionComments(ctx, raw)
			})
			if err != nil {
				if errors.Is(err, redditapi.ErrAttemptsExhausted) {
					s.Log.WithField("submission", raw.FullID).Error("Failed to get comments")
					continue
				}
				return err
			}
			s.loadComments(comments)
		}
	}
	return nil
}

// registerUser stores a stub row the first time a username is seen in
// this pass. Deleted authors arrive as the empty string and are ignored.
func (s *Session) registerUser(name string) {
	if name == "" || s.seen[name] {
		return
	}
	s.seen[name] = true
	if _, err := s.Store.Add(model.NewUserStub(name)); err != nil {
		s.Log.WithError(err).WithField("user", name).Warn("Could not store user stub")
	}
}

func (s *Session) trackedSubreddits() []*model.Subreddit {
	names := make([]string, 0, len(s.tracked))
	for name := range s.tracked {
		names = append(names, name)
	}
	sort.Strings(names)

	subreddits := make([]*model.Subreddit, 0, len(names))
	for _, name := range names {
		subreddits = append(subreddits, s.tracked[name])
	}
	return subreddits
}

package redditapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Subreddit is the raw shape of a fetched subreddit.
type Subreddit struct {
	FullID string
	Name   string
}

// Submission is the raw shape of a fetched post.
type Submission struct {
	ID            string
	FullID        string
	Author        string // empty when the account has been deleted
	SubredditID   string
	Title         string
	Body          string
	Score         int
	Ups           int
	Downs         int
	Stickied      bool
	Distinguished string
	Gilded        int
	IsSelf        bool
	Domain        string
	Permalink     string
	CreatedUTC    int64
}

// Comment is the raw shape of a fetched comment, with its reply tree.
type Comment struct {
	FullID        string
	Author        string // empty when the account has been deleted
	SubredditID   string
	PostID        string
	ParentID      string
	Body          string
	Score         int
	Ups           int
	Downs         int
	Distinguished string
	Gilded        int
	Permalink     string
	CreatedUTC    int64
	Replies       []*Comment
}

// IsRoot reports whether the comment replies directly to its submission.
func (c *Comment) IsRoot() bool {
	return strings.HasPrefix(c.ParentID, "t3_")
}

// Account is the raw shape of a fetched user profile.
type Account struct {
	FullID       string
	Name         string
	CreatedUTC   int64
	CommentKarma int
	LinkKarma    int
	IsMod        bool
	HasGold      bool
	Verified     bool
}

// HistoryItem is one entry of a user's comment or submission history.
type HistoryItem struct {
	SubredditName string
	Ups           int
	Downs         int
}

// Client is the narrow surface of the remote content API that the
// crawler consumes.
type Client interface {
	SubredditByName(ctx context.Context, name string) (*Subreddit, error)
	SearchSubmissions(ctx context.Context, subreddit, query, sort string, limit int) ([]*Submission, error)
	SubmissionComments(ctx context.Context, sub *Submission) ([]*Comment, error)
	AccountByName(ctx context.Context, name string) (*Account, error)
	CommentHistory(ctx context.Context, username string, limit int) ([]HistoryItem, error)
	SubmissionHistory(ctx context.Context, username string, limit int) ([]HistoryItem, error)
}

// StatusError tags a failure that carried an HTTP status, so callers can
// tell a remote rejection from a network or decoding failure.
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %v", e.Code, e.Err)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// IsHTTPError reports whether err is an HTTP-level failure.
func IsHTTPError(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

package model

import (
	"time"

	"github.com/quasitext/redharvest/redditapi"
)

// DeletedBody is the marker the remote API substitutes for removed
// content.
const DeletedBody = "[deleted]"

/*---------------------------------------------------------------------------*/

type Subreddit struct {
	SubredditID string
	Name        string
}

func NewSubreddit(raw *redditapi.Subreddit) *Subreddit {
	return &Subreddit{SubredditID: raw.FullID, Name: raw.Name}
}

func (s *Subreddit) Table() string        { return "subreddits" }
func (s *Subreddit) KeyColumns() []string { return []string{"subreddit_id"} }
func (s *Subreddit) KeyValues() []any     { return []any{s.SubredditID} }

func (s *Subreddit) Columns() []string {
	return []string{"subreddit_id", "name"}
}

func (s *Subreddit) Values() []any {
	return []any{s.SubredditID, s.Name}
}

/*---------------------------------------------------------------------------*/

// User rows are keyed by username. A user first enters the store as a
// stub holding only the name, and is merged with the full profile once
// it has been fetched.
type User struct {
	Name         string
	UserID       *string
	CommentKarma *int
	LinkKarma    *int
	IsMod        *bool
	HasGold      *bool
	Verified     *bool
	Created      *time.Time
}

// NewUserStub records a username seen on a submission or comment before
// the profile fetch.
func NewUserStub(name string) *User {
	return &User{Name: name}
}

func NewUser(raw *redditapi.Account) *User {
	created := time.Unix(raw.CreatedUTC, 0).UTC()
	return &User{
		Name:         raw.Name,
		UserID:       &raw.FullID,
		CommentKarma: &raw.CommentKarma,
		LinkKarma:    &raw.LinkKarma,
		IsMod:        &raw.IsMod,
		HasGold:      &raw.HasGold,
		Verified:     &raw.Verified,
		Created:      &created,
	}
}

func (u *User) Table() string        { return "users" }
func (u *User) KeyColumns() []string { return []string{"name"} }
func (u *User) KeyValues() []any     { return []any{u.Name} }

func (u *User) Columns() []string {
	return []string{
		"name", "user_id", "comment_karma", "link_karma",
		"is_mod", "has_gold", "verified", "created",
	}
}

func (u *User) Values() []any {
	return []any{
		u.Name, u.UserID, u.CommentKarma, u.LinkKarma,
		u.IsMod, u.HasGold, u.Verified, unixOrNil(u.Created),
	}
}

/*---------------------------------------------------------------------------*/

type Submission struct {
	SubID         string
	UserName      *string
	SubredditID   string
	Timestamp     time.Time
	Title         string
	Body          string
	Score         int
	Ups           int
	Downs         int
	Stickied      bool
	Distinguished *string
	Gilded        int
	IsSelf        bool
	Domain        string
	ShortLink     string
	Permalink     string
}

func NewSubmission(raw *redditapi.Submission) *Submission {
	s := &Submission{
		SubID:       raw.FullID,
		SubredditID: raw.SubredditID,
		Timestamp:   time.Unix(raw.CreatedUTC, 0).UTC(),
		Title:       raw.Title,
		Body:        raw.Body,
		Score:       raw.Score,
		Ups:         raw.Ups,
		Downs:       raw.Downs,
		Stickied:    raw.Stickied,
		Gilded:      raw.Gilded,
		IsSelf:      raw.IsSelf,
		Domain:      raw.Domain,
		ShortLink:   "https://redd.it/" + raw.ID,
		Permalink:   raw.Permalink,
	}
	if raw.Author != "" {
		s.UserName = &raw.Author
	}
	if raw.Distinguished != "" {
		s.Distinguished = &raw.Distinguished
	}
	return s
}

func (s *Submission) Table() string        { return "submissions" }
func (s *Submission) KeyColumns() []string { return []string{"sub_id"} }
func (s *Submission) KeyValues() []any     { return []any{s.SubID} }

func (s *Submission) Columns() []string {
	return []string{
		"sub_id", "user_name", "subreddit_id", "timestamp",
		"title", "body", "score", "ups", "downs",
		"stickied", "distinguished", "gilded", "is_self",
		"domain", "short_link", "permalink",
	}
}

func (s *Submission) Values() []any {
	return []any{
		s.SubID, s.UserName, s.SubredditID, s.Timestamp.Unix(),
		s.Title, s.Body, s.Score, s.Ups, s.Downs,
		s.Stickied, s.Distinguished, s.Gilded, s.IsSelf,
		s.Domain, s.ShortLink, s.Permalink,
	}
}

/*---------------------------------------------------------------------------*/

// Comment carries the derived fields computed once at load time: Rank is
// the source-provided display position, NumReplies counts direct replies,
// and ConvoDepth is the height of the reply tree rooted at the comment.
type Comment struct {
	ComID         string
	UserName      *string
	SubID         string
	SubredditID   string
	ParentID      string
	Timestamp     time.Time
	Body          string
	Score         int
	Ups           int
	Downs         int
	Rank          int
	NumReplies    int
	ConvoDepth    int
	Distinguished *string
	Gilded        int
	IsRoot        bool
	Permalink     string
}

func NewComment(raw *redditapi.Comment, rank, numReplies, convoDepth int) *Comment {
	c := &Comment{
		ComID:       raw.FullID,
		SubID:       raw.PostID,
		SubredditID: raw.SubredditID,
		ParentID:    raw.ParentID,
		Timestamp:   time.Unix(raw.CreatedUTC, 0).UTC(),
		Body:        raw.Body,
		Score:       raw.Score,
		Ups:         raw.Ups,
		Downs:       raw.Downs,
		Rank:        rank,
		NumReplies:  numReplies,
		ConvoDepth:  convoDepth,
		Gilded:      raw.Gilded,
		IsRoot:      raw.IsRoot(),
		Permalink:   raw.Permalink,
	}
	if raw.Author != "" {
		c.UserName = &raw.Author
	}
	if raw.Distinguished != "" {
		c.Distinguished = &raw.Distinguished
	}
	return c
}

func (c *Comment) Table() string        { return "comments" }
func (c *Comment) KeyColumns() []string { return []string{"com_id"} }
func (c *Comment) KeyValues() []any     { return []any{c.ComID} }

func (c *Comment) Columns() []string {
	return []string{
		"com_id", "user_name", "sub_id", "subreddit_id", "parent_id",
		"timestamp", "body", "score", "ups", "downs",
		"rank", "num_replies", "convo_depth",
		"distinguished", "gilded", "is_root", "permalink",
	}
}

func (c *Comment) Values() []any {
	return []any{
		c.ComID, c.UserName, c.SubID, c.SubredditID, c.ParentID,
		c.Timestamp.Unix(), c.Body, c.Score, c.Ups, c.Downs,
		c.Rank, c.NumReplies, c.ConvoDepth,
		c.Distinguished, c.Gilded, c.IsRoot, c.Permalink,
	}
}

/*---------------------------------------------------------------------------*/

// UserActivity is one snapshot of a user's karma statistics within one
// subreddit bucket, split by comment and submission history.
type UserActivity struct {
	UserName      string
	SubredditID   string
	SubredditName string
	Comments      PostStats
	Submissions   PostStats
}

func NewUserActivity(userName string, sr *Subreddit, comments, submissions PostStats) *UserActivity {
	return &UserActivity{
		UserName:      userName,
		SubredditID:   sr.SubredditID,
		SubredditName: sr.Name,
		Comments:      comments,
		Submissions:   submissions,
	}
}

func (a *UserActivity) Table() string        { return "user_activity" }
func (a *UserActivity) KeyColumns() []string { return []string{"user_name", "subreddit_id"} }
func (a *UserActivity) KeyValues() []any     { return []any{a.UserName, a.SubredditID} }

func (a *UserActivity) Columns() []string {
	return []string{
		"user_name", "subreddit_id", "subreddit_name",
		"comment_count", "comment_pos_karma", "comment_neg_karma", "comment_net_karma",
		"comment_avg_pos_karma", "comment_avg_neg_karma", "comment_avg_net_karma",
		"submission_count", "submission_pos_karma", "submission_neg_karma", "submission_net_karma",
		"submission_avg_pos_karma", "submission_avg_neg_karma", "submission_avg_net_karma",
	}
}

func (a *UserActivity) Values() []any {
	return []any{
		a.UserName, a.SubredditID, a.SubredditName,
		a.Comments.Count, a.Comments.PosKarma, a.Comments.NegKarma, a.Comments.NetKarma,
		a.Comments.AvgPos, a.Comments.AvgNeg, a.Comments.AvgNet,
		a.Submissions.Count, a.Submissions.PosKarma, a.Submissions.NegKarma, a.Submissions.NetKarma,
		a.Submissions.AvgPos, a.Submissions.AvgNeg, a.Submissions.AvgNet,
	}
}

/*---------------------------------------------------------------------------*/

func unixOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Unix()
}

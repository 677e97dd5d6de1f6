package redditapi

import (
	"context"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vartanbeno/go-reddit/v2/reddit"
	"golang.org/x/time/rate"
)

const pageSize = 100

// Credentials identify the script-type reddit app the crawler runs as.
type Credentials struct {
	ID        string
	Secret    string
	Username  string
	Password  string
	UserAgent string
}

type redditClient struct {
	api     *reddit.Client
	limiter *rate.Limiter
	log     *logrus.Logger
}

// NewClient returns a Client backed by the reddit API, pacing requests to
// stay under the given per-minute budget.
func NewClient(creds Credentials, requestsPerMinute int, log *logrus.Logger) (Client, error) {
	var opts []reddit.Opt
	if creds.UserAgent != "" {
		opts = append(opts, reddit.WithUserAgent(creds.UserAgent))
	}
	api, err := reddit.NewClient(reddit.Credentials{
		ID:       creds.ID,
		Secret:   creds.Secret,
		Username: creds.Username,
		Password: creds.Password,
	}, opts...)
	if err != nil {
		return nil, err
	}
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	// 95% of the budget leaves headroom for the token refresh requests
	// the underlying client issues on its own.
	limit := rate.Limit(float64(requestsPerMinute) / 60.0 * 0.95)
	return &redditClient{api: api, limiter: rate.NewLimiter(limit, 1), log: log}, nil
}

// httpErr tags err as HTTP-level when the response carried an error
// status. Transport failures have no response and pass through untagged.
func httpErr(resp *reddit.Response, err error) error {
	if err == nil {
		return nil
	}
	if resp != nil && resp.Response != nil && resp.StatusCode >= 400 {
		return &StatusError{Code: resp.StatusCode, Err: err}
	}
	return err
}

// splitScore recovers up/down counts from a signed score. The API stopped
// reporting the raw counters separately.
func splitScore(score int) (ups, downs int) {
	if score >= 0 {
		return score, 0
	}
	return 0, -score
}

func authorOrEmpty(author string) string {
	if author == "" || author == "[deleted]" {
		return ""
	}
	return author
}

func (c *redditClient) SubredditByName(ctx context.Context, name string) (*Subreddit, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	sr, resp, err := c.api.Subreddit.Get(ctx, name)
	if err := httpErr(resp, err); err != nil {
		return nil, err
	}
	return &Subreddit{FullID: sr.FullID, Name: sr.Name}, nil
}

func (c *redditClient) SearchSubmissions(ctx context.Context, subreddit, query, sort string, limit int) ([]*Submission, error) {
	var out []*Submission
	after := ""
	for limit <= 0 || len(out) < limit {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		opts := &reddit.ListPostSearchOptions{
			ListPostOptions: reddit.ListPostOptions{
				ListOptions: reddit.ListOptions{Limit: pageSize, After: after},
			},
			Sort: sort,
		}
		posts, resp, err := c.api.Subreddit.SearchPosts(ctx, query, subreddit, opts)
		if err := httpErr(resp, err); err != nil {
			return nil, err
		}
		for _, p := range posts {
			out = append(out, convertPost(p))
		}
		if len(posts) == 0 || resp.After == "" {
			break
		}
		after = resp.After
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func convertPost(p *reddit.Post) *Submission {
	ups, downs := splitScore(p.Score)
	s := &Submission{
		ID:          p.ID,
		FullID:      p.FullID,
		Author:      authorOrEmpty(p.Author),
		SubredditID: p.SubredditID,
		Title:       p.Title,
		Body:        p.Body,
		Score:       p.Score,
		Ups:         ups,
		Downs:       downs,
		Stickied:    p.Stickied,
		IsSelf:      p.IsSelfPost,
		Permalink:   p.Permalink,
	}
	if p.Created != nil {
		s.CreatedUTC = p.Created.Unix()
	}
	if p.IsSelfPost {
		s.Domain = "self." + p.SubredditName
	} else if u, err := url.Parse(p.URL); err == nil {
		s.Domain = u.Hostname()
	}
	return s
}

func (c *redditClient) SubmissionComments(ctx context.Context, sub *Submission) ([]*Comment, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	pc, resp, err := c.api.Post.Get(ctx, sub.ID)
	if err := httpErr(resp, err); err != nil {
		return nil, err
	}
	for pc.HasMore() {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		resp, err := c.api.Post.LoadMoreComments(ctx, pc)
		if err := httpErr(resp, err); err != nil {
			return nil, err
		}
	}
	comments := make([]*Comment, 0, len(pc.Comments))
	for _, rc := range pc.Comments {
		conv, err := c.convertComment(ctx, rc)
		if err != nil {
			return nil, err
		}
		comments = append(comments, conv)
	}
	return comments, nil
}

func (c *redditClient) convertComment(ctx context.Context, rc *reddit.Comment) (*Comment, error) {
	for rc.HasMore() {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		resp, err := c.api.Comment.LoadMoreReplies(ctx, rc)
		if err := httpErr(resp, err); err != nil {
			return nil, err
		}
	}
	ups, downs := splitScore(rc.Score)
	out := &Comment{
		FullID:      rc.FullID,
		Author:      authorOrEmpty(rc.Author),
		SubredditID: rc.SubredditID,
		PostID:      rc.PostID,
		ParentID:    rc.ParentID,
		Body:        rc.Body,
		Score:       rc.Score,
		Ups:         ups,
		Downs:       downs,
		Permalink:   rc.Permalink,
	}
	if rc.Created != nil {
		out.CreatedUTC = rc.Created.Unix()
	}
	for _, reply := range rc.Replies.Comments {
		conv, err := c.convertComment(ctx, reply)
		if err != nil {
			return nil, err
		}
		out.Replies = append(out.Replies, conv)
	}
	return out, nil
}

func (c *redditClient) AccountByName(ctx context.Context, name string) (*Account, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	u, resp, err := c.api.User.Get(ctx, name)
	if err := httpErr(resp, err); err != nil {
		return nil, err
	}
	return convertUser(u), nil
}

// convertUser maps an about-page profile to an Account. The typed client
// does not surface moderator or gold status, so IsMod and HasGold stay
// false, like Gilded and Distinguished on posts and comments.
func convertUser(u *reddit.User) *Account {
	id := u.ID
	if id != "" && !strings.HasPrefix(id, "t2_") {
		id = "t2_" + id
	}
	a := &Account{
		FullID:       id,
		Name:         u.Name,
		CommentKarma: u.CommentKarma,
		LinkKarma:    u.PostKarma,
		Verified:     u.HasVerifiedEmail,
	}
	if u.Created != nil {
		a.CreatedUTC = u.Created.Unix()
	}
	return a
}

func (c *redditClient) CommentHistory(ctx context.Context, username string, limit int) ([]HistoryItem, error) {
	var items []HistoryItem
	after := ""
	for len(items) < limit {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		opts := &reddit.ListUserOverviewOptions{
			ListOptions: reddit.ListOptions{Limit: pageSize, After: after},
		}
		comments, resp, err := c.api.User.CommentsOf(ctx, username, opts)
		if err := httpErr(resp, err); err != nil {
			return nil, err
		}
		for _, rc := range comments {
			ups, downs := splitScore(rc.Score)
			items = append(items, HistoryItem{SubredditName: rc.SubredditName, Ups: ups, Downs: downs})
		}
		if len(comments) == 0 || resp.After == "" {
			break
		}
		after = resp.After
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (c *redditClient) SubmissionHistory(ctx context.Context, username string, limit int) ([]HistoryItem, error) {
	var items []HistoryItem
	after := ""
	for len(items) < limit {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		opts := &reddit.ListUserOverviewOptions{
			ListOptions: reddit.ListOptions{Limit: pageSize, After: after},
		}
		posts, resp, err := c.api.User.PostsOf(ctx, username, opts)
		if err := httpErr(resp, err); err != nil {
			return nil, err
		}
		for _, p := range posts {
			ups, downs := splitScore(p.Score)
			items = append(items, HistoryItem{SubredditName: p.SubredditName, Ups: ups, Downs: downs})
		}
		if len(posts) == 0 || resp.After == "" {
			break
		}
		after = resp.After
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

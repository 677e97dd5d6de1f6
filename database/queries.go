package database

import (
	"database/sql"
	"time"

	"github.com/quasitext/redharvest/model"
)

const submissionColumns = `
	sub_id, user_name, subreddit_id, timestamp, title, body,
	score, ups, downs, stickied, distinguished, gilded, is_self,
	domain, short_link, permalink`

const commentColumns = `
	com_id, user_name, sub_id, subreddit_id, parent_id, timestamp, body,
	score, ups, downs, rank, num_replies, convo_depth,
	distinguished, gilded, is_root, permalink`

// Submissions returns every stored submission, highest scored first.
func (st *Store) Submissions() ([]*model.Submission, error) {
	stmt := "SELECT" + submissionColumns + " FROM submissions ORDER BY score DESC"
	return st.querySubmissions(stmt)
}

// FindSubmission locates a stored submission by identifier, short link or
// permalink.
func (st *Store) FindSubmission(key string) (*model.Submission, error) {
	stmt := "SELECT" + submissionColumns + ` FROM submissions
		WHERE sub_id = ?1 OR short_link = ?1 OR permalink = ?1`
	subs, err := st.querySubmissions(stmt, key)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, sql.ErrNoRows
	}
	return subs[0], nil
}

// GrepSubmissions returns the submissions whose title or body matches
// every given regular expression.
func (st *Store) GrepSubmissions(patterns []string) ([]*model.Submission, error) {
	stmt := "SELECT" + submissionColumns + " FROM submissions WHERE 1=1"
	params := make([]any, 0, len(patterns))
	for _, p := range patterns {
		stmt += " AND (title REGEXP ? OR body REGEXP ?)"
		params = append(params, p, p)
	}
	return st.querySubmissions(stmt, params...)
}

// SubmissionComments returns the stored top-level comments of one
// submission in display order.
func (st *Store) SubmissionComments(subID string) ([]*model.Comment, error) {
	stmt := "SELECT" + commentColumns + " FROM comments WHERE sub_id = ? ORDER BY rank"
	return st.queryComments(stmt, subID)
}

// GrepComments returns the comments whose body matches every given
// regular expression.
func (st *Store) GrepComments(patterns []string) ([]*model.Comment, error) {
	stmt := "SELECT" + commentColumns + " FROM comments WHERE 1=1"
	params := make([]any, 0, len(patterns))
	for _, p := range patterns {
		stmt += " AND body REGEXP ?"
		params = append(params, p)
	}
	return st.queryComments(stmt, params...)
}

// UserComments returns the stored comments written by one user.
func (st *Store) UserComments(name string) ([]*model.Comment, error) {
	stmt := "SELECT" + commentColumns + " FROM comments WHERE user_name = ? ORDER BY timestamp"
	return st.queryComments(stmt, name)
}

// UserActivities returns the activity snapshots stored for one user,
// one per tracked subreddit bucket.
func (st *Store) UserActivities(name string) ([]*model.UserActivity, error) {
	stmt := `
	SELECT
		user_name, subreddit_id, subreddit_name,
		comment_count, comment_pos_karma, comment_neg_karma, comment_net_karma,
		comment_avg_pos_karma, comment_avg_neg_karma, comment_avg_net_karma,
		submission_count, submission_pos_karma, submission_neg_karma, submission_net_karma,
		submission_avg_pos_karma, submission_avg_neg_karma, submission_avg_net_karma
	FROM user_activity WHERE user_name = ? ORDER BY subreddit_name`

	var activities []*model.UserActivity
	var scanErr error
	err := st.forEachRow(func(rows *sql.Rows) bool {
		a := new(model.UserActivity)
		var cAvgPos, cAvgNeg, cAvgNet, sAvgPos, sAvgNeg, sAvgNet sql.NullFloat64
		if scanErr = rows.Scan(
			&a.UserName, &a.SubredditID, &a.SubredditName,
			&a.Comments.Count, &a.Comments.PosKarma, &a.Comments.NegKarma, &a.Comments.NetKarma,
			&cAvgPos, &cAvgNeg, &cAvgNet,
			&a.Submissions.Count, &a.Submissions.PosKarma, &a.Submissions.NegKarma, &a.Submissions.NetKarma,
			&sAvgPos, &sAvgNeg, &sAvgNet,
		); scanErr != nil {
			return false
		}
		a.Comments.AvgPos = floatOrNil(cAvgPos)
		a.Comments.AvgNeg = floatOrNil(cAvgNeg)
		a.Comments.AvgNet = floatOrNil(cAvgNet)
		a.Submissions.AvgPos = floatOrNil(sAvgPos)
		a.Submissions.AvgNeg = floatOrNil(sAvgNeg)
		a.Submissions.AvgNet = floatOrNil(sAvgNet)
		activities = append(activities, a)
		return true
	}, stmt, name)
	if err == nil {
		err = scanErr
	}
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (st *Store) querySubmissions(stmt string, params ...any) ([]*model.Submission, error) {
	var subs []*model.Submission
	var scanErr error
	err := st.forEachRow(func(rows *sql.Rows) bool {
		s := new(model.Submission)
		var userName, distinguished sql.NullString
		var timestamp int64
		if scanErr = rows.Scan(
			&s.SubID, &userName, &s.SubredditID, &timestamp, &s.Title, &s.Body,
			&s.Score, &s.Ups, &s.Downs, &s.Stickied, &distinguished, &s.Gilded,
			&s.IsSelf, &s.Domain, &s.ShortLink, &s.Permalink,
		); scanErr != nil {
			return false
		}
		s.Timestamp = time.Unix(timestamp, 0).UTC()
		s.UserName = stringOrNil(userName)
		s.Distinguished = stringOrNil(distinguished)
		subs = append(subs, s)
		return true
	}, stmt, params...)
	if err == nil {
		err = scanErr
	}
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (st *Store) queryComments(stmt string, params ...any) ([]*model.Comment, error) {
	var comments []*model.Comment
	var scanErr error
	err := st.forEachRow(func(rows *sql.Rows) bool {
		c := new(model.Comment)
		var userName, distinguished sql.NullString
		var timestamp int64
		if scanErr = rows.Scan(
			&c.ComID, &userName, &c.SubID, &c.SubredditID, &c.ParentID, &timestamp, &c.Body,
			&c.Score, &c.Ups, &c.Downs, &c.Rank, &c.NumReplies, &c.ConvoDepth,
			&distinguished, &c.Gilded, &c.IsRoot, &c.Permalink,
		); scanErr != nil {
			return false
		}
		c.Timestamp = time.Unix(timestamp, 0).UTC()
		c.UserName = stringOrNil(userName)
		c.Distinguished = stringOrNil(distinguished)
		comments = append(comments, c)
		return true
	}, stmt, params...)
	if err == nil {
		err = scanErr
	}
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func stringOrNil(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func floatOrNil(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

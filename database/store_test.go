package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/quasitext/redharvest/model"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	st, err := OpenStore(t.TempDir() + "/test.db")
	require.Equal(t, nil, err)
	t.Cleanup(st.Close)
	return st
}

func TestAddIsIdempotent(t *testing.T) {
	st := openTestStore(t)

	sr := &model.Subreddit{SubredditID: "t5_2qm4e", Name: "askscience"}
	added, err := st.Add(sr)
	require.NoError(t, err)
	require.True(t, added)

	// A second add with the same natural key is a no-op, even when the
	// other columns differ.
	again := &model.Subreddit{SubredditID: "t5_2qm4e", Name: "renamed"}
	added, err = st.Add(again)
	require.NoError(t, err)
	require.False(t, added)

	var name string
	st.ForSingleRowOrPanic(
		func(rows *sql.Rows) bool {
			rows.Scan(&name)
			return true
		},
		"SELECT name FROM subreddits WHERE subreddit_id = ?", "t5_2qm4e")
	require.Equal(t, "askscience", name)
}

func TestContainsReportsFailureNotAbsence(t *testing.T) {
	st, err := OpenStore(t.TempDir() + "/test.db")
	require.NoError(t, err)

	sr := &model.Subreddit{SubredditID: "t5_2qm4e", Name: "askscience"}
	added, err := st.Add(sr)
	require.NoError(t, err)
	require.True(t, added)

	// A broken store must error out rather than report the row missing,
	// or a re-crawl would insert duplicates.
	st.Close()
	_, err = st.Contains(sr)
	require.Error(t, err)
	_, err = st.Add(sr)
	require.Error(t, err)
}

func TestMergeUpgradesStub(t *testing.T) {
	st := openTestStore(t)

	added, err := st.Add(model.NewUserStub("somebody"))
	require.NoError(t, err)
	require.True(t, added)

	karma := 512
	id := "t2_aaaa"
	created := time.Unix(1300000000, 0).UTC()
	full := &model.User{
		Name:         "somebody",
		UserID:       &id,
		CommentKarma: &karma,
		Created:      &created,
	}
	require.NoError(t, st.Merge(full))

	var count int
	st.ForSingleRowOrPanic(
		func(rows *sql.Rows) bool {
			rows.Scan(&count)
			return true
		},
		"SELECT COUNT(*) FROM users")
	require.Equal(t, 1, count)

	var storedID string
	var storedKarma int
	st.ForSingleRowOrPanic(
		func(rows *sql.Rows) bool {
			rows.Scan(&storedID, &storedKarma)
			return true
		},
		"SELECT user_id, comment_karma FROM users WHERE name = ?", "somebody")
	require.Equal(t, "t2_aaaa", storedID)
	require.Equal(t, 512, storedKarma)
}

func TestSubmissionAndCommentRoundTrip(t *testing.T) {
	st := openTestStore(t)

	_, err := st.Add(&model.Subreddit{SubredditID: "t5_2qm4e", Name: "askscience"})
	require.NoError(t, err)
	_, err = st.Add(model.NewUserStub("somebody"))
	require.NoError(t, err)

	author := "somebody"
	sub := &model.Submission{
		SubID:       "t3_abc123",
		UserName:    &author,
		SubredditID: "t5_2qm4e",
		Timestamp:   time.Unix(1400000000, 0).UTC(),
		Title:       "Why is the sky blue?",
		Body:        "Asking for a friend.",
		Score:       42,
		Ups:         42,
		IsSelf:      true,
		Domain:      "self.askscience",
		ShortLink:   "https://redd.it/abc123",
		Permalink:   "/r/askscience/comments/abc123/why_is_the_sky_blue/",
	}
	added, err := st.Add(sub)
	require.NoError(t, err)
	require.True(t, added)

	comment := &model.Comment{
		ComID:       "t1_xyz",
		UserName:    &author,
		SubID:       "t3_abc123",
		SubredditID: "t5_2qm4e",
		ParentID:    "t3_abc123",
		Timestamp:   time.Unix(1400000100, 0).UTC(),
		Body:        "Rayleigh scattering.",
		Score:       7,
		Ups:         7,
		Rank:        1,
		NumReplies:  1,
		ConvoDepth:  2,
		IsRoot:      true,
		Permalink:   "/r/askscience/comments/abc123/why_is_the_sky_blue/xyz/",
	}
	added, err = st.Add(comment)
	require.NoError(t, err)
	require.True(t, added)

	found, err := st.FindSubmission("https://redd.it/abc123")
	require.NoError(t, err)
	require.Equal(t, "t3_abc123", found.SubID)
	require.Equal(t, sub.Timestamp, found.Timestamp)
	require.NotNil(t, found.UserName)
	require.Equal(t, "somebody", *found.UserName)

	comments, err := st.SubmissionComments("t3_abc123")
	require.NoError(t, err)
	require.Equal(t, 1, len(comments))
	require.Equal(t, 2, comments[0].ConvoDepth)
	require.Nil(t, comments[0].Distinguished)

	matches, err := st.GrepComments([]string{"Rayleigh"})
	require.NoError(t, err)
	require.Equal(t, 1, len(matches))

	matches, err = st.GrepComments([]string{"Rayleigh", "nomatch"})
	require.NoError(t, err)
	require.Equal(t, 0, len(matches))
}

func TestUserActivityRoundTrip(t *testing.T) {
	st := openTestStore(t)

	sr := &model.Subreddit{SubredditID: "t5_2qm4e", Name: "askscience"}
	_, err := st.Add(sr)
	require.NoError(t, err)
	_, err = st.Add(model.NewUserStub("somebody"))
	require.NoError(t, err)

	comments := model.PostStats{Count: 2, PosKarma: 10, NegKarma: 3}
	comments.Finalize()
	submissions := model.PostStats{}
	submissions.Finalize()

	activity := model.NewUserActivity("somebody", sr, comments, submissions)
	added, err := st.Add(activity)
	require.NoError(t, err)
	require.True(t, added)

	// One snapshot per (user, subreddit) per pass.
	added, err = st.Add(model.NewUserActivity("somebody", sr, comments, submissions))
	require.NoError(t, err)
	require.False(t, added)

	stored, err := st.UserActivities("somebody")
	require.NoError(t, err)
	require.Equal(t, 1, len(stored))
	require.Equal(t, 7, stored[0].Comments.NetKarma)
	require.Equal(t, 5.0, *stored[0].Comments.AvgPos)
	require.Equal(t, 1.5, *stored[0].Comments.AvgNeg)
	require.Equal(t, 3.5, *stored[0].Comments.AvgNet)
	require.Nil(t, stored[0].Submissions.AvgNet)
}

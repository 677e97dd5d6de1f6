package model

import (
	"testing"
	"time"

	"github.com/quasitext/redharvest/redditapi"
	"github.com/stretchr/testify/require"
)

func TestNewSubmission(t *testing.T) {
	raw := &redditapi.Submission{
		ID:          "abc123",
		FullID:      "t3_abc123",
		Author:      "somebody",
		SubredditID: "t5_2qm4e",
		Title:       "Why is the sky blue?",
		Body:        "Asking for a friend.",
		Score:       42,
		Ups:         42,
		IsSelf:      true,
		Domain:      "self.askscience",
		Permalink:   "/r/askscience/comments/abc123/why_is_the_sky_blue/",
		CreatedUTC:  1400000000,
	}

	s := NewSubmission(raw)
	require.Equal(t, "t3_abc123", s.SubID)
	require.NotNil(t, s.UserName)
	require.Equal(t, "somebody", *s.UserName)
	require.Equal(t, time.Unix(1400000000, 0).UTC(), s.Timestamp)
	require.Equal(t, "https://redd.it/abc123", s.ShortLink)
	require.Nil(t, s.Distinguished)
}

func TestNewSubmissionDeletedAuthor(t *testing.T) {
	raw := &redditapi.Submission{FullID: "t3_gone", Title: "orphaned"}
	s := NewSubmission(raw)
	require.Nil(t, s.UserName)
}

func TestNewComment(t *testing.T) {
	raw := &redditapi.Comment{
		FullID:      "t1_xyz",
		Author:      "replier",
		SubredditID: "t5_2qm4e",
		PostID:      "t3_abc123",
		ParentID:    "t3_abc123",
		Body:        "Rayleigh scattering.",
		Score:       -3,
		Downs:       3,
		CreatedUTC:  1400000100,
	}

	c := NewComment(raw, 2, 1, 4)
	require.Equal(t, "t1_xyz", c.ComID)
	require.Equal(t, "t3_abc123", c.SubID)
	require.Equal(t, 2, c.Rank)
	require.Equal(t, 1, c.NumReplies)
	require.Equal(t, 4, c.ConvoDepth)
	require.True(t, c.IsRoot)

	nested := &redditapi.Comment{FullID: "t1_deep", ParentID: "t1_xyz"}
	require.False(t, NewComment(nested, 1, 0, 1).IsRoot)
}

func TestUserStubAndFullProfile(t *testing.T) {
	stub := NewUserStub("somebody")
	require.Equal(t, "somebody", stub.Name)
	require.Nil(t, stub.UserID)
	require.Nil(t, stub.Created)

	full := NewUser(&redditapi.Account{
		FullID:       "t2_aaaa",
		Name:         "somebody",
		CreatedUTC:   1300000000,
		CommentKarma: 512,
		LinkKarma:    64,
		IsMod:        true,
	})
	require.Equal(t, stub.KeyValues(), full.KeyValues())
	require.Equal(t, "t2_aaaa", *full.UserID)
	require.Equal(t, 512, *full.CommentKarma)
	require.True(t, *full.IsMod)
	require.False(t, *full.HasGold)
}

func TestPostStatsFinalize(t *testing.T) {
	ps := PostStats{Count: 2, PosKarma: 10, NegKarma: 3}
	ps.Finalize()
	require.Equal(t, 7, ps.NetKarma)
	require.Equal(t, 5.0, *ps.AvgPos)
	require.Equal(t, 1.5, *ps.AvgNeg)
	require.Equal(t, 3.5, *ps.AvgNet)
}

func TestPostStatsFinalizeEmptyBucket(t *testing.T) {
	ps := PostStats{}
	ps.Finalize()
	require.Equal(t, 0, ps.NetKarma)
	require.Nil(t, ps.AvgPos)
	require.Nil(t, ps.AvgNeg)
	require.Nil(t, ps.AvgNet)
}

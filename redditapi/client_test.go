package redditapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vartanbeno/go-reddit/v2/reddit"
)

func TestConvertUser(t *testing.T) {
	created := time.Unix(1300000000, 0).UTC()
	a := convertUser(&reddit.User{
		ID:               "abcd",
		Name:             "somebody",
		Created:          &reddit.Timestamp{Time: created},
		PostKarma:        17,
		CommentKarma:     512,
		HasVerifiedEmail: true,
	})

	require.Equal(t, "t2_abcd", a.FullID)
	require.Equal(t, "somebody", a.Name)
	require.Equal(t, int64(1300000000), a.CreatedUTC)
	require.Equal(t, 512, a.CommentKarma)
	require.Equal(t, 17, a.LinkKarma)
	require.True(t, a.Verified)

	// Not reported by the profile endpoint.
	require.False(t, a.IsMod)
	require.False(t, a.HasGold)
}

func TestConvertUserKeepsPrefixedID(t *testing.T) {
	a := convertUser(&reddit.User{ID: "t2_abcd", Name: "somebody"})
	require.Equal(t, "t2_abcd", a.FullID)
	require.Equal(t, int64(0), a.CreatedUTC)
}

func TestConvertPostSelf(t *testing.T) {
	created := time.Unix(1400000000, 0).UTC()
	s := convertPost(&reddit.Post{
		ID:            "abc123",
		FullID:        "t3_abc123",
		Author:        "asker",
		SubredditID:   "t5_2qm4e",
		SubredditName: "askscience",
		Title:         "Why is the sky blue?",
		Body:          "Asking for a friend.",
		Score:         42,
		Created:       &reddit.Timestamp{Time: created},
		IsSelfPost:    true,
		Permalink:     "/r/askscience/comments/abc123/why_is_the_sky_blue/",
	})

	require.Equal(t, "t3_abc123", s.FullID)
	require.Equal(t, "asker", s.Author)
	require.Equal(t, 42, s.Ups)
	require.Equal(t, 0, s.Downs)
	require.Equal(t, int64(1400000000), s.CreatedUTC)
	require.Equal(t, "self.askscience", s.Domain)
}

func TestConvertPostLinkDomain(t *testing.T) {
	s := convertPost(&reddit.Post{
		ID:     "def456",
		FullID: "t3_def456",
		Author: "[deleted]",
		Score:  -3,
		URL:    "https://example.com/some/article",
	})

	require.Equal(t, "", s.Author)
	require.Equal(t, 0, s.Ups)
	require.Equal(t, 3, s.Downs)
	require.Equal(t, "example.com", s.Domain)
}

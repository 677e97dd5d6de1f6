package crawler

import (
	"github.com/quasitext/redharvest/model"
	"github.com/quasitext/redharvest/redditapi"
)

// depthBound caps the descent into reply trees, which arrive from an
// untrusted remote.
const depthBound = 1000

// loadComments persists the top-level comments of one submission in
// their source display order. Comments are ranked by the platform's
// "best" sort; a deleted comment keeps its rank slot but is not stored.
// Nested replies are not stored either, they only feed the reply count
// and conversation depth of their top-level ancestor.
func (s *Session) loadComments(comments []*redditapi.Comment) {
	for i, raw := range comments {
		rank := i + 1
		if raw.Body == model.DeletedBody {
			continue
		}
		s.registerUser(raw.Author)

		c := model.NewComment(raw, rank, len(raw.Replies), subtreeDepth(raw))
		if _, err := s.Store.Add(c); err != nil {
			s.Log.WithError(err).WithField("comment", raw.FullID).Warn("Could not store comment")
		}
	}
}

// subtreeDepth is the height of the reply tree rooted at c: 1 for a
// comment with no replies, otherwise 1 + the deepest reply.
func subtreeDepth(c *redditapi.Comment) int {
	return boundedDepth(c, depthBound)
}

func boundedDepth(c *redditapi.Comment, budget int) int {
	if budget <= 1 || len(c.Replies) == 0 {
		return 1
	}
	deepest := 0
	for _, reply := range c.Replies {
		if d := boundedDepth(reply, budget-1); d > deepest {
			deepest = d
		}
	}
	return 1 + deepest
}

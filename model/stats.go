package model

// PostStats accumulates the karma totals of one bucket of a user's
// history. The averages reflect only the most recent history the API
// pages out, not karma at time of posting.
type PostStats struct {
	Count    int
	PosKarma int
	NegKarma int
	NetKarma int
	AvgPos   *float64
	AvgNeg   *float64
	AvgNet   *float64
}

// Finalize computes the net total and the per-post averages. The
// averages stay nil for an empty bucket.
func (ps *PostStats) Finalize() {
	ps.NetKarma = ps.PosKarma - ps.NegKarma
	if ps.Count == 0 {
		return
	}
	n := float64(ps.Count)
	avgPos := float64(ps.PosKarma) / n
	avgNeg := float64(ps.NegKarma) / n
	avgNet := float64(ps.NetKarma) / n
	ps.AvgPos = &avgPos
	ps.AvgNeg = &avgNeg
	ps.AvgNet = &avgNet
}

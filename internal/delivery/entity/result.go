package entity

// FetchResult counts what one pipeline pass did.
type FetchResult struct {
	Campaigns int
	Sent      int
	Failed    int
	Skipped   int
}

func (r *FetchResult) Add(o FetchResult) {
	r.Campaigns += o.Campaigns
	r.Sent += o.Sent
	r.Failed += o.Failed
	r.Skipped += o.Skipped
}

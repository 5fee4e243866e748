package domain

// ChannelResult is the outcome of one removal directive.
type ChannelResult struct {
	ChannelID int64  `json:"channelId"`
	Title     string `json:"title"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// Summary aggregates a fan-out kick across every monitored channel.
type Summary struct {
	Total        int             `json:"total"`
	SuccessCount int             `json:"successCount"`
	FailCount    int             `json:"failCount"`
	Results      []ChannelResult `json:"perChannelResults"`
}

// NewSummary counts successes and failures over results.
func NewSummary(results []ChannelResult) *Summary {
	if results == nil {
		results = []ChannelResult{}
	}
	s := &Summary{Total: len(results), Results: results}
	for _, r := range results {
		if r.Success {
			s.SuccessCount++
		} else {
			s.FailCount++
		}
	}
	return s
}

package api

import (
	"reviewpipe/internal/database"
	"reviewpipe/internal/ingest"
)

// StatsResponse is the /stats payload: nested count maps keyed by bank.
type StatsResponse struct {
	SentimentByBank map[string]map[string]int `json:"sentiment_by_bank"`
	ThemesByBank    map[string]map[string]int `json:"themes_by_bank"`
}

// ReviewResponse is the JSON form of a persisted review.
type ReviewResponse struct {
	ReviewID        string   `json:"review_id,omitempty"`
	BankName        string   `json:"bank_name"`
	AppID           string   `json:"app_id,omitempty"`
	ReviewDate      string   `json:"review_date,omitempty"`
	Rating          int      `json:"rating"`
	Sentiment       string   `json:"sentiment"`
	SentimentScore  float64  `json:"sentiment_score"`
	Themes          []string `json:"themes"`
	KeywordsMatched []string `json:"keywords_matched"`
}

func toReviewResponse(r database.Review) ReviewResponse {
	resp := ReviewResponse{
		BankName:        r.BankName,
		AppID:           r.AppID,
		Rating:          r.Rating,
		Sentiment:       r.Sentiment,
		SentimentScore:  r.SentimentScore,
		Themes:          r.Themes,
		KeywordsMatched: r.KeywordsMatched,
	}
	if r.ReviewID != nil {
		resp.ReviewID = *r.ReviewID
	}
	if r.ReviewDate != nil {
		resp.ReviewDate = r.ReviewDate.Format(ingest.DateLayout)
	}
	return resp
}

func groupSentiments(counts []database.SentimentCount) map[string]map[string]int {
	grouped := make(map[string]map[string]int)
	for _, c := range counts {
		if grouped[c.BankName] == nil {
			grouped[c.BankName] = make(map[string]int)
		}
		grouped[c.BankName][c.Sentiment] = c.Count
	}
	return grouped
}

func groupThemes(counts []database.ThemeCount) map[string]map[string]int {
	grouped := make(map[string]map[string]int)
	for _, c := range counts {
		if grouped[c.BankName] == nil {
			grouped[c.BankName] = make(map[string]int)
		}
		grouped[c.BankName][c.Theme] = c.Count
	}
	return grouped
}

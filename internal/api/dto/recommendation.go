package dto

// RecommendationDateCount is one per-date row of loaded versus expected
// signal counts.
type RecommendationDateCount struct {
	SignalDate  string `json:"signal_date"`
	LoadedCount int    `json:"loaded_cnt"`
	TotalStocks int    `json:"total_stocks"`
	MissingCnt  int    `json:"missing_cnt"`
}

// RecommendationDatesResponse lists every signal date with counts.
type RecommendationDatesResponse struct {
	Items []RecommendationDateCount `json:"items"`
}

// RecommendationItem is one recommendation row joined with stock display
// fields.
type RecommendationItem struct {
	StockID       uint    `json:"stock_id"`
	SourceID      uint    `json:"source_id"`
	SignalDate    string  `json:"signal_date"`
	PositiveRatio float64 `json:"positive_ratio"`
	ThresholdUsed float64 `json:"threshold_used"`
	IsRecommended bool    `json:"is_recommended"`
	ActualIsUp    *bool   `json:"actual_is_up"`
	IsHit         *bool   `json:"is_hit"`
	StockTicker   string  `json:"stock_ticker"`
	StockNameKo   *string `json:"stock_name_ko"`
	StockNameEn   *string `json:"stock_name_en"`
}

// LatestRecommendationsResponse is the top-N payload for the chosen date.
type LatestRecommendationsResponse struct {
	SignalDate string               `json:"signal_date"`
	Items      []RecommendationItem `json:"items"`
}

// StockRecommendationItem is one row of a single stock's signal history.
type StockRecommendationItem struct {
	SignalDate    string  `json:"signal_date"`
	PositiveRatio float64 `json:"positive_ratio"`
	ThresholdUsed float64 `json:"threshold_used"`
	IsRecommended bool    `json:"is_recommended"`
	ActualIsUp    *bool   `json:"actual_is_up"`
	IsHit         *bool   `json:"is_hit"`
}

// StockRecommendationsResponse is one stock's history, newest first.
type StockRecommendationsResponse struct {
	StockID uint                      `json:"stock_id"`
	Items   []StockRecommendationItem `json:"items"`
}

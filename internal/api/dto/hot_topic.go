package dto

// HotTopicItem is one hot-topic row joined with stock display fields.
type HotTopicItem struct {
	StockID         uint    `json:"stock_id"`
	TopicDate       string  `json:"topic_date"`
	Mentions        int     `json:"mentions"`
	Mentions7dMA    float64 `json:"mentions_7d_ma"`
	DailyGrowthPct  float64 `json:"daily_growth_pct"`
	WeeklyGrowthPct float64 `json:"weekly_growth_pct"`
	Popularity      float64 `json:"popularity"`
	StockTicker     string  `json:"stock_ticker"`
	StockNameKo     *string `json:"stock_name_ko"`
	StockNameEn     *string `json:"stock_name_en"`
}

// HotTopicsResponse is the top-N hot topics for one date.
type HotTopicsResponse struct {
	TopicDate string         `json:"topic_date"`
	Items     []HotTopicItem `json:"items"`
}

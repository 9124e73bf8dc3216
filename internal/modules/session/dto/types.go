package dto

import "time"

type CompleteInput struct {
	StartedAt         *time.Time
	ConfiguredMinutes float64
}

type RecordOutput struct {
	Index    int    `json:"index"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Duration int    `json:"duration"`
}

type DateTotalOutput struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}

type SummaryOutput struct {
	Date     string            `json:"date"`
	Total    int               `json:"total"`
	Sessions int               `json:"sessions"`
	ByDate   []DateTotalOutput `json:"by_date"`
}

type ExportOutput struct {
	Paths []string
}

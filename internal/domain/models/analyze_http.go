package models

// AnalyzeRequest holds query parameters for the analyze endpoint.
type AnalyzeRequest struct {
	Limit       int    `query:"limit" json:"limit" default:"50" validate:"gte=1,lte=50"`
	Concurrency int    `query:"concurrency" json:"concurrency" default:"10" validate:"gte=1,lte=64"`
	Feed        string `query:"feed" json:"feed" default:"indicative" validate:"oneof=indicative opra"`
}

package models

// OptionsQuery holds filters for an options snapshot request.
type OptionsQuery struct {
	Feed              string
	Type              string // "call", "put", or empty for both
	Limit             int
	StrikePriceGTE    float64
	StrikePriceLTE    float64
	ExpirationDateGTE string
	ExpirationDateLTE string
	PageToken         string
}

// OptionQuote is the latest quote of a contract snapshot.
type OptionQuote struct {
	AskPrice float64 `json:"ap"`
	AskSize  float64 `json:"as"`
	BidPrice float64 `json:"bp"`
	BidSize  float64 `json:"bs"`
}

// OptionSnapshot is one entry of a snapshot map, keyed externally by
// contract key. Optional fields are frequently absent from the feed;
// readers must go through the documented fallback accessors on Contract.
type OptionSnapshot struct {
	LatestQuote       OptionQuote `json:"latestQuote"`
	ImpliedVolatility *float64    `json:"impliedVolatility,omitempty"`
	OpenInterest      *float64    `json:"openInterest,omitempty"`
	UnderlyingPrice   *float64    `json:"underlyingPrice,omitempty"`
}

// OptionsResponse mirrors the snapshot endpoint payload.
type OptionsResponse struct {
	Snapshots map[string]OptionSnapshot `json:"snapshots"`
	PageToken string                    `json:"next_page_token,omitempty"`
}

// Contract is a snapshot with its identifying contract key attached,
// the unit all downstream scoring operates on.
type Contract struct {
	Key      string         `json:"contract_key"`
	Snapshot OptionSnapshot `json:"snapshot"`
}

// EntryPrice is the premium paid to open the position (ask side).
func (c Contract) EntryPrice() float64 {
	return c.Snapshot.LatestQuote.AskPrice
}

// Volume returns the contract's traded-size figure. The feed reports
// quote size rather than session volume, so ask size stands in as the
// liquidity proxy throughout selection and scoring.
func (c Contract) Volume() float64 {
	return c.Snapshot.LatestQuote.AskSize
}

// OpenInterestOrProxy returns open interest when the feed provides it.
// When absent, traded volume substitutes as an explicit proxy; the
// second return reports whether the proxy was used.
func (c Contract) OpenInterestOrProxy() (float64, bool) {
	if c.Snapshot.OpenInterest != nil {
		return *c.Snapshot.OpenInterest, false
	}
	return c.Volume(), true
}

// Contract slot names. The two slots rank by liquidity, not expiration:
// "leap" is only the second-ranked candidate.
const (
	ContractShortTerm = "short_term"
	ContractLeap      = "leap"
)

// OptionAnalysis is a selected, scored contract for one symbol.
type OptionAnalysis struct {
	ContractType          string   `json:"contract_type"`
	Contract              Contract `json:"contract"`
	OptionScore           float64  `json:"option_score"`
	UndervaluedIndicators []string `json:"undervalued_indicators"`
}

package risk

import "strings"

// sectorRisk classifies a ticker into hazardous sector buckets, each
// contributing a fixed additive penalty.
func sectorRisk(symbol string) (float64, []string) {
	var score float64
	var factors []string

	if isBiotechSymbol(symbol) {
		score += 0.3
		factors = append(factors, "Biotech sector - high regulatory and clinical trial risk")
	}
	if isSmallBiotech(symbol) {
		score += 0.2
		factors = append(factors, "Small biotech - extreme volatility and binary outcomes")
	}
	if containsAny(symbol, energyIndicators) {
		score += 0.15
		factors = append(factors, "Energy sector - commodity price volatility")
	}
	if containsAny(symbol, materialsIndicators) {
		score += 0.2
		factors = append(factors, "Materials sector - commodity and economic cycle risk")
	}

	return score, factors
}

var biotechIndicators = []string{
	"BIO", "PHARMA", "THERA", "GEN", "CELL", "MED", "CURE", "LIFE", "HEALTH",
	"ATYR", "OSCR", "RCAT", "AREC", "HYLN", "UUUU",
}

var smallBiotechTickers = map[string]struct{}{
	"ATYR": {}, "OSCR": {}, "RCAT": {}, "AREC": {}, "HYLN": {}, "UUUU": {},
}

var energyIndicators = []string{"OIL", "GAS", "ENERGY", "POWER", "FUEL", "DRILL"}

var materialsIndicators = []string{"MINING", "METAL", "GOLD", "SILVER", "COPPER", "STEEL"}

func isBiotechSymbol(symbol string) bool {
	return containsAny(symbol, biotechIndicators)
}

func isSmallBiotech(symbol string) bool {
	_, ok := smallBiotechTickers[symbol]
	return ok
}

func containsAny(symbol string, indicators []string) bool {
	for _, ind := range indicators {
		if strings.Contains(symbol, ind) {
			return true
		}
	}
	return false
}

// EstimateMarketCap is a coarse share-count heuristic times price.
// Real market cap data would come from a reference feed; unknown
// tickers default to a small-cap share count.
func EstimateMarketCap(symbol string, price float64) float64 {
	var shares float64
	switch symbol {
	case "AAPL", "MSFT", "GOOGL", "AMZN", "TSLA":
		shares = 15_000_000_000
	case "NIO", "BAC":
		shares = 2_000_000_000
	default:
		shares = 50_000_000
	}
	return price * shares
}

// ClassifySector maps a ticker to a coarse sector label for portfolio
// exposure reporting.
func ClassifySector(symbol string) string {
	s := strings.ToUpper(symbol)
	switch {
	case hasAnyPrefix(s, "AAPL", "MSFT", "GOOGL", "AMZN", "META", "NVDA", "TSLA", "NFLX"):
		return "TECH"
	case hasAnyPrefix(s, "JPM", "BAC", "WFC", "GS", "MS", "C"):
		return "FINANCE"
	case hasAnyPrefix(s, "JNJ", "PFE", "UNH", "ABBV", "MRK", "TMO"):
		return "HEALTHCARE"
	case hasAnyPrefix(s, "XOM", "CVX", "COP", "EOG"):
		return "ENERGY"
	case hasAnyPrefix(s, "WMT", "PG", "KO", "PEP"):
		return "CONSUMER"
	default:
		return "OTHER"
	}
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

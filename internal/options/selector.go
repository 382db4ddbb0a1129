package options

import (
	"math"
	"sort"
	"time"

	"OptionFlow/internal/domain/models"
	"OptionFlow/internal/quant"
)

// Selector ranks a symbol's snapshot map by liquidity and scores the
// two most liquid contracts. Quote size stands in for session volume,
// so "short_term" and "leap" name the first and second rank only; the
// slots carry no expiration guarantee.
type Selector struct {
	engine *quant.Engine
}

// NewSelector creates a Selector scoring with the given engine.
func NewSelector(engine *quant.Engine) *Selector {
	return &Selector{engine: engine}
}

// Analyze picks the single best contract out of a snapshot map: rank
// by volume, score the top two candidates, emit the higher scorer
// (ties go to the first rank). Returns an empty slice when the map has
// no contracts.
func (s *Selector) Analyze(snapshots map[string]models.OptionSnapshot, now time.Time) []models.OptionAnalysis {
	ranked := RankByVolume(snapshots)
	if len(ranked) == 0 {
		return nil
	}

	best := s.analyzeOne(models.ContractShortTerm, ranked[0], now)
	if len(ranked) > 1 {
		second := s.analyzeOne(models.ContractLeap, ranked[1], now)
		if second.OptionScore > best.OptionScore {
			best = second
		}
	}
	return []models.OptionAnalysis{best}
}

func (s *Selector) analyzeOne(contractType string, c models.Contract, now time.Time) models.OptionAnalysis {
	facts := Extract(c, now)
	composite := s.composite(facts, now)
	return models.OptionAnalysis{
		ContractType:          contractType,
		Contract:              c,
		OptionScore:           scoreFacts(facts, composite),
		UndervaluedIndicators: indicators(facts, composite),
	}
}

// RankByVolume returns contracts sorted by volume descending, key
// ascending on equal volume so ranking is deterministic across runs.
func RankByVolume(snapshots map[string]models.OptionSnapshot) []models.Contract {
	contracts := make([]models.Contract, 0, len(snapshots))
	for key, snap := range snapshots {
		contracts = append(contracts, models.Contract{Key: key, Snapshot: snap})
	}
	sort.Slice(contracts, func(i, j int) bool {
		if contracts[i].Volume() != contracts[j].Volume() {
			return contracts[i].Volume() > contracts[j].Volume()
		}
		return contracts[i].Key < contracts[j].Key
	})
	return contracts
}

// Score rates one contract. Exposed for tests and orchestration code
// that already has a single contract in hand.
func (s *Selector) Score(c models.Contract, now time.Time) float64 {
	facts := Extract(c, now)
	return scoreFacts(facts, s.composite(facts, now))
}

func (s *Selector) composite(facts Facts, now time.Time) float64 {
	r, ok := s.engine.Compute(quant.Input{
		EntryPrice:   facts.EntryPrice,
		Strike:       facts.Strike,
		Spot:         facts.Spot,
		Volume:       facts.Volume,
		OpenInterest: facts.OpenInterest,
		ImpliedVol:   facts.ImpliedVol,
		DaysToExpiry: facts.DaysToExpiry,
	}, now)
	if !ok {
		return 0
	}
	return r.CompositeScore
}

// scoreFacts combines the composite metrics share with volume and
// affordability bonuses, a horizon adjustment, and an open-interest
// liquidity term.
func scoreFacts(facts Facts, composite float64) float64 {
	score := composite * 0.3

	score += math.Min(facts.Volume/1000.0, 10.0)

	if facts.EntryPrice > 0 {
		score += math.Min(1.0/facts.EntryPrice, 5.0)
	}

	if facts.DateKnown {
		switch {
		case facts.DaysToExpiry < 30:
			score -= 2.0 // theta burn
		case facts.DaysToExpiry > 365:
			score -= 1.0
		default:
			score += 1.0
		}
	}

	if !facts.OIProxied {
		switch {
		case facts.OpenInterest > 1000:
			score += 2.0
		case facts.OpenInterest > 100:
			score += 1.0
		case facts.OpenInterest < 50:
			score -= 1.0
		}
	}

	return score
}

func indicators(facts Facts, composite float64) []string {
	var out []string
	if facts.Volume > 1000 {
		out = append(out, "High volume")
	}
	if facts.EntryPrice > 0 && facts.EntryPrice < 1.0 {
		out = append(out, "Low cost entry")
	}
	if composite > 0.7 {
		out = append(out, "Strong sentiment")
	}
	return out
}

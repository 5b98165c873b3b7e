package game

import "github.com/robalobadob/vocabdrill/internal/words"

// Card is one side of a pair in the matching game.
type Card struct {
	ID     int64  `json:"id"`
	Text   string `json:"text"`
	PairID int64  `json:"pair_id"`
}

// MatchSet is a dealt matching game: terms on the front, translations on the
// back, each side shuffled on its own.
type MatchSet struct {
	FrontCards []Card `json:"front_cards"`
	BackCards  []Card `json:"back_cards"`
	TotalPairs int    `json:"total_pairs"`
}

// Deal turns the selected words into independently shuffled front and back
// card sequences.
func Deal(ws []words.Word, rng Rand) *MatchSet {
	front := make([]Card, 0, len(ws))
	back := make([]Card, 0, len(ws))
	for _, w := range ws {
		front = append(front, Card{ID: w.ID, Text: w.Term, PairID: w.ID})
		back = append(back, Card{ID: w.ID, Text: w.Translation, PairID: w.ID})
	}
	shuffle(rng, front)
	shuffle(rng, back)
	return &MatchSet{FrontCards: front, BackCards: back, TotalPairs: len(ws)}
}

// dailySet draws DailySetSize words uniformly from the whole pool.
func dailySet(pool []words.Word, p Params, rng Rand) ([]words.Word, error) {
	if len(pool) < p.DailySetSize {
		return nil, &InsufficientPoolError{Min: p.DailySetSize, Have: len(pool)}
	}
	return sample(rng, pool, p.DailySetSize), nil
}

// standardSet draws up to PriorityCap words from the priority tier, fills
// from the other tier, then tops up from whatever is left of the pool until
// SetSize words are chosen or the pool runs out.
func standardSet(pool []words.Word, p Params, rng Rand) ([]words.Word, error) {
	if len(pool) < p.MinStandardPool {
		return nil, &InsufficientPoolError{Min: p.MinStandardPool, Have: len(pool)}
	}
	t := Partition(pool, p.TierFraction)

	chosen := sample(rng, t.Priority, min(len(t.Priority), p.PriorityCap))
	if need := p.SetSize - len(chosen); need > 0 {
		chosen = append(chosen, sample(rng, t.Other, min(len(t.Other), need))...)
	}

	if need := p.SetSize - len(chosen); need > 0 {
		taken := make(map[int64]struct{}, len(chosen))
		for _, w := range chosen {
			taken[w.ID] = struct{}{}
		}
		remaining := make([]words.Word, 0, len(pool)-len(chosen))
		for _, w := range pool {
			if _, ok := taken[w.ID]; !ok {
				remaining = append(remaining, w)
			}
		}
		chosen = append(chosen, sample(rng, remaining, need)...)
	}

	if len(chosen) > p.SetSize {
		chosen = chosen[:p.SetSize]
	}
	shuffle(rng, chosen)
	return chosen, nil
}

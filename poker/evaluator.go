package poker

import (
	"fmt"

	ph "github.com/paulhankin/poker"
)

// ShowdownResult describes one hand's outcome at showdown.
type ShowdownResult struct {
	IsWinner        bool
	Score           int16
	HandDescription string
}

// Evaluator ranks 7-card holdem hands. It wraps the lookup-table
// evaluator from github.com/paulhankin/poker; higher scores beat
// lower scores.
type Evaluator struct{}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

func toLibCard(c Card) (ph.Card, error) {
	var suit ph.Suit
	switch c.Suit() {
	case Clubs:
		suit = ph.Club
	case Diamonds:
		suit = ph.Diamond
	case Hearts:
		suit = ph.Heart
	case Spades:
		suit = ph.Spade
	default:
		return 0, fmt.Errorf("invalid suit in card [%s]", c.String())
	}

	// Our ranks run 0 (deuce) .. 12 (ace); the library uses 1 (ace) .. 13 (king).
	var rank ph.Rank
	switch c.Rank() {
	case 12:
		rank = ph.Rank(1)
	default:
		rank = ph.Rank(c.Rank() + 2)
	}

	card, err := ph.MakeCard(suit, rank)
	if err != nil {
		return 0, err
	}
	return card, nil
}

// Score evaluates a 7-card hand (2 hole + 5 community).
func (e *Evaluator) Score(cards []Card) (int16, error) {
	if len(cards) != 7 {
		return 0, fmt.Errorf("hand evaluation needs 7 cards, got %d", len(cards))
	}
	var hand [7]ph.Card
	for i, c := range cards {
		libCard, err := toLibCard(c)
		if err != nil {
			return 0, err
		}
		hand[i] = libCard
	}
	return ph.Eval7(&hand), nil
}

// Describe returns a human-readable description of the best 5-card
// hand within the given cards ("two pair, kings and fours", etc).
func (e *Evaluator) Describe(cards []Card) (string, error) {
	libCards := make([]ph.Card, len(cards))
	for i, c := range cards {
		libCard, err := toLibCard(c)
		if err != nil {
			return "", err
		}
		libCards[i] = libCard
	}
	return ph.Describe(libCards)
}

// Showdown compares any number of 7-card hands and flags the winners.
// Ties split: every hand matching the best score is a winner.
func (e *Evaluator) Showdown(hands [][]Card) ([]ShowdownResult, error) {
	if len(hands) == 0 {
		return nil, fmt.Errorf("no hands to compare")
	}

	results := make([]ShowdownResult, len(hands))
	best := int16(-1)
	for i, hand := range hands {
		score, err := e.Score(hand)
		if err != nil {
			return nil, err
		}
		description, err := e.Describe(hand)
		if err != nil {
			return nil, err
		}
		results[i] = ShowdownResult{Score: score, HandDescription: description}
		if score > best {
			best = score
		}
	}
	for i := range results {
		results[i].IsWinner = results[i].Score == best
	}
	return results, nil
}

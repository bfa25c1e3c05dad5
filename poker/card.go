package poker

import (
	"fmt"
	"strings"
)

// Card is a playing card packed into a byte.
// High 4 bits are the rank (0: 2 .. 12: A), low 4 bits the suit.
type Card uint8

const (
	Clubs    int32 = 1
	Diamonds int32 = 2
	Hearts   int32 = 4
	Spades   int32 = 8
)

var (
	strRanks = "23456789TJQKA"
	// Mnemonics use upper-case suit letters, e.g. "AS", "TD", "2C".
	charSuitToIntSuit = map[uint8]int32{
		'C': Clubs,
		'D': Diamonds,
		'H': Hearts,
		'S': Spades,
	}
	intSuitToCharSuit = map[int32]string{
		Clubs:    "C",
		Diamonds: "D",
		Hearts:   "H",
		Spades:   "S",
	}
	charRankToIntRank = map[uint8]int32{}
)

func init() {
	for i := range strRanks {
		charRankToIntRank[strRanks[i]] = int32(i)
	}
}

// NewCard parses a two-character mnemonic such as "AS" or "7D".
// Mnemonics are exact: no whitespace, upper-case only.
func NewCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card mnemonic [%s]", s)
	}
	rank, ok := charRankToIntRank[s[0]]
	if !ok {
		return 0, fmt.Errorf("invalid card rank [%s]", s)
	}
	suit, ok := charSuitToIntSuit[s[1]]
	if !ok {
		return 0, fmt.Errorf("invalid card suit [%s]", s)
	}
	return Card(uint8(rank)<<4 | uint8(suit)), nil
}

// MustCard is NewCard that panics on a bad mnemonic. For tests and literals.
func MustCard(s string) Card {
	c, err := NewCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Card) Rank() int32 {
	return int32(c) >> 4
}

func (c Card) Suit() int32 {
	return int32(c) & 0xF
}

func (c Card) String() string {
	rank := c.Rank()
	if rank < 0 || rank >= int32(len(strRanks)) {
		return "??"
	}
	suit, ok := intSuitToCharSuit[c.Suit()]
	if !ok {
		return "??"
	}
	return string(strRanks[rank]) + suit
}

func (c Card) MarshalJSON() ([]byte, error) {
	return []byte("\"" + c.String() + "\""), nil
}

func (c *Card) UnmarshalJSON(b []byte) error {
	if len(b) < 4 {
		return fmt.Errorf("invalid card json [%s]", string(b))
	}
	card, err := NewCard(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*c = card
	return nil
}

// CardsToString renders cards as a dash-separated mnemonic string,
// the wire form used in snapshots and new-hand payloads.
func CardsToString(cards []Card) string {
	mnemonics := make([]string, len(cards))
	for i, c := range cards {
		mnemonics[i] = c.String()
	}
	return strings.Join(mnemonics, "-")
}

// CardsFromString parses a dash-separated mnemonic string.
func CardsFromString(s string) ([]Card, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	tokens := strings.Split(s, "-")
	cards := make([]Card, len(tokens))
	for i, token := range tokens {
		card, err := NewCard(token)
		if err != nil {
			return nil, err
		}
		cards[i] = card
	}
	return cards, nil
}

package poker

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	mathrand "math/rand"
)

var fullDeck []Card

func init() {
	fullDeck = initializeFullCards()
}

// Deck is an ordered run of cards with a draw cursor. The ordering is
// fixed at construction; callers that need determinism construct the
// deck from a seed or from a pre-shuffled mnemonic string.
type Deck struct {
	cards []Card
	top   int
}

func initializeFullCards() []Card {
	var cards []Card
	for _, suit := range []string{"C", "D", "H", "S"} {
		for i := range strRanks {
			cards = append(cards, MustCard(string(strRanks[i])+suit))
		}
	}
	return cards
}

func newSeed() int64 {
	var b [8]byte
	_, err := rand.Read(b[:])
	if err != nil {
		panic("cannot seed math/rand package with cryptographically secure random number generator")
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// NewDeck returns a freshly shuffled deck with a crypto-sourced seed.
func NewDeck() *Deck {
	return NewDeckFromSeed(newSeed())
}

// NewDeckFromSeed returns a deck whose ordering is fully determined
// by the seed. Same seed, same ordering.
func NewDeckFromSeed(seed int64) *Deck {
	deck := &Deck{}
	deck.cards = make([]Card, len(fullDeck))
	copy(deck.cards, fullDeck)

	randGen := mathrand.New(mathrand.NewSource(seed))
	for i := len(deck.cards) - 1; i > 0; i-- {
		j := randGen.Intn(i + 1)
		deck.cards[i], deck.cards[j] = deck.cards[j], deck.cards[i]
	}
	return deck
}

// NewDeckFromSeeds shuffles with a caller-supplied list of 52 swap
// seeds, one per deck position. The same list always yields the same
// ordering, letting an external shuffler dictate the deck without
// naming cards.
func NewDeckFromSeeds(seeds []int64) (*Deck, error) {
	if len(seeds) != 52 {
		return nil, fmt.Errorf("seed must contain exactly 52 numbers, got %d", len(seeds))
	}
	deck := &Deck{}
	deck.cards = make([]Card, len(fullDeck))
	copy(deck.cards, fullDeck)
	for i := len(deck.cards) - 1; i > 0; i-- {
		j := int(seeds[i]%int64(i+1) + int64(i+1)) % (i + 1)
		deck.cards[i], deck.cards[j] = deck.cards[j], deck.cards[i]
	}
	return deck, nil
}

// NewDeckFromString restores a deck from a dash-separated mnemonic
// string, e.g. "AC-2C-...-KS". All 52 cards must be present exactly once.
func NewDeckFromString(s string) (*Deck, error) {
	cards, err := CardsFromString(s)
	if err != nil {
		return nil, err
	}
	if len(cards) != 52 {
		return nil, fmt.Errorf("deck must contain 52 cards, got %d", len(cards))
	}
	seen := make(map[Card]bool, 52)
	for _, c := range cards {
		if seen[c] {
			return nil, fmt.Errorf("duplicate card [%s] in deck", c.String())
		}
		seen[c] = true
	}
	return &Deck{cards: cards}, nil
}

// Draw removes and returns the next n cards.
func (deck *Deck) Draw(n int) []Card {
	cards := make([]Card, n)
	copy(cards, deck.cards[deck.top:deck.top+n])
	deck.top += n
	return cards
}

func (deck *Deck) DrawOne() Card {
	card := deck.cards[deck.top]
	deck.top++
	return card
}

func (deck *Deck) Remaining() int {
	return len(deck.cards) - deck.top
}

func (deck *Deck) Empty() bool {
	return deck.Remaining() == 0
}

// String renders the full ordering (drawn cards included), so a
// restored deck round-trips exactly.
func (deck *Deck) String() string {
	return CardsToString(deck.cards)
}

// Hash is a digest of the deck ordering, carried in snapshots so
// callers can detect a substituted deck without revealing it.
func (deck *Deck) Hash() string {
	sum := sha256.Sum256([]byte(deck.String()))
	return hex.EncodeToString(sum[:])
}

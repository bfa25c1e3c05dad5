package game

import (
	"sort"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/tablerock/holdem/poker"
)

var snapshotJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// Chip amounts travel as decimal strings so snapshots survive JSON
// readers that mangle large integers.

type playerDTO struct {
	Address   string       `json:"address"`
	Seat      int          `json:"seat"`
	Chips     string       `json:"chips"`
	HoleCards []string     `json:"holeCards,omitempty"`
	Status    PlayerStatus `json:"status"`
}

type turnDTO struct {
	PlayerID  string     `json:"playerId"`
	Action    ActionType `json:"action"`
	Amount    string     `json:"amount"`
	Index     int        `json:"index"`
	Seat      int        `json:"seat"`
	Round     string     `json:"round"`
	Timestamp int64      `json:"timestamp"`
}

type winnerDTO struct {
	Address     string   `json:"address"`
	Amount      string   `json:"amount"`
	Cards       []string `json:"cards,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
}

type resultDTO struct {
	Place    int    `json:"place"`
	PlayerID string `json:"playerId"`
	Payout   string `json:"payout"`
	Claimed  bool   `json:"claimed"`
}

type gameSnapshot struct {
	Type            string      `json:"type"`
	Address         string      `json:"address"`
	GameOptions     GameOptions `json:"gameOptions"`
	Dealer          int         `json:"dealer"`
	HandNumber      int         `json:"handNumber"`
	ActionCount     int         `json:"actionCount"`
	Round           string      `json:"round"`
	CommunityCards  []string    `json:"communityCards"`
	Board           []string    `json:"board,omitempty"`
	Deck            string      `json:"deck,omitempty"`
	DeckHash        string      `json:"deckHash,omitempty"`
	Pot             string      `json:"pot"`
	NextToAct       int         `json:"nextToAct"`
	Players         []playerDTO `json:"players"`
	PreviousActions []turnDTO   `json:"previousActions"`
	Winners         []winnerDTO `json:"winners"`
	Results         []resultDTO `json:"results,omitempty"`
}

func chipsToString(c Chips) string {
	return strconv.FormatUint(c, 10)
}

func chipsFromString(s string) (Chips, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseUint(s, 10, 64)
}

// ToJSON serializes the table for the given caller. The zero caller
// is the trusted persistence view: it carries the deck ordering and
// every hole card, and FromJSON can reconstruct the exact state from
// it. Any other caller sees only its own hole cards (and the cards of
// players who are showing), with the deck reduced to its hash.
func (g *TexasHoldemGame) ToJSON(caller string) ([]byte, error) {
	trusted := caller == ""

	snapshot := gameSnapshot{
		Type:           "texas-holdem",
		Address:        g.address,
		GameOptions:    g.options,
		Dealer:         g.dealer,
		HandNumber:     g.handNumber,
		ActionCount:    g.actionCount,
		Round:          g.currentRound.String(),
		CommunityCards: cardMnemonics(g.communityCards),
		Pot:            chipsToString(g.GetPot()),
	}
	if snapshot.CommunityCards == nil {
		snapshot.CommunityCards = []string{}
	}

	if g.deck != nil {
		snapshot.DeckHash = g.deck.Hash()
		if trusted {
			snapshot.Deck = g.deck.String()
		}
	}
	if trusted {
		snapshot.Board = cardMnemonics(g.board)
	}

	if next := g.GetNextPlayerToAct(); next != nil {
		snapshot.NextToAct = g.PlayerSeat(next.Address)
	}

	for _, player := range g.GetSeatedPlayers() {
		dto := playerDTO{
			Address: player.Address,
			Seat:    g.PlayerSeat(player.Address),
			Chips:   chipsToString(player.Chips),
			Status:  player.Status,
		}
		visible := trusted ||
			equalAddress(player.Address, caller) ||
			player.Status == PlayerStatusShowing
		if visible {
			dto.HoleCards = cardMnemonics(player.HoleCards)
		}
		snapshot.Players = append(snapshot.Players, dto)
	}

	for round := RoundAnte; round <= RoundEnd; round++ {
		for _, turn := range g.rounds[round] {
			snapshot.PreviousActions = append(snapshot.PreviousActions, turnDTO{
				PlayerID:  turn.PlayerID,
				Action:    turn.Action,
				Amount:    chipsToString(turn.Amount),
				Index:     turn.Index,
				Seat:      turn.Seat,
				Round:     round.String(),
				Timestamp: turn.Timestamp,
			})
		}
	}
	sort.SliceStable(snapshot.PreviousActions, func(i, j int) bool {
		return snapshot.PreviousActions[i].Index < snapshot.PreviousActions[j].Index
	})

	addresses := make([]string, 0, len(g.winners))
	for address := range g.winners {
		addresses = append(addresses, address)
	}
	sort.Strings(addresses)
	for _, address := range addresses {
		winner := g.winners[address]
		snapshot.Winners = append(snapshot.Winners, winnerDTO{
			Address:     address,
			Amount:      chipsToString(winner.Amount),
			Cards:       winner.Cards,
			Name:        winner.Name,
			Description: winner.Description,
		})
	}

	for _, result := range g.results {
		snapshot.Results = append(snapshot.Results, resultDTO{
			Place:    result.Place,
			PlayerID: result.PlayerID,
			Payout:   chipsToString(result.Payout),
			Claimed:  result.Claimed,
		})
	}

	return snapshotJSON.Marshal(snapshot)
}

// FromJSON reconstructs a table from a trusted snapshot. The same
// snapshot and options always produce the same in-memory state.
func FromJSON(data []byte, evaluator HandEvaluator) (*TexasHoldemGame, error) {
	var snapshot gameSnapshot
	if err := snapshotJSON.Unmarshal(data, &snapshot); err != nil {
		return nil, errors.Wrap(err, "unmarshaling game snapshot")
	}

	g := NewTexasHoldemGame(snapshot.Address, snapshot.GameOptions, evaluator)
	if snapshot.Dealer > 0 {
		g.dealer = snapshot.Dealer
	}
	if snapshot.HandNumber > 0 {
		g.handNumber = snapshot.HandNumber
	}
	g.actionCount = snapshot.ActionCount

	round, err := ParseRound(snapshot.Round)
	if err != nil {
		return nil, err
	}
	g.currentRound = round
	if _, ok := g.rounds[round]; !ok {
		g.rounds[round] = []TurnWithSeat{}
	}

	if g.communityCards, err = mnemonicCards(snapshot.CommunityCards); err != nil {
		return nil, err
	}
	if g.board, err = mnemonicCards(snapshot.Board); err != nil {
		return nil, err
	}
	if snapshot.Deck != "" {
		if g.deck, err = poker.NewDeckFromString(snapshot.Deck); err != nil {
			return nil, errors.Wrap(err, "restoring deck")
		}
	}

	for _, dto := range snapshot.Players {
		chips, err := chipsFromString(dto.Chips)
		if err != nil {
			return nil, errors.Wrapf(err, "player %s chips", dto.Address)
		}
		player := NewPlayer(dto.Address, chips, dto.Status)
		if player.HoleCards, err = mnemonicCards(dto.HoleCards); err != nil {
			return nil, err
		}
		if dto.Seat < 1 || dto.Seat > g.options.MaxPlayers {
			return nil, SeatError{Seat: dto.Seat}
		}
		if g.players[dto.Seat] != nil {
			return nil, SeatError{Seat: dto.Seat, Msg: "duplicate seat in snapshot"}
		}
		if g.Exists(dto.Address) {
			return nil, DuplicatePlayerError{Address: dto.Address}
		}
		g.players[dto.Seat] = player
	}

	for _, dto := range snapshot.PreviousActions {
		amount, err := chipsFromString(dto.Amount)
		if err != nil {
			return nil, errors.Wrapf(err, "turn %d amount", dto.Index)
		}
		turnRound, err := ParseRound(dto.Round)
		if err != nil {
			return nil, err
		}
		g.rounds[turnRound] = append(g.rounds[turnRound], TurnWithSeat{
			Turn: Turn{
				PlayerID: dto.PlayerID,
				Action:   dto.Action,
				Amount:   amount,
				Index:    dto.Index,
			},
			Seat:      dto.Seat,
			Timestamp: dto.Timestamp,
		})
	}

	for _, dto := range snapshot.Winners {
		amount, err := chipsFromString(dto.Amount)
		if err != nil {
			return nil, errors.Wrapf(err, "winner %s amount", dto.Address)
		}
		g.winners[dto.Address] = Winner{
			Amount:      amount,
			Cards:       dto.Cards,
			Name:        dto.Name,
			Description: dto.Description,
		}
	}

	for _, dto := range snapshot.Results {
		payout, err := chipsFromString(dto.Payout)
		if err != nil {
			return nil, errors.Wrapf(err, "result %s payout", dto.PlayerID)
		}
		g.results = append(g.results, &Result{
			Place:    dto.Place,
			PlayerID: dto.PlayerID,
			Payout:   payout,
			Claimed:  dto.Claimed,
		})
	}

	return g, nil
}

func cardMnemonics(cards []poker.Card) []string {
	if len(cards) == 0 {
		return nil
	}
	out := make([]string, len(cards))
	for i, card := range cards {
		out[i] = card.String()
	}
	return out
}

func mnemonicCards(mnemonics []string) ([]poker.Card, error) {
	if len(mnemonics) == 0 {
		return nil, nil
	}
	cards := make([]poker.Card, len(mnemonics))
	for i, mnemonic := range mnemonics {
		card, err := poker.NewCard(mnemonic)
		if err != nil {
			return nil, err
		}
		cards[i] = card
	}
	return cards, nil
}

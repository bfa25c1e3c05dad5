package game

import (
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/tablerock/holdem/logging"
	"github.com/tablerock/holdem/poker"
)

var holdemLogger = log.With().Str("logger_name", "game::holdem").Logger()

// HandEvaluator is the hand-ranking oracle the engine consults at
// showdown. The comparison algorithm itself lives outside the engine.
type HandEvaluator interface {
	Showdown(hands [][]poker.Card) ([]poker.ShowdownResult, error)
}

// TexasHoldemGame owns the authoritative state of one table: the seat
// map, the per-round turn history, and the current round. A single
// goroutine owns an instance for the duration of a replay-then-apply
// cycle; the engine itself takes no locks.
type TexasHoldemGame struct {
	address      string
	options      GameOptions
	dealer       int
	handNumber   int
	actionCount  int
	currentRound Round

	communityCards []poker.Card
	board          []poker.Card // full 5-card runout, set aside at deal time
	deck           *poker.Deck

	players map[int]*Player
	rounds  map[Round][]TurnWithSeat
	winners map[string]Winner
	results []*Result

	evaluator     HandEvaluator
	dealerManager *DealerPositionManager

	// Caller-supplied timestamp of the action currently being applied.
	// Wall clocks are never consulted; determinism requires the caller
	// to pin every action to its ledger time.
	actionTimestamp int64
}

// NewTexasHoldemGame creates an empty table. A fresh table sits in the
// END round with no hand played yet; the first new-hand action, which
// carries the deck, opens hand one. Callers restoring a persisted
// table go through FromJSON instead.
func NewTexasHoldemGame(address string, options GameOptions, evaluator HandEvaluator) *TexasHoldemGame {
	g := &TexasHoldemGame{
		address:      address,
		options:      options,
		dealer:       1,
		currentRound: RoundEnd,
		evaluator:    evaluator,
		players:      make(map[int]*Player),
		rounds:       make(map[Round][]TurnWithSeat),
		winners:      make(map[string]Winner),
	}
	g.rounds[RoundEnd] = []TurnWithSeat{}
	g.dealerManager = NewDealerPositionManager(g)
	return g
}

// SetDealerManager swaps in an externally constructed rotation
// manager. Tests use this; production code keeps the default.
func (g *TexasHoldemGame) SetDealerManager(dm *DealerPositionManager) {
	g.dealerManager = dm
}

func (g *TexasHoldemGame) Address() string       { return g.address }
func (g *TexasHoldemGame) Options() GameOptions  { return g.options }
func (g *TexasHoldemGame) CurrentRound() Round   { return g.currentRound }
func (g *TexasHoldemGame) HandNumber() int       { return g.handNumber }
func (g *TexasHoldemGame) DealerPosition() int   { return g.dealer }
func (g *TexasHoldemGame) MinPlayers() int       { return g.options.MinPlayers }
func (g *TexasHoldemGame) MaxPlayers() int       { return g.options.MaxPlayers }
func (g *TexasHoldemGame) SmallBlind() Chips     { return g.options.SmallBlind }
func (g *TexasHoldemGame) BigBlind() Chips       { return g.options.BigBlind }
func (g *TexasHoldemGame) Type() GameType        { return g.options.Type }
func (g *TexasHoldemGame) Winners() map[string]Winner {
	return g.winners
}

func (g *TexasHoldemGame) CommunityCards() []poker.Card {
	cards := make([]poker.Card, len(g.communityCards))
	copy(cards, g.communityCards)
	return cards
}

// ==================== PLAYER MANAGEMENT ====================

func equalAddress(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Exists reports whether the address occupies a seat.
func (g *TexasHoldemGame) Exists(address string) bool {
	for _, player := range g.players {
		if player != nil && equalAddress(player.Address, address) {
			return true
		}
	}
	return false
}

// GetPlayer returns the seated player for the address.
func (g *TexasHoldemGame) GetPlayer(address string) (*Player, error) {
	for _, player := range g.players {
		if player != nil && equalAddress(player.Address, address) {
			return player, nil
		}
	}
	return nil, PlayerNotFoundError{Address: address}
}

func (g *TexasHoldemGame) GetPlayerStatus(address string) PlayerStatus {
	player, err := g.GetPlayer(address)
	if err != nil {
		return ""
	}
	return player.Status
}

// PlayerAtSeat returns the player at the seat, nil for an empty seat.
func (g *TexasHoldemGame) PlayerAtSeat(seat int) *Player {
	return g.players[seat]
}

// PlayerSeat returns the seat number for the address, 0 if not seated.
func (g *TexasHoldemGame) PlayerSeat(address string) int {
	for seat, player := range g.players {
		if player != nil && equalAddress(player.Address, address) {
			return seat
		}
	}
	return 0
}

// GetSeatedPlayers returns seated players ordered by seat number.
func (g *TexasHoldemGame) GetSeatedPlayers() []*Player {
	seats := make([]int, 0, len(g.players))
	for seat, player := range g.players {
		if player != nil {
			seats = append(seats, seat)
		}
	}
	sort.Ints(seats)
	players := make([]*Player, 0, len(seats))
	for _, seat := range seats {
		players = append(players, g.players[seat])
	}
	return players
}

func (g *TexasHoldemGame) PlayerCount() int {
	return len(g.GetSeatedPlayers())
}

// FindActivePlayers returns seated players with ACTIVE status, in
// seat order.
func (g *TexasHoldemGame) FindActivePlayers() []*Player {
	var active []*Player
	for _, player := range g.GetSeatedPlayers() {
		if player.Status == PlayerStatusActive {
			active = append(active, player)
		}
	}
	return active
}

// FindLivePlayers returns players still eligible for the pot: not
// folded, busted or sitting out. All-in players stay live even on a
// zero stack.
func (g *TexasHoldemGame) FindLivePlayers() []*Player {
	var live []*Player
	for _, player := range g.GetSeatedPlayers() {
		if !player.InHand() {
			continue
		}
		if g.options.Type != GameTypeCash && player.Chips == 0 && player.Status != PlayerStatusAllIn {
			continue
		}
		live = append(live, player)
	}
	return live
}

// FindNextEmptySeat returns the lowest empty seat number, 0 when full.
func (g *TexasHoldemGame) FindNextEmptySeat() int {
	for seat := 1; seat <= g.options.MaxPlayers; seat++ {
		if g.players[seat] == nil {
			return seat
		}
	}
	return 0
}

// isHandInProgress reports whether cards or blinds are out. Past ANTE
// but before END is always in progress; within ANTE the hand has
// started once either blind is posted.
func (g *TexasHoldemGame) isHandInProgress() bool {
	if g.currentRound == RoundEnd {
		return false
	}
	if g.currentRound != RoundAnte {
		return true
	}
	for _, turn := range g.rounds[RoundAnte] {
		if turn.Action == ActionSmallBlind || turn.Action == ActionBigBlind {
			return true
		}
	}
	return false
}

// joinAtSeat seats a player. Joining mid-hand means waiting out the
// current hand as SITTING_OUT.
func (g *TexasHoldemGame) joinAtSeat(player *Player, seat int) error {
	if seat < 1 || seat > g.options.MaxPlayers {
		return SeatError{Seat: seat}
	}
	if g.players[seat] != nil {
		return SeatError{Seat: seat, Msg: "seat is already taken"}
	}
	g.players[seat] = player
	if g.isHandInProgress() {
		player.UpdateStatus(PlayerStatusSittingOut)
	} else {
		player.UpdateStatus(PlayerStatusActive)
	}
	holdemLogger.Debug().
		Str(logging.TableKey, g.address).
		Str(logging.PlayerKey, player.Address).
		Int(logging.SeatNumKey, seat).
		Msg("Player seated")
	return nil
}

func (g *TexasHoldemGame) removePlayer(address string) error {
	seat := g.PlayerSeat(address)
	if seat == 0 {
		return PlayerNotFoundError{Address: address}
	}
	delete(g.players, seat)
	return nil
}

// ==================== TURN HISTORY ====================

// ActionIndex returns the sequence index the next action must carry.
func (g *TexasHoldemGame) ActionIndex() int {
	return g.actionCount + len(g.getAllTurns()) + 1
}

func (g *TexasHoldemGame) getAllTurns() []TurnWithSeat {
	var turns []TurnWithSeat
	for round := RoundAnte; round <= RoundEnd; round++ {
		turns = append(turns, g.rounds[round]...)
	}
	return turns
}

// GetActionsForRound returns a copy of the round's turn history.
func (g *TexasHoldemGame) GetActionsForRound(round Round) []TurnWithSeat {
	turns := g.rounds[round]
	out := make([]TurnWithSeat, len(turns))
	copy(out, turns)
	return out
}

func (g *TexasHoldemGame) addTurn(turn Turn) {
	g.addTurnToRound(turn, g.currentRound, g.PlayerSeat(turn.PlayerID))
}

func (g *TexasHoldemGame) addTurnAtSeat(turn Turn, seat int) {
	g.addTurnToRound(turn, g.currentRound, seat)
}

func (g *TexasHoldemGame) addTurnToRound(turn Turn, round Round, seat int) {
	withSeat := TurnWithSeat{
		Turn:      turn,
		Seat:      seat,
		Timestamp: g.actionTimestamp,
	}
	g.rounds[round] = append(g.rounds[round], withSeat)
}

// lastActedSeat is the seat of the most recent non-deal turn, falling
// back to the dealer seat before any action.
func (g *TexasHoldemGame) lastActedSeat() int {
	turns := g.getAllTurns()
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Action == ActionDeal {
			continue
		}
		if turns[i].Seat > 0 {
			return turns[i].Seat
		}
	}
	return g.dealer
}

// ==================== TURN ORDER ====================

// GetNextPlayerToAct returns the player whose turn it is, nil when
// nobody can act.
func (g *TexasHoldemGame) GetNextPlayerToAct() *Player {
	return g.findNextPlayerToActForRound(g.currentRound)
}

func (g *TexasHoldemGame) findNextPlayerToActForRound(round Round) *Player {
	actions := g.GetActionsForRound(round)

	// The ante round follows blind posting order, not seat order.
	if round == RoundAnte {
		hasSmallBlind := hasActionType(actions, ActionSmallBlind)
		if !hasSmallBlind {
			if player := g.PlayerAtSeat(g.dealerManager.GetSmallBlindPosition()); player != nil {
				return player
			}
		}
		if hasSmallBlind && !hasActionType(actions, ActionBigBlind) {
			if player := g.PlayerAtSeat(g.dealerManager.GetBigBlindPosition()); player != nil {
				return player
			}
		}
	}

	// Preflop turn order continues from the big blind posted in ante.
	if round == RoundPreflop {
		actions = append(actions, g.GetActionsForRound(RoundAnte)...)
	}

	var filtered []TurnWithSeat
	for _, turn := range actions {
		if turn.Action == ActionJoin || turn.Action == ActionDeal {
			continue
		}
		filtered = append(filtered, turn)
	}

	var start int
	if len(filtered) == 0 {
		start = g.dealer + 1
		if start > g.options.MaxPlayers {
			start = 1
		}
	} else {
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Index > filtered[j].Index
		})
		start = filtered[0].Seat + 1
	}

	scan := func(from, to int) *Player {
		for seat := from; seat <= to; seat++ {
			player := g.PlayerAtSeat(seat)
			if player == nil {
				continue
			}
			if player.Chips == 0 && round != RoundShowdown {
				continue
			}
			if player.Status == PlayerStatusActive {
				return player
			}
			// At showdown, all-in players still act: they show or muck.
			if round == RoundShowdown && player.Status == PlayerStatusAllIn {
				return player
			}
		}
		return nil
	}

	if start > g.options.MaxPlayers {
		start = 1
	}
	if player := scan(start, g.options.MaxPlayers); player != nil {
		return player
	}
	return scan(1, start-1)
}

// ==================== GAME FLOW ====================

// deal hands two hole cards to each active player and sets the 5-card
// runout aside. Cards go around the table one at a time, first card to
// each player, then the second.
func (g *TexasHoldemGame) deal() error {
	if g.currentRound != RoundPreflop {
		return WrongRoundError{Action: ActionDeal, Round: g.currentRound, Msg: "can only deal in the preflop round"}
	}
	if g.deck == nil {
		return MalformedDataError{Msg: "no deck available to deal from"}
	}

	players := g.FindActivePlayers()
	for _, player := range players {
		player.HoleCards = []poker.Card{g.deck.DrawOne(), 0}
	}
	for _, player := range players {
		player.HoleCards[1] = g.deck.DrawOne()
	}

	g.board = g.deck.Draw(5)
	return nil
}

// nextRound reveals street cards and advances the round pointer.
func (g *TexasHoldemGame) nextRound() {
	g.revealCommunityCards()
	g.currentRound = g.currentRound.Next()
	if _, ok := g.rounds[g.currentRound]; !ok {
		g.rounds[g.currentRound] = []TurnWithSeat{}
	}
}

// revealCommunityCards flips the street appropriate to the round being
// left: three for the flop, one each for turn and river.
func (g *TexasHoldemGame) revealCommunityCards() {
	if len(g.board) < 5 {
		return
	}
	switch g.currentRound {
	case RoundPreflop:
		g.communityCards = append(g.communityCards, g.board[0:3]...)
	case RoundFlop:
		g.communityCards = append(g.communityCards, g.board[3])
	case RoundTurn:
		g.communityCards = append(g.communityCards, g.board[4])
	}
}

// fullBoard returns all five community cards, drawing on the set-aside
// runout when the showdown arrives before every street was revealed.
func (g *TexasHoldemGame) fullBoard() []poker.Card {
	if len(g.communityCards) >= 5 {
		return g.communityCards[0:5]
	}
	if len(g.board) >= 5 {
		return g.board[0:5]
	}
	return g.communityCards
}

// ReInit resets the table for a new hand using a caller-supplied
// pre-shuffled deck. Seats and stacks survive; turn history, board and
// winners do not.
func (g *TexasHoldemGame) ReInit(deckStr string) error {
	deck, err := poker.NewDeckFromString(deckStr)
	if err != nil {
		return MalformedDataError{Msg: err.Error()}
	}

	// The next hand's indexes continue where this hand left off.
	carried := len(g.getAllTurns())

	for _, player := range g.GetSeatedPlayers() {
		player.Reinit()
		if player.Chips == 0 {
			player.UpdateStatus(PlayerStatusBusted)
		}
		if player.Status == PlayerStatusSittingOut {
			player.UpdateStatus(PlayerStatusActive)
		}
	}

	g.dealer = g.dealerManager.HandleNewHand()

	g.rounds = make(map[Round][]TurnWithSeat)
	g.rounds[RoundAnte] = []TurnWithSeat{}
	g.deck = deck
	g.communityCards = nil
	g.board = nil
	g.currentRound = RoundAnte
	g.winners = make(map[string]Winner)
	g.handNumber++
	g.actionCount += carried
	return nil
}

// ==================== BETTING STATE ====================

// getBets aggregates the round's wagers per player.
func (g *TexasHoldemGame) getBets(round Round) map[string]Chips {
	bm := NewBetManager(g.GetActionsForRound(round), g.options.BigBlind)
	bets := make(map[string]Chips)
	for _, player := range g.GetSeatedPlayers() {
		if total := bm.TotalForPlayer(player.Address); total > 0 {
			bets[player.Address] = total
		}
	}
	// Departed players' chips stay in the pot.
	for _, turn := range g.GetActionsForRound(round) {
		if turn.Action == ActionJoin || turn.Action == ActionLeave {
			continue
		}
		if _, seated := bets[turn.PlayerID]; !seated {
			if total := bm.TotalForPlayer(turn.PlayerID); total > 0 {
				bets[turn.PlayerID] = total
			}
		}
	}
	return bets
}

// GetPlayerTotalBets returns a player's aggregate for the round;
// includeBlinds folds the ante round in, which PREFLOP accounting
// requires.
func (g *TexasHoldemGame) GetPlayerTotalBets(playerID string, round Round, includeBlinds bool) Chips {
	turns := g.GetActionsForRound(round)
	if includeBlinds && round != RoundAnte {
		turns = append(turns, g.GetActionsForRound(RoundAnte)...)
	}
	bm := NewBetManager(turns, g.options.BigBlind)
	return bm.TotalForPlayer(playerID)
}

// GetPot returns the chips committed across all rounds of the hand.
func (g *TexasHoldemGame) GetPot() Chips {
	pot := Chips(0)
	for round := RoundAnte; round <= RoundEnd; round++ {
		for _, amount := range g.getBets(round) {
			pot += amount
		}
	}
	return pot
}

// betContextTurns returns the turns that define the betting context of
// the round: the round's own turns, plus the blinds when preflop.
func (g *TexasHoldemGame) betContextTurns(round Round) []TurnWithSeat {
	turns := g.GetActionsForRound(round)
	if round == RoundPreflop {
		turns = append(turns, g.GetActionsForRound(RoundAnte)...)
	}
	return turns
}

// ==================== ROUND CLOSURE ====================

// shouldAutoRunout reports whether no further betting is possible and
// the remaining streets should be dealt out automatically.
func (g *TexasHoldemGame) shouldAutoRunout() bool {
	live := g.FindLivePlayers()
	var allIn, active []*Player
	for _, player := range live {
		switch player.Status {
		case PlayerStatusAllIn:
			allIn = append(allIn, player)
		case PlayerStatusActive:
			active = append(active, player)
		}
	}

	if len(allIn) >= 2 && len(allIn) == len(live) {
		return true
	}

	if len(allIn) >= 1 && len(active) == 1 {
		// Whether the lone active player has matched the biggest all-in
		// depends on every round's bets, not just the current one.
		bm := NewBetManager(g.getAllTurns(), g.options.BigBlind)
		activeBet := bm.TotalForPlayer(active[0].Address)
		largestAllIn := Chips(0)
		for _, player := range allIn {
			if bet := bm.TotalForPlayer(player.Address); bet > largestAllIn {
				largestAllIn = bet
			}
		}
		if activeBet >= largestAllIn {
			return true
		}
	}

	return false
}

// hasRoundEnded decides whether the betting round has closed: every
// non-folded, non-all-in player has acted and matched the largest bet.
// It may short-circuit the hand to SHOWDOWN when only one live player
// remains.
func (g *TexasHoldemGame) hasRoundEnded(round Round) bool {
	live := g.FindLivePlayers()

	// One live player left: they win. The ante round is exempt; both
	// blinds must post before the hand can move at all. The winners
	// map guards against paying twice when this fires again on the
	// showdown-to-end transition.
	if len(live) <= 1 && round != RoundAnte {
		if len(live) == 1 && g.currentRound != RoundAnte && g.currentRound != RoundEnd && len(g.winners) == 0 {
			g.currentRound = RoundShowdown
			g.calculateWinner()
		}
		return true
	}

	if g.shouldAutoRunout() && round != RoundAnte && round != RoundShowdown && round != RoundEnd {
		return true
	}

	var active []*Player
	for _, player := range live {
		if player.Status == PlayerStatusActive {
			active = append(active, player)
		}
	}
	if len(active) == 0 && round != RoundShowdown && round != RoundEnd {
		g.currentRound = RoundShowdown
		g.calculateWinner()
		return true
	}

	actions := g.GetActionsForRound(round)

	if round == RoundAnte {
		return hasActionType(actions, ActionSmallBlind) && hasActionType(actions, ActionBigBlind)
	}

	if round == RoundShowdown {
		if len(live) <= 1 {
			return true
		}
		acted := make(map[string]bool)
		for _, turn := range actions {
			if turn.Action == ActionShow || turn.Action == ActionMuck {
				acted[strings.ToLower(turn.PlayerID)] = true
			}
		}
		for _, player := range live {
			if !acted[strings.ToLower(player.Address)] {
				return false
			}
		}
		g.calculateWinner()
		return true
	}

	allIn := 0
	for _, player := range live {
		if player.Status == PlayerStatusAllIn {
			allIn++
		}
	}
	if allIn == len(live) && len(live) > 1 {
		return true
	}
	if len(active) == 0 {
		return true
	}

	dealt := hasActionType(actions, ActionDeal) || g.anyPlayerHasCards()

	var betting []TurnWithSeat
	for _, turn := range actions {
		switch turn.Action {
		case ActionSmallBlind, ActionBigBlind, ActionDeal:
			continue
		}
		betting = append(betting, turn)
	}

	if dealt && len(betting) == 0 {
		return false
	}

	acted := make(map[string]bool)
	for _, turn := range betting {
		acted[strings.ToLower(turn.PlayerID)] = true
	}
	for _, player := range active {
		if !acted[strings.ToLower(player.Address)] {
			return false
		}
	}

	// Everyone must have responded to the last aggression.
	lastAggressionIdx := -1
	lastAggressorID := ""
	for i := len(actions) - 1; i >= 0; i-- {
		switch actions[i].Action {
		case ActionBet, ActionRaise, ActionAllIn:
			lastAggressionIdx = i
			lastAggressorID = actions[i].PlayerID
		}
		if lastAggressionIdx >= 0 {
			break
		}
	}
	if lastAggressionIdx >= 0 {
		for _, player := range active {
			if equalAddress(player.Address, lastAggressorID) {
				continue
			}
			respondedAfter := false
			for i := lastAggressionIdx + 1; i < len(actions); i++ {
				if equalAddress(actions[i].PlayerID, player.Address) {
					respondedAfter = true
					break
				}
			}
			if !respondedAfter {
				return false
			}
		}
	}

	if round == RoundPreflop {
		raises := 0
		for _, turn := range betting {
			if turn.Action == ActionBet || turn.Action == ActionRaise {
				raises++
			}
		}
		if raises == 0 {
			// Checks and calls only: the round can close once everyone
			// has acted, which was verified above.
			return true
		}
	}

	// Active players' totals must match; all-in players cannot add
	// more and are excluded from the equality check.
	var bets []Chips
	for _, player := range active {
		bets = append(bets, g.GetPlayerTotalBets(player.Address, round, round == RoundPreflop))
	}
	for _, bet := range bets {
		if bet != bets[0] {
			return false
		}
	}
	return true
}

func (g *TexasHoldemGame) anyPlayerHasCards() bool {
	for _, player := range g.GetSeatedPlayers() {
		if len(player.HoleCards) > 0 {
			return true
		}
	}
	return false
}

func hasActionType(turns []TurnWithSeat, action ActionType) bool {
	for _, turn := range turns {
		if turn.Action == action {
			return true
		}
	}
	return false
}

// ==================== SHOWDOWN ====================

func (g *TexasHoldemGame) calculateRake(pot Chips) Chips {
	if g.options.Rake == nil {
		return 0
	}
	rake := g.options.Rake
	if pot < rake.RakeFreeThreshold {
		return 0
	}
	amount := pot * Chips(rake.RakePercentage) / 100
	if amount > rake.RakeCap {
		amount = rake.RakeCap
	}
	return amount
}

func (g *TexasHoldemGame) allocateRake(rake Chips) {
	if rake == 0 || g.options.Owner == "" {
		return
	}
	owner, err := g.GetPlayer(g.options.Owner)
	if err != nil {
		return
	}
	owner.Credit(rake)
}

// calculateWinner awards the pot. One live player means an uncontested
// win; otherwise the showing hands go to the evaluator and ties split
// the net pot evenly.
func (g *TexasHoldemGame) calculateWinner() {
	live := g.FindLivePlayers()
	pot := g.GetPot()
	rake := g.calculateRake(pot)
	netPot := pot - rake

	g.winners = make(map[string]Winner)

	if len(live) == 1 {
		winner := live[0]
		g.winners[winner.Address] = Winner{
			Amount:      netPot,
			Cards:       holeCardMnemonics(winner),
			Name:        "Winner by default (others folded)",
			Description: "Winner by default (others folded)",
		}
		winner.Credit(netPot)
		g.allocateRake(rake)
		g.settleStacks()
		return
	}

	// All-in players reach showdown with their cards live.
	for _, player := range live {
		if player.Status == PlayerStatusAllIn {
			player.UpdateStatus(PlayerStatusShowing)
		}
	}

	var showing []*Player
	for _, player := range live {
		if player.Status == PlayerStatusShowing {
			showing = append(showing, player)
		}
	}
	if len(showing) == 0 {
		return
	}

	board := g.fullBoard()
	if len(board) < 5 {
		holdemLogger.Error().
			Str(logging.TableKey, g.address).
			Int("boardCards", len(board)).
			Msg("Cannot evaluate showdown without a full board")
		return
	}

	hands := make([][]poker.Card, len(showing))
	for i, player := range showing {
		hands[i] = append(append([]poker.Card{}, board...), player.HoleCards...)
	}

	results, err := g.evaluator.Showdown(hands)
	if err != nil {
		holdemLogger.Error().
			Str(logging.TableKey, g.address).
			Err(err).
			Msg("Showdown evaluation failed")
		return
	}

	winnerCount := Chips(0)
	for _, result := range results {
		if result.IsWinner {
			winnerCount++
		}
	}
	if winnerCount == 0 {
		return
	}

	share := netPot / winnerCount
	for i, player := range showing {
		if !results[i].IsWinner {
			continue
		}
		g.winners[player.Address] = Winner{
			Amount:      share,
			Cards:       holeCardMnemonics(player),
			Name:        results[i].HandDescription,
			Description: results[i].HandDescription,
		}
		player.Credit(share)
	}

	g.allocateRake(rake)
	g.settleStacks()
}

// settleStacks handles players left without chips after the pots are
// awarded: cash players sit out, sit-and-go players bust out and earn
// a finishing place.
func (g *TexasHoldemGame) settleStacks() {
	players := g.GetSeatedPlayers()

	if g.options.Type == GameTypeCash {
		for _, player := range players {
			if player.Chips == 0 && player.Status != PlayerStatusSittingOut {
				player.UpdateStatus(PlayerStatusSittingOut)
			}
		}
		return
	}

	for _, player := range players {
		if player.Chips != 0 || player.Status == PlayerStatusBusted {
			continue
		}
		place := len(players) - len(g.results)
		payoutManager := NewPayoutManager(g.options.MinBuyIn, len(players))
		payout := payoutManager.Payout(place)
		g.results = append(g.results, &Result{
			Place:    place,
			PlayerID: player.Address,
			Payout:   payout,
		})
		player.UpdateStatus(PlayerStatusBusted)
		holdemLogger.Info().
			Str(logging.TableKey, g.address).
			Str(logging.PlayerKey, player.Address).
			Int("place", place).
			Uint64("payout", payout).
			Msg("Player busted")
	}
}

// wouldWin reports whether the player's hole cards beat every showing
// live hand. Muck consults this: a winning hand cannot be mucked.
func (g *TexasHoldemGame) wouldWin(player *Player) (bool, error) {
	if len(player.HoleCards) != 2 {
		return false, nil
	}
	return g.FindWinners(holeCardMnemonics(player)), nil
}

// FindWinners reports whether the given hole cards would win against
// the live hands still in contention.
func (g *TexasHoldemGame) FindWinners(cards []string) bool {
	board := g.fullBoard()
	if len(board) < 5 || len(cards) != 2 {
		return false
	}

	hero := make([]poker.Card, 0, 7)
	for _, mnemonic := range cards {
		card, err := poker.NewCard(mnemonic)
		if err != nil {
			return false
		}
		hero = append(hero, card)
	}
	hero = append(hero, board...)

	heroIdx := -1
	hands := [][]poker.Card{}
	for _, player := range g.FindLivePlayers() {
		if len(player.HoleCards) != 2 {
			continue
		}
		if heroIdx < 0 && poker.CardsToString(player.HoleCards) == poker.CardsToString(hero[0:2]) {
			heroIdx = len(hands)
		}
		hands = append(hands, append(append([]poker.Card{}, board...), player.HoleCards...))
	}

	if heroIdx < 0 {
		heroIdx = len(hands)
		hands = append(hands, hero)
	}
	if len(hands) == 0 {
		return false
	}

	results, err := g.evaluator.Showdown(hands)
	if err != nil {
		return false
	}
	return results[heroIdx].IsWinner
}

func holeCardMnemonics(player *Player) []string {
	cards := make([]string, len(player.HoleCards))
	for i, card := range player.HoleCards {
		cards[i] = card.String()
	}
	return cards
}

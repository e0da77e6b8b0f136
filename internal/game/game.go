package game

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/flip7/internal/deck"
)

// dealThreeCards is how many cards a Deal Three forces on its recipient.
const dealThreeCards = 3

// RoundState is the round-level state of the controller
type RoundState int

const (
	RoundPending RoundState = iota
	RoundInProgress
	RoundOver
)

// String returns the string representation of a round state
func (s RoundState) String() string {
	switch s {
	case RoundPending:
		return "pending"
	case RoundInProgress:
		return "in_progress"
	case RoundOver:
		return "over"
	default:
		return "?"
	}
}

// Seat describes a player joining a game
type Seat struct {
	Name     string
	Label    string
	Strategy Strategy
}

// Game is the round controller. It exclusively owns its deck and players;
// a Game must not be shared between goroutines.
type Game struct {
	ID string

	players []*Player
	deck    *deck.Deck
	logger  *log.Logger
	cfg     *gameConfig

	round      int
	roundState RoundState
	start      int // seat that acts first this round
	current    int
	turns      int

	sevenWinner *Player
	exhausted   bool

	rounds []RoundResult
	over   bool
	result *Result
}

// New creates a game. The rng is required: it shuffles the deck unless
// WithDeck supplies one, and strategies should be built on the same rng so
// the whole game replays from one seed.
func New(rng *rand.Rand, seats []Seat, opts ...Option) *Game {
	if rng == nil {
		panic("rng is required for game creation")
	}
	if len(seats) == 0 {
		panic("at least 1 player required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	players := make([]*Player, len(seats))
	for i, s := range seats {
		if s.Strategy == nil {
			panic(fmt.Sprintf("seat %d (%s) has no strategy", i, s.Name))
		}
		players[i] = NewPlayer(i, s.Name, s.Strategy)
		players[i].Label = s.Label
	}

	d := cfg.deck
	if d == nil {
		d = deck.New(rng, cfg.composition)
	}

	logger := cfg.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.WithPrefix("game")
	if cfg.id != "" {
		logger = logger.With("game", cfg.id)
	}

	return &Game{
		ID:      cfg.id,
		players: players,
		deck:    d,
		logger:  logger,
		cfg:     cfg,
	}
}

// Players returns the seated players in seat order
func (g *Game) Players() []*Player { return g.players }

// Round returns the current round number, starting at 1
func (g *Game) Round() int { return g.round }

// RoundState returns the state of the current round
func (g *Game) RoundState() RoundState { return g.roundState }

// IsOver reports whether the game has finished
func (g *Game) IsOver() bool { return g.over }

// IsRoundOver reports whether the current round has reached a terminal state:
// a seven-number hand, an exhausted deck, or no Active player left.
func (g *Game) IsRoundOver() bool {
	if g.sevenWinner != nil || g.exhausted {
		return true
	}
	for _, p := range g.players {
		if p.IsActive() {
			return false
		}
	}
	return true
}

// Play runs the game to completion
func (g *Game) Play() (*Result, error) {
	if g.over {
		return nil, ErrGameOver
	}
	for !g.over {
		if _, err := g.PlayTurn(); err != nil {
			return nil, err
		}
	}
	return g.result, nil
}

// PlayRound runs turns until the current (or next) round is over
func (g *Game) PlayRound() (RoundResult, error) {
	for {
		roundOver, err := g.PlayTurn()
		if err != nil {
			return RoundResult{}, err
		}
		if roundOver {
			return g.rounds[len(g.rounds)-1], nil
		}
	}
}

// PlayTurn plays the next Active player's turn, starting a round first if
// none is in progress. It reports whether the round ended.
func (g *Game) PlayTurn() (bool, error) {
	if g.over {
		return true, ErrGameOver
	}

	if g.roundState != RoundInProgress {
		if err := g.startRound(); err != nil {
			return false, err
		}
		if g.roundState == RoundOver {
			return true, nil
		}
	}

	p := g.nextActive()
	if p == nil {
		g.finishRound()
		return true, nil
	}

	err := g.playTurn(p)
	g.current = (p.Seat + 1) % len(g.players)
	if err != nil {
		return false, err
	}

	if g.IsRoundOver() {
		g.finishRound()
		return true, nil
	}
	return false, nil
}

func (g *Game) nextActive() *Player {
	n := len(g.players)
	for i := range n {
		p := g.players[(g.current+i)%n]
		if p.IsActive() {
			return p
		}
	}
	return nil
}

func (g *Game) startRound() error {
	g.round++
	g.turns = 0
	g.sevenWinner = nil
	g.exhausted = false

	if g.round > 1 {
		for _, p := range g.players {
			g.deck.Discard(p.reset()...)
		}
		g.start = (g.start + 1) % len(g.players)
	}
	g.current = g.start
	g.roundState = RoundInProgress

	g.logger.Debug("Round started", "round", g.round, "first", g.players[g.start].Name,
		"remaining", g.deck.CardsRemaining(), "discards", g.deck.DiscardCount())

	n := len(g.players)
	for i := range n {
		if g.IsRoundOver() {
			break
		}
		p := g.players[(g.start+i)%n]
		if !p.IsActive() {
			continue
		}
		card, err := g.deck.Draw()
		if err != nil {
			g.deckExhausted(p)
			break
		}
		g.logger.Debug("Dealt", "player", p.Name, "card", card)
		if _, err := g.resolve(p, card, false); err != nil {
			return err
		}
	}

	if g.IsRoundOver() {
		g.finishRound()
	}
	return nil
}

func (g *Game) playTurn(p *Player) error {
	g.turns++
	if g.turns > g.cfg.maxTurns {
		return fmt.Errorf("%w: round %d ran %d turns", ErrTurnLimit, g.round, g.cfg.maxTurns)
	}

	if !p.Strategy.ShouldDraw(g.stateFor(p)) {
		p.Pass()
		g.logger.Debug("Passed", "player", p.Name, "score", p.Score())
		return nil
	}

	card, err := g.deck.Draw()
	if err != nil {
		g.deckExhausted(p)
		return nil
	}
	g.logger.Debug("Drew", "player", p.Name, "card", card)
	_, err = g.resolve(p, card, false)
	return err
}

func (g *Game) deckExhausted(p *Player) {
	g.exhausted = true
	g.logger.Warn("Deck exhausted, ending round", "round", g.round, "player", p.Name)
}

// resolve applies one card to p and runs its effects. It reports whether a
// surrounding Deal Three cascade must stop.
func (g *Game) resolve(p *Player, card deck.Card, cascade bool) (bool, error) {
	outcome, err := p.Receive(card, cascade)
	if err != nil {
		return true, err
	}

	switch outcome {
	case Halt:
		g.deck.Discard(card)
		g.logger.Debug("Cascade halted", "player", p.Name, "status", p.Status(), "card", card)
		return true, nil
	case Rejected:
		return false, g.handOffSecondChance(p, card)
	case Bust:
		return g.recoverOrBust(p, card), nil
	}

	switch card.Kind() {
	case deck.NumberCard:
		if p.HasSevenNumbers() {
			g.sevenWinner = p
			g.logger.Debug("Seven numbers", "player", p.Name, "score", p.Score())
			return true, nil
		}
	case deck.ActionCard:
		switch card.Action() {
		case deck.Freeze:
			g.logger.Debug("Frozen", "player", p.Name, "score", p.Score())
		case deck.SecondChance:
			g.logger.Debug("Holds Second Chance", "player", p.Name)
		case deck.DealThree:
			return g.dealThree(p)
		default:
			panic(fmt.Sprintf("unhandled action %v", card.Action()))
		}
	case deck.ModifierCard:
	default:
		panic(fmt.Sprintf("unhandled card kind %v", card.Kind()))
	}
	return false, nil
}

// dealThree forces up to three more cards on p, each resolved in full.
func (g *Game) dealThree(p *Player) (bool, error) {
	g.logger.Debug("Deal Three", "player", p.Name)
	for range dealThreeCards {
		if g.sevenWinner != nil || g.exhausted {
			return true, nil
		}
		card, err := g.deck.Draw()
		if err != nil {
			g.deckExhausted(p)
			return true, nil
		}
		g.logger.Debug("Forced draw", "player", p.Name, "card", card)
		stop, err := g.resolve(p, card, true)
		if err != nil {
			return true, err
		}
		if stop || p.Status() == Busted {
			return true, nil
		}
	}
	return false, nil
}

// recoverOrBust offers the Second Chance path for a bust caused by card.
// It reports whether the player stayed busted.
func (g *Game) recoverOrBust(p *Player, card deck.Card) bool {
	if p.HasSecondChance() {
		s := g.stateFor(p)
		s.Score = p.scoreBeforeLast()
		if p.Strategy.ShouldUseSecondChance(s) {
			if spent, ok := p.UseSecondChance(); ok {
				g.deck.Discard(spent...)
				g.logger.Debug("Second Chance used", "player", p.Name, "card", card)
				return false
			}
		}
	}
	g.logger.Debug("Busted", "player", p.Name, "card", card, "numbers", p.Numbers())
	return true
}

// handOffSecondChance gives a surplus Second Chance to the next Active seat
// without one, or discards it.
func (g *Game) handOffSecondChance(from *Player, card deck.Card) error {
	n := len(g.players)
	for i := 1; i < n; i++ {
		q := g.players[(from.Seat+i)%n]
		if !q.IsActive() || q.HasSecondChance() {
			continue
		}
		if _, err := q.Receive(card, false); err != nil {
			return err
		}
		g.logger.Debug("Second Chance handed off", "from", from.Name, "to", q.Name)
		return nil
	}
	g.deck.Discard(card)
	g.logger.Debug("Second Chance discarded", "player", from.Name)
	return nil
}

func (g *Game) stateFor(p *Player) State {
	seen := g.deck.Discarded()
	var opponents []int
	for _, q := range g.players {
		if q == p {
			continue
		}
		seen = append(seen, q.hand...)
		opponents = append(opponents, q.Score())
	}
	return State{
		Seat:            p.Seat,
		Round:           g.round,
		Score:           p.Score(),
		NumberCount:     p.NumberCount(),
		CardCount:       p.CardCount(),
		Hand:            p.Hand(),
		Seen:            seen,
		OpponentScores:  opponents,
		MaxScore:        g.cfg.maxScore,
		HasSecondChance: p.HasSecondChance(),
	}
}

func (g *Game) finishRound() {
	winner := g.sevenWinner
	if winner == nil {
		winner = topSeat(g.players, (*Player).Score)
	}

	rr := RoundResult{
		Number:        g.round,
		Winner:        winner.Seat,
		WinningScore:  winner.Score(),
		SevenNumbers:  g.sevenWinner != nil,
		DeckExhausted: g.exhausted,
		Turns:         g.turns,
	}
	for _, p := range g.players {
		p.total += p.Score()
	}
	for _, p := range g.players {
		rr.Players = append(rr.Players, g.snapshot(p))
	}
	g.rounds = append(g.rounds, rr)
	g.roundState = RoundOver

	g.logger.Debug("Round over", "round", g.round, "winner", winner.Name,
		"score", rr.WinningScore, "seven", rr.SevenNumbers, "exhausted", rr.DeckExhausted)

	if g.decided() {
		g.finishGame()
	}
}

func (g *Game) decided() bool {
	if g.cfg.winningTotal == 0 || g.round >= g.cfg.maxRounds {
		return true
	}
	for _, p := range g.players {
		if p.total >= g.cfg.winningTotal {
			return true
		}
	}
	return false
}

func (g *Game) finishGame() {
	winner := topSeat(g.players, (*Player).Total)

	res := &Result{
		ID:           g.ID,
		Winner:       winner.Seat,
		WinnerName:   winner.Name,
		WinningTotal: winner.total,
		Rounds:       g.rounds,
	}
	for _, p := range g.players {
		pr := g.snapshot(p)
		if d, ok := p.Strategy.(Diagnoser); ok {
			diag := d.Diagnostics()
			pr.Diagnostics = &diag
		}
		res.Players = append(res.Players, pr)
	}

	for _, p := range g.players {
		p.Strategy.OnGameEnd(p == winner)
	}

	g.over = true
	g.result = res
	g.logger.Debug("Game over", "winner", winner.Name, "total", winner.total, "rounds", g.round)
}

// Result returns the game result, or nil while the game is in progress
func (g *Game) Result() *Result { return g.result }

// Winner returns the winning player, or nil while the game is in progress
func (g *Game) Winner() *Player {
	if g.result == nil {
		return nil
	}
	return g.players[g.result.Winner]
}

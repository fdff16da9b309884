package game

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"github.com/arcanaland/war/internal/card"
	"github.com/arcanaland/war/internal/deck"
)

// Side identifies a participant
type Side int

const (
	NoSide Side = iota
	Player
	Computer
)

func (s Side) String() string {
	switch s {
	case Player:
		return "player"
	case Computer:
		return "computer"
	default:
		return "none"
	}
}

// Other returns the opposing side
func (s Side) Other() Side {
	switch s {
	case Player:
		return Computer
	case Computer:
		return Player
	default:
		return NoSide
	}
}

// State holds both decks, the round counter and the terminal status of one game.
// Every method is safe for concurrent use; each PlayRound runs under the lock.
type State struct {
	mu sync.Mutex

	id       uuid.UUID
	player   *deck.Deck
	computer *deck.Deck
	round    int
	terminal bool
	winner   Side
	total    int
}

// New deals a fresh game: a full deck shuffled once with r and split 26/26.
func New(r deck.Rand) *State {
	full := deck.NewFull()
	full.Shuffle(r)
	return Deal(full)
}

// NewSeeded deals a game from a PCG source seeded with seed
func NewSeeded(seed uint64) *State {
	return New(rand.New(rand.NewPCG(seed, seed)))
}

// Deal splits d in half without shuffling: the front half goes to the player.
func Deal(d *deck.Deck) *State {
	p, c := d.Split(d.Size() / 2)
	return FromDecks(p, c)
}

// FromDecks starts a game from fixed stacks, front of each deck drawn first.
// A card dealt twice is a programming error and panics.
func FromDecks(player, computer *deck.Deck) *State {
	if dups := card.Duplicates(player.Cards(), computer.Cards()); len(dups) > 0 {
		panic(fmt.Sprintf("game: cards dealt more than once: %v", dups))
	}
	return &State{
		id:       uuid.New(),
		player:   player,
		computer: computer,
		total:    player.Size() + computer.Size(),
	}
}

// Reset re-deals the state in place with a fresh shuffled deck and a new ID.
func (s *State) Reset(r deck.Rand) {
	fresh := New(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = fresh.id
	s.player = fresh.player
	s.computer = fresh.computer
	s.round = 0
	s.terminal = false
	s.winner = NoSide
	s.total = fresh.total
}

// ID identifies this deal
func (s *State) ID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Round returns the number of completed rounds
func (s *State) Round() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

// CardsRemaining returns the number of cards in side's deck
func (s *State) CardsRemaining(side Side) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deckFor(side).Size()
}

// Cards returns a copy of side's deck, front first
func (s *State) Cards(side Side) []card.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deckFor(side).Cards()
}

// TotalCards is the number of cards in play when the game was dealt
func (s *State) TotalCards() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// IsTerminal reports whether the game is over
func (s *State) IsTerminal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminal
}

// Winner returns the winning side, or NoSide while the game continues
func (s *State) Winner() Side {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.winner
}

func (s *State) deckFor(side Side) *deck.Deck {
	switch side {
	case Player:
		return s.player
	case Computer:
		return s.computer
	default:
		panic("game: no deck for side " + side.String())
	}
}

func (s *State) finish(winner Side) {
	s.terminal = true
	s.winner = winner
}

package game

import (
	"github.com/arcanaland/war/internal/card"
)

// WarFaceDown is the number of cards each side buries before the tiebreak card
const WarFaceDown = 3

// WarStake is the number of cards each side needs to fight one war
const WarStake = WarFaceDown + 1

// Status tells a caller whether more rounds can be played
type Status int

const (
	Continue Status = iota
	GameOver
)

func (s Status) String() string {
	if s == GameOver {
		return "gameOver"
	}
	return "continue"
}

// Reason records why a game ended
type Reason int

const (
	NotOver Reason = iota
	EmptyDeck
	InsufficientWarCards
	CapturedAll
)

func (r Reason) String() string {
	switch r {
	case EmptyDeck:
		return "empty deck"
	case InsufficientWarCards:
		return "not enough cards for war"
	case CapturedAll:
		return "captured every card"
	default:
		return ""
	}
}

// Outcome describes one PlayRound call.
type Outcome struct {
	Status Status
	Winner Side
	Reason Reason

	// Played is false when no cards were turned over: a call on a finished
	// game, or a round that could not start because a deck was empty.
	Played       bool
	PlayerCard   card.Card
	ComputerCard card.Card
	RoundWinner  Side

	// Wars counts tiebreak iterations within the round
	Wars int

	// Pot is every card the round winner collected: the player's cards in
	// draw order, then the computer's.
	Pot []card.Card

	Round                  int
	PlayerCardsRemaining   int
	ComputerCardsRemaining int
}

// PlayRound plays one complete round, including any wars, and mutates the
// decks in place. Calling it on a finished game changes nothing.
func PlayRound(s *State) Outcome {
	if s == nil {
		panic("game: PlayRound on a nil state")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player == nil || s.computer == nil {
		panic("game: PlayRound on an undealt state")
	}

	if s.terminal {
		return s.outcome(Outcome{Status: GameOver, Winner: s.winner})
	}

	if s.player.Size() == 0 || s.computer.Size() == 0 {
		return s.end(Outcome{}, EmptyDeck)
	}

	pc, _ := s.player.Draw()
	cc, _ := s.computer.Draw()
	playerPile := []card.Card{pc}
	computerPile := []card.Card{cc}

	o := Outcome{Played: true, PlayerCard: pc, ComputerCard: cc}

	cmp := card.Compare(pc, cc)
	for cmp == 0 {
		if s.player.Size() < WarStake || s.computer.Size() < WarStake {
			// Undo the round so no card leaves play. end then awards the
			// game to the larger stack, and an even split to the computer.
			s.player.Return(playerPile...)
			s.computer.Return(computerPile...)
			return s.end(o, InsufficientWarCards)
		}

		o.Wars++
		playerPile = append(playerPile, s.player.DrawN(WarStake)...)
		computerPile = append(computerPile, s.computer.DrawN(WarStake)...)
		cmp = card.Compare(playerPile[len(playerPile)-1], computerPile[len(computerPile)-1])
	}

	o.RoundWinner = Player
	if cmp < 0 {
		o.RoundWinner = Computer
	}

	o.Pot = make([]card.Card, 0, len(playerPile)+len(computerPile))
	o.Pot = append(o.Pot, playerPile...)
	o.Pot = append(o.Pot, computerPile...)
	s.deckFor(o.RoundWinner).Append(o.Pot...)
	s.round++

	if w := s.captured(); w != NoSide {
		s.finish(w)
		o.Status = GameOver
		o.Winner = w
		o.Reason = CapturedAll
	}

	return s.outcome(o)
}

// Play calls PlayRound until the game ends or maxRounds calls have been
// made. maxRounds <= 0 means no cap. fn, if non-nil, sees every outcome.
// The last outcome is returned; its Status is Continue when the cap was hit.
func Play(s *State, maxRounds int, fn func(Outcome)) Outcome {
	var last Outcome
	for n := 0; maxRounds <= 0 || n < maxRounds; n++ {
		last = PlayRound(s)
		if fn != nil {
			fn(last)
		}
		if last.Status == GameOver {
			break
		}
	}
	return last
}

// end marks the game over mid-round. Callers hold the lock.
func (s *State) end(o Outcome, reason Reason) Outcome {
	w := s.captured()
	if w == NoSide {
		// Neither side is out, so the larger stack wins and the house takes an even split.
		w = Computer
		if s.player.Size() > s.computer.Size() {
			w = Player
		}
	}
	s.finish(w)

	o.Status = GameOver
	o.Winner = w
	o.Reason = reason
	return s.outcome(o)
}

// captured applies the win rule: a side with no cards loses, a side holding
// every card wins. Callers hold the lock.
func (s *State) captured() Side {
	p, c := s.player.Size(), s.computer.Size()
	switch {
	case p == 0:
		return Computer
	case c == 0:
		return Player
	case p == s.total:
		return Player
	case c == s.total:
		return Computer
	}
	return NoSide
}

func (s *State) outcome(o Outcome) Outcome {
	o.Round = s.round
	o.PlayerCardsRemaining = s.player.Size()
	o.ComputerCardsRemaining = s.computer.Size()
	return o
}

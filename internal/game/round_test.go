package game

import (
	"errors"
	"sync"
	"testing"

	"github.com/arcanaland/war/internal/card"
	"github.com/arcanaland/war/internal/deck"
)

// lastIndex turns Fisher-Yates into the identity permutation
type lastIndex struct{}

func (lastIndex) IntN(n int) int { return n - 1 }

func stack(tokens ...string) *deck.Deck {
	d := deck.New()
	for _, tok := range tokens {
		d.Append(card.MustParse(tok))
	}
	return d
}

func tokens(cards []card.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

func assertCards(t *testing.T, label string, got []card.Card, want ...string) {
	t.Helper()
	g := tokens(got)
	w := tokens(stack(want...).Cards())
	if len(g) != len(w) {
		t.Fatalf("%s = %v, want %v", label, g, w)
	}
	for i := range w {
		if g[i] != w[i] {
			t.Fatalf("%s = %v, want %v", label, g, w)
		}
	}
}

func TestNewGameDeal(t *testing.T) {
	for seed := uint64(0); seed < 25; seed++ {
		s := NewSeeded(seed)
		if s.CardsRemaining(Player) != 26 || s.CardsRemaining(Computer) != 26 {
			t.Fatalf("seed %d: dealt %d/%d", seed, s.CardsRemaining(Player), s.CardsRemaining(Computer))
		}

		seen := make(map[card.Card]bool)
		for _, c := range append(s.Cards(Player), s.Cards(Computer)...) {
			if seen[c] {
				t.Fatalf("seed %d: %s dealt twice", seed, c)
			}
			seen[c] = true
		}
		if len(seen) != deck.FullSize {
			t.Fatalf("seed %d: %d distinct cards dealt", seed, len(seen))
		}
		if s.Round() != 0 || s.IsTerminal() || s.Winner() != NoSide {
			t.Fatalf("seed %d: fresh game not at round 0", seed)
		}
	}
}

func TestSeededDealIsReproducible(t *testing.T) {
	a, b := NewSeeded(99), NewSeeded(99)
	assertCards(t, "player", a.Cards(Player), tokens(b.Cards(Player))...)
	if a.ID() == b.ID() {
		t.Error("two deals share an ID")
	}
}

func TestOrdinaryRounds(t *testing.T) {
	s := FromDecks(
		stack("AS", "2S", "5S", "3D", "4D", "6D", "QS", "9S"),
		stack("KH", "3H", "5H", "7H", "8H", "9H", "JH", "2C"),
	)

	o := PlayRound(s)
	if o.Status != Continue || o.RoundWinner != Player || o.Wars != 0 {
		t.Fatalf("round 1 = %+v, want player win", o)
	}
	if o.PlayerCard.String() != "A♠" || o.ComputerCard.String() != "K♥" {
		t.Errorf("round 1 played %s vs %s", o.PlayerCard, o.ComputerCard)
	}
	assertCards(t, "pot 1", o.Pot, "AS", "KH")
	if o.PlayerCardsRemaining != 9 || o.ComputerCardsRemaining != 7 || o.Round != 1 {
		t.Errorf("round 1 counts %d/%d round %d", o.PlayerCardsRemaining, o.ComputerCardsRemaining, o.Round)
	}

	o = PlayRound(s)
	if o.RoundWinner != Computer {
		t.Fatalf("round 2 winner = %s, want computer", o.RoundWinner)
	}
	assertCards(t, "computer after round 2", s.Cards(Computer), "5H", "7H", "8H", "9H", "JH", "2C", "2S", "3H")

	o = PlayRound(s)
	if o.RoundWinner != Player || o.Wars != 1 {
		t.Fatalf("round 3 = winner %s wars %d, want player after one war", o.RoundWinner, o.Wars)
	}
	assertCards(t, "pot 3", o.Pot, "5S", "3D", "4D", "6D", "QS", "5H", "7H", "8H", "9H", "JH")
	assertCards(t, "player after round 3", s.Cards(Player),
		"9S", "AS", "KH", "5S", "3D", "4D", "6D", "QS", "5H", "7H", "8H", "9H", "JH")
	assertCards(t, "computer after round 3", s.Cards(Computer), "2C", "2S", "3H")
	if o.Round != 3 || s.Round() != 3 {
		t.Errorf("round counter = %d, want 3", o.Round)
	}
}

func TestLoserRunsOut(t *testing.T) {
	s := FromDecks(stack("2S"), stack("KS", "3S"))

	o := PlayRound(s)
	if o.Status != GameOver || o.Winner != Computer || o.Reason != CapturedAll {
		t.Fatalf("outcome = %+v, want computer to capture everything", o)
	}
	if o.RoundWinner != Computer || o.Round != 1 {
		t.Errorf("round winner %s round %d", o.RoundWinner, o.Round)
	}
	if o.PlayerCardsRemaining != 0 || o.ComputerCardsRemaining != 3 {
		t.Errorf("counts %d/%d, want 0/3", o.PlayerCardsRemaining, o.ComputerCardsRemaining)
	}
	if !s.IsTerminal() || s.Winner() != Computer {
		t.Error("state not marked terminal")
	}
}

func TestTwoCardStacksKeepPlaying(t *testing.T) {
	s := FromDecks(stack("2S", "5S"), stack("KS", "3S"))

	o := PlayRound(s)
	if o.Status != Continue || o.RoundWinner != Computer {
		t.Fatalf("round 1 = %+v", o)
	}
	if o.PlayerCardsRemaining != 1 || o.ComputerCardsRemaining != 3 {
		t.Fatalf("round 1 counts %d/%d, want 1/3", o.PlayerCardsRemaining, o.ComputerCardsRemaining)
	}

	o = PlayRound(s)
	if o.RoundWinner != Player || o.PlayerCardsRemaining != 2 {
		t.Fatalf("round 2 = %+v", o)
	}
}

func TestWarWithoutEnoughCards(t *testing.T) {
	s := FromDecks(stack("7S", "AS", "2S", "2H"), stack("7H", "KS", "3S", "9S"))

	o := PlayRound(s)
	if o.Status != GameOver || o.Reason != InsufficientWarCards {
		t.Fatalf("outcome = %+v, want game over for lack of war cards", o)
	}
	if !o.Played || o.PlayerCard.String() != "7♠" || o.ComputerCard.String() != "7♥" {
		t.Errorf("played cards %s vs %s", o.PlayerCard, o.ComputerCard)
	}
	if o.Wars != 0 || o.Round != 0 || o.RoundWinner != NoSide {
		t.Errorf("wars %d round %d round winner %s", o.Wars, o.Round, o.RoundWinner)
	}
	// even stacks go to the house
	if o.Winner != Computer {
		t.Errorf("winner = %s, want computer", o.Winner)
	}
	assertCards(t, "player", s.Cards(Player), "7S", "AS", "2S", "2H")
	assertCards(t, "computer", s.Cards(Computer), "7H", "KS", "3S", "9S")
}

func TestShortSideLosesStarvedWar(t *testing.T) {
	s := FromDecks(
		stack("5S", "2S", "3S", "4S", "9S", "6S", "7S"),
		stack("5H", "2H", "3H", "4H", "9H", "6H", "7H", "8H"),
	)

	o := PlayRound(s)
	if o.Reason != InsufficientWarCards || o.Wars != 1 {
		t.Fatalf("outcome = %+v, want starvation after one war", o)
	}
	if o.Winner != Computer {
		t.Errorf("winner = %s, want computer", o.Winner)
	}
	if o.PlayerCardsRemaining != 7 || o.ComputerCardsRemaining != 8 {
		t.Errorf("counts %d/%d, want cards returned 7/8", o.PlayerCardsRemaining, o.ComputerCardsRemaining)
	}
	assertCards(t, "player", s.Cards(Player), "5S", "2S", "3S", "4S", "9S", "6S", "7S")
}

func TestNestedWar(t *testing.T) {
	s := FromDecks(
		stack("5S", "2S", "3S", "4S", "9S", "2D", "3D", "4D", "AS", "6S"),
		stack("5H", "2H", "3H", "4H", "9H", "2C", "3C", "4C", "KH", "6H"),
	)

	o := PlayRound(s)
	if o.Status != Continue || o.RoundWinner != Player || o.Wars != 2 {
		t.Fatalf("outcome = %+v, want player win after two wars", o)
	}
	if len(o.Pot) != 18 {
		t.Errorf("pot holds %d cards, want 18", len(o.Pot))
	}
	if o.PlayerCardsRemaining != 19 || o.ComputerCardsRemaining != 1 || o.Round != 1 {
		t.Errorf("counts %d/%d round %d", o.PlayerCardsRemaining, o.ComputerCardsRemaining, o.Round)
	}
	assertCards(t, "pot", o.Pot,
		"5S", "2S", "3S", "4S", "9S", "2D", "3D", "4D", "AS",
		"5H", "2H", "3H", "4H", "9H", "2C", "3C", "4C", "KH")
}

func TestIdentityDealCascadesIntoStarvedWar(t *testing.T) {
	s := New(lastIndex{})
	assertCards(t, "player", s.Cards(Player)[:2], "2S", "3S")
	assertCards(t, "computer", s.Cards(Computer)[:2], "2D", "3D")

	o := PlayRound(s)
	// 2♠/2♦ ties, then 6, 10, A, 5, 9 and K tie in turn, leaving one card each
	if o.Wars != 6 {
		t.Fatalf("wars = %d, want 6", o.Wars)
	}
	if o.Status != GameOver || o.Reason != InsufficientWarCards || o.Winner != Computer {
		t.Fatalf("outcome = %+v", o)
	}
	if o.PlayerCardsRemaining != 26 || o.ComputerCardsRemaining != 26 || o.Round != 0 {
		t.Errorf("counts %d/%d round %d", o.PlayerCardsRemaining, o.ComputerCardsRemaining, o.Round)
	}
	if got := s.Cards(Player)[25]; got.String() != "A♥" {
		t.Errorf("player's last card = %s, want A♥", got)
	}
}

func TestEmptyDeckEndsGame(t *testing.T) {
	s := FromDecks(deck.New(), stack("AS"))

	o := PlayRound(s)
	if o.Status != GameOver || o.Winner != Computer || o.Reason != EmptyDeck || o.Played {
		t.Fatalf("outcome = %+v, want computer win on empty deck", o)
	}
	if s.CardsRemaining(Computer) != 1 {
		t.Error("computer's card was drawn from an ended game")
	}
}

func TestTerminalIsNoOp(t *testing.T) {
	s := FromDecks(stack("2S"), stack("KS", "3S"))
	first := PlayRound(s)

	for i := 0; i < 3; i++ {
		o := PlayRound(s)
		if o.Status != GameOver || o.Winner != first.Winner || o.Played {
			t.Fatalf("call %d = %+v, want unchanged terminal state", i, o)
		}
		if o.Round != first.Round ||
			o.PlayerCardsRemaining != first.PlayerCardsRemaining ||
			o.ComputerCardsRemaining != first.ComputerCardsRemaining {
			t.Fatalf("call %d mutated the state", i)
		}
	}
}

func TestRoundConservation(t *testing.T) {
	for seed := uint64(1); seed <= 30; seed++ {
		s := NewSeeded(seed)
		Play(s, 3000, func(o Outcome) {
			if o.PlayerCardsRemaining+o.ComputerCardsRemaining != deck.FullSize {
				t.Fatalf("seed %d round %d: %d+%d cards in play", seed, o.Round,
					o.PlayerCardsRemaining, o.ComputerCardsRemaining)
			}
			if o.Status == GameOver && o.Winner == NoSide {
				t.Fatalf("seed %d: game over without a winner", seed)
			}
		})
	}
}

func TestWinConditionTotality(t *testing.T) {
	for seed := uint64(1); seed <= 30; seed++ {
		s := NewSeeded(seed)
		last := Play(s, 100000, nil)
		if last.Status != GameOver {
			continue
		}
		switch {
		case last.PlayerCardsRemaining == 0 && last.Winner != Computer:
			t.Errorf("seed %d: player out of cards but winner %s", seed, last.Winner)
		case last.ComputerCardsRemaining == 0 && last.Winner != Player:
			t.Errorf("seed %d: computer out of cards but winner %s", seed, last.Winner)
		}
	}
}

func TestPlayHonoursCap(t *testing.T) {
	// 2/5 against K/3 cycles forever
	s := FromDecks(stack("2S", "5S"), stack("KS", "3S"))

	calls := 0
	last := Play(s, 10, func(Outcome) { calls++ })
	if calls != 10 || last.Status != Continue || last.Round != 10 {
		t.Fatalf("calls %d status %s round %d", calls, last.Status, last.Round)
	}
}

func TestResetDealsNewGame(t *testing.T) {
	s := FromDecks(stack("2S"), stack("KS"))
	PlayRound(s)
	id := s.ID()

	s.Reset(lastIndex{})
	if s.IsTerminal() || s.Winner() != NoSide || s.Round() != 0 {
		t.Fatal("reset left the game finished")
	}
	if s.CardsRemaining(Player) != 26 || s.CardsRemaining(Computer) != 26 || s.TotalCards() != 52 {
		t.Fatal("reset did not deal 26/26")
	}
	if s.ID() == id {
		t.Error("reset kept the old game ID")
	}
}

func TestPlayRoundPanicsOnUndealtState(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("PlayRound on a zero State did not panic")
		}
	}()
	PlayRound(&State{})
}

func TestConcurrentRoundsConserveCards(t *testing.T) {
	s := NewSeeded(12)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				PlayRound(s)
			}
		}()
	}
	wg.Wait()

	if n := s.CardsRemaining(Player) + s.CardsRemaining(Computer); n != deck.FullSize {
		t.Fatalf("%d cards after concurrent play", n)
	}
}

func TestSimulateIsDeterministic(t *testing.T) {
	a := Simulate(40, 7, 5000, 4, nil)
	b := Simulate(40, 7, 5000, 1, nil)

	if a.Games != 40 || a.PlayerWins+a.ComputerWins+a.Capped != 40 {
		t.Fatalf("stats = %+v", a)
	}
	if a.PlayerWins != b.PlayerWins || a.TotalRounds != b.TotalRounds ||
		a.TotalWars != b.TotalWars || a.Longest.Seed != b.Longest.Seed {
		t.Errorf("worker count changed the totals: %+v vs %+v", a, b)
	}
	if a.MeanRounds() <= 0 {
		t.Error("mean rounds should be positive")
	}
}

func TestPlayGameReportsCheckError(t *testing.T) {
	boom := errors.New("boom")
	_, err := PlayGame(3, 100, func(*State) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func BenchmarkPlayGame(b *testing.B) {
	for i := 0; i < b.N; i++ {
		PlayGame(uint64(i), 10000, nil)
	}
}

func TestFromDecksPanicsOnDuplicateCards(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FromDecks dealt A♠ twice without panicking")
		}
	}()
	FromDecks(stack("AS", "AS"), stack("2S", "3S"))
}

func TestPlayRoundAndResetConcurrently(t *testing.T) {
	s := NewSeeded(4)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			PlayRound(s)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			s.Reset(lastIndex{})
		}
	}()
	wg.Wait()

	if n := s.CardsRemaining(Player) + s.CardsRemaining(Computer); n != deck.FullSize {
		t.Fatalf("%d cards after concurrent play and reset", n)
	}
}

func TestSimulateWithoutGames(t *testing.T) {
	for _, n := range []int{0, -3} {
		if st := Simulate(n, 1, 100, 2, nil); st.Games != 0 {
			t.Errorf("Simulate(%d) played %d games", n, st.Games)
		}
	}
}

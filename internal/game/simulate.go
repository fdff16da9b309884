package game

import (
	"math/rand/v2"
	"runtime"
	"sync"

	"github.com/google/uuid"
)

// Result summarises one finished (or capped) game
type Result struct {
	ID     uuid.UUID
	Seed   uint64
	Winner Side
	Reason Reason
	Rounds int
	Wars   int
	Capped bool
}

// PlayGame deals a seeded game and plays it out, stopping after maxRounds.
// check, if non-nil, runs after every round and aborts the game on error.
func PlayGame(seed uint64, maxRounds int, check func(*State) error) (Result, error) {
	s := NewSeeded(seed)
	res := Result{ID: s.ID(), Seed: seed}

	var checkErr error
	last := Play(s, maxRounds, func(o Outcome) {
		res.Wars += o.Wars
		if check != nil && checkErr == nil {
			checkErr = check(s)
		}
	})
	if checkErr != nil {
		return res, checkErr
	}

	res.Rounds = last.Round
	res.Winner = last.Winner
	res.Reason = last.Reason
	res.Capped = last.Status != GameOver
	return res, nil
}

// Stats aggregates many results
type Stats struct {
	Games        int
	PlayerWins   int
	ComputerWins int
	Capped       int
	TotalRounds  int
	TotalWars    int
	Longest      Result
	Starved      int
	Errors       []error
}

// Add folds r into the totals
func (st *Stats) Add(r Result) {
	st.Games++
	st.TotalRounds += r.Rounds
	st.TotalWars += r.Wars
	switch {
	case r.Capped:
		st.Capped++
	case r.Winner == Player:
		st.PlayerWins++
	case r.Winner == Computer:
		st.ComputerWins++
	}
	if r.Reason == InsufficientWarCards {
		st.Starved++
	}
	if r.Rounds > st.Longest.Rounds || (r.Rounds == st.Longest.Rounds && r.Seed < st.Longest.Seed) {
		st.Longest = r
	}
}

// MeanRounds is the average number of rounds per game
func (st Stats) MeanRounds() float64 {
	if st.Games == 0 {
		return 0
	}
	return float64(st.TotalRounds) / float64(st.Games)
}

type job struct {
	seed uint64
}

type jobResult struct {
	res Result
	err error
}

// Simulate plays numGames independent games across workers. Game seeds are
// derived from seed up front, so the totals do not depend on scheduling.
func Simulate(numGames int, seed uint64, maxRounds, workers int, check func(*State) error) Stats {
	if numGames <= 0 {
		return Stats{}
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := make(chan job, numGames)
	results := make(chan jobResult, numGames)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				r, err := PlayGame(j.seed, maxRounds, check)
				results <- jobResult{res: r, err: err}
			}
		}()
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))
	for i := 0; i < numGames; i++ {
		jobs <- job{seed: rng.Uint64()}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	var st Stats
	for jr := range results {
		if jr.err != nil {
			st.Errors = append(st.Errors, jr.err)
			continue
		}
		st.Add(jr.res)
	}
	return st
}

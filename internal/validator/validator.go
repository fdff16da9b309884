package validator

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/war/internal/card"
	"github.com/arcanaland/war/internal/deck"
	"github.com/arcanaland/war/internal/game"
	"github.com/arcanaland/war/internal/scenario"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	ScenarioPath string
	Results      ValidationResults
}

func NewValidator(scenarioPath string) *Validator {
	return &Validator{
		ScenarioPath: scenarioPath,
		Results:      ValidationResults{},
	}
}

// Validate checks a scenario file. The returned error is reserved for files
// that cannot be read or decoded at all.
func (v *Validator) Validate() (ValidationResults, error) {
	if _, err := os.Stat(v.ScenarioPath); os.IsNotExist(err) {
		return v.Results, fmt.Errorf("scenario file not found: %s", v.ScenarioPath)
	}

	var f scenario.File
	if _, err := toml.DecodeFile(v.ScenarioPath, &f); err != nil {
		return v.Results, fmt.Errorf("error parsing %s: %w", v.ScenarioPath, err)
	}

	v.ValidateFile(f)
	return v.Results, nil
}

// ValidateFile runs every check against an already decoded scenario
func (v *Validator) ValidateFile(f scenario.File) {
	v.validateMetadata(f)
	player := v.validateStack("player", f.Player)
	computer := v.validateStack("computer", f.Computer)
	v.validatePartition(player, computer)
}

func (v *Validator) validateMetadata(f scenario.File) {
	if f.Name == "" {
		v.Results.Warnings = append(v.Results.Warnings, "name is not set")
	}
}

// validateStack parses every token, recording each bad one
func (v *Validator) validateStack(side string, tokens []string) []card.Card {
	if len(tokens) == 0 {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("%s deck is empty; the game ends before the first round", side))
	}

	cards := make([]card.Card, 0, len(tokens))
	for i, tok := range tokens {
		c, err := card.Parse(tok)
		if err != nil {
			v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("%s card %d: %v", side, i+1, err))
			continue
		}
		cards = append(cards, c)
	}
	return cards
}

// validatePartition checks that no card is dealt twice and reports cards left out
func (v *Validator) validatePartition(player, computer []card.Card) {
	for _, dup := range duplicates(player, computer) {
		v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("card %s appears more than once", dup))
	}

	missing := missingCards(player, computer)
	if len(missing) > 0 && len(missing) < deck.FullSize {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("%d cards are not dealt: %s", len(missing), strings.Join(missing, " ")))
	}
}

// CheckState verifies a live game: no duplicated cards, no card gained or
// lost since the deal, and a full deal still holds all 52 cards.
func CheckState(s *game.State) error {
	player := s.Cards(game.Player)
	computer := s.Cards(game.Computer)

	var problems []string
	for _, dup := range duplicates(player, computer) {
		problems = append(problems, fmt.Sprintf("card %s appears more than once", dup))
	}

	if n := len(player) + len(computer); n != s.TotalCards() {
		problems = append(problems, fmt.Sprintf("%d cards in play, dealt %d", n, s.TotalCards()))
	}

	if s.TotalCards() == deck.FullSize {
		if missing := missingCards(player, computer); len(missing) > 0 {
			problems = append(problems, "missing cards: "+strings.Join(missing, " "))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("game %s round %d: %s", s.ID(), s.Round(), strings.Join(problems, "; "))
	}
	return nil
}

func duplicates(stacks ...[]card.Card) []string {
	var dups []string
	for _, c := range card.Duplicates(stacks...) {
		dups = append(dups, c.String())
	}
	return dups
}

func missingCards(stacks ...[]card.Card) []string {
	present := make(map[card.Card]bool)
	for _, stack := range stacks {
		for _, c := range stack {
			present[c] = true
		}
	}

	var missing []string
	for _, c := range deck.NewFull().Cards() {
		if !present[c] {
			missing = append(missing, c.String())
		}
	}
	return missing
}

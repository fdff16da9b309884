package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/war/internal/card"
	"github.com/arcanaland/war/internal/deck"
	"github.com/arcanaland/war/internal/game"
)

// File is the on-disk layout of a scenario
type File struct {
	Name        string   `toml:"name"`
	Description string   `toml:"description"`
	Player      []string `toml:"player"`
	Computer    []string `toml:"computer"`
}

// Scenario is a fixed starting layout for both decks
type Scenario struct {
	Name        string
	Description string
	Path        string

	Player   []card.Card
	Computer []card.Card
}

// Load reads and parses a scenario file
func Load(path string) (*Scenario, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("scenario file not found: %s", path)
	}

	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", filepath.Base(path), err)
	}

	s, err := FromFile(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	s.Path = path
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Decode parses a scenario from TOML text
func Decode(data string) (*Scenario, error) {
	var f File
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("error parsing scenario: %w", err)
	}
	return FromFile(f)
}

// FromFile converts card tokens into cards
func FromFile(f File) (*Scenario, error) {
	player, err := card.ParseAll(f.Player)
	if err != nil {
		return nil, fmt.Errorf("player deck: %w", err)
	}
	computer, err := card.ParseAll(f.Computer)
	if err != nil {
		return nil, fmt.Errorf("computer deck: %w", err)
	}

	if dups := card.Duplicates(player, computer); len(dups) > 0 {
		return nil, fmt.Errorf("cards dealt more than once: %v", dups)
	}

	return &Scenario{
		Name:        f.Name,
		Description: f.Description,
		Player:      player,
		Computer:    computer,
	}, nil
}

// NewGame starts a game from the scenario's stacks
func (s *Scenario) NewGame() *game.State {
	return game.FromDecks(deck.New(s.Player...), deck.New(s.Computer...))
}

// Encode renders a game's current layout as a scenario file
func Encode(name string, st *game.State) (string, error) {
	f := File{
		Name:     name,
		Player:   tokens(st.Cards(game.Player)),
		Computer: tokens(st.Cards(game.Computer)),
	}

	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(f); err != nil {
		return "", fmt.Errorf("error encoding scenario: %w", err)
	}
	return b.String(), nil
}

func tokens(cards []card.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

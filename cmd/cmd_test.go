package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags puts every flag back to its default between runs of RootCmd
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("WAR_DELAY_MS", "0")

	resetFlags(RootCmd)
	var out bytes.Buffer
	RootCmd.SetArgs(append(args, "--no-color"))
	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	err := RootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const starvedScenario = `name = "starved"
player = ["7S", "AS", "2S", "2H"]
computer = ["7H", "KS", "3S", "9S"]
`

func TestPlayScenarioInteractive(t *testing.T) {
	path := writeFile(t, "starved.toml", starvedScenario)

	out, err := run(t, "\n\nr\nq\n", "play", "--scenario", path)
	if err != nil {
		t.Fatalf("play error: %v\n%s", err, out)
	}
	for _, want := range []string{
		"Computer WINS!",
		"(not enough cards for war)",
		"The game is over.",
		"Press Enter to continue!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlayAutoStops(t *testing.T) {
	out, err := run(t, "", "play", "--auto", "--seed", "3", "--max-rounds", "5")
	if err != nil {
		t.Fatalf("play error: %v", err)
	}
	if !strings.Contains(out, "Round 1 |") {
		t.Errorf("autoplay printed no rounds:\n%s", out)
	}
}

func TestValidateCommand(t *testing.T) {
	good := writeFile(t, "good.toml", starvedScenario)
	out, err := run(t, "", "validate", good)
	if err != nil {
		t.Fatalf("validate error: %v", err)
	}
	if !strings.Contains(out, "is valid") || !strings.Contains(out, "44 cards are not dealt") {
		t.Errorf("output:\n%s", out)
	}

	bad := writeFile(t, "bad.toml", `player = ["7S"]
computer = ["7S"]`)
	out, err = run(t, "", "validate", bad)
	if err == nil || !strings.Contains(out, "7♠ appears more than once") {
		t.Errorf("bad scenario: err %v output:\n%s", err, out)
	}
}

func TestShowSVG(t *testing.T) {
	out, err := run(t, "", "show", "--svg", "QH")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<svg") || !strings.Contains(out, ">♥</text>") {
		t.Errorf("output:\n%s", out)
	}

	if _, err := run(t, "", "show", "ZZ"); err == nil {
		t.Error("show accepted a bad card")
	}
}

func TestSimulateCommand(t *testing.T) {
	dump := filepath.Join(t.TempDir(), "longest.toml")
	out, err := run(t, "", "simulate", "-n", "20", "--seed", "9", "--max-rounds", "3000", "--check", "--dump-longest", dump)
	if err != nil {
		t.Fatalf("simulate error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Games:") || !strings.Contains(out, "20 (seed 9)") {
		t.Errorf("output:\n%s", out)
	}
	if _, err := os.Stat(dump); err != nil {
		t.Errorf("longest game not written: %v", err)
	}
}

func TestConfigSet(t *testing.T) {
	out, err := run(t, "", "config", "set", "player_name", "Ada")
	if err != nil || !strings.Contains(out, "player_name set to: Ada") {
		t.Fatalf("config set: %v\n%s", err, out)
	}
	if _, err := run(t, "", "config", "set", "color", "purple"); err == nil {
		t.Error("config set accepted a bad colour")
	}
}

func TestPlayRejectsDuplicateScenario(t *testing.T) {
	path := writeFile(t, "dup.toml", `player = ["7S", "AS"]
computer = ["7H", "AS"]`)

	out, err := run(t, "\nq\n", "play", "--scenario", path)
	if err == nil || !strings.Contains(err.Error(), "dealt more than once") {
		t.Fatalf("play error = %v, want duplicate rejection\n%s", err, out)
	}
	if strings.Contains(out, "WINS!") {
		t.Errorf("a duplicated deal was played:\n%s", out)
	}
}

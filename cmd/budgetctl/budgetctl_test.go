package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScenario = `
monthly_income = 5000
savings_goal = 1000

[[bills]]
name = "Rent"
amount = 1500
due_date = 1
type = "mandatory"

[[bills]]
name = "Gym"
amount = 100
due_date = 20
type = "optional"

[[cards]]
name = "Visa"
limit = 1000
available = 700
`

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSnapshotCommand(t *testing.T) {
	path := writeScenario(t, sampleScenario)

	t.Run("json", func(t *testing.T) {
		out, err := run(t, "snapshot", "-f", path, "--today", "2026-10-15", "-o", "json")
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "1600.00", got["total_bills"])
		assert.Equal(t, "2400.00", got["discretion_limit"])
		assert.Equal(t, "300.00", got["discretionary_spent"])
		assert.Equal(t, "2100.00", got["discretionary_left"])

		mandatory := got["mandatory_bills"].([]any)
		require.Len(t, mandatory, 1)
		assert.Equal(t, "paid", mandatory[0].(map[string]any)["status"], "rent is past due on the 15th")
	})

	t.Run("text", func(t *testing.T) {
		out, err := run(t, "snapshot", "-f", path, "--today", "2026-10-15")
		require.NoError(t, err)
		assert.Contains(t, out, "Discretion limit")
		assert.Contains(t, out, "$2400.00")
		assert.Contains(t, out, "Rent")
		assert.NotContains(t, out, "OVER BUDGET")
	})
}

func TestTiersCommand(t *testing.T) {
	path := writeScenario(t, sampleScenario+"\n")

	out, err := run(t, "tiers", "-f", path, "--today", "2026-10-15", "-o", "json")
	require.NoError(t, err)

	var got struct {
		Tiers []struct {
			Value  string `json:"value"`
			IsBest bool   `json:"is_best"`
		} `json:"tiers"`
		BestTier struct {
			Value string `json:"value"`
		} `json:"best_tier"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Tiers, 5)
	assert.Equal(t, "600.00", got.Tiers[0].Value)
	assert.Equal(t, "120.00", got.Tiers[4].Value)
	assert.Equal(t, "600.00", got.BestTier.Value)

	text, err := run(t, "tiers", "-f", path, "--today", "2026-10-15")
	require.NoError(t, err)
	assert.Contains(t, text, "$480.00")
	assert.Contains(t, text, "* best fit")
}

func TestScenarioCoercesNonFiniteNumbers(t *testing.T) {
	path := writeScenario(t, `
monthly_income = nan
savings_goal = inf

[[cards]]
name = "Weird"
limit = -inf
available = 0
`)

	out, err := run(t, "tiers", "-f", path, "--today", "2026-10-15", "-o", "json")
	require.NoError(t, err)

	var got struct {
		Tiers []struct {
			IsBest bool `json:"is_best"`
		} `json:"tiers"`
		DiscretionLimit string `json:"discretion_limit"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "0.00", got.DiscretionLimit)
	require.Len(t, got.Tiers, 5)
	assert.True(t, got.Tiers[4].IsBest, "an empty envelope picks the smallest tier")
}

func TestCommandErrors(t *testing.T) {
	good := writeScenario(t, sampleScenario)

	tests := []struct {
		name string
		args []string
	}{
		{"missing file flag", []string{"snapshot"}},
		{"missing file", []string{"snapshot", "-f", filepath.Join(t.TempDir(), "nope.toml")}},
		{"bad date", []string{"snapshot", "-f", good, "--today", "15/10/2026"}},
		{"bad output", []string{"tiers", "-f", good, "-o", "yaml"}},
		{"unknown key", []string{"snapshot", "-f", writeScenario(t, "monthly_incme = 10\n")}},
		{"bad bill type", []string{"snapshot", "-f", writeScenario(t, "[[bills]]\nname = \"x\"\ntype = \"sometimes\"\n")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

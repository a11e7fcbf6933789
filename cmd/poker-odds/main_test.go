package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-equity/internal/deck"
	"github.com/lox/holdem-equity/internal/table"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	m.Run()
}

func TestParseHands(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected int
		hasError bool
	}{
		{
			name:     "Single hand",
			input:    []string{"AcKh"},
			expected: 1,
		},
		{
			name:     "Multiple hands",
			input:    []string{"AcKh", "KdQs"},
			expected: 2,
		},
		{
			name:     "Hand with spaces",
			input:    []string{"Ac Kh"},
			expected: 1,
		},
		{
			name:     "Invalid hand - too many cards",
			input:    []string{"AcKhQd"},
			hasError: true,
		},
		{
			name:     "Invalid hand - too few cards",
			input:    []string{"Ac"},
			hasError: true,
		},
		{
			name:     "Invalid card format",
			input:    []string{"AcXy"},
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hands, err := parseHands(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, hands, tt.expected)
			for _, hand := range hands {
				assert.Len(t, hand, 2)
			}
		})
	}
}

func TestSeatRejectsDuplicates(t *testing.T) {
	tests := []struct {
		name  string
		hands string
		board string
	}{
		{"Duplicate in hands", "AsKh AsQs", ""},
		{"Duplicate between hand and board", "AsKh", "As7d2c"},
		{"Duplicate in board", "AsKh", "7d7d2c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hands [][]deck.Card
			cards := deck.MustParseCards(tt.hands)
			for i := 0; i < len(cards); i += 2 {
				hands = append(hands, cards[i:i+2])
			}

			err := seat(table.New(), hands, deck.MustParseCards(tt.board))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "duplicate card found")
		})
	}
}

func newCLI(t *testing.T, hands ...string) *CLI {
	seed := int64(42)
	return &CLI{
		Hands:   hands,
		Trials:  2000,
		Workers: 2,
		Seed:    &seed,
		Config:  filepath.Join(t.TempDir(), "none.hcl"),
		NoColor: true,
	}
}

func TestRunCompleteBoard(t *testing.T) {
	cli := newCLI(t, "AsAd", "KsKd")
	cli.Board = "2c7d9hJcQs"
	cli.Possibilities = true

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(cli, &stdout, &stderr))

	out := stdout.String()
	assert.Contains(t, out, "A♠ A♦")
	assert.Contains(t, out, "100.0%")
	assert.Contains(t, out, "One Pair")
	assert.Contains(t, out, "2,000 trials on 2 workers")
	assert.NotContains(t, out, "Straight Flush")
}

func TestRunBeforeFlop(t *testing.T) {
	cli := newCLI(t, "AsAd", "KsKd")
	cli.Board = "2c7d"

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(cli, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "from the flop onwards")
}

func TestRunDump(t *testing.T) {
	cli := newCLI(t, "AsAd", "KsKd")
	cli.Board = "2c7d9h"
	cli.Dump = true

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(cli, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "player 1")
	assert.Contains(t, stdout.String(), "KsKd")
}

func TestRunErrors(t *testing.T) {
	cli := newCLI(t, "AsAd", "AsKd")
	cli.Board = "2c7d9h"
	var stdout, stderr bytes.Buffer
	assert.Error(t, run(cli, &stdout, &stderr))

	cli = newCLI(t, "AsAd")
	cli.Board = "2c7d9hXx"
	assert.Error(t, run(cli, &stdout, &stderr))

	cli = newCLI(t, "AsAd")
	cli.LogLevel = "loud"
	assert.Error(t, run(cli, &stdout, &stderr))
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"

	"github.com/lox/holdem-equity/internal/config"
	"github.com/lox/holdem-equity/internal/deck"
	"github.com/lox/holdem-equity/internal/equity"
	"github.com/lox/holdem-equity/internal/evaluator"
	"github.com/lox/holdem-equity/internal/table"
)

type CLI struct {
	Hands         []string `arg:"" help:"Player hands in format 'AcKd QhJs' (space separated, quoted)" required:"true"`
	Board         string   `short:"b" help:"Community board cards, at least the flop (e.g., 'Td7s8h')"`
	Possibilities bool     `short:"p" help:"Show detailed hand type probabilities"`
	Trials        int      `short:"t" help:"Number of Monte Carlo trials (overrides config)"`
	Workers       int      `short:"w" help:"Number of parallel workers (overrides config)"`
	Seed          *int64   `help:"Random seed for reproducible results"`
	Config        string   `short:"c" default:"poker-odds.hcl" help:"Path to HCL configuration file"`
	LogLevel      string   `short:"l" help:"Log level (overrides config)"`
	NoColor       bool     `help:"Disable coloured output"`
	Dump          bool     `help:"Print the table state after the simulation"`
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("poker-odds"),
		kong.Description("Monte Carlo equity for Texas Hold'em hands.\n\n"+config.EnvUsage()),
	)

	if err := run(&cli, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		ctx.Exit(1)
	}
}

func run(cli *CLI, stdout, stderr io.Writer) error {
	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := applyFlags(cli, cfg); err != nil {
		return err
	}
	logger := cfg.NewLogger(stderr)

	hands, err := parseHands(cli.Hands)
	if err != nil {
		return fmt.Errorf("parsing hands: %w", err)
	}
	board, err := deck.ParseCards(cli.Board)
	if err != nil {
		return fmt.Errorf("parsing board: %w", err)
	}

	tbl := table.New(
		table.WithMaxPlayers(cfg.Table.MaxPlayers),
		table.WithLogger(logger),
	)
	if err := seat(tbl, hands, board); err != nil {
		return err
	}

	sim := equity.New(append(cfg.SimulatorOptions(), equity.WithLogger(logger))...)
	updated, err := tbl.UpdateEquity(sim)
	if err != nil {
		return err
	}

	if !updated {
		fmt.Fprintf(stdout, "Equity is calculated from the flop onwards; board has %d of %d cards.\n",
			len(board), equity.MinBoard)
	} else {
		displayResults(stdout, tbl.Equity(), board, cli.Possibilities)
	}

	if cli.Dump {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, tbl.Dump())
	}
	return nil
}

// applyFlags layers command line overrides on top of the loaded config.
func applyFlags(cli *CLI, cfg *config.Config) error {
	if cli.Trials > 0 {
		cfg.Simulation.Trials = cli.Trials
	}
	if cli.Workers > 0 {
		cfg.Simulation.Workers = cli.Workers
	}
	if cli.Seed != nil {
		cfg.Simulation.Seed = cli.Seed
	}
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}
	if len(cli.Hands) > cfg.Table.MaxPlayers {
		cfg.Table.MaxPlayers = min(len(cli.Hands), table.MaxSeats)
	}
	return cfg.Validate()
}

func parseHands(handStrings []string) ([][]deck.Card, error) {
	var hands [][]deck.Card

	for i, handStr := range handStrings {
		hand, err := deck.ParseCards(strings.TrimSpace(handStr))
		if err != nil {
			return nil, fmt.Errorf("hand %d: %v", i+1, err)
		}
		if len(hand) != equity.MaxHoleCards {
			return nil, fmt.Errorf("hand %d: must contain exactly 2 cards, got %d", i+1, len(hand))
		}
		hands = append(hands, hand)
	}

	return hands, nil
}

// seat puts every hand and the board on the table. Dealing fails on any card
// that is already somewhere else, so duplicates are caught here.
func seat(tbl *table.Table, hands [][]deck.Card, board []deck.Card) error {
	for i, hand := range hands {
		id, err := tbl.AddPlayer(fmt.Sprintf("player %d", i+1))
		if err != nil {
			return err
		}
		for _, card := range hand {
			if err := tbl.DealHole(id, card); err != nil {
				return fmt.Errorf("hand %d: %w", i+1, describe(err, card))
			}
		}
	}
	for _, card := range board {
		if err := tbl.DealCommunity(card); err != nil {
			return fmt.Errorf("board: %w", describe(err, card))
		}
	}
	return nil
}

func describe(err error, card deck.Card) error {
	if errors.Is(err, table.ErrCardUnavailable) {
		return fmt.Errorf("duplicate card found: %s", card)
	}
	return err
}

func displayResults(w io.Writer, result *equity.Result, board []deck.Card, showPossibilities bool) {
	fmt.Fprintf(w, "%s\n", headerStyle.Render("board"))
	fmt.Fprintf(w, "%s\n\n", deck.FormatCards(board))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("win"),
		headerStyle.Render("±95%"),
		headerStyle.Render("tie"),
		headerStyle.Render("equity"))

	for _, p := range result.Players {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			handStyle.Render(deck.FormatCards(p.Hole)),
			winStyle.Render(fmt.Sprintf("%.1f%%", p.WinPct)),
			tieStyle.Render(fmt.Sprintf("%.2f", 1.96*p.StdErrPct)),
			tieStyle.Render(fmt.Sprintf("%.1f%%", p.TiePct)),
			winStyle.Render(fmt.Sprintf("%.1f%%", p.EquityPct)))
	}

	tw.Flush()

	if showPossibilities && len(result.Players) > 0 {
		fmt.Fprintf(w, "\n")
		displayPossibilities(w, result)
	}

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "%s trials on %d workers in %v (ties %.1f%%)\n",
		humanize.Comma(int64(result.Trials)),
		result.Workers,
		result.Duration.Truncate(time.Millisecond),
		result.TiePct)
}

func displayPossibilities(w io.Writer, result *equity.Result) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s", categoryStyle.Render("hand"))
	for _, p := range result.Players {
		fmt.Fprintf(tw, "\t%s", handStyle.Render(deck.FormatCards(p.Hole)))
	}
	fmt.Fprintf(tw, "\n")

	for _, category := range evaluator.Categories() {
		seen := false
		for _, p := range result.Players {
			if p.Categories[category] > 0 {
				seen = true
				break
			}
		}
		if !seen {
			continue
		}

		fmt.Fprintf(tw, "%s", categoryStyle.Render(category.String()))
		for _, p := range result.Players {
			if pct := p.Categories[category]; pct > 0 {
				fmt.Fprintf(tw, "\t%s", percentStyle.Render(fmt.Sprintf("%.1f%%", pct)))
			} else {
				fmt.Fprintf(tw, "\t%s", percentStyle.Render("."))
			}
		}
		fmt.Fprintf(tw, "\n")
	}

	tw.Flush()
}

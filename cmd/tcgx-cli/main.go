package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rkatz/tcgsim/internal/agent"
	"github.com/rkatz/tcgsim/internal/engine"
	"github.com/rkatz/tcgsim/internal/engine/catalog"
	"github.com/rkatz/tcgsim/internal/log"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "play":
		runPlay(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  tcgx-cli play [--deck FILE] [--config FILE] [--seed N] [--you-player 0|1]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play    Play a match against the built-in opponent from this terminal")
}

func runPlay(args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	deckFile := fs.String("deck", "", "path to your deck text file (spec.md §6 grammar); empty uses the example catalog's default deck")
	configFile := fs.String("config", "", "path to a YAML Config override file; empty uses the example catalog's default config")
	seed := fs.Int64("seed", 0x5eed5eed, "deterministic RNG seed")
	youPlayer := fs.Int("you-player", 0, "your seat, 0 or 1 (with the default config the first player is drawn at random)")
	fs.Parse(args)

	cat := catalog.Build()
	cfg := catalog.DefaultConfig()
	if *configFile != "" {
		loaded, err := catalog.LoadConfigYAML(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	logger := log.NewTextLogger(os.Stdout)
	m := engine.NewMatch(cfg, cat, *seed, logger)

	defaultChars, defaultCards := catalog.DefaultDeck()
	for p := 0; p < 2; p++ {
		chars, cards := defaultChars, defaultCards
		if p == *youPlayer && *deckFile != "" {
			data, err := os.ReadFile(*deckFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: read deck file: %v\n", err)
				os.Exit(1)
			}
			deck, err := engine.ParseDeckText(strings.NewReader(string(data)), cat)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: parse deck: %v\n", err)
				os.Exit(1)
			}
			chars, cards = deck.CharacterKeys, deck.CardIDs
		}
		if err := m.SetDeck(p, chars, cards); err != nil {
			fmt.Fprintf(os.Stderr, "Error: set deck for player %d: %v\n", p, err)
			os.Exit(1)
		}
	}

	if err := m.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: start: %v\n", err)
		os.Exit(1)
	}

	agents := [2]agent.Agent{agent.NoOpAgent{}, agent.NoOpAgent{}}
	agents[*youPlayer] = agent.NewCLIAgent(*youPlayer, os.Stdin, os.Stdout)

	winner, err := agent.RunMatch(m, agents, 100000)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	switch winner {
	case engine.DrawResult:
		fmt.Println("Match ended in a draw.")
	case *youPlayer:
		fmt.Println("You win!")
	default:
		fmt.Println("You lose.")
	}
}

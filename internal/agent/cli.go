package agent

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rkatz/tcgsim/internal/engine"
)

// CLIAgent drives one player's decisions from a line-oriented command
// stream, implementing spec.md §6's command grammar verbatim. Grounded on
// the teacher's Client.RunREPL (internal/net/client.go): a bufio.Reader
// loop that prints a prompt, reads one line, and re-prompts on a parse or
// validation error rather than aborting the match.
type CLIAgent struct {
	Player int
	In     *bufio.Reader
	Out    io.Writer
}

// NewCLIAgent wraps r/w as the decision source/sink for one player.
func NewCLIAgent(player int, r io.Reader, w io.Writer) *CLIAgent {
	return &CLIAgent{Player: player, In: bufio.NewReader(r), Out: w}
}

func (a *CLIAgent) printf(format string, args ...any) {
	fmt.Fprintf(a.Out, format, args...)
}

// Decide prints the player's pending requests and reads commands from In
// until one of them parses, validates against the candidates on offer,
// and is accepted by Match.Respond.
func (a *CLIAgent) Decide(m *engine.Match, player int) error {
	reqs := m.PendingRequests(player)
	if len(reqs) == 0 {
		return nil
	}
	a.renderRequests(reqs)
	for {
		line, err := a.In.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("agent: read command: %w", err)
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			a.printf("> ")
			continue
		}
		resp, rerr := ParseCommand(player, reqs, fields)
		if rerr != nil {
			a.printf("%s\n> ", rerr)
			continue
		}
		if err := m.Respond(resp); err != nil {
			a.printf("%s\n> ", err)
			continue
		}
		return nil
	}
}

func (a *CLIAgent) renderRequests(reqs []engine.Request) {
	a.printf("\nPending requests:\n")
	for _, r := range reqs {
		a.printf("  %s\n", r.Type)
	}
	a.printf("> ")
}

// ParseCommand matches spec.md §6's grammar: sw_card [i …], choose <i>,
// reroll [i …], sw_char <i> <cost_dice …>, tune <card_i> <die_i>, end,
// skill <i> <cost_dice …>, card <hand_i> <target_i?> <cost_dice …>. It is
// exported so other front ends (internal/mcp) can reuse the same grammar
// instead of re-deriving it against Request/Response.
func ParseCommand(player int, reqs []engine.Request, fields []string) (engine.Response, error) {
	verb := fields[0]
	args := fields[1:]

	find := func(t engine.RequestType) (engine.Request, bool) {
		for _, r := range reqs {
			if r.Type == t {
				return r, true
			}
		}
		return engine.Request{}, false
	}

	switch verb {
	case "sw_card":
		if _, ok := find(engine.RequestSwitchCard); !ok {
			return engine.Response{}, fmt.Errorf("agent: no switch-card request pending")
		}
		idxs, err := parseInts(args)
		if err != nil {
			return engine.Response{}, err
		}
		return engine.Response{Type: engine.RequestSwitchCard, Player: player, HandIndices: idxs}, nil

	case "choose":
		if _, ok := find(engine.RequestChooseCharacter); !ok {
			return engine.Response{}, fmt.Errorf("agent: no choose-character request pending")
		}
		i, err := parseOneInt(args)
		if err != nil {
			return engine.Response{}, err
		}
		return engine.Response{Type: engine.RequestChooseCharacter, Player: player, CharacterIndex: i}, nil

	case "reroll":
		if _, ok := find(engine.RequestRerollDice); !ok {
			return engine.Response{}, fmt.Errorf("agent: no reroll request pending")
		}
		idxs, err := parseInts(args)
		if err != nil {
			return engine.Response{}, err
		}
		return engine.Response{Type: engine.RequestRerollDice, Player: player, DiceIndices: idxs}, nil

	case "sw_char":
		if _, ok := find(engine.RequestSwitchCharacter); !ok {
			return engine.Response{}, fmt.Errorf("agent: no switch-character request pending")
		}
		if len(args) < 1 {
			return engine.Response{}, fmt.Errorf("agent: sw_char requires a character index")
		}
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return engine.Response{}, fmt.Errorf("agent: bad character index %q", args[0])
		}
		dice, err := parseInts(args[1:])
		if err != nil {
			return engine.Response{}, err
		}
		return engine.Response{Type: engine.RequestSwitchCharacter, Player: player, CharacterIndex: i, PayDice: dice}, nil

	case "tune":
		if _, ok := find(engine.RequestElementalTuning); !ok {
			return engine.Response{}, fmt.Errorf("agent: no elemental-tuning request pending")
		}
		if len(args) != 2 {
			return engine.Response{}, fmt.Errorf("agent: tune requires <card_i> <die_i>")
		}
		cardIdx, err1 := strconv.Atoi(args[0])
		dieIdx, err2 := strconv.Atoi(args[1])
		if err1 != nil || err2 != nil {
			return engine.Response{}, fmt.Errorf("agent: bad tune indices %q", args)
		}
		return engine.Response{Type: engine.RequestElementalTuning, Player: player, TuneHandIndex: cardIdx, TuneDieIndex: dieIdx}, nil

	case "end":
		if _, ok := find(engine.RequestDeclareRoundEnd); !ok {
			return engine.Response{}, fmt.Errorf("agent: no declare-round-end request pending")
		}
		return engine.Response{Type: engine.RequestDeclareRoundEnd, Player: player, DeclareRoundEnd: true}, nil

	case "skill":
		if _, ok := find(engine.RequestUseSkill); !ok {
			return engine.Response{}, fmt.Errorf("agent: no use-skill request pending")
		}
		if len(args) < 1 {
			return engine.Response{}, fmt.Errorf("agent: skill requires an index")
		}
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return engine.Response{}, fmt.Errorf("agent: bad skill index %q", args[0])
		}
		dice, err := parseInts(args[1:])
		if err != nil {
			return engine.Response{}, err
		}
		return engine.Response{Type: engine.RequestUseSkill, Player: player, SkillIndex: i, PayDice: dice}, nil

	case "card":
		if _, ok := find(engine.RequestUseCard); !ok {
			return engine.Response{}, fmt.Errorf("agent: no use-card request pending")
		}
		if len(args) < 1 {
			return engine.Response{}, fmt.Errorf("agent: card requires a hand index")
		}
		handIdx, err := strconv.Atoi(args[0])
		if err != nil {
			return engine.Response{}, fmt.Errorf("agent: bad hand index %q", args[0])
		}
		rest := args[1:]
		var target []int
		if len(rest) > 0 {
			if t, err := strconv.Atoi(rest[0]); err == nil {
				target = []int{t}
				rest = rest[1:]
			}
		}
		dice, err := parseInts(rest)
		if err != nil {
			return engine.Response{}, err
		}
		return engine.Response{Type: engine.RequestUseCard, Player: player, CardIndex: handIdx, CardTargets: target, PayDice: dice}, nil

	default:
		return engine.Response{}, fmt.Errorf("agent: unknown command %q", verb)
	}
}

func parseInts(fields []string) ([]int, error) {
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("agent: bad integer %q", f)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseOneInt(fields []string) (int, error) {
	if len(fields) != 1 {
		return 0, fmt.Errorf("agent: expected exactly one index")
	}
	return strconv.Atoi(fields[0])
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rkatz/tcgsim/internal/agent"
	"github.com/rkatz/tcgsim/internal/engine"
)

// RegisterTools adds the match tools to the MCP server, mirroring the
// teacher's RegisterTools (internal/mcp/tools.go) but with a single
// submit_command tool instead of one tool per decision type, since
// spec.md §6 already defines one uniform command grammar covering every
// request kind.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startMatchTool(), handleStartMatch)
	s.AddTool(submitCommandTool(), handleSubmitCommand)
	s.AddTool(getMatchStateTool(), handleGetMatchState)
}

func startMatchTool() mcp.Tool {
	return mcp.NewTool("start_match",
		mcp.WithDescription("Start a new match against a built-in opponent. deck_text_you and deck_text_opponent use "+
			"spec's deck grammar: one 'charactor:<Name>' line per character, then '<CardName>*<n>' or '<CardName>' "+
			"lines for the deck. Returns the initial state and your first pending decision, if any."),
		mcp.WithString("deck_text_you", mcp.Required(), mcp.Description("Your deck text")),
		mcp.WithString("deck_text_opponent", mcp.Required(), mcp.Description("The built-in opponent's deck text")),
		mcp.WithNumber("you_player", mcp.Required(), mcp.Description("Your seat, 0 or 1 (the first player is drawn at random)")),
		mcp.WithNumber("seed", mcp.Description("Deterministic RNG seed (0 picks an arbitrary fixed seed)")),
	)
}

func submitCommandTool() mcp.Tool {
	return mcp.NewTool("submit_command",
		mcp.WithDescription("Submit one command in spec's command grammar: 'sw_card [i ...]', 'choose <i>', "+
			"'reroll [i ...]', 'sw_char <i> <cost_dice ...>', 'tune <card_i> <die_i>', 'end', "+
			"'skill <i> <cost_dice ...>', 'card <hand_i> <target_i?> <cost_dice ...>'. Dice indices refer to positions in your "+
			"current dice pool; get_match_state reports only its size (dice_count), not the colors. Only valid when it is your turn to answer a "+
			"pending request."),
		mcp.WithString("command", mcp.Required(), mcp.Description("One whitespace-separated command line")),
	)
}

func getMatchStateTool() mcp.Tool {
	return mcp.NewTool("get_match_state",
		mcp.WithDescription("Get the current match state, accumulated events since the last call, and your "+
			"pending decisions. Read-only."),
	)
}

func handleStartMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession != nil {
		return mcp.NewToolResultError("A match is already running. Only one match at a time is supported."), nil
	}
	deckYou := request.GetString("deck_text_you", "")
	deckOpp := request.GetString("deck_text_opponent", "")
	youPlayer := request.GetInt("you_player", 0)
	seed := int64(request.GetInt("seed", 0))
	if seed == 0 {
		seed = 0x5eed5eed
	}

	deckTexts := [2]string{}
	deckTexts[youPlayer] = deckYou
	deckTexts[1-youPlayer] = deckOpp

	sess, err := NewMatchSession(youPlayer, deckTexts[0], deckTexts[1], seed)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start match: %v", err), nil
	}
	activeSession = sess

	return mcp.NewToolResultText(toJSON(sess.buildStateView())), nil
}

func handleSubmitCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No match is running. Use start_match first."), nil
	}
	sess := activeSession
	sess.mu.Lock()
	defer sess.mu.Unlock()

	fields := strings.Fields(request.GetString("command", ""))
	if len(fields) == 0 {
		return mcp.NewToolResultError("command must not be empty"), nil
	}

	reqs := sess.match.PendingRequests(sess.claudePlayer)
	if len(reqs) == 0 {
		return mcp.NewToolResultError("You have no pending decision right now."), nil
	}
	resp, err := agent.ParseCommand(sess.claudePlayer, reqs, fields)
	if err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}
	if err := sess.match.Respond(resp); err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}
	if err := sess.advance(); err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}
	if sess.match.State == engine.StateEnded {
		activeSession = nil
	}
	return mcp.NewToolResultText(toJSON(sess.buildStateView())), nil
}

func handleGetMatchState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No match is running. Use start_match first."), nil
	}
	sess := activeSession
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return mcp.NewToolResultText(toJSON(sess.buildStateView())), nil
}

func toJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}

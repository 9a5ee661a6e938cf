package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	tcgxmcp "github.com/rkatz/tcgsim/internal/mcp"
)

func main() {
	s := server.NewMCPServer("tcgx", "1.0.0")
	tcgxmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

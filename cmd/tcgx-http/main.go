package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rkatz/tcgsim/internal/engine/catalog"
	"github.com/rkatz/tcgsim/internal/httpapi"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	configFile := flag.String("config", "", "path to a YAML Config override file applied to every match; empty uses the example catalog's default config")
	flag.Parse()

	cfg := catalog.DefaultConfig()
	if *configFile != "" {
		loaded, err := catalog.LoadConfigYAML(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	srv := httpapi.NewServerWithConfig(cfg)

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("tcgx HTTP API listening on http://localhost:%d", *port)
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Package main implements a small interactive CLI for a running
// CardStack server. It drives the optimistic client stores in
// internal/client/state so local state mirrors what a UI would show.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "CardStack server base URL")
	flag.Parse()

	app := newApp(*serverURL)

	fmt.Println("CardStack CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(context.Background(), app, os.Stdout, scanner)
}

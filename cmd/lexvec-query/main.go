// Command lexvec-query loads an embeddings file and answers nearest-
// neighbor queries, either in a one-shot non-interactive mode or as a
// read-eval-print loop over stdin.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
)

func main() {
	var (
		embPath = flag.String("embeddings", "", "path to an embeddings file (required)")
		query   = flag.String("query", "", "one-shot query word (non-interactive mode)")
		topK    = flag.Int("topk", 10, "number of neighbors to return")
	)
	flag.Parse()

	if *embPath == "" {
		log.Fatal("--embeddings required")
	}

	idx, err := openIndex(*embPath)
	if err != nil {
		log.Fatal("load embeddings:", err)
	}

	if *query != "" {
		if err := runQuery(idx, *query, *topK); err != nil {
			log.Fatal(err)
		}
		return
	}

	fmt.Println("===========================================")
	fmt.Println("  lexvec nearest-neighbor query")
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Println("Type a word (Ctrl+D to exit):")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		if err := runQuery(idx, word, *topK); err != nil {
			fmt.Println("Error:", err)
		}
	}
	fmt.Println("\nGoodbye!")
}

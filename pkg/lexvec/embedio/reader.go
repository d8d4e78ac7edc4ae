package embedio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Embeddings is a loaded embedding file: parallel Words/Vectors slices
// plus a word-to-row index for lookup.
type Embeddings struct {
	Words   []string
	Vectors [][]float32
	D       int

	index map[string]int
}

// Read loads an embedding file written by Write/WriteTo.
func Read(path string) (*Embeddings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("embedio: open %s: %w", path, err)
	}
	defer f.Close()
	return ReadFrom(f)
}

// ReadFrom parses the embedding format from an arbitrary io.Reader.
func ReadFrom(r io.Reader) (*Embeddings, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 8*1024*1024)

	if !scanner.Scan() {
		return nil, fmt.Errorf("embedio: empty embedding stream")
	}
	var v, d int
	if _, err := fmt.Sscanf(scanner.Text(), "%d %d", &v, &d); err != nil {
		return nil, fmt.Errorf("embedio: malformed header %q: %w", scanner.Text(), err)
	}

	e := &Embeddings{
		Words:   make([]string, 0, v),
		Vectors: make([][]float32, 0, v),
		D:       d,
		index:   make(map[string]int, v),
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		word := fields[0]
		vals := fields[1:]
		if len(vals) != d {
			return nil, fmt.Errorf("embedio: word %q has %d components, want %d", word, len(vals), d)
		}
		vec := make([]float32, d)
		for i, s := range vals {
			f64, err := strconv.ParseFloat(s, 32)
			if err != nil {
				return nil, fmt.Errorf("embedio: word %q component %d: %w", word, i, err)
			}
			vec[i] = float32(f64)
		}
		e.index[word] = len(e.Words)
		e.Words = append(e.Words, word)
		e.Vectors = append(e.Vectors, vec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("embedio: scan: %w", err)
	}
	return e, nil
}

// Lookup returns the vector for word and whether it was present.
func (e *Embeddings) Lookup(word string) ([]float32, bool) {
	i, ok := e.index[word]
	if !ok {
		return nil, false
	}
	return e.Vectors[i], true
}

// IndexOf returns word's row index and whether it was present.
func (e *Embeddings) IndexOf(word string) (int, bool) {
	i, ok := e.index[word]
	return i, ok
}

// Len returns the number of loaded words.
func (e *Embeddings) Len() int { return len(e.Words) }

// Command corpus-fetch downloads Hacker News story text via the public
// HN API and writes it as a single whitespace-tokenized corpus file
// suitable for -input. It is an auxiliary acquisition tool, not part of
// the trainer's core: corpus production is explicitly out of the
// trainer's own scope.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	apiBase       = "https://hacker-news.firebaseio.com/v0"
	topStoriesURL = apiBase + "/topstories.json"
	itemURL       = apiBase + "/item/%d.json"
)

// hnItem is the subset of the HN item schema this tool uses.
type hnItem struct {
	ID    int64  `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Text  string `json:"text"`
	Time  int64  `json:"time"`
}

func main() {
	var (
		count  = flag.Int("count", 100, "number of top stories to fetch")
		output = flag.String("output", "corpus.txt", "output corpus file path")
	)
	flag.Parse()

	log.Printf("fetching top %d Hacker News stories...", *count)

	ids, err := getTopStories()
	if err != nil {
		log.Fatal("get top stories:", err)
	}
	if *count < len(ids) {
		ids = ids[:*count]
	}

	out, err := os.Create(*output)
	if err != nil {
		log.Fatal("create output:", err)
	}
	defer out.Close()
	w := bufio.NewWriter(out)
	defer w.Flush()

	written := 0
	for i, id := range ids {
		item, err := getItem(id)
		if err != nil {
			log.Printf("get item %d: %v", id, err)
			continue
		}
		if item.Type != "story" || item.Title == "" {
			continue
		}

		text := item.Title
		if item.Text != "" {
			text += " " + stripHTML(item.Text)
		}
		if _, err := fmt.Fprintln(w, tokenizeLine(text)); err != nil {
			log.Fatal("write corpus:", err)
		}
		written++

		if (i+1)%10 == 0 {
			log.Printf("fetched %d/%d stories...", written, len(ids))
		}
		time.Sleep(50 * time.Millisecond)
	}

	log.Printf("wrote %d stories to %s", written, *output)
}

func getTopStories() ([]int64, error) {
	resp, err := http.Get(topStoriesURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var ids []int64
	if err := json.NewDecoder(resp.Body).Decode(&ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func getItem(id int64) (*hnItem, error) {
	resp, err := http.Get(fmt.Sprintf(itemURL, id))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var item hnItem
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func stripHTML(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(doc)
	return strings.TrimSpace(buf.String())
}

// tokenizeLine collapses a story's text into a single whitespace-
// separated, lowercase line, one story per corpus line. The trainer and
// pair miner split the corpus on any whitespace, so line breaks do not
// bound their skip-gram windows.
func tokenizeLine(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	return strings.Join(fields, " ")
}

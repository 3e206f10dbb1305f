package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/kalexmills/simple-utils/src/utils"
)

type Datasource struct {
	lineParser func(string) string
}

var sources = map[string]Datasource{
	"gen-chat": {
		lineParser: func(s string) string {
			tokens := strings.Split(s, ",")
			if len(tokens) < 4 {
				return ""
			}
			return strings.Trim(strings.Join(tokens[3:], ","), " \"")
		},
	},
	"lines": {
		lineParser: strings.TrimSpace,
	},
}

func main() {
	sourceName := flag.String("source", "lines", "input format: lines or gen-chat")
	top := flag.Int("top", 5, "number of longest messages to print")
	flag.Parse()

	source, ok := sources[*sourceName]
	if !ok {
		FatalError(fmt.Errorf("unknown source %q", *sourceName))
	}

	in := io.Reader(os.Stdin)
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		FatalError(err)
		defer f.Close()
		in = f
	}

	stats, err := collect(in, source)
	FatalError(err)
	stats.Print(os.Stdout, *top)
}

// maxLineSize bounds a single exported message.
const maxLineSize = 4 << 20

type message struct {
	text  string
	words int
}

type Stats struct {
	messages []message
	words    int
}

func collect(r io.Reader, source Datasource) (Stats, error) {
	var stats Stats
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for s.Scan() {
		text := source.lineParser(s.Text())
		if text == "" {
			continue
		}
		n := utils.CountWords(text)
		stats.messages = append(stats.messages, message{text, n})
		stats.words += n
	}
	return stats, s.Err()
}

func (s Stats) Average() float64 {
	if len(s.messages) == 0 {
		return 0
	}
	return float64(s.words) / float64(len(s.messages))
}

// Longest returns up to n messages with the most words, longest first.
func (s Stats) Longest(n int) []message {
	sorted := append([]message(nil), s.messages...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].words > sorted[j].words
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

func (s Stats) Print(w io.Writer, top int) {
	fmt.Fprintf(w, "messages: %d\nwords: %d\naverage: %.2f\n", len(s.messages), s.words, s.Average())
	for _, m := range s.Longest(top) {
		fmt.Fprintf(w, "%d\t%s\n", m.words, strings.ReplaceAll(m.text, "\n", "\\n"))
	}
}

func FatalError(err error) {
	if err != nil {
		fmt.Printf("encountered error: %v\n", err)
		os.Exit(1)
	}
}

package aoc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseNetwork reads one edge per line, written as two node names joined by
// sep (e.g. "kh-tc"). Blank lines are skipped. Any other line that is not
// exactly two non-empty names is a *ParseError, and no Graph is returned.
func ParseNetwork(r io.Reader, sep string) (*Graph[string], error) {
	if sep == "" {
		return nil, errors.New("aoc: empty pair separator")
	}
	var b Builder[string]
	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		text := s.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		a, c, err := splitPair(text, sep)
		if err == nil {
			err = b.AddEdge(a, c)
		}
		if err != nil {
			pe := &ParseError{Line: line, Text: text, Reason: err.Error(), Err: err}
			if errors.Is(err, ErrSelfLoop) {
				pe.Reason = "self-loop"
			}
			return nil, pe
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("aoc: reading network: %w", err)
	}
	return b.Build(), nil
}

// ParseNetworkString is ParseNetwork over an in-memory string.
func ParseNetworkString(s, sep string) (*Graph[string], error) {
	return ParseNetwork(strings.NewReader(s), sep)
}

func splitPair(text, sep string) (a, b string, err error) {
	parts := strings.Split(text, sep)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("want 2 tokens separated by %q, got %d", sep, len(parts))
	}
	a, b = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if a == "" || b == "" {
		return "", "", errors.New("empty node name")
	}
	return a, b, nil
}

package shell

import (
	"bufio"
	"context"
	"io"
	"strings"
)

type inputLine struct {
	text string
	err  error
}

// readLines scans in on its own goroutine so a pending prompt can be
// abandoned when the context is cancelled. The goroutine exits at end of
// input or once done is closed.
func readLines(in io.Reader, done <-chan struct{}) <-chan inputLine {
	lines := make(chan inputLine)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- inputLine{text: sc.Text()}:
			case <-done:
				return
			}
		}
		if err := sc.Err(); err != nil {
			select {
			case lines <- inputLine{err: err}:
			case <-done:
			}
		}
	}()
	return lines
}

// prompt prints label and returns the next trimmed input line. It returns
// io.EOF once input is exhausted and ctx.Err() if ctx ends first.
func (s *Shell) prompt(ctx context.Context, label string) (string, error) {
	s.view.printf("%s: ", label)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		if l.err != nil {
			return "", l.err
		}
		return strings.TrimSpace(l.text), nil
	}
}

// promptNonEmpty repeats until a non-blank value is entered.
func (s *Shell) promptNonEmpty(ctx context.Context, label string) (string, error) {
	for {
		v, err := s.prompt(ctx, label)
		if err != nil {
			return "", err
		}
		if v != "" {
			return v, nil
		}
		s.view.warning("  Please enter a value.")
	}
}

// promptChoice repeats until the input matches one of choices,
// case-insensitively, and returns the canonical spelling.
func (s *Shell) promptChoice(ctx context.Context, label string, choices []string) (string, error) {
	for {
		v, err := s.prompt(ctx, label + " [" + strings.Join(choices, ", ") + "]")
		if err != nil {
			return "", err
		}
		for _, c := range choices {
			if strings.EqualFold(c, v) {
				return c, nil
			}
		}
		s.view.warning("  Please choose one of: " + strings.Join(choices, ", "))
	}
}

// promptValid repeats until check accepts the input, printing hint otherwise.
func (s *Shell) promptValid(ctx context.Context, label, hint string, check func(string) bool) (string, error) {
	for {
		v, err := s.promptNonEmpty(ctx, label)
		if err != nil {
			return "", err
		}
		if check(v) {
			return v, nil
		}
		s.view.warning("  " + hint)
	}
}

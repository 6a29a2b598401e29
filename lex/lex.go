// Package lex provides a reference regexp-based implementation of the pull
// lexer contract of spec §6 ("next_token() -> (terminal_id, text,
// location)", "must emit EOF exactly once"). It is a trimmed adaptation of
// the teacher's lex/lex.go + lex/regex.go (longest-match-wins scanning over
// a list of compiled patterns, a discard action for whitespace/comments);
// dropped is the teacher's lex-state machine (AddClass/AddPattern "for
// state") since nothing in this spec's grammar model needs lexer states —
// every terminal here is either emitted or discarded, globally.
package lex

import (
	"fmt"
	"io"
	"regexp"

	"github.com/sturgeon-gen/sturgeon/grammar"
	"github.com/sturgeon-gen/sturgeon/types"
)

type rule struct {
	pattern  *regexp.Regexp
	terminal int
	discard  bool
}

// Lexer is a template of scan rules built with Emit/Discard; Lex spins up
// one TokenStream per input, so the same Lexer may be reused concurrently
// across parses (spec §5 "each concurrent parse must own its own ...
// lexer instance" — here, its own stream instance off a shared template).
type Lexer struct {
	rules []rule
}

func New() *Lexer { return &Lexer{} }

// Emit registers a regular expression that produces a token of the given
// terminal id when matched. Patterns are tried in declaration order at
// each position; the longest match wins, ties broken by whichever pattern
// was declared first (classic lex/flex "maximal munch" rule).
func (lx *Lexer) Emit(pattern string, terminal int) error {
	re, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	lx.rules = append(lx.rules, rule{pattern: re, terminal: terminal})
	return nil
}

// Discard registers a pattern (e.g. whitespace, comments) whose matches are
// consumed but never turned into a token.
func (lx *Lexer) Discard(pattern string) error {
	re, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	lx.rules = append(lx.rules, rule{pattern: re, discard: true})
	return nil
}

// Lex reads all of r into memory and returns a TokenStream over it. Reading
// eagerly (rather than incrementally, as the teacher's bufio.Reader-backed
// lazyLex does) trades streaming-input support for simpler, allocation-free
// regex matching against a stable byte slice; nothing in spec §6 requires
// streaming.
func (lx *Lexer) Lex(r io.Reader) (types.TokenStream, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &stream{lx: lx, buf: data, line: 1, col: 1}, nil
}

type stream struct {
	lx   *Lexer
	buf  []byte
	pos  int
	line int
	col  int
	done bool
}

// Next implements types.TokenStream. It emits EOF (spec's reserved id 1)
// exactly once; per the lexer contract, calls after that are undefined —
// this implementation keeps returning the same EOF token rather than
// panicking, since a caller that ignores the contract deserves a quiet
// no-op more than a crash.
func (s *stream) Next() (types.Token, error) {
	for {
		if s.pos >= len(s.buf) {
			s.done = true
			loc := types.Location{FirstLine: s.line, FirstColumn: s.col, LastLine: s.line, LastColumn: s.col}
			return types.Token{Terminal: grammar.SymEOF, Location: loc}, nil
		}

		best, bestLen := -1, -1
		for i, r := range s.lx.rules {
			loc := r.pattern.FindIndex(s.buf[s.pos:])
			if loc != nil && loc[1] > bestLen {
				best, bestLen = i, loc[1]
			}
		}
		if best == -1 {
			return types.Token{}, fmt.Errorf("%d:%d: no lexer rule matches %q", s.line, s.col, preview(s.buf[s.pos:]))
		}

		text := string(s.buf[s.pos : s.pos+bestLen])
		startLine, startCol := s.line, s.col
		s.advance(text)

		if s.lx.rules[best].discard {
			continue
		}
		loc := types.Location{FirstLine: startLine, FirstColumn: startCol, LastLine: s.line, LastColumn: s.col}
		return types.Token{Terminal: s.lx.rules[best].terminal, Text: text, Location: loc}, nil
	}
}

func (s *stream) advance(text string) {
	for _, r := range text {
		if r == '\n' {
			s.line++
			s.col = 1
		} else {
			s.col++
		}
	}
	s.pos += len(text)
}

func preview(buf []byte) string {
	const max = 16
	if len(buf) > max {
		return string(buf[:max]) + "..."
	}
	return string(buf)
}

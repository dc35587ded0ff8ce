// SPDX-License-Identifier: MIT
package lexer

// REF: https://github.com/sh4t/sql-parser
// REF: https://gitlab.com/fisherprime/go-ddbms/-/blob/master/internal/v1/lexer.go

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
)

type (
	// NextOperation type for the next state function to be executed.
	NextOperation func(context.Context) NextOperation

	// ValidationFunction type for functions that validate rune identities.
	ValidationFunction func(rune) bool

	// Lexer captures ids, splitters & end markers from a topology notation source.
	Lexer struct {
		debug     bool
		endMarker rune
		splitter  rune
		logger    logrus.FieldLogger

		// c is a channel for communicating lexed Items.
		c chan Item

		// source is the input source.
		source io.RuneReader

		// buffer is a slice of runes being lexed.
		buffer []rune
		// bufferIndex is the current buffer position.
		//
		// When this value reaches the length of buffer, the buffer is populated from the source.
		bufferIndex int

		valueCounter int
		endCounter   int
	}

	// Option defines the Lexer functional option type.
	Option func(*Lexer)
)

const defBufferSize = 10

// Lexing errors.
var (
	ErrUnknownTokens = errors.New("unknown tokens")
)

// Rune classes for the ASCII range.
var (
	whitespace = [256]bool{
		' ':  true,
		'\t': true,
		'\r': true,
		'\n': true,
	}

	alphaSymbols = [256]bool{
		'_': true,
		'-': true,
		'.': true,
	}
)

// New creates a Lexer, reading from an empty source unless configured otherwise.
func New(opts ...Option) *Lexer {
	l := &Lexer{
		endMarker: DefaultEndMarker,
		splitter:  DefaultSplitter,
		logger:    logrus.New(),

		c: make(chan Item, defBufferSize),

		buffer: make([]rune, 0, defBufferSize),
		source: strings.NewReader(""),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(l *Lexer) { l.debug = debug } }

// WithEndMarker configures the endMarker option.
func WithEndMarker(r rune) Option { return func(l *Lexer) { l.endMarker = r } }

// WithSplitter configures the splitter option.
func WithSplitter(r rune) Option { return func(l *Lexer) { l.splitter = r } }

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(l *Lexer) { l.logger = logger } }

// WithSource configures the source option.
func WithSource(source io.RuneReader) Option { return func(l *Lexer) { l.source = source } }

// WithString configures a string source.
func WithString(source string) Option { return WithSource(strings.NewReader(source)) }

// EndMarker obtains the configured end marker.
func (l *Lexer) EndMarker() rune { return l.endMarker }

// Splitter obtains the configured value splitter.
func (l *Lexer) Splitter() rune { return l.splitter }

// ValueCounter obtains the number of values lexed so far.
func (l *Lexer) ValueCounter() int { return l.valueCounter }

// EndCounter obtains the number of end markers lexed so far.
func (l *Lexer) EndCounter() int { return l.endCounter }

// Logger obtains the logger.
func (l *Lexer) Logger() logrus.FieldLogger { return l.logger }

// Lex lexes the source by executing state functions, closing the Item channel when done.
//
// The last Item sent is either an ItemEOF or an ItemError.
func (l *Lexer) Lex(ctx context.Context) {
	defer close(l.c)

	for stateFunction := l.LexWhitespace; stateFunction != nil; {
		select {
		case <-ctx.Done():
			l.EmitError(ctx.Err())
			return
		default:
			stateFunction = stateFunction(ctx)
		}
	}
}

// LexWhitespace skips whitespace & dispatches on the following rune.
func (l *Lexer) LexWhitespace(_ context.Context) NextOperation {
	l.AcceptWhile(isWhitespace)
	l.Discard()

	next := l.Next()
	switch {
	case next == emptyRune:
		l.EmitEOF()
		return nil
	case next == l.endMarker:
		l.endCounter++
		l.Emit(ItemEndMarker)

		return l.LexWhitespace
	case next == l.splitter:
		l.Emit(ItemSplitter)

		return l.LexWhitespace
	case isValue(next):
		return l.LexValue
	default:
		l.EmitError(fmt.Errorf("%w: %q", ErrUnknownTokens, next))
		return nil
	}
}

// LexValue captures an id.
func (l *Lexer) LexValue(_ context.Context) NextOperation {
	l.AcceptWhile(isValue)

	l.valueCounter++
	l.Emit(ItemValue)

	return l.LexWhitespace
}

// Next returns the next rune in the input, emptyRune at the end of the source.
func (l *Lexer) Next() (r rune) {
	if l.bufferIndex >= len(l.buffer) {
		// Request data from the source.
		if l.fill() < 1 {
			return emptyRune
		}
	}

	r = l.buffer[l.bufferIndex]
	l.bufferIndex++

	return
}

// Backup steps back one rune.
func (l *Lexer) Backup() {
	if l.bufferIndex > 0 {
		l.bufferIndex--
	}
}

// Discard the buffer content before the current buffer index.
func (l *Lexer) Discard() {
	l.buffer = l.buffer[l.bufferIndex:]
	l.bufferIndex = 0
}

// AcceptWhile consumes runes while fn holds, stopping before the first rune failing it.
func (l *Lexer) AcceptWhile(fn ValidationFunction) {
	for {
		r := l.Next()
		if r == emptyRune {
			// End of input.
			return
		}

		if !fn(r) {
			l.Backup()
			return
		}
	}
}

// fill reads runes from the source into the buffer, returning the amount read.
func (l *Lexer) fill() (sourced int) {
	for ; sourced < defBufferSize; sourced++ {
		r, _, err := l.source.ReadRune()
		if err != nil {
			break
		}
		l.buffer = append(l.buffer, r)
	}

	return
}

// Emit sends the buffered runes as an Item over the communication channel.
func (l *Lexer) Emit(t ItemID) {
	val := string(l.buffer[:l.bufferIndex])

	if l.debug {
		l.logger.Debugf("lexer emit %s: %q", t, val)
	}

	l.c <- Item{ID: t, Val: val}
	l.Discard()
}

// EmitEOF sends an ItemEOF Item over the communication channel.
func (l *Lexer) EmitEOF() { l.c <- Item{ID: ItemEOF} }

// EmitError sends an error over the Lexer's channel.
//
// io.EOF is sent as an ItemEOF.
func (l *Lexer) EmitError(err error) {
	if errors.Is(err, io.EOF) {
		l.EmitEOF()
		return
	}

	l.c <- Item{ID: ItemError, Err: err}
}

// Item returns the next lexed Item; ok is false once the Lexer is done.
func (l *Lexer) Item() (i Item, ok bool) {
	i, ok = <-l.c
	return
}

// Drain discards the remaining Items, unblocking the Lex goroutine.
func (l *Lexer) Drain() {
	for range l.c {
	}
}

// isWhitespace return true for whitespace, newline & carriage return.
func isWhitespace(r rune) bool { return r < 256 && whitespace[r] }

// isAlpha return true for letters & the id symbols.
func isAlpha(r rune) bool { return (r < 256 && alphaSymbols[r]) || unicode.IsLetter(r) }

// isNumeric return true for a digit.
func isNumeric(r rune) bool { return unicode.IsDigit(r) }

// isValue return true for an id rune.
func isValue(r rune) bool { return isAlpha(r) || isNumeric(r) }

// IsValue reports whether s lexes as a single ItemValue.
func IsValue(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !isValue(r) {
			return false
		}
	}

	return true
}

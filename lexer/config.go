// SPDX-License-Identifier: MIT
package lexer

import (
	"github.com/sirupsen/logrus"
)

type (
	// Config defines the notation used when serializing a store's topology.
	Config struct {
		Logger    logrus.FieldLogger
		EndMarker rune
		Splitter  rune
		Debug     bool
	}
)

const (
	// DefaultEndMarker closes the children of a value.
	DefaultEndMarker = ')'

	// DefaultSplitter separates values.
	DefaultSplitter = ','

	emptyRune rune = 0
)

// DefaultConfig creates a Config holding the default notation.
func DefaultConfig() *Config {
	return &Config{
		EndMarker: DefaultEndMarker,
		Splitter:  DefaultSplitter,
		Logger:    logrus.New(),
	}
}

// Validate populates missing Config entries with defaults.
func (c *Config) Validate() {
	if c.EndMarker == emptyRune {
		c.EndMarker = DefaultEndMarker
	}
	if c.Splitter == emptyRune {
		c.Splitter = DefaultSplitter
	}
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
}

// Options converts the Config into Lexer options for the same notation.
func (c *Config) Options() []Option {
	c.Validate()

	return []Option{
		WithEndMarker(c.EndMarker),
		WithSplitter(c.Splitter),
		WithLogger(c.Logger),
		WithDebug(c.Debug),
	}
}

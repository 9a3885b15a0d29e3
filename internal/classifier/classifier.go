package classifier

import (
	"fmt"
	"regexp"

	"github.com/atikulmunna/hitcount/internal/model"
)

// Patterns holds the four regular expressions applied to every line.
type Patterns struct {
	IP     string
	URL    string
	Secret string
	Error  string
}

// DefaultPatterns returns the access log patterns.
//
// Matching is deliberately loose: octets are not range checked, the URL may
// appear anywhere in the line, and "secret"/"404" are plain substrings with no
// word boundaries. An address such as 10.0.0.404 therefore also counts as an
// error.
func DefaultPatterns() Patterns {
	return Patterns{
		IP:     `^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`,
		URL:    `[a-zA-Z0-9]+\.html`,
		Secret: `secret`,
		Error:  `404`,
	}
}

// Classifier extracts a model.Hit from a raw log line.
type Classifier struct {
	ip     *regexp.Regexp
	url    *regexp.Regexp
	secret *regexp.Regexp
	err    *regexp.Regexp
}

// New compiles the given patterns. Empty fields fall back to the defaults.
func New(p Patterns) (*Classifier, error) {
	def := DefaultPatterns()
	compile := func(name, expr, fallback string) (*regexp.Regexp, error) {
		if expr == "" {
			expr = fallback
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("compiling %s pattern: %w", name, err)
		}
		return re, nil
	}

	c := &Classifier{}
	var err error
	if c.ip, err = compile("ip", p.IP, def.IP); err != nil {
		return nil, err
	}
	if c.url, err = compile("url", p.URL, def.URL); err != nil {
		return nil, err
	}
	if c.secret, err = compile("secret", p.Secret, def.Secret); err != nil {
		return nil, err
	}
	if c.err, err = compile("error", p.Error, def.Error); err != nil {
		return nil, err
	}
	return c, nil
}

// Default returns a Classifier built from DefaultPatterns.
func Default() *Classifier {
	c, err := New(DefaultPatterns())
	if err != nil {
		panic(err)
	}
	return c
}

// Classify inspects one line. It has no side effects and never fails; a part
// that does not match is simply left empty.
func (c *Classifier) Classify(line string) model.Hit {
	return model.Hit{
		IP:     c.ip.FindString(line),
		URL:    c.url.FindString(line),
		Secret: c.secret.MatchString(line),
		Error:  c.err.MatchString(line),
	}
}

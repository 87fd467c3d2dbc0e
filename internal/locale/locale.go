package locale

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
)

// Pattern keys understood by the rulesets and transformations.
const (
	KeySilentDeterminers     = "silent_determiners"
	KeyCopulas               = "copulas"
	KeyPartitiveNouns        = "partitive_nouns"
	KeyPartitivePrepositions = "partitive_prepositions"
	KeyRelativePronouns      = "relative_pronouns"
	KeyReflexivePronouns     = "reflexive_pronouns"
	KeyPunctuation           = "punctuation"
	KeyVerbTags              = "verb_tags"
	KeyNounTags              = "noun_tags"
	KeyAdjectiveTags         = "adjective_tags"
	KeyAdverbTags            = "adverb_tags"
	KeyPunctuationTags       = "punctuation_tags"
)

// Word keys hold literal strings rather than patterns.
const (
	KeyIntensifier        = "intensifier"
	KeyPlaceholderSubject = "placeholder_subject"
)

var requiredPatterns = []string{
	KeySilentDeterminers,
	KeyCopulas,
	KeyPartitiveNouns,
	KeyPartitivePrepositions,
	KeyRelativePronouns,
	KeyReflexivePronouns,
	KeyPunctuation,
	KeyVerbTags,
	KeyNounTags,
	KeyAdjectiveTags,
	KeyAdverbTags,
	KeyPunctuationTags,
}

var requiredWords = []string{
	KeyIntensifier,
	KeyPlaceholderSubject,
}

var (
	// ErrUnknownLocale is returned by Load for a name with no configuration.
	ErrUnknownLocale = errors.New("unknown locale")
	// ErrMissingKey is returned when a configuration lacks a required key.
	ErrMissingKey = errors.New("missing locale key")
)

// Config is the per-language lookup of closed word classes and tag classes.
// It is built once per session and handed to the engine.
type Config struct {
	// Name is the locale identifier (e.g., "pt", "en")
	Name string `yaml:"name"`

	// Description is a human-readable summary
	Description string `yaml:"description"`

	// Patterns are regular expressions matched against a whole word or tag,
	// case-insensitively.
	Patterns map[string]string `yaml:"patterns"`

	// Words are literal strings used when synthesising text.
	Words map[string]string `yaml:"words"`

	compiled map[string]*regexp.Regexp
}

// Compile validates the configuration and compiles its patterns.
func (c *Config) Compile() error {
	for _, key := range requiredPatterns {
		if _, ok := c.Patterns[key]; !ok {
			return fmt.Errorf("%w: %s (locale %s)", ErrMissingKey, key, c.Name)
		}
	}
	for _, key := range requiredWords {
		if _, ok := c.Words[key]; !ok {
			return fmt.Errorf("%w: %s (locale %s)", ErrMissingKey, key, c.Name)
		}
	}

	compiled := make(map[string]*regexp.Regexp, len(c.Patterns))
	for key, pattern := range c.Patterns {
		re, err := regexp.Compile(`(?i)^(?:` + pattern + `)$`)
		if err != nil {
			return fmt.Errorf("invalid pattern %s in locale %s: %w", key, c.Name, err)
		}
		compiled[key] = re
	}
	c.compiled = compiled
	return nil
}

// Get returns the raw pattern or word stored under key.
func (c *Config) Get(key string) (string, bool) {
	if v, ok := c.Patterns[key]; ok {
		return v, true
	}
	v, ok := c.Words[key]
	return v, ok
}

// Word returns the literal word stored under key, or "" when absent.
func (c *Config) Word(key string) string {
	return c.Words[key]
}

// Match reports whether s matches the pattern stored under key as a whole.
// Unknown keys never match.
func (c *Config) Match(key, s string) bool {
	re := c.compiled[key]
	if re == nil {
		return false
	}
	return re.MatchString(s)
}

// Keys returns every pattern and word key in sorted order.
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(c.Patterns)+len(c.Words))
	for k := range c.Patterns {
		keys = append(keys, k)
	}
	for k := range c.Words {
		if _, dup := c.Patterns[k]; !dup {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// IsVerb reports whether tag belongs to the verbal class.
func (c *Config) IsVerb(tag string) bool { return c.Match(KeyVerbTags, tag) }

// IsNoun reports whether tag belongs to the nominal class (nouns, proper
// nouns and pronouns).
func (c *Config) IsNoun(tag string) bool { return c.Match(KeyNounTags, tag) }

// IsAdjective reports whether tag belongs to the adjectival class.
func (c *Config) IsAdjective(tag string) bool { return c.Match(KeyAdjectiveTags, tag) }

// IsAdverb reports whether tag belongs to the adverbial class.
func (c *Config) IsAdverb(tag string) bool { return c.Match(KeyAdverbTags, tag) }

// IsPunctuation reports whether a token is punctuation, by tag or by form.
func (c *Config) IsPunctuation(tag, word string) bool {
	if tag != "" && c.Match(KeyPunctuationTags, tag) {
		return true
	}
	return word != "" && c.Match(KeyPunctuation, word)
}

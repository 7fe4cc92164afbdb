package internal

import (
	"strings"
	"unicode/utf8"
)

var builtinAlphabets = []struct {
	name    string
	letters string
}{
	{"numeric", "1234567890"},
	{"abcd", "abcd"},
	{"vimium", "sadfjklewcmpgh"},
	{"qwerty", "asdfqwerzxcvjklmiuopghtybn"},
	{"qwerty-homerow", "asdfjklgh"},
	{"qwerty-left-hand", "asdfqwerzcxv"},
	{"qwerty-right-hand", "jkluiopmyhn"},
	{"azerty", "qsdfazerwxcvjklmuiopghtybn"},
	{"azerty-homerow", "qsdfjkmgh"},
	{"qwertz", "asdfqweryxcvjkluiopmghtzbn"},
	{"qwertz-homerow", "asdfghjkl"},
	{"dvorak", "aoeuqjkxpyhtnsgcrlmwvzfidb"},
	{"dvorak-homerow", "aoeuhtnsid"},
	{"colemak", "arstqwfpzxcvneioluymdhgjbk"},
	{"colemak-homerow", "arstneiodh"},
}

// Alphabet is the ordered set of characters hints are spelled with. The
// position of a character is its value when hints are read as numbers.
type Alphabet struct {
	letters []rune
}

// NewAlphabet creates an alphabet from a literal character set. Letters are
// lower-cased because typed keys are compared in lower case.
func NewAlphabet(letters string) *Alphabet {
	return &Alphabet{letters: []rune(strings.ToLower(letters))}
}

// NewBuiltinAlphabet looks up one of the named keyboard alphabets.
func NewBuiltinAlphabet(name string) (*Alphabet, error) {
	for _, alphabet := range builtinAlphabets {
		if alphabet.name == name {
			return NewAlphabet(alphabet.letters), nil
		}
	}
	return nil, &ConfigurationError{Field: "alphabet", Reason: "unknown alphabet " + name}
}

// ResolveAlphabet accepts either a builtin name or a literal character set.
func ResolveAlphabet(value string) *Alphabet {
	if a, err := NewBuiltinAlphabet(value); err == nil {
		return a
	}
	return NewAlphabet(value)
}

func (a *Alphabet) String() string {
	return string(a.letters)
}

// Len returns the number of hint characters, the base of the hint numbering.
func (a *Alphabet) Len() int {
	return len(a.letters)
}

// Contains reports whether r is one of the hint characters.
func (a *Alphabet) Contains(r rune) bool {
	for _, l := range a.letters {
		if l == r {
			return true
		}
	}
	return false
}

// Validate fails unless the alphabet has at least two distinct characters.
func (a *Alphabet) Validate() error {
	if len(a.letters) < 2 {
		return &ConfigurationError{
			Field:  "alphabet",
			Reason: "needs at least 2 characters, got " + quoteLetters(a.letters),
		}
	}
	seen := make(map[rune]bool, len(a.letters))
	for _, l := range a.letters {
		if l == utf8.RuneError {
			return &ConfigurationError{Field: "alphabet", Reason: "contains invalid UTF-8"}
		}
		if seen[l] {
			return &ConfigurationError{
				Field:  "alphabet",
				Reason: "duplicate character " + quoteLetters([]rune{l}),
			}
		}
		seen[l] = true
	}
	return nil
}

// Hints allocates count distinct hint strings. Every hint is as short as the
// alphabet allows, no hint is a prefix of another, and hints that share a
// first character are spread through the result instead of clustered.
func (a *Alphabet) Hints(count int) ([]string, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if count <= 0 {
		return []string{}, nil
	}

	base := len(a.letters)
	digitsNeeded, capacity := 1, base
	for capacity < count {
		digitsNeeded++
		capacity *= base
	}

	// Hints one digit shorter than the worst case. Each of them uses up base
	// long numbers, so the long hints start at shortCount*base and all of their
	// prefixes lie above the short range.
	shortCount := (capacity - count) / base
	longCount := count - shortCount

	hints := make([]string, 0, count)
	if digitsNeeded > 1 {
		for i := 0; i < shortCount; i++ {
			hints = append(hints, a.numberToHint(i, digitsNeeded-1))
		}
	}
	start := shortCount * base
	for i := start; i < start+longCount; i++ {
		hints = append(hints, a.numberToHint(i, digitsNeeded))
	}

	return spreadHints(hints, base), nil
}

// AllocateHints is a shortcut for NewAlphabet(letters).Hints(count).
func AllocateHints(count int, letters string) ([]string, error) {
	return NewAlphabet(letters).Hints(count)
}

// numberToHint spells number in the alphabet's base, left padded with the
// first letter to width characters.
func (a *Alphabet) numberToHint(number, width int) string {
	base := len(a.letters)
	digits := make([]rune, 0, width)
	for {
		digits = append(digits, a.letters[number%base])
		number /= base
		if number == 0 {
			break
		}
	}
	for len(digits) < width {
		digits = append(digits, a.letters[0])
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}

// spreadHints deals hints into base buckets by index and concatenates the
// buckets, keeping the order inside each bucket.
func spreadHints(hints []string, base int) []string {
	buckets := make([][]string, base)
	for i, hint := range hints {
		buckets[i%base] = append(buckets[i%base], hint)
	}
	result := make([]string, 0, len(hints))
	for _, bucket := range buckets {
		result = append(result, bucket...)
	}
	return result
}

func quoteLetters(letters []rune) string {
	return `"` + string(letters) + `"`
}

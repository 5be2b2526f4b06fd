package grading

import (
	"encoding/json"
	"fmt"
	"strings"
)

// LetterSet is an unordered set of option letters. Bit i is set when the
// letter 'A'+i is a member. Only 'A'..'Z' are representable.
type LetterSet uint32

// OptionLetters are the four letters a question can define.
const OptionLetters = "ABCD"

// AllOptions is the set {A, B, C, D}.
const AllOptions LetterSet = 0b1111

// Unrecognized marks a submitted token that is not a letter at all. No
// question defines it, so grading reports it as an invalid choice.
const Unrecognized LetterSet = 1 << 31

// unrecognizedToken is how Unrecognized is rendered and read back.
const unrecognizedToken = "?"

// Letters builds a set from single-letter strings. Letters are upper-cased;
// anything that is not a single ASCII letter is reported by ok=false and
// left out of the set.
func Letters(letters ...string) (set LetterSet, ok bool) {
	ok = true
	for _, l := range letters {
		l = strings.ToUpper(strings.TrimSpace(l))
		if len(l) != 1 || l[0] < 'A' || l[0] > 'Z' {
			ok = false
			continue
		}
		set |= 1 << (l[0] - 'A')
	}
	return set, ok
}

// AnswerLetters builds a set from submitted tokens. Tokens that are not a
// single letter add Unrecognized instead of being rejected.
func AnswerLetters(tokens ...string) LetterSet {
	var set LetterSet
	for _, tok := range tokens {
		l, ok := Letters(tok)
		if !ok {
			l = Unrecognized
		}
		set |= l
	}
	return set
}

// MustLetters is Letters for literals known to be valid.
func MustLetters(letters ...string) LetterSet {
	set, ok := Letters(letters...)
	if !ok {
		panic("grading: invalid letter in " + strings.Join(letters, ","))
	}
	return set
}

// Has reports whether letter l (e.g. 'B') is in the set.
func (s LetterSet) Has(l byte) bool {
	if l < 'A' || l > 'Z' {
		return false
	}
	return s&(1<<(l-'A')) != 0
}

// Len returns the number of letters in the set.
func (s LetterSet) Len() int {
	n := 0
	for v := s; v != 0; v &= v - 1 {
		n++
	}
	return n
}

func (s LetterSet) Empty() bool { return s == 0 }

func (s LetterSet) Intersect(o LetterSet) LetterSet { return s & o }

func (s LetterSet) Union(o LetterSet) LetterSet { return s | o }

// Minus returns the letters of s that are not in o.
func (s LetterSet) Minus(o LetterSet) LetterSet { return s &^ o }

// SubsetOf reports whether every letter of s is also in o.
func (s LetterSet) SubsetOf(o LetterSet) bool { return s&^o == 0 }

// Slice returns the letters in alphabetical order, followed by "?" when the
// set holds Unrecognized.
func (s LetterSet) Slice() []string {
	out := make([]string, 0, s.Len())
	for i := 0; i < 26; i++ {
		if s&(1<<i) != 0 {
			out = append(out, string(rune('A'+i)))
		}
	}
	if s&Unrecognized != 0 {
		out = append(out, unrecognizedToken)
	}
	return out
}

// String renders the set as a comma-separated, alphabetical list ("A,C").
func (s LetterSet) String() string {
	return strings.Join(s.Slice(), ",")
}

// MarshalJSON encodes the set as a JSON array of letters.
func (s LetterSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

// UnmarshalJSON decodes a JSON array of single letters, plus "?" for
// Unrecognized.
func (s *LetterSet) UnmarshalJSON(b []byte) error {
	var raw []string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode letters: %w", err)
	}
	var set LetterSet
	for _, tok := range raw {
		if tok == unrecognizedToken {
			set |= Unrecognized
			continue
		}
		l, ok := Letters(tok)
		if !ok {
			return fmt.Errorf("decode letters: invalid letter in %v", raw)
		}
		set |= l
	}
	*s = set
	return nil
}

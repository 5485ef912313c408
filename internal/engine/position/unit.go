package position

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Unit is the distance covered by one step.
type Unit int

// Units.
const (
	// Offset steps one code point.
	Offset Unit = iota
	// Character steps one grapheme cluster.
	Character
	// Word steps to the end of the next word and the whitespace after it.
	Word
	// Line steps to the end of the block. Soft wrapping is not known here.
	Line
)

var unitNames = [...]string{
	Offset:    "offset",
	Character: "character",
	Word:      "word",
	Line:      "line",
}

// String returns the unit name.
func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitNames[u]
}

// ParseUnit converts a unit name.
func ParseUnit(s string) (Unit, error) {
	for i, name := range unitNames {
		if strings.EqualFold(s, name) {
			return Unit(i), nil
		}
	}
	return 0, fmt.Errorf("unknown unit %q", s)
}

func runeCount(s string) int {
	return utf8.RuneCountInString(s)
}

func isWordSegment(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func isSpaceSegment(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return s != ""
}

// words splits s into UAX #29 word segments.
func words(s string) []string {
	var out []string
	state := -1
	for s != "" {
		var w string
		w, s, state = uniseg.FirstWordInString(s, state)
		out = append(out, w)
	}
	return out
}

// forward returns how many runes of ahead one step covers.
func (u Unit) forward(ahead string) int {
	if ahead == "" {
		return 0
	}
	switch u {
	case Character:
		cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(ahead, -1)
		return runeCount(cluster)
	case Word:
		n := 0
		segs := words(ahead)
		i := 0
		for ; i < len(segs); i++ {
			n += runeCount(segs[i])
			if isWordSegment(segs[i]) {
				i++
				break
			}
		}
		for ; i < len(segs) && isSpaceSegment(segs[i]); i++ {
			n += runeCount(segs[i])
		}
		return n
	case Line:
		return runeCount(ahead)
	default:
		return 1
	}
}

// backward returns how many runes at the end of behind one step covers.
func (u Unit) backward(behind string) int {
	if behind == "" {
		return 0
	}
	switch u {
	case Character:
		var last string
		state := -1
		for s := behind; s != ""; {
			last, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		}
		return runeCount(last)
	case Word:
		n := 0
		segs := words(behind)
		for i := len(segs) - 1; i >= 0; i-- {
			n += runeCount(segs[i])
			if isWordSegment(segs[i]) {
				break
			}
		}
		return n
	case Line:
		return runeCount(behind)
	default:
		return 1
	}
}

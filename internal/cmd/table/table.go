// Package table converts catalog data into rows for table output.
package table

import (
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"golang.org/x/text/message"

	"github.com/agentstation/litmap/internal/cmd/emoji"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

var printer = message.NewPrinter(language.English)

// FormatCount formats an integer with thousands separators.
func FormatCount[T ~int | ~int64](n T) string {
	return printer.Sprintf("%d", n)
}

// FormatYear formats an optional year, using "?" when unknown.
func FormatYear(y *int) string {
	if y == nil {
		return emoji.Unknown
	}
	return strconv.Itoa(*y)
}

// LanguageName returns the English display name for a language code, or ""
// when the code is not recognized.
func LanguageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return ""
	}
	return display.English.Languages().Name(tag)
}

// Truncate shortens s to at most max runes, ending with "..." when cut.
func Truncate(s string, max int) string {
	if max <= 3 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Package timefmt renders time stamps from letter-based date patterns like
// "dd-MMM-yyyy HH:mm:ss zzz". The letters follow the conventions used by most
// date-pattern formatters outside of Go: a run of the same letter is one field,
// and the run length picks the width or the text style.
//
// Month and day names always come from a fixed English table, so output does not
// depend on the host locale. Text between single quotes is copied as-is, and two
// single quotes produce one.
//
//	G    era              AD
//	y    year             yyyy=2024 yy=24
//	Y    week year        YYYY=2024
//	M L  month            M=3 MM=03 MMM=Mar MMMM=March
//	d    day of month     dd=05
//	D    day of year      DDD=065
//	E    day name         EEE=Tue EEEE=Tuesday
//	u    day number       1=Monday ... 7=Sunday
//	a    am/pm marker     PM
//	H k  hour 0-23, 1-24
//	K h  hour 0-11, 1-12
//	m s  minute, second
//	S    millisecond      SSS=042
//	z    zone name        UTC, CET
//	Z    zone offset      +0530
//	X    ISO zone offset  X=+05 XX=+0530 XXX=+05:30, Z for UTC
package timefmt

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrBadPattern is returned when a pattern cannot be compiled.
var ErrBadPattern = errors.New("invalid time pattern")

// Layout is a compiled pattern. It is safe for concurrent use.
type Layout struct {
	pattern string
	tokens  []token
}

// token is either a literal (letter is 0) or a field of count repeated letters.
type token struct {
	letter byte
	count  int
	text   string
}

//nolint:gochecknoglobals
var (
	monthNames = [...]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
	dayNames = [...]string{
		"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
	}
)

// Compile parses a pattern into a Layout.
func Compile(pattern string) (*Layout, error) {
	layout := &Layout{pattern: pattern}

	for idx := 0; idx < len(pattern); {
		char := pattern[idx]

		switch {
		case char == '\'':
			text, next, err := quoted(pattern, idx)
			if err != nil {
				return nil, err
			}

			layout.literal(text)
			idx = next
		case isLetter(char):
			if !supported(char) {
				return nil, fmt.Errorf("%w: illegal letter %q at %d in %q", ErrBadPattern, char, idx, pattern)
			}

			count := 1
			for idx+count < len(pattern) && pattern[idx+count] == char {
				count++
			}

			if char == 'X' && count > 3 {
				return nil, fmt.Errorf("%w: too many X letters in %q", ErrBadPattern, pattern)
			}

			layout.tokens = append(layout.tokens, token{letter: char, count: count})
			idx += count
		default:
			layout.literal(pattern[idx : idx+1])
			idx++
		}
	}

	return layout, nil
}

// MustCompile is like Compile but panics if the pattern is invalid.
func MustCompile(pattern string) *Layout {
	layout, err := Compile(pattern)
	if err != nil {
		panic(err)
	}

	return layout
}

// String returns the pattern the layout was compiled from.
func (l *Layout) String() string {
	return l.pattern
}

// Format renders t in its own location.
func (l *Layout) Format(t time.Time) string {
	const guess = 32

	return string(l.AppendFormat(make([]byte, 0, guess), t))
}

// AppendFormat is like Format but appends the rendered text to b.
func (l *Layout) AppendFormat(b []byte, t time.Time) []byte {
	for _, tok := range l.tokens {
		if tok.letter == 0 {
			b = append(b, tok.text...)
			continue
		}

		b = tok.appendField(b, t)
	}

	return b
}

// literal appends text, merging it with a preceding literal.
func (l *Layout) literal(text string) {
	if n := len(l.tokens); n > 0 && l.tokens[n-1].letter == 0 {
		l.tokens[n-1].text += text
		return
	}

	l.tokens = append(l.tokens, token{text: text})
}

// quoted reads a quoted section that starts at pattern[start].
// It returns the unquoted text and the index after the closing quote.
func quoted(pattern string, start int) (string, int, error) {
	if start+1 < len(pattern) && pattern[start+1] == '\'' {
		return "'", start + 2, nil
	}

	var text []byte

	for idx := start + 1; idx < len(pattern); idx++ {
		if pattern[idx] != '\'' {
			text = append(text, pattern[idx])
			continue
		}

		if idx+1 < len(pattern) && pattern[idx+1] == '\'' {
			text = append(text, '\'')
			idx++

			continue
		}

		return string(text), idx + 1, nil
	}

	return "", 0, fmt.Errorf("%w: unterminated quote at %d in %q", ErrBadPattern, start, pattern)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func supported(c byte) bool {
	switch c {
	case 'G', 'y', 'Y', 'M', 'L', 'd', 'D', 'E', 'u', 'a',
		'H', 'k', 'K', 'h', 'm', 's', 'S', 'z', 'Z', 'X':
		return true
	default:
		return false
	}
}

//nolint:cyclop
func (tok token) appendField(b []byte, t time.Time) []byte {
	switch tok.letter {
	case 'G':
		if t.Year() <= 0 {
			return append(b, "BC"...)
		}

		return append(b, "AD"...)
	case 'y':
		return appendYear(b, t.Year(), tok.count)
	case 'Y':
		year, _ := t.ISOWeek()
		return appendYear(b, year, tok.count)
	case 'M', 'L':
		return appendText(b, int(t.Month()), tok.count, monthNames[t.Month()-1])
	case 'd':
		return appendInt(b, t.Day(), tok.count)
	case 'D':
		return appendInt(b, t.YearDay(), tok.count)
	case 'E':
		if tok.count >= 4 {
			return append(b, dayNames[t.Weekday()]...)
		}

		return append(b, dayNames[t.Weekday()][:3]...)
	case 'u':
		day := int(t.Weekday())
		if day == 0 {
			day = 7
		}

		return appendInt(b, day, tok.count)
	case 'a':
		if t.Hour() < 12 {
			return append(b, "AM"...)
		}

		return append(b, "PM"...)
	case 'H':
		return appendInt(b, t.Hour(), tok.count)
	case 'k':
		hour := t.Hour()
		if hour == 0 {
			hour = 24
		}

		return appendInt(b, hour, tok.count)
	case 'K':
		return appendInt(b, t.Hour()%12, tok.count)
	case 'h':
		hour := t.Hour() % 12
		if hour == 0 {
			hour = 12
		}

		return appendInt(b, hour, tok.count)
	case 'm':
		return appendInt(b, t.Minute(), tok.count)
	case 's':
		return appendInt(b, t.Second(), tok.count)
	case 'S':
		return appendInt(b, t.Nanosecond()/int(time.Millisecond), tok.count)
	case 'z':
		name, _ := t.Zone()
		return append(b, name...)
	case 'Z':
		_, offset := t.Zone()
		return appendOffset(b, offset, false, true)
	case 'X':
		_, offset := t.Zone()
		if offset == 0 {
			return append(b, 'Z')
		}

		return appendOffset(b, offset, tok.count == 3, tok.count > 1)
	}

	return b
}

// appendYear renders two digits for "yy" and the zero-padded year otherwise.
func appendYear(b []byte, year, count int) []byte {
	if count == 2 {
		return appendInt(b, year%100, 2)
	}

	return appendInt(b, year, count)
}

// appendText renders a number for short runs and a name for long ones.
func appendText(b []byte, num, count int, name string) []byte {
	switch {
	case count >= 4:
		return append(b, name...)
	case count == 3:
		return append(b, name[:3]...)
	default:
		return appendInt(b, num, count)
	}
}

// appendInt renders num with at least width digits.
func appendInt(b []byte, num, width int) []byte {
	if num < 0 {
		b = append(b, '-')
		num = -num
	}

	digits := strconv.Itoa(num)
	for pad := width - len(digits); pad > 0; pad-- {
		b = append(b, '0')
	}

	return append(b, digits...)
}

// appendOffset renders a zone offset as +hh, +hhmm or +hh:mm.
func appendOffset(b []byte, offset int, colon, minutes bool) []byte {
	sign := byte('+')
	if offset < 0 {
		sign = '-'
		offset = -offset
	}

	b = appendInt(append(b, sign), offset/3600, 2)

	if !minutes {
		return b
	}

	if colon {
		b = append(b, ':')
	}

	return appendInt(b, offset%3600/60, 2)
}

package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
)

// INTERVAL literal parsing.
//
// Grammar:
//
//	interval → INTERVAL 'value' SECOND ['(' p [',' fsec] ')']
//	         | INTERVAL 'value' field ['(' p ')'] [TO field ['(' fsec ')']]
//
// The quoted value is split into interval tokens and matched against the
// skeleton Y-M-D h:m:s.nanos, starting at the leading field.

// maxNanoDigits is the number of fractional digits nanoseconds can hold.
const maxNanoDigits = 9

type intervalTokenKind int

const (
	itDash intervalTokenKind = iota
	itSpace
	itColon
	itDot
	itNum
	itNanos
)

var intervalTokenNames = [...]string{
	itDash:  "Dash",
	itSpace: "Space",
	itColon: "Colon",
	itDot:   "Dot",
	itNum:   "Num",
	itNanos: "Nanos",
}

// intervalToken is one piece of an interval value string.
type intervalToken struct {
	kind intervalTokenKind
	num  uint64 // itNum value, or nanoseconds for itNanos
}

func (t intervalToken) String() string {
	switch t.kind {
	case itNum, itNanos:
		return fmt.Sprintf("%s(%d)", intervalTokenNames[t.kind], t.num)
	}
	return intervalTokenNames[t.kind]
}

// parseInterval parses the rest of an INTERVAL literal after the keyword.
func (p *Parser) parseInterval() (core.Expr, error) {
	valueTok := p.peekToken()
	value, err := p.parseLiteralString()
	if err != nil {
		return nil, err
	}
	iv := &core.IntervalValue{Value: value}
	if iv.LeadingField, err = p.parseDateTimeField(); err != nil {
		return nil, err
	}

	if iv.LeadingField == core.Second {
		// SECOND takes its fractional precision inline instead of in a
		// TO SECOND clause
		if iv.LeadingPrecision, iv.FractionalSecondsPrecision, err = p.parseOptionalPrecisionScale(); err != nil {
			return nil, err
		}
	} else {
		if iv.LeadingPrecision, err = p.parseOptionalPrecision(); err != nil {
			return nil, err
		}
		if p.parseKeyword("TO") {
			last, err := p.parseDateTimeField()
			if err != nil {
				return nil, err
			}
			iv.LastField = &last
			if last == core.Second {
				if iv.FractionalSecondsPrecision, err = p.parseOptionalPrecision(); err != nil {
					return nil, err
				}
			}
		}
	}

	toks, err := tokenizeInterval(value)
	if err != nil {
		return nil, &ParserError{Message: err.Error(), Pos: valueTok.Pos, Cause: err}
	}
	parsed, warnings, err := buildParsedDateTime(toks, iv.LeadingField, iv.LastField)
	if err != nil {
		return nil, &ParserError{Message: err.Error(), Pos: valueTok.Pos, Cause: err}
	}
	for _, w := range warnings {
		p.logger.Debug("interval literal", slog.String("value", value), slog.String("warning", w))
	}
	iv.Parsed = parsed

	if p.strictIntervals {
		if err := iv.FieldsMatchPrecision(); err != nil {
			return nil, &ParserError{Message: err.Error(), Pos: valueTok.Pos, Cause: err}
		}
	}
	return &core.Literal{Value: iv}, nil
}

// tokenizeInterval splits an interval value such as `-1 2:03:04.5` into
// interval tokens.
func tokenizeInterval(value string) ([]intervalToken, error) {
	var toks []intervalToken
	var num strings.Builder
	frac := false

	parseNum := func(i int) error {
		n, err := strconv.ParseUint(num.String(), 10, 64)
		if err != nil {
			return fmt.Errorf("Unable to parse value as a number at index %d: %w", i, err)
		}
		toks = append(toks, intervalToken{kind: itNum, num: n})
		num.Reset()
		return nil
	}

	for i, ch := range []rune(value) {
		switch {
		case ch == '-':
			// a leading dash makes the interval negative
			if num.Len() > 0 {
				if err := parseNum(i); err != nil {
					return nil, err
				}
			}
			toks = append(toks, intervalToken{kind: itDash})
		case ch == ' ' || ch == ':' || ch == '.':
			if err := parseNum(i); err != nil {
				return nil, err
			}
			switch ch {
			case ' ':
				toks = append(toks, intervalToken{kind: itSpace})
			case ':':
				toks = append(toks, intervalToken{kind: itColon})
			default:
				toks = append(toks, intervalToken{kind: itDot})
				frac = true
			}
		case isDigit(ch):
			num.WriteRune(ch)
		default:
			return nil, fmt.Errorf("Invalid character at offset %d in %s: '%c'", i, value, ch)
		}
	}

	if num.Len() == 0 {
		return toks, nil
	}
	if !frac {
		if err := parseNum(len([]rune(value))); err != nil {
			return nil, err
		}
		return toks, nil
	}
	digits := num.String()
	if len(digits) > maxNanoDigits {
		return nil, fmt.Errorf("couldn't parse fraction of second %s: more than %d digits", digits, maxNanoDigits)
	}
	// '.5' is half a second: right-pad to nanoseconds
	nanos, err := strconv.ParseUint(digits+strings.Repeat("0", maxNanoDigits-len(digits)), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse fraction of second %s: %w", digits, err)
	}
	return append(toks, intervalToken{kind: itNanos, num: nanos}), nil
}

// intervalSkeleton is the shape of a full YEAR TO SECOND value.
var intervalSkeleton = []intervalToken{
	{kind: itNum}, // year
	{kind: itDash},
	{kind: itNum}, // month
	{kind: itDash},
	{kind: itNum}, // day
	{kind: itSpace},
	{kind: itNum}, // hour
	{kind: itColon},
	{kind: itNum}, // minute
	{kind: itColon},
	{kind: itNum}, // second
	{kind: itDot},
	{kind: itNanos},
}

var skeletonOffsets = map[core.DateTimeField]int{
	core.Year:   0,
	core.Month:  2,
	core.Day:    4,
	core.Hour:   6,
	core.Minute: 8,
	core.Second: 10,
}

// potentialIntervalTokens returns the tokens a value may contain when its
// most significant field is from. It says nothing about which fields the
// qualifier allows.
func potentialIntervalTokens(from core.DateTimeField) []intervalToken {
	return intervalSkeleton[skeletonOffsets[from]:]
}

var errTooManySeconds = errors.New("Too many numbers to parse as a second")

// buildParsedDateTime fills a ParsedDateTime from tokens, assigning numbers
// to fields starting at leading. Fields outside the qualifier are kept;
// FieldsMatchPrecision reports them. The returned warnings do not make the
// value invalid.
func buildParsedDateTime(toks []intervalToken, leading core.DateTimeField, last *core.DateTimeField) (core.ParsedDateTime, []string, error) {
	precision := leading
	if last != nil {
		precision = *last
	}
	expected := potentialIntervalTokens(leading)

	var warnings []string
	if len(expected) > len(toks)-1 {
		warnings = append(warnings, fmt.Sprintf(
			"More precision requested than supplied. Requested %s but only provided %d fields",
			precision, len(toks)))
	}

	pdt := core.NewParsedDateTime()
	actual := toks
	if len(actual) > 0 && actual[0].kind == itDash {
		pdt.IsPositive = false
		actual = actual[1:]
	}

	current := leading
	secondsSeen := false
	for i := 0; i < len(actual) && i < len(expected); i++ {
		atok, etok := actual[i], expected[i]
		switch {
		case atok.kind == etok.kind && atok.kind != itNum && atok.kind != itNanos:
			// matching punctuation
		case atok.kind == itNum && etok.kind == itNum:
			if current == core.Second {
				if secondsSeen {
					return pdt, nil, fmt.Errorf("%w at %d", errTooManySeconds, atok.num)
				}
				secondsSeen = true
			}
			v := atok.num
			*pdt.Field(current) = &v
			if next, ok := current.Next(); ok {
				current = next
			}
		case atok.kind == itNanos && etok.kind == itNanos && secondsSeen:
			n := uint32(atok.num)
			pdt.Nano = &n
		default:
			return pdt, nil, fmt.Errorf("Invalid interval part: string provided %s but expected %s", atok, etok)
		}
	}
	return pdt, warnings, nil
}

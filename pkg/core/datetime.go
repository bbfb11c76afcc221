package core

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DateTimeField is a unit of an INTERVAL qualifier or EXTRACT, ordered from
// most to least significant.
type DateTimeField int

// Date/time fields.
const (
	Year DateTimeField = iota
	Month
	Day
	Hour
	Minute
	Second
)

var dateTimeFieldNames = [...]string{
	Year:   "YEAR",
	Month:  "MONTH",
	Day:    "DAY",
	Hour:   "HOUR",
	Minute: "MINUTE",
	Second: "SECOND",
}

// String implements Node.
func (f DateTimeField) String() string {
	if f >= Year && f <= Second {
		return dateTimeFieldNames[f]
	}
	return fmt.Sprintf("DateTimeField(%d)", int(f))
}

// Next returns the next less significant field. ok is false after SECOND.
func (f DateTimeField) Next() (next DateTimeField, ok bool) {
	if f >= Second {
		return f, false
	}
	return f + 1, true
}

// LookupDateTimeField resolves an uppercased keyword to a field.
func LookupDateTimeField(kw string) (DateTimeField, bool) {
	for i, name := range dateTimeFieldNames {
		if name == kw {
			return DateTimeField(i), true
		}
	}
	return 0, false
}

// secondsPerField holds the fixed per-unit multipliers for DAY..SECOND.
var secondsPerField = map[DateTimeField]int64{
	Day:    86400,
	Hour:   3600,
	Minute: 60,
	Second: 1,
}

// ParsedDateTime holds the components of an interval string. Each field is
// nil until the interval sub-parser fills it.
type ParsedDateTime struct {
	IsPositive bool
	Year       *uint64
	Month      *uint64
	Day        *uint64
	Hour       *uint64
	Minute     *uint64
	Second     *uint64
	Nano       *uint32
}

// NewParsedDateTime returns an empty, positive ParsedDateTime.
func NewParsedDateTime() ParsedDateTime {
	return ParsedDateTime{IsPositive: true}
}

// Field returns a pointer to the slot for f.
func (p *ParsedDateTime) Field(f DateTimeField) **uint64 {
	switch f {
	case Year:
		return &p.Year
	case Month:
		return &p.Month
	case Day:
		return &p.Day
	case Hour:
		return &p.Hour
	case Minute:
		return &p.Minute
	default:
		return &p.Second
	}
}

// Get returns the value of f, if set.
func (p *ParsedDateTime) Get(f DateTimeField) (uint64, bool) {
	v := *p.Field(f)
	if v == nil {
		return 0, false
	}
	return *v, true
}

// IntervalValue is `INTERVAL 'value' leading [(p)] [TO last [(fsec)]]`.
type IntervalValue struct {
	// Value is the raw string between the quotes.
	Value string
	// Parsed holds the fields extracted from Value.
	Parsed ParsedDateTime
	// LeadingField is the unit of the first field: in
	// `INTERVAL 'T' MINUTE`, T is in minutes.
	LeadingField DateTimeField
	// LeadingPrecision is how many digits the leading field may occupy.
	// It is recorded, not enforced.
	LeadingPrecision *uint64
	// LastField is the least significant field kept. nil means the
	// interval is truncated to the leading field.
	LastField *DateTimeField
	// FractionalSecondsPrecision comes from `SECOND (p, fsec)` or
	// `TO SECOND (fsec)`.
	FractionalSecondsPrecision *uint64
}

// String implements Node.
func (v *IntervalValue) String() string {
	var sb strings.Builder
	sb.WriteString("INTERVAL ")
	sb.WriteString(quoteString(v.Value))
	sb.WriteString(" ")
	sb.WriteString(v.LeadingField.String())
	if v.LeadingField == Second && v.LeadingPrecision != nil && v.FractionalSecondsPrecision != nil {
		// SECOND never has a TO clause
		sb.WriteString(" (" + formatUint(*v.LeadingPrecision) + ", " + formatUint(*v.FractionalSecondsPrecision) + ")")
		return sb.String()
	}
	if v.LeadingPrecision != nil {
		sb.WriteString(" (" + formatUint(*v.LeadingPrecision) + ")")
	}
	if v.LastField != nil {
		sb.WriteString(" TO " + v.LastField.String())
	}
	if v.FractionalSecondsPrecision != nil {
		sb.WriteString(" (" + formatUint(*v.FractionalSecondsPrecision) + ")")
	}
	return sb.String()
}

// last returns the effective least significant field.
func (v *IntervalValue) last() DateTimeField {
	if v.LastField != nil {
		return *v.LastField
	}
	return v.LeadingField
}

func (v *IntervalValue) qualifier() string {
	if v.LastField == nil {
		return v.LeadingField.String()
	}
	return v.LeadingField.String() + " TO " + v.LastField.String()
}

// IntervalError reports why an interval does not fit its qualifier.
type IntervalError struct {
	Value    string
	Problems []string
}

func (e *IntervalError) Error() string {
	return fmt.Sprintf("invalid interval '%s': %s", e.Value, strings.Join(e.Problems, "; "))
}

// FieldsMatchPrecision checks the parsed fields against the qualifier.
// A populated field outside LeadingField..LastField is an extra field; an
// unpopulated LeadingField or LastField is a missing field.
func (v *IntervalValue) FieldsMatchPrecision() error {
	last := v.last()
	var problems []string
	for f := Year; f <= Second; f++ {
		val, ok := v.Parsed.Get(f)
		if ok && (f < v.LeadingField || f > last) {
			problems = append(problems, fmt.Sprintf(
				"%s requested precision would truncate %s field (value %d)", v.qualifier(), f, val))
		}
	}
	if v.Parsed.Nano != nil && last != Second {
		problems = append(problems, fmt.Sprintf(
			"%s requested precision would truncate fractional seconds", v.qualifier()))
	}
	if _, ok := v.Parsed.Get(v.LeadingField); !ok {
		problems = append(problems, fmt.Sprintf("missing leading %s field", v.LeadingField))
	}
	if _, ok := v.Parsed.Get(last); !ok && last != v.LeadingField {
		problems = append(problems, fmt.Sprintf("missing last %s field", last))
	}
	if len(problems) > 0 {
		return &IntervalError{Value: v.Value, Problems: problems}
	}
	return nil
}

// Interval is a normalized interval: a signed month count for YEAR/MONTH
// qualifiers, or a signed duration for DAY..SECOND qualifiers.
type Interval struct {
	Months   int64
	Duration time.Duration
}

// Computed normalizes the interval, ignoring fields outside the qualifier.
func (v *IntervalValue) Computed() (Interval, error) {
	last := v.last()
	if last < v.LeadingField {
		return Interval{}, &IntervalError{Value: v.Value, Problems: []string{
			fmt.Sprintf("invalid qualifier %s: %s is more significant than %s", v.qualifier(), last, v.LeadingField)}}
	}
	sign := int64(1)
	if !v.Parsed.IsPositive {
		sign = -1
	}

	if v.LeadingField <= Month {
		if last > Month {
			return Interval{}, &IntervalError{Value: v.Value, Problems: []string{
				fmt.Sprintf("invalid qualifier %s: cannot mix months and days", v.qualifier())}}
		}
		var months uint64
		if y, ok := v.Parsed.Get(Year); ok && v.LeadingField == Year {
			if !mulAdd(&months, y, 12, math.MaxInt64) {
				return Interval{}, v.overflow()
			}
		}
		if m, ok := v.Parsed.Get(Month); ok && last == Month {
			if !mulAdd(&months, m, 1, math.MaxInt64) {
				return Interval{}, v.overflow()
			}
		}
		return Interval{Months: sign * int64(months)}, nil
	}

	const maxSeconds = uint64(math.MaxInt64 / int64(time.Second))
	var seconds uint64
	for f := v.LeadingField; f <= last; f++ {
		if n, ok := v.Parsed.Get(f); ok {
			if !mulAdd(&seconds, n, uint64(secondsPerField[f]), maxSeconds) {
				return Interval{}, v.overflow()
			}
		}
	}
	d := time.Duration(seconds) * time.Second
	if last == Second && v.Parsed.Nano != nil {
		nano := time.Duration(*v.Parsed.Nano)
		if d > math.MaxInt64-nano {
			return Interval{}, v.overflow()
		}
		d += nano
	}
	return Interval{Duration: time.Duration(sign) * d}, nil
}

func (v *IntervalValue) overflow() error {
	return &IntervalError{Value: v.Value, Problems: []string{"interval overflows"}}
}

// mulAdd sets *acc to *acc + n*mult and reports whether the result stays
// within limit. *acc is unchanged when it would not.
func mulAdd(acc *uint64, n, mult, limit uint64) bool {
	if *acc > limit {
		return false
	}
	if mult != 0 && n > (limit-*acc)/mult {
		return false
	}
	*acc += n * mult
	return true
}

// ComputedStrict is Computed preceded by FieldsMatchPrecision.
func (v *IntervalValue) ComputedStrict() (Interval, error) {
	if err := v.FieldsMatchPrecision(); err != nil {
		return Interval{}, err
	}
	return v.Computed()
}

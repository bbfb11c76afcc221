package core

import (
	"strconv"
)

// Value is a literal payload: a number, string, boolean, typed
// date/time literal, interval or NULL.
type Value interface {
	Node
	valueNode()
}

// Long is an unsigned integer literal.
type Long uint64

// Decimal is a numeric literal with a fractional part or exponent, kept as
// written so no precision is lost.
type Decimal string

// SingleQuotedString is 'string value'.
type SingleQuotedString string

// NationalStringLiteral is N'string value'.
type NationalStringLiteral string

// HexStringLiteral is X'hex value'.
type HexStringLiteral string

// Boolean is TRUE or FALSE.
type Boolean bool

// Date is DATE '...'.
type Date string

// Time is TIME '...'.
type Time string

// Timestamp is TIMESTAMP '...'.
type Timestamp string

// Null is NULL.
type Null struct{}

func (Long) valueNode()                  {}
func (Decimal) valueNode()               {}
func (SingleQuotedString) valueNode()    {}
func (NationalStringLiteral) valueNode() {}
func (HexStringLiteral) valueNode()      {}
func (Boolean) valueNode()               {}
func (Date) valueNode()                  {}
func (Time) valueNode()                  {}
func (Timestamp) valueNode()             {}
func (Null) valueNode()                  {}
func (*IntervalValue) valueNode()        {}

// String implements Node.
func (v Long) String() string { return formatUint(uint64(v)) }

// String implements Node.
func (v Decimal) String() string { return string(v) }

// String implements Node.
func (v SingleQuotedString) String() string { return quoteString(string(v)) }

// String implements Node.
func (v NationalStringLiteral) String() string { return "N" + quoteString(string(v)) }

// String implements Node.
func (v HexStringLiteral) String() string { return "X'" + string(v) + "'" }

// String implements Node.
func (v Boolean) String() string {
	if v {
		return "true"
	}
	return "false"
}

// String implements Node.
func (v Date) String() string { return "DATE " + quoteString(string(v)) }

// String implements Node.
func (v Time) String() string { return "TIME " + quoteString(string(v)) }

// String implements Node.
func (v Timestamp) String() string { return "TIMESTAMP " + quoteString(string(v)) }

// String implements Node.
func (Null) String() string { return "NULL" }

func formatUint(n uint64) string {
	return strconv.FormatUint(n, 10)
}

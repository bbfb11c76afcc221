package dialect_test

import (
	"testing"

	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/generic"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/mssql"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/mysql"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderDefaults(t *testing.T) {
	d := dialect.NewDialect("test").Build()

	assert.Equal(t, "test", d.Name())
	assert.True(t, d.IsIdentifierStart('a'))
	assert.False(t, d.IsIdentifierStart('_'))
	assert.True(t, d.IsIdentifierPart('_'))
	assert.True(t, d.IsIdentifierPart('9'))
	assert.True(t, d.IsDelimitedIdentifierStart('"'))
	assert.False(t, d.IsDelimitedIdentifierStart('`'))
	assert.Equal(t, []rune{'"'}, d.Delimiters())
}

func TestBuilderKeywords(t *testing.T) {
	d := dialect.NewDialect("test").
		Keywords("qualify").
		Unreserve("VALUE").
		Build()

	assert.True(t, d.IsKeyword("QUALIFY"))
	assert.False(t, d.IsKeyword("VALUE"))
	assert.True(t, d.IsKeyword("SELECT"))

	// the shared vocabulary is unaffected
	assert.False(t, dialect.IsKeyword("QUALIFY"))
	assert.True(t, dialect.IsKeyword("VALUE"))
}

func TestDelimitersAreCopied(t *testing.T) {
	d := dialect.NewDialect("test").Delimiters('"', '[').Build()
	ds := d.Delimiters()
	ds[0] = 'x'
	assert.Equal(t, []rune{'"', '['}, d.Delimiters())
}

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, `"a b"`, generic.Generic.QuoteIdentifier("a b"))
	assert.Equal(t, "[a b]", mssql.MsSQL.QuoteIdentifier("a b"))
	assert.Equal(t, "`a b`", mysql.MySQL.QuoteIdentifier("a b"))
	assert.Equal(t, "a", dialect.NewDialect("bare").Delimiters().Build().QuoteIdentifier("a"))
}

func TestIsKeyword(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"SELECT", true},
		{"ONLY", true},
		{"VALUE", true},
		{"LEVEL", true},
		{"KEY", true},
		{"ROW_NUMBER", true},
		{"NAME", false},
		{"ID", false},
		{"NOLOCK", false},
		{"INDEX", false},
		{"A", false},
		{"select", false}, // callers pass the uppercased word
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, dialect.IsKeyword(tt.word))
		})
	}
}

func TestReservedLists(t *testing.T) {
	assert.True(t, dialect.IsReserved("JOIN", dialect.ReservedForTableAlias))
	assert.False(t, dialect.IsReserved("FROM", dialect.ReservedForTableAlias))
	assert.True(t, dialect.IsReserved("FROM", dialect.ReservedForColumnAlias))
	assert.False(t, dialect.IsReserved("JOIN", dialect.ReservedForColumnAlias))

	for _, kw := range append(dialect.ReservedForTableAlias, dialect.ReservedForColumnAlias...) {
		assert.True(t, dialect.IsKeyword(kw), "%s must be a keyword", kw)
	}
}

func TestIdentifierRules(t *testing.T) {
	tests := []struct {
		name       string
		d          dialect.Capabilities
		start      string
		notStart   string
		part       string
		notPart    string
		delimiters string
	}{
		{name: "generic", d: generic.Generic, start: "aZ@", notStart: "_1$#", part: "aZ9@$#_", notPart: "-.é", delimiters: `"`},
		{name: "ansi", d: ansi.ANSI, start: "aZ", notStart: "_@1", part: "aZ9_", notPart: "@$#", delimiters: `"`},
		{name: "postgres", d: postgres.Postgres, start: "aZ_", notStart: "@1$", part: "aZ9_$", notPart: "@#", delimiters: `"`},
		{name: "mssql", d: mssql.MsSQL, start: "aZé_#@", notStart: "1$", part: "aé9@$#_", notPart: "-", delimiters: `"[`},
		{name: "mysql", d: mysql.MySQL, start: "aZ_$é", notStart: "1@", part: "a9_$é", notPart: "@#", delimiters: "`"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, ch := range tt.start {
				assert.True(t, tt.d.IsIdentifierStart(ch), "start %q", ch)
			}
			for _, ch := range tt.notStart {
				assert.False(t, tt.d.IsIdentifierStart(ch), "not start %q", ch)
			}
			for _, ch := range tt.part {
				assert.True(t, tt.d.IsIdentifierPart(ch), "part %q", ch)
			}
			for _, ch := range tt.notPart {
				assert.False(t, tt.d.IsIdentifierPart(ch), "not part %q", ch)
			}
			for _, ch := range tt.delimiters {
				assert.True(t, tt.d.IsDelimitedIdentifierStart(ch), "delimiter %q", ch)
			}
			assert.False(t, tt.d.IsDelimitedIdentifierStart('\''))
		})
	}
}

func TestRegistry(t *testing.T) {
	assert.Subset(t, dialect.List(), []string{"ansi", "generic", "mssql", "mysql", "postgres"})

	d, ok := dialect.Get("POSTGRES")
	require.True(t, ok)
	assert.Same(t, postgres.Postgres, d)

	d, err := dialect.Lookup(dialect.DefaultName)
	require.NoError(t, err)
	assert.Same(t, generic.Generic, d)

	_, err = dialect.Lookup("")
	assert.ErrorIs(t, err, dialect.ErrDialectRequired)

	_, err = dialect.Lookup("oracle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown dialect "oracle"`)
	assert.Contains(t, err.Error(), "postgres")

	assert.Panics(t, func() { dialect.MustGet("oracle") })
	assert.NotPanics(t, func() { dialect.MustGet("mysql") })
}

func TestRuneClasses(t *testing.T) {
	digitOrX := dialect.AnyOf(dialect.IsASCIIDigit, dialect.Runes('x'))
	assert.True(t, digitOrX('5'))
	assert.True(t, digitOrX('x'))
	assert.False(t, digitOrX('y'))

	lower := dialect.Between('a', 'z')
	assert.True(t, lower('m'))
	assert.False(t, lower('M'))

	assert.True(t, dialect.IsAlphabetic('ж'))
	assert.False(t, dialect.IsAlphabetic('1'))
	assert.True(t, dialect.IsAlphanumeric('1'))
	assert.False(t, dialect.IsAlphanumeric('_'))
}

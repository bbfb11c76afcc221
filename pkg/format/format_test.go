package format

import (
	"testing"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/generic"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/mssql"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/leapstack-labs/sqlfront/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type formatCase struct {
	name     string
	input    string
	expected string
}

func parseOne(t *testing.T, sql string) core.Stmt {
	t.Helper()
	stmts, err := parser.Parse(generic.Generic, sql)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	return stmts[0]
}

func runFormatCases(t *testing.T, tests []formatCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Statement(parseOne(t, tt.input))
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFormat_BasicSelect(t *testing.T) {
	runFormatCases(t, []formatCase{
		{
			name:  "simple select",
			input: "SELECT a, b FROM t",
			expected: `SELECT
  a,
  b
FROM t
`,
		},
		{
			name:  "select with where",
			input: "SELECT a FROM t WHERE x = 1",
			expected: `SELECT
  a
FROM t
WHERE
  x = 1
`,
		},
		{
			name:  "select with alias",
			input: "SELECT a AS col1, b col2 FROM t",
			expected: `SELECT
  a AS col1,
  b AS col2
FROM t
`,
		},
		{
			name:  "distinct",
			input: "SELECT DISTINCT a FROM t",
			expected: `SELECT DISTINCT
  a
FROM t
`,
		},
		{
			name:  "select table star",
			input: "SELECT t.* FROM t",
			expected: `SELECT
  t.*
FROM t
`,
		},
		{
			name:  "without from",
			input: "SELECT 1",
			expected: `SELECT
  1
`,
		},
		{
			name:  "comma separated from",
			input: "SELECT * FROM a, b",
			expected: `SELECT
  *
FROM a, b
`,
		},
	})
}

func TestFormat_Joins(t *testing.T) {
	runFormatCases(t, []formatCase{
		{
			name:  "inner join",
			input: "SELECT * FROM a JOIN b ON a.id = b.id",
			expected: `SELECT
  *
FROM a
JOIN b
  ON a.id = b.id
`,
		},
		{
			name:  "join chain",
			input: "SELECT * FROM a LEFT OUTER JOIN b USING (id) CROSS JOIN c NATURAL FULL JOIN d",
			expected: `SELECT
  *
FROM a
LEFT JOIN b
  USING(id)
CROSS JOIN c
NATURAL FULL JOIN d
`,
		},
		{
			name:  "join on derived table",
			input: "SELECT * FROM a JOIN (SELECT id FROM b) AS x ON a.id = x.id",
			expected: `SELECT
  *
FROM a
JOIN (
  SELECT
    id
  FROM b
) AS x
  ON a.id = x.id
`,
		},
	})
}

func TestFormat_CTE(t *testing.T) {
	runFormatCases(t, []formatCase{
		{
			name:  "single cte",
			input: "WITH cte AS (SELECT a FROM t) SELECT * FROM cte",
			expected: `WITH
  cte AS (
    SELECT
      a
    FROM t
  )
SELECT
  *
FROM cte
`,
		},
		{
			name:  "ctes with columns",
			input: "WITH c (x) AS (SELECT 1), d AS (SELECT 2) SELECT * FROM c, d",
			expected: `WITH
  c (x) AS (
    SELECT
      1
  ),
  d AS (
    SELECT
      2
  )
SELECT
  *
FROM c, d
`,
		},
	})
}

func TestFormat_Expressions(t *testing.T) {
	runFormatCases(t, []formatCase{
		{
			name:  "short conjunction stays inline",
			input: "SELECT a FROM t WHERE a AND b",
			expected: `SELECT
  a
FROM t
WHERE
  a AND b
`,
		},
		{
			name:  "long conjunction breaks",
			input: "SELECT a FROM t WHERE a = 1 AND b = 2 OR c = 3",
			expected: `SELECT
  a
FROM t
WHERE
  a = 1
  AND b = 2
  OR c = 3
`,
		},
		{
			name:  "nested stays inline",
			input: "SELECT a FROM t WHERE (a = 1 OR b = 2)",
			expected: `SELECT
  a
FROM t
WHERE
  (a = 1 OR b = 2)
`,
		},
		{
			name:  "case",
			input: "SELECT CASE WHEN a = 1 THEN 'one' ELSE 'other' END AS label FROM t",
			expected: `SELECT
  CASE
    WHEN a = 1 THEN 'one'
    ELSE 'other'
  END AS label
FROM t
`,
		},
		{
			name:  "case with operand",
			input: "SELECT CASE a WHEN 1 THEN 'x' END",
			expected: `SELECT
  CASE a
    WHEN 1 THEN 'x'
  END
`,
		},
		{
			name:  "canonical leaves",
			input: "SELECT CAST(a AS BIGINT), b BETWEEN 1 AND 2, c IN (1, 2), d IS NOT NULL, - e FROM t",
			expected: `SELECT
  CAST(a AS BIGINT),
  b BETWEEN 1 AND 2,
  c IN (1, 2),
  d IS NOT NULL,
  - e
FROM t
`,
		},
	})
}

func TestFormat_GroupByOrderBy(t *testing.T) {
	runFormatCases(t, []formatCase{
		{
			name:  "group by having",
			input: "SELECT a, count(*) FROM t GROUP BY a, b HAVING count(*) > 1",
			expected: `SELECT
  a,
  count(*)
FROM t
GROUP BY
  a,
  b
HAVING
  count(*) > 1
`,
		},
		{
			name:  "order by",
			input: "SELECT a FROM t ORDER BY a DESC, b ASC, c",
			expected: `SELECT
  a
FROM t
ORDER BY
  a DESC,
  b ASC,
  c
`,
		},
	})
}

func TestFormat_LimitOffset(t *testing.T) {
	runFormatCases(t, []formatCase{
		{
			name:  "limit offset",
			input: "SELECT a FROM t LIMIT 10 OFFSET 5",
			expected: `SELECT
  a
FROM t
LIMIT 10
OFFSET 5 ROWS
`,
		},
		{
			name:  "fetch",
			input: "SELECT a FROM t ORDER BY a OFFSET 2 ROWS FETCH FIRST 3 ROWS ONLY",
			expected: `SELECT
  a
FROM t
ORDER BY
  a
OFFSET 2 ROWS
FETCH FIRST 3 ROWS ONLY
`,
		},
	})
}

func TestFormat_SetOperations(t *testing.T) {
	runFormatCases(t, []formatCase{
		{
			name:  "union all",
			input: "SELECT a FROM t1 UNION ALL SELECT a FROM t2",
			expected: `SELECT
  a
FROM t1
UNION ALL
SELECT
  a
FROM t2
`,
		},
		{
			name:  "parenthesized bodies",
			input: "(SELECT 1) EXCEPT (SELECT 2)",
			expected: `(
  SELECT
    1
)
EXCEPT
(
  SELECT
    2
)
`,
		},
		{
			name:  "values",
			input: "VALUES (1, 'a'), (2, 'b')",
			expected: `VALUES
  (1, 'a'),
  (2, 'b')
`,
		},
	})
}

func TestFormat_Subquery(t *testing.T) {
	runFormatCases(t, []formatCase{
		{
			name:  "derived table",
			input: "SELECT * FROM (SELECT a FROM t) AS sub",
			expected: `SELECT
  *
FROM (
  SELECT
    a
  FROM t
) AS sub
`,
		},
		{
			name:  "lateral",
			input: "SELECT * FROM t, LATERAL (SELECT t.a) AS d",
			expected: `SELECT
  *
FROM t, LATERAL (
  SELECT
    t.a
) AS d
`,
		},
		{
			name:  "exists",
			input: "SELECT * FROM t WHERE EXISTS (SELECT 1 FROM u WHERE u.id = t.id)",
			expected: `SELECT
  *
FROM t
WHERE
  EXISTS (
    SELECT
      1
    FROM u
    WHERE
      u.id = t.id
  )
`,
		},
		{
			name:  "not in subquery",
			input: "SELECT * FROM t WHERE a NOT IN (SELECT b FROM u)",
			expected: `SELECT
  *
FROM t
WHERE
  a NOT IN (
    SELECT
      b
    FROM u
  )
`,
		},
		{
			name:  "scalar subquery",
			input: "SELECT (SELECT max(a) FROM u) AS m",
			expected: `SELECT
  (
    SELECT
      max(a)
    FROM u
  ) AS m
`,
		},
	})
}

func TestFormat_WindowFunction(t *testing.T) {
	runFormatCases(t, []formatCase{
		{
			name:  "partition order frame",
			input: "SELECT sum(a) OVER (PARTITION BY b ORDER BY c ROWS UNBOUNDED PRECEDING) FROM t",
			expected: `SELECT
  sum(a) OVER (
    PARTITION BY b
    ORDER BY c
    ROWS UNBOUNDED PRECEDING)
FROM t
`,
		},
		{
			name:  "empty window",
			input: "SELECT row_number() OVER () FROM t",
			expected: `SELECT
  row_number() OVER ()
FROM t
`,
		},
	})
}

func TestFormat_DML(t *testing.T) {
	runFormatCases(t, []formatCase{
		{
			name:  "insert values",
			input: "INSERT INTO t (a, b) VALUES (1, 2), (3, 4)",
			expected: `INSERT INTO t (a, b)
VALUES
  (1, 2),
  (3, 4)
`,
		},
		{
			name:  "insert select",
			input: "INSERT INTO s.t SELECT * FROM u",
			expected: `INSERT INTO s.t
SELECT
  *
FROM u
`,
		},
		{
			name:  "update",
			input: "UPDATE t SET a = 1, b = 'x' WHERE id = 2",
			expected: `UPDATE t
SET
  a = 1,
  b = 'x'
WHERE
  id = 2
`,
		},
		{
			name:  "delete",
			input: "DELETE FROM t WHERE a = 1",
			expected: `DELETE FROM t
WHERE
  a = 1
`,
		},
		{
			name:     "delete all",
			input:    "DELETE FROM t",
			expected: "DELETE FROM t\n",
		},
	})
}

func TestFormat_OtherStatementsUseCanonicalForm(t *testing.T) {
	inputs := []string{
		"DROP TABLE IF EXISTS a, b CASCADE",
		"CREATE TABLE t (a INT NOT NULL, b TEXT)",
		"SHOW COLUMNS FROM t",
		"START TRANSACTION READ ONLY",
		"COMMIT",
	}
	for _, sql := range inputs {
		t.Run(sql, func(t *testing.T) {
			stmt := parseOne(t, sql)
			assert.Equal(t, stmt.String()+"\n", Statement(stmt))
		})
	}
}

func TestStatements(t *testing.T) {
	stmts, err := parser.Parse(generic.Generic, "SELECT 1; DELETE FROM t;")
	require.NoError(t, err)

	expected := `SELECT
  1;

DELETE FROM t;
`
	assert.Equal(t, expected, Statements(stmts))
}

func TestWithComments(t *testing.T) {
	sql := "-- header\nSELECT a /* inline */ FROM t"

	tokens, err := parser.Tokenize(generic.Generic, sql)
	require.NoError(t, err)
	stmts, err := parser.Parse(generic.Generic, sql)
	require.NoError(t, err)

	expected := `-- header
/* inline */

SELECT
  a
FROM t;
`
	assert.Equal(t, expected, WithComments(stmts, token.Comments(tokens)))
}

func TestWithCommentsOnly(t *testing.T) {
	tokens, err := parser.Tokenize(generic.Generic, "-- nothing here\n")
	require.NoError(t, err)

	assert.Equal(t, "-- nothing here\n", WithComments(nil, token.Comments(tokens)))
}

// Formatting must not change meaning: the formatted text parses back to
// the same canonical form.
func TestFormatPreservesCanonicalForm(t *testing.T) {
	inputs := []string{
		"WITH c (x) AS (SELECT 1), d AS (SELECT 2) SELECT * FROM c, d",
		"SELECT 1 UNION SELECT 2 INTERSECT SELECT 3",
		"(SELECT 1) UNION ALL (SELECT 2 ORDER BY 1 LIMIT 1)",
		"SELECT a, count(DISTINCT b) FROM t WHERE a = 1 AND (b = 2 OR c = 3) AND d IS NULL GROUP BY a HAVING count(*) > 1",
		"SELECT * FROM a JOIN b ON a.id = b.id LEFT JOIN c USING(id) CROSS JOIN (SELECT 1) AS d",
		"SELECT * FROM (a NATURAL JOIN b)",
		"SELECT sum(a) OVER (PARTITION BY b ORDER BY c ROWS BETWEEN 1 PRECEDING AND CURRENT ROW) FROM t",
		"SELECT CASE WHEN a THEN 1 END FROM t WHERE EXISTS (SELECT 1) AND x NOT IN (SELECT y FROM u)",
		"SELECT a FROM t ORDER BY a DESC LIMIT 10 OFFSET 5 FETCH FIRST 3 ROWS WITH TIES",
		"INSERT INTO t (a) SELECT a FROM u WHERE a > 1",
		"UPDATE t SET a = a + 1 WHERE b = 'x' OR c = 'y' OR d = 'z'",
	}
	for _, sql := range inputs {
		t.Run(sql, func(t *testing.T) {
			stmt := parseOne(t, sql)
			reparsed := parseOne(t, Statement(stmt))
			assert.Equal(t, stmt.String(), reparsed.String())
		})
	}
}

func TestFormat_DialectSpecificTables(t *testing.T) {
	stmts, err := parser.Parse(mssql.MsSQL, "SELECT * FROM t AS x WITH (NOLOCK) CROSS APPLY f(x.a) AS y")
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	expected := `SELECT
  *
FROM t AS x WITH (NOLOCK)
CROSS APPLY f(x.a) AS y
`
	assert.Equal(t, expected, Statement(stmts[0]))
}

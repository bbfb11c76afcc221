package parser_test

import (
	"testing"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/generic"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, sql string) core.Stmt {
	t.Helper()
	stmts, err := parser.Parse(generic.Generic, sql)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	return stmts[0]
}

type roundTripCase struct {
	name string
	sql  string
	want string // canonical form; empty when it equals sql
}

// assertRoundTrip checks that sql renders to its canonical form and that
// the canonical form parses back to itself.
func assertRoundTrip(t *testing.T, tests []roundTripCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := tt.want
			if want == "" {
				want = tt.sql
			}
			got := parseOne(t, tt.sql).String()
			assert.Equal(t, want, got)
			assert.Equal(t, want, parseOne(t, got).String(), "canonical form is not stable")
		})
	}
}

// ---------- Query Round Trip Tests ----------

func TestRoundTripSelect(t *testing.T) {
	assertRoundTrip(t, []roundTripCase{
		{name: "simple", sql: "SELECT a, b FROM t"},
		{name: "without FROM", sql: "SELECT 1"},
		{name: "distinct", sql: "SELECT DISTINCT a FROM t"},
		{name: "all is dropped", sql: "SELECT ALL a FROM t", want: "SELECT a FROM t"},
		{name: "where group having", sql: "SELECT a, count(*) FROM t WHERE a = 1 GROUP BY a HAVING count(*) > 1"},
		{name: "wildcards", sql: "SELECT *, t.* FROM t"},
		{name: "aliases", sql: "SELECT a AS x, b y FROM t", want: "SELECT a AS x, b AS y FROM t"},
		{name: "string alias", sql: "SELECT a 'x' FROM t", want: "SELECT a AS 'x' FROM t"},
		{name: "quoted names", sql: `SELECT "My Col" FROM "s"."t"`},
		{name: "literals", sql: "SELECT 1, 1.5, 'str', N'nat', X'FF', true, NULL"},
		{name: "date literals", sql: "SELECT DATE '2020-01-01', TIME '12:00:00', TIMESTAMP '2020-01-01 12:00:00'"},
		{name: "escaped quote", sql: "SELECT 'it''s'"},
		{name: "unary", sql: "SELECT -a, +b FROM t", want: "SELECT - a, + b FROM t"},
		{name: "case", sql: "SELECT CASE WHEN a = 1 THEN 'one' ELSE 'other' END FROM t"},
		{name: "cast", sql: "SELECT CAST(a AS DECIMAL(10,2)) FROM t", want: "SELECT CAST(a AS NUMERIC(10,2)) FROM t"},
		{name: "double colon cast", sql: "SELECT a::TEXT FROM t", want: "SELECT CAST(a AS TEXT) FROM t"},
		{name: "extract", sql: "SELECT EXTRACT(MONTH FROM d) FROM t"},
		{name: "collate", sql: `SELECT a COLLATE "C" FROM t`},
		{name: "function distinct", sql: "SELECT count(DISTINCT a) FROM t"},
		{name: "window", sql: "SELECT sum(a) OVER (PARTITION BY b ORDER BY c ROWS UNBOUNDED PRECEDING) FROM t"},
		{name: "scalar subquery", sql: "SELECT (SELECT 1) AS x"},
		{name: "exists", sql: "SELECT * FROM t WHERE EXISTS (SELECT 1 FROM u WHERE u.id = t.id)"},
		{name: "in subquery", sql: "SELECT * FROM t WHERE a IN (SELECT b FROM u)"},
		{name: "not in list", sql: "SELECT * FROM t WHERE a NOT IN (1, 2)"},
		{name: "between", sql: "SELECT * FROM t WHERE a BETWEEN 1 AND 2"},
		{name: "is not null", sql: "SELECT * FROM t WHERE a IS NOT NULL"},
		{name: "not like", sql: "SELECT * FROM t WHERE a NOT LIKE 'x%'"},
		{name: "nested expression", sql: "SELECT (a + b) * c FROM t"},
	})
}

func TestRoundTripQueryClauses(t *testing.T) {
	assertRoundTrip(t, []roundTripCase{
		{name: "order by", sql: "SELECT a FROM t ORDER BY a ASC, b DESC, c"},
		{name: "limit", sql: "SELECT a FROM t LIMIT 10"},
		{name: "limit all", sql: "SELECT a FROM t LIMIT ALL", want: "SELECT a FROM t"},
		{name: "offset row", sql: "SELECT a FROM t OFFSET 5 ROW", want: "SELECT a FROM t OFFSET 5 ROWS"},
		{name: "fetch", sql: "SELECT a FROM t ORDER BY a OFFSET 2 ROWS FETCH FIRST 3 ROWS ONLY"},
		{name: "fetch next percent with ties", sql: "SELECT a FROM t FETCH NEXT 10 PERCENT ROWS WITH TIES",
			want: "SELECT a FROM t FETCH FIRST 10 PERCENT ROWS WITH TIES"},
		{name: "fetch without quantity", sql: "SELECT a FROM t FETCH FIRST ROW ONLY", want: "SELECT a FROM t FETCH FIRST ROWS ONLY"},
		{name: "cte", sql: "WITH c AS (SELECT 1) SELECT * FROM c"},
		{name: "cte with columns", sql: "WITH c (x) AS (SELECT 1), d AS (SELECT 2) SELECT * FROM c, d"},
		{name: "values", sql: "VALUES (1, 'a'), (2, 'b')"},
		{name: "union", sql: "SELECT 1 UNION SELECT 2"},
		{name: "union all", sql: "SELECT 1 UNION ALL SELECT 2"},
		{name: "intersect binds tighter", sql: "SELECT 1 UNION SELECT 2 INTERSECT SELECT 3"},
		{name: "except", sql: "SELECT 1 EXCEPT SELECT 2 UNION SELECT 3"},
		{name: "parenthesized bodies", sql: "(SELECT 1) UNION (SELECT 2)"},
		{name: "parenthesized query with order", sql: "(SELECT a FROM t) ORDER BY a"},
	})
}

func TestRoundTripFrom(t *testing.T) {
	assertRoundTrip(t, []roundTripCase{
		{name: "alias", sql: "SELECT a FROM t AS u"},
		{name: "bare alias", sql: "SELECT a FROM t u", want: "SELECT a FROM t AS u"},
		{name: "alias with columns", sql: "SELECT a FROM t AS u (x, y)"},
		{name: "comma join", sql: "SELECT * FROM a, b"},
		{name: "join on", sql: "SELECT * FROM a JOIN b ON a.id = b.id"},
		{name: "inner join", sql: "SELECT * FROM a INNER JOIN b ON a.id = b.id", want: "SELECT * FROM a JOIN b ON a.id = b.id"},
		{name: "left outer join using", sql: "SELECT * FROM a LEFT OUTER JOIN b USING (id)", want: "SELECT * FROM a LEFT JOIN b USING(id)"},
		{name: "right join", sql: "SELECT * FROM a RIGHT JOIN b ON true"},
		{name: "full join", sql: "SELECT * FROM a FULL JOIN b USING(x, y)"},
		{name: "natural join", sql: "SELECT * FROM a NATURAL JOIN b"},
		{name: "natural full outer join", sql: "SELECT * FROM a NATURAL FULL OUTER JOIN b", want: "SELECT * FROM a NATURAL FULL JOIN b"},
		{name: "cross join", sql: "SELECT * FROM a CROSS JOIN b"},
		{name: "cross apply", sql: "SELECT * FROM a CROSS APPLY f(a.x)"},
		{name: "outer apply", sql: "SELECT * FROM a OUTER APPLY f(a.x) AS g"},
		{name: "join chain", sql: "SELECT * FROM a JOIN b ON a.x = b.x LEFT JOIN c ON b.y = c.y"},
		{name: "nested join", sql: "SELECT * FROM (a JOIN b ON a.x = b.x)"},
		{name: "doubly nested join", sql: "SELECT * FROM ((a NATURAL JOIN b))"},
		{name: "nested join followed by join", sql: "SELECT * FROM (a CROSS JOIN b) JOIN c ON true"},
		{name: "derived table", sql: "SELECT * FROM (SELECT 1) AS d"},
		{name: "lateral derived table", sql: "SELECT * FROM t, LATERAL (SELECT t.a) AS d"},
		{name: "table function", sql: "SELECT * FROM generate_series(1, 10) AS g (n)"},
		{name: "empty table function args", sql: "SELECT * FROM f() AS g", want: "SELECT * FROM f AS g"},
		{name: "table hints", sql: "SELECT * FROM t WITH (NOLOCK)"},
		{name: "table hints after alias", sql: "SELECT * FROM t AS x WITH (NOLOCK, INDEX)"},
	})
}

// ---------- DML Round Trip Tests ----------

func TestRoundTripDML(t *testing.T) {
	assertRoundTrip(t, []roundTripCase{
		{name: "insert values", sql: "INSERT INTO t (a, b) VALUES (1, 2)"},
		{name: "insert select", sql: "INSERT INTO s.t SELECT * FROM u"},
		{name: "update", sql: "UPDATE t SET a = 1, b = 'x' WHERE id = 2"},
		{name: "update without where", sql: "UPDATE t SET a = a + 1"},
		{name: "delete", sql: "DELETE FROM t WHERE a = 1"},
		{name: "delete all", sql: "DELETE FROM t"},
	})
}

// ---------- DDL Round Trip Tests ----------

func TestRoundTripDDL(t *testing.T) {
	assertRoundTrip(t, []roundTripCase{
		{
			name: "create table with options and constraints",
			sql: "CREATE TABLE t (a INT NOT NULL, b VARCHAR(10) DEFAULT 'x', c INT PRIMARY KEY, " +
				"d INT REFERENCES u (id), e INT CHECK (e > 0), " +
				"CONSTRAINT pk PRIMARY KEY (a), FOREIGN KEY (b) REFERENCES u(b), UNIQUE (c))",
			want: "CREATE TABLE t (a INT NOT NULL, b CHARACTER VARYING(10) DEFAULT 'x', c INT PRIMARY KEY, " +
				"d INT REFERENCES u (id), e INT CHECK (e > 0), " +
				"CONSTRAINT pk PRIMARY KEY (a), FOREIGN KEY (b) REFERENCES u(b), UNIQUE (c))",
		},
		{name: "named column constraint", sql: "CREATE TABLE t (a INT CONSTRAINT nn NOT NULL UNIQUE NULL)"},
		{name: "trailing comma", sql: "CREATE TABLE t (a INT,)", want: "CREATE TABLE t (a INT)"},
		{name: "no columns", sql: "CREATE TABLE t", want: "CREATE TABLE t ()"},
		{name: "empty columns", sql: "CREATE TABLE t ()"},
		{name: "with options", sql: "CREATE TABLE t (a INT) WITH (foo = 'bar', n = 1)"},
		{name: "collation", sql: `CREATE TABLE t (a TEXT COLLATE "de_DE")`},
		{
			name: "data types",
			sql:  "CREATE TABLE t (a BOOLEAN, b FLOAT(8), c REAL, d DOUBLE PRECISION, e SMALLINT, f BIGINT, g UUID, h DATE, i TIME, j INTERVAL, k REGCLASS, l BYTEA, m CHAR(2), n INTEGER, o NUMERIC, p my_type)",
			want: "CREATE TABLE t (a BOOLEAN, b FLOAT(8), c REAL, d DOUBLE, e SMALLINT, f BIGINT, g UUID, h DATE, i TIME, j INTERVAL, k REGCLASS, l BYTEA, m CHAR(2), n INT, o NUMERIC, p my_type)",
		},
		{name: "view", sql: "CREATE VIEW v AS SELECT 1"},
		{name: "materialized view", sql: "CREATE MATERIALIZED VIEW v (a, b) WITH (x = true) AS SELECT 1, 2"},
		{name: "source", sql: "CREATE SOURCE s FROM 'kafka://host/topic' USING SCHEMA 'schema text'"},
		{name: "source with registry", sql: "CREATE SOURCE s FROM 'kafka://host/topic' USING SCHEMA REGISTRY 'http://registry' WITH (format = 'avro')"},
		{name: "sink", sql: "CREATE SINK k FROM v INTO 'file:///tmp/out'"},
		{name: "sink with options", sql: "CREATE SINK k FROM s.v INTO 'kafka://host/out' WITH (retries = 3)"},
		{name: "external table", sql: "CREATE EXTERNAL TABLE e (a INT) STORED AS PARQUET LOCATION '/data'"},
		{name: "external table format case", sql: "CREATE EXTERNAL TABLE e (a INT) STORED AS orc LOCATION '/data'",
			want: "CREATE EXTERNAL TABLE e (a INT) STORED AS ORC LOCATION '/data'"},
		{name: "alter add foreign key", sql: "ALTER TABLE t ADD CONSTRAINT fk FOREIGN KEY (a) REFERENCES u(b)"},
		{name: "alter only add unique", sql: "ALTER TABLE ONLY t ADD UNIQUE (a)", want: "ALTER TABLE t ADD UNIQUE (a)"},
		{name: "alter add check", sql: "ALTER TABLE t ADD CHECK (a > 0)"},
		{name: "drop table", sql: "DROP TABLE IF EXISTS a, b CASCADE"},
		{name: "drop view restrict", sql: "DROP VIEW v RESTRICT", want: "DROP VIEW v"},
		{name: "drop source", sql: "DROP SOURCE s"},
		{name: "drop sink", sql: "DROP SINK k"},
	})
}

func TestExternalTableJSONFileRendersAsTextFile(t *testing.T) {
	stmt := parseOne(t, "CREATE EXTERNAL TABLE e (a INT) STORED AS JSONFILE LOCATION '/data'")

	create, ok := stmt.(*core.CreateTableStmt)
	require.True(t, ok)
	assert.Equal(t, core.JSONFile, create.FileFormat)
	assert.Equal(t, "CREATE EXTERNAL TABLE e (a INT) STORED AS TEXTFILE LOCATION '/data'", create.String())
}

// ---------- Transaction and Streaming Round Trip Tests ----------

func TestRoundTripTransactions(t *testing.T) {
	assertRoundTrip(t, []roundTripCase{
		{name: "start", sql: "START TRANSACTION"},
		{name: "start with modes", sql: "START TRANSACTION READ ONLY, ISOLATION LEVEL SERIALIZABLE"},
		{name: "modes without commas", sql: "START TRANSACTION READ WRITE ISOLATION LEVEL READ UNCOMMITTED",
			want: "START TRANSACTION READ WRITE, ISOLATION LEVEL READ UNCOMMITTED"},
		{name: "begin", sql: "BEGIN", want: "START TRANSACTION"},
		{name: "begin work with modes", sql: "BEGIN WORK READ WRITE ISOLATION LEVEL READ COMMITTED",
			want: "START TRANSACTION READ WRITE, ISOLATION LEVEL READ COMMITTED"},
		{name: "set transaction", sql: "SET TRANSACTION ISOLATION LEVEL REPEATABLE READ"},
		{name: "commit", sql: "COMMIT"},
		{name: "commit work no chain", sql: "COMMIT WORK AND NO CHAIN", want: "COMMIT"},
		{name: "commit and chain", sql: "COMMIT TRANSACTION AND CHAIN", want: "COMMIT AND CHAIN"},
		{name: "rollback", sql: "ROLLBACK"},
		{name: "rollback and chain", sql: "ROLLBACK AND CHAIN"},
	})
}

func TestRoundTripStreaming(t *testing.T) {
	assertRoundTrip(t, []roundTripCase{
		{name: "peek", sql: "PEEK v"},
		{name: "tail", sql: "TAIL s.v"},
		{name: "show tables", sql: "SHOW TABLES"},
		{name: "show views", sql: "SHOW VIEWS"},
		{name: "show sources", sql: "SHOW SOURCES"},
		{name: "show sinks", sql: "SHOW SINKS"},
		{name: "show columns", sql: "SHOW COLUMNS FROM t"},
	})
}

// ---------- INTERVAL Round Trip Tests ----------

func TestRoundTripInterval(t *testing.T) {
	assertRoundTrip(t, []roundTripCase{
		{name: "year to month", sql: "SELECT INTERVAL '1-1' YEAR TO MONTH"},
		{name: "leading precision", sql: "SELECT INTERVAL '10' DAY (3)"},
		{name: "minute", sql: "SELECT INTERVAL '5' MINUTE"},
		{name: "day to second with precision", sql: "SELECT INTERVAL '1 2:03:04.5' DAY TO SECOND (3)"},
		{name: "hour to minute", sql: "SELECT INTERVAL '1:30' HOUR (2) TO MINUTE"},
		{name: "second with precision and scale", sql: "SELECT INTERVAL '30.25' SECOND (5, 2)"},
		{name: "second with precision", sql: "SELECT INTERVAL '30' SECOND (5)"},
		{name: "negative", sql: "SELECT INTERVAL '-1' DAY"},
		{name: "in arithmetic", sql: "SELECT d + INTERVAL '1' DAY FROM t"},
	})
}

// ---------- Multiple Statement Tests ----------

func TestParseMultipleStatements(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "  \n\t", nil},
		{"semicolons only", ";;", nil},
		{"semicolons and whitespace", " ; ; ", nil},
		{"single without delimiter", "SELECT 1", []string{"SELECT 1"}},
		{"single with delimiter", "SELECT 1;", []string{"SELECT 1"}},
		{"two", "SELECT 1; SELECT 2;", []string{"SELECT 1", "SELECT 2"}},
		{"empty statements between", "BEGIN;;; COMMIT", []string{"START TRANSACTION", "COMMIT"}},
		{"transaction modes end at delimiter", "START TRANSACTION READ ONLY; COMMIT", []string{"START TRANSACTION READ ONLY", "COMMIT"}},
		{"comments", "-- lead\nSELECT 1 /* mid */; /* tail */", []string{"SELECT 1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, err := parser.Parse(generic.Generic, tt.sql)
			require.NoError(t, err)

			var got []string
			for _, stmt := range stmts {
				got = append(got, stmt.String())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

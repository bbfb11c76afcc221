package dialect

// AllKeywords is the shared keyword vocabulary. A word is classified as a
// keyword when it is unquoted and its uppercased form appears here.
var AllKeywords = []string{
	"ABS", "ADD", "ALL", "ALLOCATE", "ALTER", "AND", "ANY", "APPLY", "ARE",
	"ARRAY", "ARRAY_AGG", "ARRAY_MAX_CARDINALITY", "AS", "ASC", "ASENSITIVE",
	"ASYMMETRIC", "AT", "ATOMIC", "AUTHORIZATION", "AVG", "AVRO",
	"BEGIN", "BEGIN_FRAME", "BEGIN_PARTITION", "BETWEEN", "BIGINT", "BINARY",
	"BLOB", "BOOLEAN", "BOTH", "BY", "BYTEA",
	"CALL", "CALLED", "CARDINALITY", "CASCADE", "CASCADED", "CASE", "CAST",
	"CEIL", "CEILING", "CHAIN", "CHAR", "CHAR_LENGTH", "CHARACTER",
	"CHARACTER_LENGTH", "CHECK", "CLOB", "CLOSE", "COALESCE", "COLLATE",
	"COLLECT", "COLUMN", "COLUMNS", "COMMIT", "COMMITTED", "CONDITION",
	"CONNECT", "CONSTRAINT", "CONTAINS", "CONVERT", "COPY", "CORR",
	"CORRESPONDING", "COUNT", "COVAR_POP", "COVAR_SAMP", "CREATE", "CROSS",
	"CUBE", "CUME_DIST", "CURRENT", "CURRENT_CATALOG", "CURRENT_DATE",
	"CURRENT_DEFAULT_TRANSFORM_GROUP", "CURRENT_PATH", "CURRENT_ROLE",
	"CURRENT_ROW", "CURRENT_SCHEMA", "CURRENT_TIME", "CURRENT_TIMESTAMP",
	"CURRENT_TRANSFORM_GROUP_FOR_TYPE", "CURRENT_USER", "CURSOR", "CYCLE",
	"DATE", "DAY", "DEALLOCATE", "DEC", "DECIMAL", "DECLARE", "DEFAULT",
	"DELETE", "DENSE_RANK", "DEREF", "DESC", "DESCRIBE", "DETERMINISTIC",
	"DISCONNECT", "DISTINCT", "DOUBLE", "DROP", "DYNAMIC",
	"EACH", "ELEMENT", "ELSE", "END", "END_FRAME", "END_PARTITION", "END-EXEC",
	"EQUALS", "ESCAPE", "EVERY", "EXCEPT", "EXEC", "EXECUTE", "EXISTS", "EXP",
	"EXTENDED", "EXTERNAL", "EXTRACT",
	"FALSE", "FETCH", "FILTER", "FIRST", "FIRST_VALUE", "FLOAT", "FLOOR",
	"FOLLOWING", "FOR", "FOREIGN", "FRAME_ROW", "FREE", "FROM", "FULL",
	"FUNCTION", "FUSION",
	"GET", "GLOBAL", "GRANT", "GROUP", "GROUPING", "GROUPS",
	"HAVING", "HEADER", "HOLD", "HOUR",
	"IDENTITY", "IF", "IN", "INDICATOR", "INNER", "INOUT", "INSENSITIVE",
	"INSERT", "INT", "INTEGER", "INTERSECT", "INTERSECTION", "INTERVAL",
	"INTO", "IS", "ISOLATION",
	"JOIN", "JSONFILE",
	"KEY",
	"LAG", "LANGUAGE", "LARGE", "LAST_VALUE", "LATERAL", "LEAD", "LEADING",
	"LEFT", "LEVEL", "LIKE", "LIKE_REGEX", "LIMIT", "LN", "LOCAL",
	"LOCALTIME", "LOCALTIMESTAMP", "LOCATION", "LOWER",
	"MATCH", "MATERIALIZED", "MAX", "MEMBER", "MERGE", "METHOD", "MIN",
	"MINUTE", "MOD", "MODIFIES", "MODULE", "MONTH", "MULTISET",
	"NATIONAL", "NATURAL", "NCHAR", "NCLOB", "NEW", "NEXT", "NO", "NONE",
	"NORMALIZE", "NOT", "NTH_VALUE", "NTILE", "NULL", "NULLIF", "NUMERIC",
	"OBJECT", "OCCURRENCES_REGEX", "OCTET_LENGTH", "OF", "OFFSET", "OLD", "ON",
	"ONLY", "OPEN", "OR", "ORC", "ORDER", "OUT", "OUTER", "OVER", "OVERLAPS",
	"OVERLAY",
	"PARAMETER", "PARQUET", "PARTITION", "PEEK", "PERCENT", "PERCENT_RANK",
	"PERCENTILE_CONT", "PERCENTILE_DISC", "PERIOD", "PORTION", "POSITION",
	"POSITION_REGEX", "POWER", "PRECEDES", "PRECEDING", "PRECISION",
	"PREPARE", "PRIMARY", "PROCEDURE",
	"RANGE", "RANK", "RCFILE", "READ", "READS", "REAL", "RECURSIVE", "REF",
	"REFERENCES", "REFERENCING", "REGCLASS", "REGISTRY", "REGR_AVGX",
	"REGR_AVGY", "REGR_COUNT", "REGR_INTERCEPT", "REGR_R2", "REGR_SLOPE",
	"REGR_SXX", "REGR_SXY", "REGR_SYY", "RELEASE", "REPEATABLE", "RESTRICT",
	"RESULT", "RETURN", "RETURNS", "REVOKE", "RIGHT", "ROLLBACK", "ROLLUP",
	"ROW", "ROW_NUMBER", "ROWS",
	"SAVEPOINT", "SCHEMA", "SCOPE", "SCROLL", "SEARCH", "SECOND", "SELECT",
	"SENSITIVE", "SEQUENCEFILE", "SERIALIZABLE", "SESSION_USER", "SET", "SHOW",
	"SIMILAR", "SINK", "SINKS", "SMALLINT", "SOME", "SOURCE", "SOURCES",
	"SPECIFIC", "SPECIFICTYPE", "SQL", "SQLEXCEPTION", "SQLSTATE",
	"SQLWARNING", "SQRT", "START", "STATIC", "STDDEV_POP", "STDDEV_SAMP",
	"STDIN", "STORED", "SUBMULTISET", "SUBSTRING", "SUBSTRING_REGEX",
	"SUCCEEDS", "SUM", "SYMMETRIC", "SYSTEM", "SYSTEM_TIME", "SYSTEM_USER",
	"TABLE", "TABLES", "TABLESAMPLE", "TAIL", "TEXT", "TEXTFILE", "THEN",
	"TIES", "TIME", "TIMESTAMP", "TIMEZONE_HOUR", "TIMEZONE_MINUTE", "TO",
	"TOP", "TRAILING", "TRANSACTION", "TRANSLATE", "TRANSLATE_REGEX",
	"TRANSLATION", "TREAT", "TRIGGER", "TRIM", "TRIM_ARRAY", "TRUE",
	"TRUNCATE",
	"UESCAPE", "UNBOUNDED", "UNCOMMITTED", "UNION", "UNIQUE", "UNKNOWN",
	"UNNEST", "UPDATE", "UPPER", "USER", "USING", "UUID",
	"VALUE", "VALUES", "VALUE_OF", "VAR_POP", "VAR_SAMP", "VARBINARY",
	"VARCHAR", "VARYING", "VERSIONING", "VIEW", "VIEWS",
	"WHEN", "WHENEVER", "WHERE", "WIDTH_BUCKET", "WINDOW", "WITH", "WITHIN",
	"WITHOUT", "WORK", "WRITE",
	"YEAR",
	"ZONE",
}

// ReservedForTableAlias lists keywords that cannot be used as a table
// alias without AS, because they start the clause that may follow a table
// reference.
var ReservedForTableAlias = []string{
	// clauses that may follow a FROM item
	"WITH", "SELECT", "WHERE", "GROUP", "HAVING", "ORDER", "TOP", "LIMIT",
	"OFFSET", "FETCH", "UNION", "EXCEPT", "INTERSECT",
	// joins
	"ON", "JOIN", "INNER", "CROSS", "FULL", "LEFT", "RIGHT", "NATURAL",
	"USING", "OUTER",
}

// ReservedForColumnAlias lists keywords that cannot be used as a column
// alias without AS.
var ReservedForColumnAlias = []string{
	"WITH", "SELECT", "WHERE", "GROUP", "HAVING", "ORDER", "TOP", "LIMIT",
	"OFFSET", "FETCH", "UNION", "EXCEPT", "INTERSECT",
	// the projection ends at FROM
	"FROM",
}

var keywordIndex = func() map[string]struct{} {
	m := make(map[string]struct{}, len(AllKeywords))
	for _, kw := range AllKeywords {
		m[kw] = struct{}{}
	}
	return m
}()

// IsKeyword reports whether the uppercased word is in AllKeywords.
func IsKeyword(upper string) bool {
	_, ok := keywordIndex[upper]
	return ok
}

// IsReserved reports whether kw appears in the reserved list.
func IsReserved(kw string, reserved []string) bool {
	for _, r := range reserved {
		if r == kw {
			return true
		}
	}
	return false
}

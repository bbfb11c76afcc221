package core

// DataType is a SQL data type as used in CAST, `::` and column definitions.
type DataType interface {
	Node
	dataTypeNode()
}

// SimpleType is a parameterless type rendered by its keyword.
type SimpleType int

// Parameterless data types.
const (
	TypeBoolean SimpleType = iota
	TypeReal
	TypeDouble
	TypeSmallInt
	TypeInt
	TypeBigInt
	TypeUUID
	TypeDate
	TypeTime
	TypeTimestamp
	TypeInterval
	TypeRegclass
	TypeText
	TypeBytea
)

var simpleTypeNames = [...]string{
	TypeBoolean:   "BOOLEAN",
	TypeReal:      "REAL",
	TypeDouble:    "DOUBLE",
	TypeSmallInt:  "SMALLINT",
	TypeInt:       "INT",
	TypeBigInt:    "BIGINT",
	TypeUUID:      "UUID",
	TypeDate:      "DATE",
	TypeTime:      "TIME",
	TypeTimestamp: "TIMESTAMP",
	TypeInterval:  "INTERVAL",
	TypeRegclass:  "REGCLASS",
	TypeText:      "TEXT",
	TypeBytea:     "BYTEA",
}

func (SimpleType) dataTypeNode() {}

// String implements Node.
func (t SimpleType) String() string {
	if int(t) < len(simpleTypeNames) {
		return simpleTypeNames[t]
	}
	return "UNKNOWN"
}

// CharType is CHAR(n). A nil Length renders without parentheses.
type CharType struct {
	Length *uint64
}

func (*CharType) dataTypeNode() {}

// String implements Node.
func (t *CharType) String() string { return "CHAR" + optionalLength(t.Length) }

// VarcharType is VARCHAR(n), rendered as CHARACTER VARYING(n).
type VarcharType struct {
	Length *uint64
}

func (*VarcharType) dataTypeNode() {}

// String implements Node.
func (t *VarcharType) String() string { return "CHARACTER VARYING" + optionalLength(t.Length) }

// FloatType is FLOAT(p).
type FloatType struct {
	Precision *uint64
}

func (*FloatType) dataTypeNode() {}

// String implements Node.
func (t *FloatType) String() string { return "FLOAT" + optionalLength(t.Precision) }

// DecimalType is NUMERIC(p,s), also spelled DECIMAL or DEC.
type DecimalType struct {
	Precision *uint64
	Scale     *uint64
}

func (*DecimalType) dataTypeNode() {}

// String implements Node.
func (t *DecimalType) String() string {
	if t.Precision == nil {
		return "NUMERIC"
	}
	if t.Scale == nil {
		return "NUMERIC(" + formatUint(*t.Precision) + ")"
	}
	return "NUMERIC(" + formatUint(*t.Precision) + "," + formatUint(*t.Scale) + ")"
}

// ArrayType is `elem[]`.
type ArrayType struct {
	Elem DataType
}

func (*ArrayType) dataTypeNode() {}

// String implements Node.
func (t *ArrayType) String() string { return t.Elem.String() + "[]" }

// CustomType is any other type name, e.g. a user-defined type.
type CustomType struct {
	Name ObjectName
}

func (*CustomType) dataTypeNode() {}

// String implements Node.
func (t *CustomType) String() string { return t.Name.String() }

func optionalLength(n *uint64) string {
	if n == nil {
		return ""
	}
	return "(" + formatUint(*n) + ")"
}

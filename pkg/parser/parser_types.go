package parser

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// parseDataType parses a data type as used in CAST, `::` and column
// definitions. Unknown type names become a CustomType.
func (p *Parser) parseDataType() (core.DataType, error) {
	tok := p.nextToken()
	if tok.Type != token.WORD {
		return nil, p.expected("a data type name", tok)
	}
	switch tok.Word.Keyword {
	case "BOOLEAN":
		return core.TypeBoolean, nil
	case "FLOAT":
		precision, err := p.parseOptionalPrecision()
		if err != nil {
			return nil, err
		}
		return &core.FloatType{Precision: precision}, nil
	case "REAL":
		return core.TypeReal, nil
	case "DOUBLE":
		_ = p.parseKeyword("PRECISION")
		return core.TypeDouble, nil
	case "SMALLINT":
		return core.TypeSmallInt, nil
	case "INT", "INTEGER":
		return core.TypeInt, nil
	case "BIGINT":
		return core.TypeBigInt, nil
	case "VARCHAR":
		length, err := p.parseOptionalPrecision()
		if err != nil {
			return nil, err
		}
		return &core.VarcharType{Length: length}, nil
	case "CHAR", "CHARACTER":
		varying := p.parseKeyword("VARYING")
		length, err := p.parseOptionalPrecision()
		if err != nil {
			return nil, err
		}
		if varying {
			return &core.VarcharType{Length: length}, nil
		}
		return &core.CharType{Length: length}, nil
	case "UUID":
		return core.TypeUUID, nil
	case "DATE":
		return core.TypeDate, nil
	case "TIMESTAMP":
		if err := p.parseTimeZoneQualifier(); err != nil {
			return nil, err
		}
		return core.TypeTimestamp, nil
	case "TIME":
		if err := p.parseTimeZoneQualifier(); err != nil {
			return nil, err
		}
		return core.TypeTime, nil
	case "INTERVAL":
		return core.TypeInterval, nil
	case "REGCLASS":
		return core.TypeRegclass, nil
	case "TEXT":
		if p.consumeToken(token.LBRACKET) {
			if err := p.expectToken(token.RBRACKET); err != nil {
				return nil, err
			}
			return &core.ArrayType{Elem: core.TypeText}, nil
		}
		return core.TypeText, nil
	case "BYTEA":
		return core.TypeBytea, nil
	case "NUMERIC", "DECIMAL", "DEC":
		precision, scale, err := p.parseOptionalPrecisionScale()
		if err != nil {
			return nil, err
		}
		return &core.DecimalType{Precision: precision, Scale: scale}, nil
	}
	p.prevToken()
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	return &core.CustomType{Name: name}, nil
}

// parseTimeZoneQualifier consumes and discards `WITH|WITHOUT TIME ZONE`.
func (p *Parser) parseTimeZoneQualifier() error {
	if !p.parseKeyword("WITH") && !p.parseKeyword("WITHOUT") {
		return nil
	}
	if err := p.expectKeyword("TIME"); err != nil {
		return err
	}
	return p.expectKeyword("ZONE")
}

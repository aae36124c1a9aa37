package runner

import (
	"database/sql"
	"fmt"
	"math/big"

	"github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"

	"github.com/21f1001434/Agentic-AI/internal/models"
	srvErrors "github.com/21f1001434/Agentic-AI/pkg/errors"
)

// ScanSQLRows drains rows into a Dataset. Column kinds come from the driver's
// declared type names. A maxRows <= 0 reads everything.
func ScanSQLRows(rows *sql.Rows, maxRows int) (*models.Dataset, error) {
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("read column types: %w", err)
	}

	cols := make([]models.Column, len(types))
	dbTypes := make([]string, len(types))
	for i, t := range types {
		dbTypes[i] = t.DatabaseTypeName()
		cols[i] = models.Column{Name: t.Name(), Kind: models.KindFromDatabaseType(dbTypes[i])}
	}

	var out [][]any
	for rows.Next() {
		if maxRows > 0 && len(out) >= maxRows {
			return nil, srvErrors.NewRowLimitExceededError(maxRows)
		}

		dest := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range dest {
			ptrs[i] = &dest[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range dest {
			dest[i] = normalizeDriverValue(v, dbTypes[i])
		}
		out = append(out, dest)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return models.NewTypedDataset(cols, out), nil
}

func normalizeDriverValue(v any, dbType string) any {
	switch x := v.(type) {
	case duckdb.Decimal:
		return x.Float64()
	case *big.Int:
		if x == nil {
			return nil
		}
		if x.IsInt64() {
			return x.Int64()
		}
		f, _ := new(big.Float).SetInt(x).Float64()
		return f
	case duckdb.Interval:
		return formatInterval(x.Months, x.Days, x.Micros)
	case [16]byte:
		return uuid.UUID(x).String()
	case []byte:
		if dbType == "UUID" && len(x) == 16 {
			if id, err := uuid.FromBytes(x); err == nil {
				return id.String()
			}
		}
		return models.NormalizeValue(x)
	default:
		return models.NormalizeValue(v)
	}
}

func formatInterval(months, days int32, micros int64) string {
	return fmt.Sprintf("%d months %d days %dus", months, days, micros)
}

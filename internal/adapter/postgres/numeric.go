package postgres

import (
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"
)

// Amount columns are numeric(39,0): arbitrary-precision integers that do not
// fit in int64. These helpers convert between pgtype.Numeric and *big.Int.

// NumericFromBig converts a *big.Int into a pgtype.Numeric parameter.
func NumericFromBig(v *big.Int) pgtype.Numeric {
	if v == nil {
		return pgtype.Numeric{}
	}
	return pgtype.Numeric{Int: new(big.Int).Set(v), Exp: 0, Valid: true}
}

// BigFromNumeric converts a scanned pgtype.Numeric into a *big.Int.
// The column is declared with scale 0, so a fractional value means the
// schema and the code disagree.
func BigFromNumeric(n pgtype.Numeric) (*big.Int, error) {
	if !n.Valid {
		return nil, fmt.Errorf("numeric is NULL")
	}
	if n.NaN {
		return nil, fmt.Errorf("numeric is NaN")
	}
	if n.InfinityModifier != pgtype.Finite {
		return nil, fmt.Errorf("numeric is infinite")
	}
	v := new(big.Int).Set(n.Int)
	switch {
	case n.Exp > 0:
		v.Mul(v, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n.Exp)), nil))
	case n.Exp < 0:
		return nil, fmt.Errorf("numeric has fractional digits (exp %d)", n.Exp)
	}
	return v, nil
}

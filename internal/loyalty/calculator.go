package loyalty

import (
	pkgerrors "github.com/minicrmhq/minicrm-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// ComputePoints converts a purchase value into loyalty points using the
// store's points-per-real rate. Fractional points are never awarded: the
// product is truncated toward zero, so R$ 10.99 at rate 1 earns 10 points.
func ComputePoints(value decimal.Decimal, pointsPerReal int) (int, error) {
	if value.IsNegative() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "purchase value must not be negative")
	}
	if pointsPerReal < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "points per real must not be negative")
	}
	points := value.Mul(decimal.NewFromInt(int64(pointsPerReal))).Floor()
	return int(points.IntPart()), nil
}

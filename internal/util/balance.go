package util

import (
	"math"

	"dexboard/backend/pkg/logger"
)

// NormalizeBalance clears floating point dust left over from repeated arithmetic.
// Negative or non finite balances are rejected by the caller and returned unchanged here.
func NormalizeBalance(balance float64, symbol string, log *logger.Logger) float64 {
	if math.IsNaN(balance) || math.IsInf(balance, 0) {
		return balance
	}
	if balance > 0 && balance < DustBalanceThreshold {
		if log != nil {
			log.Debugf("Cleaning up tiny %s balance (%.18f) - setting to 0", symbol, balance)
		}
		return 0
	}
	return balance
}

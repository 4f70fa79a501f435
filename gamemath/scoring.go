package gamemath

import "math"

// StreakBonus is the fractional coin bonus for a streak of n, capped at max.
func StreakBonus(n int, perCoin, max float64) float64 {
	return math.Min(float64(n)*perCoin, max)
}

// CoinValue applies a streak bonus and a score multiplier to base, rounding up.
func CoinValue(base int, bonus float64, multiplier int) int {
	return int(math.Ceil(float64(base) * (1 + bonus) * float64(multiplier)))
}

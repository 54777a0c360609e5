package game

// roundMoney keeps the two leading digits of n, or one for amounts under
// 10000. Anything below 1000 becomes 1000.
func roundMoney(n float64) int64 {
	v := int64(n)
	pow := int64(10_000_000)
	for p := 7; p >= 3; p-- {
		if v >= pow {
			return v - v%(pow/10)
		}
		pow /= 10
	}
	return 1000
}

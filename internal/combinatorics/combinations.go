// Package combinatorics counts selections with repetition (stars and bars).
package combinatorics

import "math/big"

// Modulus keeps the last nine decimal digits of a count.
const Modulus = 1_000_000_000

// Choose returns C(n, k) exactly.
// k > n yields 0; k == 0 or k == n yields 1.
func Choose(n, k int64) *big.Int {
	if k > n {
		return big.NewInt(0)
	}
	if k == 0 || k == n {
		return big.NewInt(1)
	}
	if k > n-k {
		k = n - k
	}

	// acc*(n-i) is always divisible by i+1 because acc*(n-i)/(i+1) = C(n, i+1).
	acc := big.NewInt(1)
	factor := new(big.Int)
	for i := int64(0); i < k; i++ {
		acc.Mul(acc, factor.SetInt64(n-i))
		acc.Quo(acc, factor.SetInt64(i+1))
	}
	return acc
}

// ChooseMod returns C(n, k) mod m, reducing only once at the end.
func ChooseMod(n, k, m int64) int64 {
	return new(big.Int).Mod(Choose(n, k), big.NewInt(m)).Int64()
}

// MultisetCount returns the number of ways to pick k items from n types with
// unlimited repetition, C(n+k-1, k), truncated to its last nine digits.
func MultisetCount(n, k int64) int64 {
	return ChooseMod(n+k-1, k, Modulus)
}

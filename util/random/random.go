// Package random generates random strings from crypto/rand.
package random

import (
	"crypto/rand"
	"math/big"
)

var alnumSeq [62]rune

func init() {
	i := 0
	for c := '0'; c <= '9'; c++ {
		alnumSeq[i] = c
		i++
	}
	for c := 'a'; c <= 'z'; c++ {
		alnumSeq[i] = c
		i++
	}
	for c := 'A'; c <= 'Z'; c++ {
		alnumSeq[i] = c
		i++
	}
}

// Seq generates a random alphanumeric string of length n.
func Seq(n int) string {
	runes := make([]rune, n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(alnumSeq))))
		if err != nil {
			panic("crypto/rand failed: " + err.Error())
		}
		runes[i] = alnumSeq[idx.Int64()]
	}
	return string(runes)
}

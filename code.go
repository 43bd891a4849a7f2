package main

import (
	"math/rand"
	"time"
)

// Unambiguous alphabet: no 0/O/I/l lookalikes, codes end up in shared links.
var codeLetters = []rune("123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz")

const codeLength = 6

func GenerateRandomCode() string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	code := make([]rune, codeLength)
	for i := range code {
		code[i] = codeLetters[r.Intn(len(codeLetters))]
	}
	return string(code)
}

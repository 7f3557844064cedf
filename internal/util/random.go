package util

import "math/rand"

// Rand 随机源抽象，测试中可注入固定种子的 *rand.Rand
type Rand interface {
	Intn(n int) int
	Float64() float64
}

type globalRand struct{}

func (globalRand) Intn(n int) int    { return rand.Intn(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// DefaultRand 使用 math/rand 的全局源，可并发使用
func DefaultRand() Rand {
	return globalRand{}
}

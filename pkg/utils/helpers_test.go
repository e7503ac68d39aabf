package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateMD5(t *testing.T) {
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", CalculateMD5(nil), "空输入的MD5应为固定值")
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", CalculateMD5([]byte("hello")))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 87.65, Round(87.6543, 2))
	assert.Equal(t, 100.0, Round(99.999, 2))
	assert.Equal(t, -0.12, Round(-0.1249, 2))
}

func TestRound_HalfToEven(t *testing.T) {
	// 中点取偶数
	assert.Equal(t, 2.0, Round(2.5, 0))
	assert.Equal(t, 4.0, Round(3.5, 0))
	assert.Equal(t, -2.0, Round(-2.5, 0))
	// 0.125*100 在浮点下恰为 12.5
	assert.Equal(t, 0.12, Round(0.125, 2))
	assert.Equal(t, 62.5, Round(62.5, 2))
}

func TestPtrHelpers(t *testing.T) {
	s := StringPtr("2020-01-01")
	assert.Equal(t, "2020-01-01", *s)
	i := IntPtr(2021)
	assert.Equal(t, 2021, *i)
}

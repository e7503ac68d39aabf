package utils

import (
	"crypto/md5"
	"encoding/hex"
	"math"
)

// StringPtr 返回字符串的指针
func StringPtr(s string) *string {
	return &s
}

// IntPtr returns a pointer to an int
func IntPtr(i int) *int {
	return &i
}

// CalculateMD5 computes the MD5 hash of a byte slice.
func CalculateMD5(data []byte) string {
	hasher := md5.New()
	hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil))
}

// Round 保留指定小数位, 恰好落在中点时取偶数 (银行家舍入)
func Round(val float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.RoundToEven(val*pow) / pow
}

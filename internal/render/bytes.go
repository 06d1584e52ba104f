package render

import (
	"math"
	"strconv"
)

var byteUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatBytes renders a byte count using the largest power of 1024 that does
// not exceed it, rounded to at most one decimal place with trailing zeros
// trimmed: 0 -> "0 Bytes", 1024 -> "1 KB", 1536 -> "1.5 KB".
func FormatBytes(size int64) string {
	if size <= 0 {
		return "0 Bytes"
	}
	exp := int(math.Floor(math.Log(float64(size)) / math.Log(1024)))
	if exp >= len(byteUnits) {
		exp = len(byteUnits) - 1
	}
	value := float64(size) / math.Pow(1024, float64(exp))
	rounded := math.Round(value*10) / 10
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + byteUnits[exp]
}

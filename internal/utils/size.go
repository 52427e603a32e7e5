package utils

import (
	"fmt"
	"math"
	"strconv"
)

const byteUnitStep = 1024

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

// ConvertSize converts a byte count into a human-readable string such as "1.46 KB".
// Values are scaled by powers of 1024 and rounded to two decimals; byte values are
// rendered as whole numbers. Zero (and any negative count) renders as "0B".
func ConvertSize(sizeBytes int64) string {
	if sizeBytes <= 0 {
		return "0B"
	}
	value := float64(sizeBytes)
	unitIndex := 0
	for value >= byteUnitStep && unitIndex < len(byteUnits)-1 {
		value /= byteUnitStep
		unitIndex++
	}
	if unitIndex == 0 {
		return fmt.Sprintf("%d %s", sizeBytes, byteUnits[unitIndex])
	}
	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + byteUnits[unitIndex]
}

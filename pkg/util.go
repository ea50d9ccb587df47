package pkg

import (
	"os"
	"unsafe"
)

// BytesToString converts bytes slice to a string without extra allocation
func BytesToString(buf []byte) string {
	return *(*string)(unsafe.Pointer(&buf))
}

// PathExists returns whether the given file or directory exists
func PathExists(path string, isDir bool) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if (isDir && stat.IsDir()) || (!isDir && !stat.IsDir()) {
		return true, nil
	}
	return false, err
}

// ClampRatio returns value/goal limited to [0, 1]. A non-positive goal yields 0.
func ClampRatio(value, goal float64) float64 {
	if goal <= 0 || value <= 0 {
		return 0
	}
	r := value / goal
	if r > 1 {
		return 1
	}
	return r
}

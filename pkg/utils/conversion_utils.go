package utils

import (
	"fmt"
	"strconv"
)

// StrToInt64 converts a string to an int64.
func StrToInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// StrToPositiveInt64 parses s as an identifier: a base-10 integer of at least 1.
func StrToPositiveInt64(s string) (int64, error) {
	num, err := StrToInt64(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	if num < 1 {
		return 0, fmt.Errorf("must be greater than or equal to 1, got %d", num)
	}
	return num, nil
}

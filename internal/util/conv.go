package util

import (
	"strconv"
)

// ParseIntDefault 将字符串转换为整数，为空或解析失败时返回默认值
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

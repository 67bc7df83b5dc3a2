package util

import (
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanonicalID 把上游传来的标识统一成一种写法：
// ObjectID 转小写 hex，UUID 转小写带连字符形式，其它原样（去掉首尾空白）。
func CanonicalID(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}
	if oid, err := primitive.ObjectIDFromHex(s); err == nil {
		return oid.Hex()
	}
	if id, err := uuid.Parse(s); err == nil {
		return id.String()
	}
	return s
}

// IDVariants 返回同一标识可能在库里出现过的所有写法，第一个总是规范形式
func IDVariants(raw string) []string {
	canonical := CanonicalID(raw)
	seen := map[string]bool{}
	var out []string
	add := func(v string) {
		if v == "" || seen[v] {
			return
		}
		seen[v] = true
		out = append(out, v)
	}

	add(canonical)
	add(raw)
	add(strings.TrimSpace(raw))

	if _, err := primitive.ObjectIDFromHex(canonical); err == nil {
		add(strings.ToUpper(canonical))
	} else if _, err := uuid.Parse(canonical); err == nil {
		compact := strings.ReplaceAll(canonical, "-", "")
		add(strings.ToUpper(canonical))
		add(compact)
		add(strings.ToUpper(compact))
	}
	return out
}

package convert

import (
	"math"
	"strconv"
	"strings"
)

type StrTo string

func (s StrTo) String() string {
	return string(s)
}

// Int64 parses the string as an integer after trimming surrounding whitespace.
func (s StrTo) Int64() (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s.String()), 10, 64)
}

func (s StrTo) MustInt64() int64 {
	v, _ := s.Int64()
	return v
}

// Number 按数字语义解析路由参数
// 接受 "2"、" 2 "、"2.0"、"1e3" 以及无符号的 0x/0o/0b 前缀整数，
// 小数、空串、非数字、带符号的前缀形式和十六进制浮点都视为无效
func (s StrTo) Number() (int64, bool) {
	str := strings.TrimSpace(s.String())
	if str == "" {
		return 0, false
	}
	if base := prefixBase(str); base != 0 {
		v, err := strconv.ParseUint(str[2:], base, 63)
		if err != nil {
			return 0, false
		}
		return int64(v), true
	}
	if strings.ContainsAny(str, "xX") {
		return 0, false
	}
	if v, err := strconv.ParseInt(str, 10, 64); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// prefixBase 返回 0x/0o/0b 前缀对应的进制，没有前缀时返回 0
func prefixBase(str string) int {
	if len(str) < 3 || str[0] != '0' {
		return 0
	}
	switch str[1] {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}

package convert

// Truthy reports whether a decoded JSON value counts as true.
// false, 0, "", and null are false; every other value, including empty objects and arrays, is true.
// Truthy 判断解码后的 JSON 值是否为真
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	case float32:
		return x != 0
	case int:
		return x != 0
	case int64:
		return x != 0
	default:
		return true
	}
}

package result

// AsFloat coerces a cell value to float64. Booleans map to 1/0 so column
// means over boolean scores yield proportions.
func AsFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// AsBool coerces a cell value to a boolean outcome. Only true booleans are
// accepted; pass/fail strings must be normalized before rows reach the
// analysis layer.
func AsBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

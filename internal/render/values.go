package render

// Values holds chart values as a nested map.
type Values map[string]any

// Merge deep-merges overlay into base, overlay winning on conflicts. Nested
// maps are merged recursively so partial overrides keep sibling keys.
// Neither input is modified.
func Merge(base, overlay Values) Values {
	result := make(Values, len(base)+len(overlay))
	for k, v := range base {
		result[k] = v
	}
	for k, v := range overlay {
		overlayMap, overlayIsMap := toValues(v)
		baseMap, baseIsMap := toValues(result[k])
		if overlayIsMap && baseIsMap {
			result[k] = Merge(baseMap, overlayMap)
			continue
		}
		result[k] = v
	}
	return result
}

// toValues normalizes the map types YAML decoding can produce.
func toValues(v any) (Values, bool) {
	switch m := v.(type) {
	case Values:
		return m, true
	case map[string]any:
		return Values(m), true
	default:
		return nil, false
	}
}

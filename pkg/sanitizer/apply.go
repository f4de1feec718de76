package sanitizer

// Apply runs value through transforms left to right. Nil transforms are skipped.
func Apply[T any](value T, transforms ...func(T) T) T {
	for _, t := range transforms {
		if t != nil {
			value = t(value)
		}
	}
	return value
}

// Compose returns Apply bound to transforms, for pipelines stored on a field
// definition and run on every edit.
func Compose[T any](transforms ...func(T) T) func(T) T {
	chain := make([]func(T) T, 0, len(transforms))
	for _, t := range transforms {
		if t != nil {
			chain = append(chain, t)
		}
	}
	return func(value T) T {
		return Apply(value, chain...)
	}
}

package options

// Option configures a value of type T.
type Option[T any] func(*T)

// Apply runs opts against v in order. Nil options are skipped.
func Apply[T any](v *T, opts ...Option[T]) {
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
}

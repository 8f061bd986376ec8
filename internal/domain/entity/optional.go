package entity

// Optional marca explícitamente un campo presente o ausente en una actualización.
// El valor cero es "ausente": no modifica el campo.
type Optional[T any] struct {
	value T
	set   bool
}

// Some construye un Optional presente.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None construye un Optional ausente.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get devuelve el valor y si está presente.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet indica si el valor está presente.
func (o Optional[T]) IsSet() bool { return o.set }

package repokit

// Binder binds a domain repo to a Queryer, the pool outside a transaction or the tx inside one
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a constructor to Binder
type BindFunc[T any] func(Queryer) T

// Bind calls the underlying function
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

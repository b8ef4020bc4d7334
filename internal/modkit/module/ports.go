package module

import "reflect"

// PortsOf finds T in a module's Ports bundle
// the bundle itself may be T, or T may sit in one of its exported fields (struct or pointer to struct)
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.Indirect(reflect.ValueOf(p))
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := range rv.NumField() {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf panics when m does not expose T; missing ports are a wiring bug caught at boot
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic("module: " + m.Name() + " exposes no " + reflect.TypeFor[T]().String())
	}
	return v
}

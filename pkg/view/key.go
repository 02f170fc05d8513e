package view

import "reflect"

// PropKey returns a KeyFunc reading the named struct field or string-keyed map
// entry of each item. Pointers are followed. A missing field yields a nil key.
func PropKey[T any](name string) KeyFunc[T] {
	return func(item T) any {
		return prop(reflect.ValueOf(item), name)
	}
}

func prop(rv reflect.Value, name string) any {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		f := rv.FieldByName(name)
		if !f.IsValid() || !f.CanInterface() {
			return nil
		}
		return f.Interface()
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		v := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil
		}
		return v.Interface()
	}
	return nil
}

// Package reflectutils walks config structs.
package reflectutils

import "reflect"

// Visitor is called on a value met during a walk, with its type and its field path from the root.
type Visitor func(val reflect.Value, typ reflect.Type, path []string)

// Visitors chains visitors, in order, on each value.
func Visitors(visitors ...Visitor) Visitor {
	return func(val reflect.Value, typ reflect.Type, path []string) {
		for _, visit := range visitors {
			visit(val, typ, path)
		}
	}
}

// WalkStruct visits the root then every exported field, depth first. A visitor may replace a nil
// pointer before the walk goes through it.
func WalkStruct(root any, visit Visitor) {
	walk(reflect.ValueOf(root), nil, visit)
}

func walk(val reflect.Value, path []string, visit Visitor) {
	visit(val, val.Type(), path)

	val = Deref(val)
	if !val.IsValid() || val.Kind() != reflect.Struct {
		return
	}
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.IsExported() {
			walk(val.Field(i), append(path[:len(path):len(path)], field.Name), visit)
		}
	}
}

// Deref follows pointers and interfaces, it returns an invalid value on nil.
func Deref(val reflect.Value) reflect.Value {
	for val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface {
		val = val.Elem()
	}
	return val
}

// InitNilStructs allocates nil pointers to structs.
func InitNilStructs(val reflect.Value, typ reflect.Type, _ []string) {
	if typ.Kind() == reflect.Pointer && typ.Elem().Kind() == reflect.Struct && val.IsNil() && val.CanSet() {
		val.Set(reflect.New(typ.Elem()))
	}
}

// InitNilSlices replaces nil slices by empty ones.
func InitNilSlices(val reflect.Value, typ reflect.Type, _ []string) {
	if typ.Kind() == reflect.Slice && val.IsNil() && val.CanSet() {
		val.Set(reflect.MakeSlice(typ, 0, 0))
	}
}

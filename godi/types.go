package godi

import (
	"fmt"
	"reflect"
)

var (
	StringType    = TypeOf[string]()
	ProviderType  = TypeOf[Provider]()
	ErrorType     = TypeOf[error]()
	CloseableType = TypeOf[Closeable]()
	StringerType  = TypeOf[fmt.Stringer]()
)

// TypeOf returns the reflect.Type of I, interfaces included.
func TypeOf[I any]() reflect.Type {
	return reflect.TypeOf((*I)(nil)).Elem()
}

func matchType(queryType, providedType reflect.Type) bool {
	if queryType == providedType {
		return true
	}
	if queryType.Kind() == reflect.Interface && providedType.Implements(queryType) {
		return true
	}
	return false
}

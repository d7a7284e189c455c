// Package assert holds constructor preconditions. A failed assertion means the
// program was wired incorrectly, so it panics instead of returning an error.
package assert

import (
	"fmt"
	"reflect"
)

// NotNil panics if value is nil, including typed nils stored in an interface.
func NotNil(value any, name string) {
	if value == nil {
		panic(fmt.Sprintf("expected %s to be not nil", name))
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		if rv.IsNil() {
			panic(fmt.Sprintf("expected %s to be not nil", name))
		}
	}
}

func NotEmptyStr(str, name string) {
	if str == "" {
		panic(fmt.Sprintf("expected %s to be a non-empty string", name))
	}
}

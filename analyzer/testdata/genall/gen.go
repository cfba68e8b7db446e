// Code generated by hand for tests. DO NOT EDIT.

package genall

import "reflect"

func equal(x []int, y []string) bool {
	return reflect.DeepEqual(x, y) // want "type-incompatible"
}

func run(fns []func()) {
	for _, fn := range fns {
		defer fn() // want "Deferred call runs at function exit"
	}
}

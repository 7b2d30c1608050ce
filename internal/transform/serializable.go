package transform

import (
	"encoding"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

const maxDepth = 32

var (
	jsonMarshaler = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	textMarshaler = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// SafeValue returns v unchanged when it is serializable and its string form
// otherwise.
func SafeValue(v any) any {
	if Serializable(v) {
		return v
	}
	if !shallow(reflect.ValueOf(v), 0) {
		return fmt.Sprintf("%T", v)
	}
	return fmt.Sprint(v)
}

// Serializable reports whether v encodes losslessly as plain JSON: nil,
// booleans, strings, finite numbers, and slices or string-keyed maps of
// those. Structs, pointers, byte slices and values with custom marshalers
// are opaque.
func Serializable(v any) bool {
	if !structural(reflect.ValueOf(v), 0) {
		return false
	}
	_, err := json.Marshal(v)
	return err == nil
}

func structural(rv reflect.Value, depth int) bool {
	if depth > maxDepth {
		return false
	}
	if !rv.IsValid() {
		return true
	}
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return true
		}
		return structural(rv.Elem(), depth+1)
	}
	if t := rv.Type(); t.Implements(jsonMarshaler) || t.Implements(textMarshaler) {
		return false
	}

	switch rv.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return false
		}
		for i := 0; i < rv.Len(); i++ {
			if !structural(rv.Index(i), depth+1) {
				return false
			}
		}
		return true
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return false
		}
		iter := rv.MapRange()
		for iter.Next() {
			if !structural(iter.Value(), depth+1) {
				return false
			}
		}
		return true
	}
	return false
}

// shallow reports whether printing rv terminates within maxDepth levels of
// containers.
func shallow(rv reflect.Value, depth int) bool {
	if depth > maxDepth {
		return false
	}
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return shallow(rv.Elem(), depth+1)
	case reflect.Pointer:
		// fmt only follows the outermost pointer
		if rv.IsNil() || depth > 0 {
			return true
		}
		return shallow(rv.Elem(), depth+1)
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if !shallow(rv.Index(i), depth+1) {
				return false
			}
		}
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			if !shallow(iter.Value(), depth+1) {
				return false
			}
		}
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			if !shallow(rv.Field(i), depth+1) {
				return false
			}
		}
	}
	return true
}

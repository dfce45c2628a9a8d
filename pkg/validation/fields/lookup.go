// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package fields

import (
	"reflect"
	"strings"
)

// Lookup walks payload along a dotted path of json tag names and returns the value
// found there. Nil pointers, nil interfaces and unknown names are reported as absent.
func Lookup(payload interface{}, path string) (interface{}, bool) {
	rv := reflect.ValueOf(payload)
	for _, name := range strings.Split(path, ".") {
		rv = indirect(rv)
		if !rv.IsValid() {
			return nil, false
		}
		switch rv.Kind() {
		case reflect.Struct:
			rv = structField(rv, name)
		case reflect.Map:
			if rv.Type().Key().Kind() != reflect.String {
				return nil, false
			}
			rv = rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		default:
			return nil, false
		}
	}
	rv = indirect(rv)
	if !rv.IsValid() {
		return nil, false
	}
	return rv.Interface(), true
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

// structField finds the field tagged with name, searching embedded structs the way
// encoding/json promotes their fields.
func structField(rv reflect.Value, name string) reflect.Value {
	typ := rv.Type()
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if sf.PkgPath != "" && !sf.Anonymous {
			continue // unexported
		}
		tag := strings.Split(sf.Tag.Get("json"), ",")[0]
		if tag == "-" {
			continue
		}
		if sf.Anonymous && tag == "" {
			if inner := indirect(rv.Field(i)); inner.IsValid() && inner.Kind() == reflect.Struct {
				if v := structField(inner, name); v.IsValid() {
					return v
				}
			}
			continue
		}
		if tag == "" {
			tag = sf.Name
		}
		if tag == name {
			return rv.Field(i)
		}
	}
	return reflect.Value{}
}

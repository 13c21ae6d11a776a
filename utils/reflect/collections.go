/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/


package reflect

import (
	"reflect"
)

// bytesType is excluded from sequence handling: []byte is a scalar payload.
var bytesType = reflect.TypeOf([]byte(nil))

// IsMapping reports whether v is a map of any key and element type.
func IsMapping(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Map
}

// IsSequence reports whether v is a slice other than []byte.
func IsSequence(v any) bool {
	if v == nil {
		return false
	}
	t := reflect.TypeOf(v)
	return t.Kind() == reflect.Slice && t != bytesType
}

// IsEmpty reports whether v is nil or a zero-length map, slice, array, string
// or channel. Other values are never empty.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String, reflect.Chan:
		return rv.Len() == 0
	default:
		return false
	}
}

// SameType reports whether a and b have the same dynamic type.
func SameType(a, b any) bool {
	return reflect.TypeOf(a) == reflect.TypeOf(b)
}

// AsMap returns v as a map[string]any.
//
// A map[string]any is returned as is (not copied). Other maps are converted
// into a fresh map[string]any as long as every key is a string; otherwise
// (or when v is not a map) ok is false.
func AsMap(v any) (m map[string]any, ok bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	if !IsMapping(v) {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	out := make(map[string]any, rv.Len())
	for it := rv.MapRange(); it.Next(); {
		k := it.Key()
		if k.Kind() == reflect.Interface {
			k = k.Elem()
		}
		if k.Kind() != reflect.String {
			return nil, false
		}
		out[k.String()] = it.Value().Interface()
	}
	return out, true
}

// SubMap descends into m one key at a time. At each step the working mapping
// is replaced by the mapping stored under the key; descent stops at the first
// key that is missing or does not hold a mapping, and the mapping reached so
// far is returned.
func SubMap(m map[string]any, keys []string) map[string]any {
	cur := m
	for _, k := range keys {
		next, ok := AsMap(cur[k])
		if !ok {
			break
		}
		cur = next
	}
	return cur
}

// Clone returns a deep copy of maps and slices reachable from v without
// following pointers. Other values (including arrays, which are copied by
// value) are returned unchanged.
func Clone(v any) any {
	if v == nil {
		return nil
	}
	return cloneValue(reflect.ValueOf(v)).Interface()
}

func cloneValue(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		for it := v.MapRange(); it.Next(); {
			out.SetMapIndex(it.Key(), cloneValue(it.Value()))
		}
		return out
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(cloneValue(v.Index(i)))
		}
		return out
	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(cloneValue(v.Elem()))
		return out
	default:
		return v
	}
}

// CombineMaps merges in over a copy of def. Keys of in win on conflict and
// keys only present in def are preserved. The result has the type of in.
//
// ok is false (and in is returned unchanged) when either argument is not a
// map or def's entries cannot be stored in a map of in's type.
func CombineMaps(def, in any) (out any, ok bool) {
	if !IsMapping(def) || !IsMapping(in) {
		return in, false
	}
	dv, iv := reflect.ValueOf(def), reflect.ValueOf(in)
	it := iv.Type()
	if !dv.Type().Key().AssignableTo(it.Key()) || !dv.Type().Elem().AssignableTo(it.Elem()) {
		return in, false
	}
	res := reflect.MakeMapWithSize(it, dv.Len()+iv.Len())
	for r := dv.MapRange(); r.Next(); {
		res.SetMapIndex(r.Key(), cloneValue(r.Value()))
	}
	for r := iv.MapRange(); r.Next(); {
		res.SetMapIndex(r.Key(), r.Value())
	}
	return res.Interface(), true
}

// CombineSequences returns a copy of def followed by the elements of in that
// are not already present. The first occurrence of an element wins. The
// result has the type of in.
//
// ok is false (and in is returned unchanged) when either argument is not a
// sequence or def's elements cannot be stored in a slice of in's type.
func CombineSequences(def, in any) (out any, ok bool) {
	if !IsSequence(def) || !IsSequence(in) {
		return in, false
	}
	dv, iv := reflect.ValueOf(def), reflect.ValueOf(in)
	it := iv.Type()
	if !dv.Type().Elem().AssignableTo(it.Elem()) {
		return in, false
	}
	res := reflect.MakeSlice(it, 0, dv.Len()+iv.Len())
	for i := 0; i < dv.Len(); i++ {
		res = reflect.Append(res, cloneValue(dv.Index(i)))
	}
	for i := 0; i < iv.Len(); i++ {
		x := iv.Index(i)
		if !contains(res, x) {
			res = reflect.Append(res, x)
		}
	}
	return res.Interface(), true
}

func contains(s, x reflect.Value) bool {
	xi := x.Interface()
	for i := 0; i < s.Len(); i++ {
		if reflect.DeepEqual(s.Index(i).Interface(), xi) {
			return true
		}
	}
	return false
}

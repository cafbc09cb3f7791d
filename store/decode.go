package store

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// decodeRows decodes a collection document. A record whose values do not fit T's field types
// (numeric ids, quoted numbers) is coerced field by field instead of failing the whole
// document. lossy is set when a record or a value had to be dropped to make the rest fit.
// err is only returned for a document that is not a JSON array at all.
func decodeRows[T any](raw []byte) (rows []T, lossy bool, err error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, err
	}
	typ := reflect.TypeOf((*T)(nil)).Elem()
	rows = make([]T, 0, len(items))
	for _, item := range items {
		var v T
		if json.Unmarshal(item, &v) == nil {
			rows = append(rows, v)
			continue
		}
		fixed, dropped, ok := coerceRecord(item, typ)
		if !ok || json.Unmarshal(fixed, &v) != nil {
			lossy = true
			continue
		}
		lossy = lossy || dropped
		rows = append(rows, v)
	}
	return rows, lossy, nil
}

// coerceRecord rewrites the values of item's known fields to the kinds typ declares. Values
// that cannot be converted are removed and reported through dropped. Unknown keys are kept.
func coerceRecord(item []byte, typ reflect.Type) (out []byte, dropped, ok bool) {
	if typ.Kind() != reflect.Struct {
		return nil, false, false
	}
	dec := json.NewDecoder(bytes.NewReader(item))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return nil, false, false
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		name := jsonName(f)
		if name == "" {
			continue
		}
		v, present := obj[name]
		if !present {
			continue
		}
		c, fits := coerceValue(v, f.Type)
		if !fits {
			delete(obj, name)
			dropped = true
			continue
		}
		obj[name] = c
	}
	out, err := json.Marshal(obj)
	if err != nil {
		return nil, false, false
	}
	return out, dropped, true
}

func jsonName(f reflect.StructField) string {
	if f.PkgPath != "" {
		return ""
	}
	tag := f.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}

func coerceValue(v any, t reflect.Type) (any, bool) {
	if v == nil || fits(v, t) {
		return v, true
	}
	switch t.Kind() {
	case reflect.Pointer:
		return coerceValue(v, t.Elem())
	case reflect.String:
		switch x := v.(type) {
		case json.Number:
			return x.String(), true
		case bool:
			return strconv.FormatBool(x), true
		}
	case reflect.Bool:
		if s, ok := v.(string); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(s))
			return b, err == nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if f, ok := number(v); ok && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int64(f), true
		}
	case reflect.Float32, reflect.Float64:
		if f, ok := number(v); ok {
			return f, true
		}
	case reflect.Slice:
		items, ok := v.([]any)
		if !ok {
			return nil, false
		}
		out := make([]any, 0, len(items))
		for _, it := range items {
			c, ok := coerceValue(it, t.Elem())
			if !ok {
				return nil, false
			}
			out = append(out, c)
		}
		return out, true
	}
	return nil, false
}

// fits reports whether v already decodes into a value of type t.
func fits(v any, t reflect.Type) bool {
	raw, err := json.Marshal(v)
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, reflect.New(t).Interface()) == nil
}

func number(v any) (float64, bool) {
	var f float64
	var err error
	switch x := v.(type) {
	case json.Number:
		f, err = x.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(x), 64)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

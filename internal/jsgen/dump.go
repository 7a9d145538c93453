package jsgen

import (
	"encoding/json"
	"reflect"

	"github.com/ludo-technologies/jsopen/internal/ast"
)

// DumpJSON renders node as an indented JSON tree, with a "type" field
// naming each node's Go type, for the CLI's --ast debug dump mode. It
// uses reflection rather than a per-type marshaler since internal/ast's
// Expr/Stmt/Pattern/Node fields are interfaces that encoding/json alone
// would otherwise flatten into their concrete struct's fields with no
// indication of which concrete type produced them.
func DumpJSON(node ast.Node) (string, error) {
	v := dumpValue(reflect.ValueOf(node))
	b, err := json.MarshalIndent(v, "", "  ")
	return string(b), err
}

func dumpValue(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return dumpValue(v.Elem())
	case reflect.Struct:
		m := map[string]any{"type": v.Type().Name()}
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			if field.Anonymous && field.Type.Name() == "Position" {
				continue
			}
			m[field.Name] = dumpValue(v.Field(i))
		}
		return m
	case reflect.Slice, reflect.Array:
		if v.IsNil() {
			return []any{}
		}
		out := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = dumpValue(v.Index(i))
		}
		return out
	default:
		return v.Interface()
	}
}

package ast

import (
	"reflect"

	"github.com/goccy/go-yaml"
)

// DumpTree converts program into a generic map/slice/scalar tree (one
// entry per AST node, nested under its field names) suitable for any
// structured marshaler — the shared representation behind DumpYAML and
// the CLI's pretty-printed JSON companion view.
func DumpTree(program *Program) interface{} {
	return dumpValue(reflect.ValueOf(program))
}

// DumpYAML renders program as a structured tree for `es5 run --dump-ast`:
// a JSON-like dump of the parse tree, serialized as YAML rather than
// hand-rolled indented text so the CLI's debugging output stays a real,
// parseable structure.
func DumpYAML(program *Program) (string, error) {
	out, err := yaml.Marshal(DumpTree(program))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// dumpValue walks an arbitrary reflect.Value reachable from an ast.Node,
// turning it into maps/slices/scalars that goccy/go-yaml can marshal
// directly. AST nodes contribute a "node" field naming their concrete
// type alongside their exported fields; the tree has no cycles, so plain
// recursion is safe.
func dumpValue(v reflect.Value) interface{} {
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
		m := make(map[string]interface{}, v.NumField()+1)
		if n, ok := v.Addr().Interface().(Node); ok {
			m["node"] = v.Type().Name()
			m["text"] = n.String()
		}
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() || field.Name == "Token" {
				continue
			}
			m[field.Name] = dumpValue(v.Field(i))
		}
		return m
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return nil
		}
		out := make([]interface{}, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = dumpValue(v.Index(i))
		}
		return out
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Float32, reflect.Float64:
		return v.Float()
	default:
		return nil
	}
}

package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces RFC 8785 canonical JSON for IR records, values,
// and plain trees of string, int, int64, bool, []any and map[string]any.
// It is the serialization used for golden files and content hashes.
//
// Key differences from standard json.Marshal:
// 1. Object keys sorted by UTF-16 code units (not UTF-8 bytes)
// 2. No HTML escaping (< > & are NOT escaped)
// 3. Strings are NFC normalized
// 4. No float numbers (float constants are rendered as strings by Tree)
// 5. No null
func MarshalCanonical(v any) ([]byte, error) {
	return marshalCanonical(v)
}

func marshalCanonical(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is forbidden in canonical JSON")
	case string:
		return marshalCanonicalString(val)
	case int64:
		return []byte(strconv.FormatInt(val, 10)), nil
	case int:
		return []byte(strconv.Itoa(val)), nil
	case bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case []any:
		return marshalCanonicalArray(val)
	case []string:
		arr := make([]any, len(val))
		for i, s := range val {
			arr[i] = s
		}
		return marshalCanonicalArray(arr)
	case map[string]any:
		return marshalCanonicalObject(val)
	case float64, float32:
		return nil, fmt.Errorf("floats are forbidden in canonical JSON: %v", val)
	case Node, AnnoValue:
		tree, err := Tree(val)
		if err != nil {
			return nil, err
		}
		return marshalCanonical(tree)
	default:
		return nil, fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
}

// Tree converts an IR record or value into a plain tree of maps, slices and
// scalars. Every record carries a "node" discriminator and every value a
// "kind" discriminator.
func Tree(v any) (any, error) {
	switch n := v.(type) {
	case *Modifiers:
		if n == nil {
			return nil, fmt.Errorf("nil modifiers")
		}
		return map[string]any{
			"node":      "modifiers",
			"position":  positionTree(n.Position),
			"modifiers": n.Names(),
			"flags":     n.Flags(),
		}, nil
	case *Signature:
		if n == nil {
			return nil, fmt.Errorf("nil signature")
		}
		return map[string]any{
			"node":       "signature",
			"position":   positionTree(n.Position),
			"descriptor": n.Descriptor,
		}, nil
	case *ThrownException:
		if n == nil {
			return nil, fmt.Errorf("nil thrown exception")
		}
		return map[string]any{
			"node":       "throws",
			"position":   positionTree(n.Position),
			"class_name": n.ClassName,
		}, nil
	case *HandleInfo:
		if n == nil {
			return nil, fmt.Errorf("nil handle info")
		}
		return map[string]any{
			"node":       "handle",
			"position":   positionTree(n.Position),
			"kind":       n.Kind,
			"owner":      n.Owner,
			"name":       n.Name,
			"descriptor": n.Descriptor,
		}, nil
	case *Annotation:
		return annotationTree(n)
	case *AnnoArg:
		return argTree(n)
	case *Constant:
		if n == nil {
			return nil, fmt.Errorf("nil constant")
		}
		value, err := valueTree(n.Value)
		if err != nil {
			return nil, err
		}
		out := map[string]any{
			"node":     "constant",
			"position": positionTree(n.Position),
			"value":    value,
		}
		if n.Type.IsValid() {
			out["type"] = n.Type.String()
		}
		return out, nil
	case AnnoValue:
		return valueTree(n)
	default:
		return nil, fmt.Errorf("unsupported IR type: %T", v)
	}
}

func positionTree(p Position) map[string]any {
	return map[string]any{
		"line":         p.Line,
		"column_start": p.ColumnStart,
		"column_end":   p.ColumnEnd,
		"offset_start": p.OffsetStart,
		"offset_end":   p.OffsetEnd,
	}
}

func annotationTree(a *Annotation) (any, error) {
	if a == nil {
		return nil, fmt.Errorf("nil annotation")
	}
	args := make(map[string]any, a.Args.Len())
	for _, name := range a.Args.Keys() {
		arg, _ := a.Args.Get(name)
		tree, err := argTree(arg)
		if err != nil {
			return nil, fmt.Errorf("arg %q: %w", name, err)
		}
		args[name] = tree
	}
	return map[string]any{
		"node":       "annotation",
		"position":   positionTree(a.Position),
		"visible":    a.Visible,
		"descriptor": a.Descriptor,
		"args":       args,
	}, nil
}

func argTree(a *AnnoArg) (any, error) {
	if a == nil {
		return nil, fmt.Errorf("nil annotation argument")
	}
	value, err := valueTree(a.Value)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"node":     "arg",
		"position": positionTree(a.Position),
		"type":     a.Type.String(),
		"value":    value,
	}, nil
}

func valueTree(v AnnoValue) (any, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("nil value")
	case Int:
		return map[string]any{"kind": "int", "value": int64(val)}, nil
	case Long:
		return map[string]any{"kind": "long", "value": int64(val)}, nil
	case Float:
		return map[string]any{"kind": "float", "value": FormatFloat(float64(val), 32)}, nil
	case Double:
		return map[string]any{"kind": "double", "value": FormatFloat(float64(val), 64)}, nil
	case String:
		return map[string]any{"kind": "string", "value": string(val)}, nil
	case Char:
		return map[string]any{"kind": "char", "value": string(rune(val))}, nil
	case Bool:
		return map[string]any{"kind": "boolean", "value": bool(val)}, nil
	case Null:
		return map[string]any{"kind": "null"}, nil
	case TypeValue:
		return map[string]any{
			"kind":  "type",
			"sort":  val.Type.Sort().String(),
			"value": val.Type.Descriptor(),
		}, nil
	case Handle:
		return map[string]any{
			"kind":       "handle",
			"tag":        int(val.Kind),
			"owner":      val.Owner,
			"name":       val.Name,
			"descriptor": val.Descriptor,
			"interface":  val.Interface,
		}, nil
	case Enum:
		return map[string]any{
			"kind":       "enum",
			"descriptor": val.Descriptor,
			"constant":   val.Constant,
		}, nil
	case AnnoList:
		items := make([]any, len(val))
		for i, item := range val {
			tree, err := argTree(item)
			if err != nil {
				return nil, fmt.Errorf("item[%d]: %w", i, err)
			}
			items[i] = tree
		}
		return map[string]any{"kind": "list", "items": items}, nil
	case *Annotation:
		return annotationTree(val)
	default:
		return nil, fmt.Errorf("unsupported value type: %T", v)
	}
}

// FormatFloat renders a float constant the way assembler source writes it:
// NaN, Infinity and -Infinity for the IEEE specials, shortest round-trip
// digits otherwise.
func FormatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, bitSize)
}

// marshalCanonicalString produces canonical JSON string with NFC normalization.
// RFC 8785 compliance:
// - No HTML escaping (<, >, & are NOT escaped)
// - U+2028 (LINE SEPARATOR) and U+2029 (PARAGRAPH SEPARATOR) are NOT escaped
// - Only control characters (U+0000-U+001F), backslash, and quote are escaped
func marshalCanonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder adds trailing newline, remove it
	result := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	// Go's json.Encoder escapes U+2028/U+2029 for JavaScript; RFC 8785 keeps them literal.
	return unescapeLineSeparators(result), nil
}

// unescapeLineSeparators turns \u2028 and \u2029 escapes back into literal
// characters. Escape sequences are consumed as units, so an escaped
// backslash followed by the text u2028 is left alone.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		if data[i+1] == 'u' && i+6 <= len(data) {
			switch string(data[i+2 : i+6]) {
			case "2028":
				out = append(out, "\u2028"...)
				i += 5
				continue
			case "2029":
				out = append(out, "\u2029"...)
				i += 5
				continue
			}
		}
		out = append(out, data[i], data[i+1])
		i++
	}
	return out
}

// marshalCanonicalArray marshals an array to canonical JSON.
func marshalCanonicalArray(arr []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')

	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		elemBytes, err := marshalCanonical(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(elemBytes)
	}

	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// marshalCanonicalObject marshals an object to canonical JSON with RFC 8785 key ordering.
func marshalCanonicalObject(obj map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, k := range sortedKeys(obj) {
		if i > 0 {
			buf.WriteByte(',')
		}

		keyBytes, err := marshalCanonicalString(k)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := marshalCanonical(obj[k])
		if err != nil {
			return nil, fmt.Errorf("value for key %q: %w", k, err)
		}
		buf.Write(valBytes)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// sortedKeys returns keys in RFC 8785 canonical order (UTF-16 code units).
// Go's sort.Strings uses UTF-8 which produces a different order.
func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// compareKeysRFC8785 compares strings by UTF-16 code units.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	return slices.Compare(a16, b16)
}

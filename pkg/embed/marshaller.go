package gl

import (
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/funvibe/gl/internal/evaluator"
)

var (
	objectType = reflect.TypeOf((*evaluator.Object)(nil)).Elem()
	errorType  = reflect.TypeOf((*error)(nil)).Elem()
)

// Marshaller handles conversion between Go and gl values.
type Marshaller struct{}

func NewMarshaller() *Marshaller {
	return &Marshaller{}
}

// ToValue converts a Go value to a gl Object.
func (m *Marshaller) ToValue(val interface{}) (evaluator.Object, error) {
	if val == nil {
		return evaluator.NULL, nil
	}

	// Check if already an Object
	if obj, ok := val.(evaluator.Object); ok {
		return obj, nil
	}

	v := reflect.ValueOf(val)
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if !v.IsValid() {
		return evaluator.NULL, nil
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &evaluator.Integer{Value: v.Int()}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := v.Uint()
		if u > math.MaxInt64 {
			return &evaluator.Float{Value: float64(u)}, nil
		}
		return &evaluator.Integer{Value: int64(u)}, nil
	case reflect.Float32, reflect.Float64:
		return &evaluator.Float{Value: v.Float()}, nil
	case reflect.Bool:
		if v.Bool() {
			return evaluator.TRUE, nil
		}
		return evaluator.FALSE, nil
	case reflect.String:
		return &evaluator.String{Value: v.String()}, nil
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return evaluator.NULL, nil
		}
		return m.sliceToArray(v)
	case reflect.Map:
		if v.IsNil() {
			return evaluator.NULL, nil
		}
		return m.mapToHash(v)
	case reflect.Func:
		if v.IsNil() {
			return evaluator.NULL, nil
		}
		return hostFunction("host function", v), nil
	case reflect.Ptr:
		if v.IsNil() {
			return evaluator.NULL, nil
		}
		// Pointer -> HostObject (reference)
		return &evaluator.HostObject{Value: val}, nil
	default:
		return &evaluator.HostObject{Value: val}, nil
	}
}

// hostFunction wraps a Go func as a builtin; the call goes through the
// evaluator's host call handler so arguments are converted per parameter.
func hostFunction(name string, fn reflect.Value) *evaluator.Builtin {
	return &evaluator.Builtin{
		Name: name,
		Fn: func(e *evaluator.Evaluator, _ evaluator.Object, args ...evaluator.Object) evaluator.Object {
			if e.HostCallHandler == nil {
				return evaluator.NewHostError("host calls are not configured")
			}
			res, err := e.HostCallHandler(fn, args)
			if err != nil {
				return evaluator.NewHostError("%s: %v", name, err)
			}
			return res
		},
	}
}

// FromValue converts a gl Object to a Go value.
// targetType is optional; if provided, tries to convert to that type.
func (m *Marshaller) FromValue(obj evaluator.Object, targetType reflect.Type) (interface{}, error) {
	if obj == nil {
		return nil, nil
	}

	// If target type is evaluator.Object, return as is
	if targetType == objectType {
		return obj, nil
	}

	switch o := obj.(type) {
	case *evaluator.Integer:
		if targetType != nil && isNumericKind(targetType.Kind()) {
			return reflect.ValueOf(o.Value).Convert(targetType).Interface(), nil
		}
		return int(o.Value), nil // Default to int
	case *evaluator.Float:
		if targetType != nil && isNumericKind(targetType.Kind()) {
			if isIntKind(targetType.Kind()) && o.Value != math.Trunc(o.Value) {
				return nil, fmt.Errorf("cannot convert %s to %s", o.Inspect(), targetType)
			}
			return reflect.ValueOf(o.Value).Convert(targetType).Interface(), nil
		}
		return o.Value, nil
	case *evaluator.Boolean:
		return o.Value, nil
	case *evaluator.String:
		return o.Value, nil
	case *evaluator.Array:
		return m.arrayToSlice(o, targetType)
	case *evaluator.Hash:
		if targetType != nil {
			t := targetType
			if t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Struct {
				return m.hashToStruct(o, t.Elem(), true)
			}
			if t.Kind() == reflect.Struct {
				return m.hashToStruct(o, t, false)
			}
		}
		return m.hashToMap(o, targetType)
	case *evaluator.HostObject:
		return o.Value, nil
	case *evaluator.Null:
		return nil, nil
	case *evaluator.Error:
		return nil, o.Diagnostic("")
	case evaluator.Callable:
		// Functions stay gl values; they can be passed back into Call.
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported type for conversion: %s", o.Type())
	}
}

// FromValueOf converts obj to a reflect.Value assignable to t.
func (m *Marshaller) FromValueOf(obj evaluator.Object, t reflect.Type) (reflect.Value, error) {
	val, err := m.FromValue(obj, t)
	if err != nil {
		return reflect.Value{}, err
	}
	if val == nil {
		if t == nil {
			return reflect.Value{}, fmt.Errorf("cannot convert null without a target type")
		}
		return reflect.Zero(t), nil
	}
	rv := reflect.ValueOf(val)
	if t == nil || rv.Type().AssignableTo(t) {
		return rv, nil
	}
	// Go allows int -> string conversion; gl does not.
	if t.Kind() == reflect.String && rv.Kind() != reflect.String {
		return reflect.Value{}, fmt.Errorf("cannot convert %s to %s", evaluator.TypeName(obj), t)
	}
	if rv.Type().ConvertibleTo(t) {
		return rv.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot convert %s to %s", evaluator.TypeName(obj), t)
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isNumericKind(k reflect.Kind) bool {
	return isIntKind(k) || k == reflect.Float32 || k == reflect.Float64
}

func (m *Marshaller) sliceToArray(v reflect.Value) (*evaluator.Array, error) {
	elements := make([]evaluator.Object, v.Len())
	for i := 0; i < v.Len(); i++ {
		val, err := m.ToValue(v.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		elements[i] = val
	}
	return &evaluator.Array{Elements: elements}, nil
}

// mapToHash converts a string-keyed map; keys are inserted sorted so the
// resulting object iterates deterministically.
func (m *Marshaller) mapToHash(v reflect.Value) (*evaluator.Hash, error) {
	if v.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("map key type %s is not string", v.Type().Key())
	}
	keys := make([]string, 0, v.Len())
	for _, k := range v.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)

	result := evaluator.NewHash()
	for _, k := range keys {
		val, err := m.ToValue(v.MapIndex(reflect.ValueOf(k).Convert(v.Type().Key())).Interface())
		if err != nil {
			return nil, fmt.Errorf("map value %q: %w", k, err)
		}
		result.Set(k, val)
	}
	return result, nil
}

func (m *Marshaller) arrayToSlice(a *evaluator.Array, targetType reflect.Type) (interface{}, error) {
	// If targetType is nil, default to []interface{}
	elemType := reflect.TypeOf((*interface{})(nil)).Elem()
	if targetType != nil && targetType.Kind() == reflect.Slice {
		elemType = targetType.Elem()
	}

	slice := reflect.MakeSlice(reflect.SliceOf(elemType), 0, len(a.Elements))
	for i, el := range a.Elements {
		rv, err := m.FromValueOf(el, elemType)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		slice = reflect.Append(slice, rv)
	}
	return slice.Interface(), nil
}

func (m *Marshaller) hashToMap(h *evaluator.Hash, targetType reflect.Type) (interface{}, error) {
	// If target type is a concrete map type, convert to that
	if targetType != nil && targetType.Kind() == reflect.Map && targetType.Key().Kind() == reflect.String {
		result := reflect.MakeMapWithSize(targetType, h.Len())
		for _, k := range h.Keys() {
			v, _ := h.Get(k)
			vv, err := m.FromValueOf(v, targetType.Elem())
			if err != nil {
				return nil, fmt.Errorf("map value %q: %w", k, err)
			}
			result.SetMapIndex(reflect.ValueOf(k).Convert(targetType.Key()), vv)
		}
		return result.Interface(), nil
	}

	// Default: map[string]interface{}
	result := make(map[string]interface{}, h.Len())
	for _, k := range h.Keys() {
		v, _ := h.Get(k)
		val, err := m.FromValue(v, nil)
		if err != nil {
			return nil, fmt.Errorf("map value %q: %w", k, err)
		}
		result[k] = val
	}
	return result, nil
}

// hashToStruct fills the exported fields of a new t whose names match keys
// of h. Keys with no matching field are ignored.
func (m *Marshaller) hashToStruct(h *evaluator.Hash, t reflect.Type, pointer bool) (interface{}, error) {
	ptr := reflect.New(t)
	s := ptr.Elem()
	for _, k := range h.Keys() {
		sf, ok := t.FieldByName(k)
		if !ok || !sf.IsExported() {
			continue
		}
		v, _ := h.Get(k)
		fv, err := m.FromValueOf(v, sf.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}
		s.FieldByIndex(sf.Index).Set(fv)
	}
	if pointer {
		return ptr.Interface(), nil
	}
	return s.Interface(), nil
}

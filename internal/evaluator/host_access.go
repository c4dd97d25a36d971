package evaluator

import (
	"reflect"
)

// AccessHostMember accesses a field or method on a HostObject using reflection
func (e *Evaluator) AccessHostMember(hostObj *HostObject, member string) Object {
	val := reflect.ValueOf(hostObj.Value)
	if !val.IsValid() {
		return typeError("cannot read property %q of empty host object", member)
	}

	// Dereference interface if needed to get to struct/value
	if val.Kind() == reflect.Interface {
		val = val.Elem()
	}

	// 1. Check for Method
	method := val.MethodByName(member)
	if method.IsValid() {
		return &Builtin{
			Name: member,
			Fn: func(ev *Evaluator, _ Object, args ...Object) Object {
				if ev.HostCallHandler == nil {
					return NewHostError("host calls are not configured")
				}
				res, err := ev.HostCallHandler(method, args)
				if err != nil {
					return NewHostError("%s: %v", member, err)
				}
				return res
			},
		}
	}

	// 2. Check for Field (if struct)
	field, ok := hostField(val, member)
	if !ok {
		return typeError("member %q not found on %s", member, hostObj.Inspect())
	}
	if e.HostToValueHandler != nil {
		res, err := e.HostToValueHandler(field.Interface())
		if err != nil {
			return NewHostError("converting %s: %v", member, err)
		}
		return res
	}
	return &HostObject{Value: field.Interface()}
}

// SetHostMember assigns an exported field of a struct reached through a
// pointer.
func (e *Evaluator) SetHostMember(hostObj *HostObject, member string, value Object) Object {
	val := reflect.ValueOf(hostObj.Value)
	if val.Kind() != reflect.Ptr {
		return typeError("cannot set property %q: host value %T is not a pointer", member, hostObj.Value)
	}
	field, ok := hostField(val, member)
	if !ok {
		return typeError("member %q not found on %s", member, hostObj.Inspect())
	}
	if !field.CanSet() {
		return typeError("cannot set property %q of %s", member, hostObj.Inspect())
	}
	if e.HostFromValueHandler == nil {
		return NewHostError("host conversion is not configured")
	}
	converted, err := e.HostFromValueHandler(value, field.Type())
	if err != nil {
		return NewHostError("setting %s: %v", member, err)
	}
	field.Set(converted)
	return NULL
}

// hostField finds an exported struct field, dereferencing one pointer.
func hostField(val reflect.Value, member string) (reflect.Value, bool) {
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return reflect.Value{}, false
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	sf, ok := val.Type().FieldByName(member)
	if !ok || !sf.IsExported() {
		return reflect.Value{}, false
	}
	return val.FieldByIndex(sf.Index), true
}

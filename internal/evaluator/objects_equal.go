package evaluator

import "reflect"

// objectsEqual implements == without type coercion. Numbers compare by
// value across Integer and Float, strings and booleans by value, null
// equals only null, and containers, functions and host objects compare by
// identity.
func objectsEqual(a, b Object) bool {
	switch av := a.(type) {
	case *Integer, *Float:
		af, _ := toFloat(a)
		if ai, ok := av.(*Integer); ok {
			if bi, ok := b.(*Integer); ok {
				return ai.Value == bi.Value
			}
		}
		bf, ok := toFloat(b)
		return ok && af == bf
	case *String:
		bv, ok := b.(*String)
		return ok && av.Value == bv.Value
	case *Boolean:
		bv, ok := b.(*Boolean)
		return ok && av.Value == bv.Value
	case *Null:
		_, ok := b.(*Null)
		return ok
	case *BoundMethod:
		bv, ok := b.(*BoundMethod)
		return ok && av.Receiver == bv.Receiver && av.Function == bv.Function
	case *HostObject:
		bv, ok := b.(*HostObject)
		if !ok {
			return false
		}
		if av == bv {
			return true
		}
		t := reflect.TypeOf(av.Value)
		return t != nil && t.Comparable() && av.Value == bv.Value
	}
	return a == b
}

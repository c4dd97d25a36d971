package evaluator

type ObjectType string

const (
	INTEGER_OBJ      = "INTEGER"
	FLOAT_OBJ        = "FLOAT"
	STRING_OBJ       = "STRING"
	BOOLEAN_OBJ      = "BOOLEAN"
	NULL_OBJ         = "NULL"
	ARRAY_OBJ        = "ARRAY"
	HASH_OBJ         = "OBJECT"
	FUNCTION_OBJ     = "FUNCTION"
	BUILTIN_OBJ      = "BUILTIN"
	BOUND_METHOD_OBJ = "BOUND_METHOD"
	HOST_OBJ         = "HOST"
	ERROR_OBJ        = "ERROR"
)

// Object is a runtime value.
type Object interface {
	Type() ObjectType
	Inspect() string
}

// Callable is implemented by every value that can appear in call position.
type Callable interface {
	Object
	callable()
}

func (f *Function) callable()     {}
func (b *Builtin) callable()      {}
func (bm *BoundMethod) callable() {}

// TypeName is the user-facing name of a value's kind, used in error messages.
func TypeName(obj Object) string {
	switch obj.(type) {
	case *Integer, *Float:
		return "number"
	case *String:
		return "string"
	case *Boolean:
		return "boolean"
	case *Null:
		return "null"
	case *Array:
		return "array"
	case *Hash:
		return "object"
	case *Function, *Builtin, *BoundMethod:
		return "function"
	case *HostObject:
		return "host object"
	}
	return string(obj.Type())
}

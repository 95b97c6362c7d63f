package atom

// AttributeKind tags which field of a CustomAttributeValue is populated.
type AttributeKind int

const (
	AttrString AttributeKind = iota
	AttrInt
	AttrFloat
	AttrBool
)

// CustomAttributeValue is a tagged union over the four value types an atom's
// custom_attributes map may hold: string, signed 64-bit integer, double, and
// boolean. Any other Go type is rejected at the builder boundary.
type CustomAttributeValue struct {
	Kind AttributeKind
	S    string
	I    int64
	F    float64
	B    bool
}

func StringAttr(s string) CustomAttributeValue { return CustomAttributeValue{Kind: AttrString, S: s} }
func IntAttr(i int64) CustomAttributeValue     { return CustomAttributeValue{Kind: AttrInt, I: i} }
func FloatAttr(f float64) CustomAttributeValue { return CustomAttributeValue{Kind: AttrFloat, F: f} }
func BoolAttr(b bool) CustomAttributeValue     { return CustomAttributeValue{Kind: AttrBool, B: b} }

// CustomAttributeFromAny converts a Go value of one of the four permitted
// dynamic types into a CustomAttributeValue, rejecting anything else.
func CustomAttributeFromAny(v any) (CustomAttributeValue, error) {
	switch x := v.(type) {
	case string:
		return StringAttr(x), nil
	case int64:
		return IntAttr(x), nil
	case int:
		return IntAttr(int64(x)), nil
	case float64:
		return FloatAttr(x), nil
	case bool:
		return BoolAttr(x), nil
	default:
		return CustomAttributeValue{}, ErrInvalidAtom{
			Kind:    "InvalidAttributeType",
			Message: "custom attribute value must be string, int64, float64, or bool",
		}
	}
}

func cloneAttributes(attrs map[string]CustomAttributeValue) map[string]CustomAttributeValue {
	if attrs == nil {
		return nil
	}
	out := make(map[string]CustomAttributeValue, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

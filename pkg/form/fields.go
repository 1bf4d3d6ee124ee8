package form

// Kind selects the normalization applied to a field.
type Kind int

const (
	// KindText is trimmed text, blank becomes null.
	KindText Kind = iota
	// KindInt is a strict integer, anything else becomes null.
	KindInt
	// KindNumber is any number rounded to an integer, anything else becomes null.
	KindNumber
	// KindDate is trimmed YYYY-MM-DD text. Format is checked by the caller.
	KindDate
)

// Field describes one submitted field. Rule is a validator tag applied to the
// normalized non-null value.
type Field struct {
	Name string
	Kind Kind
	Rule string
}

// Values holds normalized fields.
type Values struct {
	text map[string]*string
	ints map[string]*int64
}

// Normalize applies each field's normalization to in. Fields not listed are
// ignored.
func Normalize(in Input, fields []Field) Values {
	vs := Values{
		text: make(map[string]*string, len(fields)),
		ints: make(map[string]*int64, len(fields)),
	}
	for _, f := range fields {
		raw := in.Get(f.Name)
		switch f.Kind {
		case KindInt:
			vs.ints[f.Name] = IntOrNull(raw)
		case KindNumber:
			vs.ints[f.Name] = NumberOrNull(raw)
		default:
			vs.text[f.Name] = NullIfEmpty(raw)
		}
	}
	return vs
}

// Text returns a normalized text or date field.
func (vs Values) Text(name string) *string {
	return vs.text[name]
}

// Int returns a normalized integer or number field.
func (vs Values) Int(name string) *int64 {
	return vs.ints[name]
}

// Present reports whether the normalized field is non-null.
func (vs Values) Present(name string) bool {
	return vs.text[name] != nil || vs.ints[name] != nil
}

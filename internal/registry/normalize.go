package registry

import (
	"fmt"
	"slices"

	"github.com/iancoleman/strcase"
)

// Normalize returns a canonical copy of ts. It never removes or reorders records, so every index
// held by callers, including those of synthetic types, still resolves to the same type.
//
//   - Option<T> variants become KindOption with Elem set to T.
//   - Named fields are converted to lowerCamelCase. Two fields of one record that end up with the
//     same name are an error.
func Normalize(ts []Type) ([]Type, error) {
	out := make([]Type, len(ts))
	for i, t := range ts {
		nt, err := normalizeType(t)
		if err != nil {
			return nil, fmt.Errorf("type %d: %w", i, err)
		}
		out[i] = nt
	}

	return out, nil
}

func normalizeType(t Type) (Type, error) {
	var err error
	switch t.Kind {
	case KindComposite:
		t.Fields, err = normalizeFields(t.Fields)
		if err != nil {
			return Type{}, err
		}
	case KindVariant:
		if elem, ok := optionElem(t); ok {
			return Type{
				Kind: KindOption,
				Path: t.Path,
				Docs: t.Docs,
				Elem: elem,
			}, nil
		}

		variants := make([]Variant, len(t.Variants))
		for i, v := range t.Variants {
			v.Fields, err = normalizeFields(v.Fields)
			if err != nil {
				return Type{}, fmt.Errorf("variant %s: %w", v.Name, err)
			}
			variants[i] = v
		}
		t.Variants = variants
	default:
	}

	return t, nil
}

func optionElem(t Type) (int, bool) {
	if len(t.Path) != 1 || t.Path[0] != "Option" || len(t.Variants) != 2 {
		return 0, false
	}

	none, ok := t.Variant(0)
	if !ok || none.Name != "None" || len(none.Fields) != 0 {
		return 0, false
	}

	some, ok := t.Variant(1)
	if !ok || some.Name != "Some" || len(some.Fields) != 1 {
		return 0, false
	}

	return some.Fields[0].Type, true
}

func normalizeFields(fields []Field) ([]Field, error) {
	if !HasNamedFields(fields) {
		return fields, nil
	}

	out := slices.Clone(fields)
	seen := make(map[string]string, len(out))
	for i := range out {
		name := FieldName(out[i].Name)
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("fields %q and %q both map to %q", prev, out[i].Name, name)
		}
		seen[name] = out[i].Name
		out[i].Name = name
	}

	return out, nil
}

// FieldName converts a (label-normalized) field name into the key used in decoded values.
func FieldName(name string) string {
	return strcase.ToLowerCamel(name)
}

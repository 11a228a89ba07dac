package inkabi

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/smartcontractkit/inkabi/internal/utils/safecast"
	"github.com/smartcontractkit/inkabi/types"
)

const (
	schemaV3URL = "ink-v3.schema.json"
	schemaV4URL = "ink-v4.schema.json"
)

var (
	//go:embed schemas/ink-v3.schema.json
	schemaV3 string

	//go:embed schemas/ink-v4.schema.json
	schemaV4 string
)

type metadataSchemas struct {
	v3 *jsonschema.Schema
	v4 *jsonschema.Schema
}

var loadSchemas = sync.OnceValues(func() (*metadataSchemas, error) {
	v3, err := compileSchema(schemaV3URL, schemaV3)
	if err != nil {
		return nil, err
	}
	v4, err := compileSchema(schemaV4URL, schemaV4)
	if err != nil {
		return nil, err
	}

	return &metadataSchemas{v3: v3, v4: v4}, nil
})

func compileSchema(url, src string) (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft7
	c.AssertFormat = true
	c.Formats["uint8"] = uintFormat(math.MaxUint8)
	c.Formats["uint32"] = uintFormat(math.MaxUint32)
	c.Formats["uint64"] = uintFormat(math.MaxUint64)

	if err := c.AddResource(url, strings.NewReader(src)); err != nil {
		return nil, fmt.Errorf("failed to load schema %s: %w", url, err)
	}

	schema, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", url, err)
	}

	return schema, nil
}

// uintFormat accepts numbers and decimal strings holding an integer in [0, limit]. Other JSON
// types are left to the "type" keyword.
func uintFormat(limit uint64) func(any) bool {
	return func(v any) bool {
		var raw string
		switch val := v.(type) {
		case json.Number:
			raw = val.String()
		case string:
			raw = val
		case float64:
			if val < 0 || val != math.Trunc(val) {
				return false
			}
			raw = strconv.FormatFloat(val, 'f', -1, 64)
		default:
			return true
		}

		_, err := types.ParseUint([]byte(raw), limit)

		return err == nil
	}
}

// LoadMetadata reads and validates a metadata file.
func LoadMetadata(path string) (types.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata file: %w", err)
	}

	return ParseMetadata(data)
}

// ParseMetadata validates raw metadata JSON.
func ParseMetadata(data []byte) (types.Project, error) {
	doc, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}

	return validateDocument(doc, data)
}

// ValidateMetadata checks an already decoded metadata document and returns it as a typed
// project.
//
// Documents declaring "version" 4 or 5 are checked against the V4 schema, documents without a
// version against the V3 schema. Any other version is unsupported.
func ValidateMetadata(raw any) (types.Project, error) {
	switch v := raw.(type) {
	case []byte:
		return ParseMetadata(v)
	case json.RawMessage:
		return ParseMetadata(v)
	}

	// round trip so the schema validator only sees JSON types
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}
	doc, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}

	return validateDocument(doc, data)
}

// ValidateProject runs the structural checks on a typed project: required labels, type ids
// matching their position, type references within bounds and no type that contains itself
// without a length prefix or tag in between.
func ValidateProject(project types.Project) error {
	var violations []string

	validate := validator.New()
	if err := validate.Struct(project); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			return fmt.Errorf("failed to validate metadata: %w", err)
		}
		for _, fe := range errs {
			violations = append(violations, fmt.Sprintf("metadata %s failed on the '%s' tag", fe.Namespace(), fe.Tag()))
		}
	}

	violations = append(violations, checkReferences(project)...)
	violations = append(violations, checkCycles(project.PortableTypes())...)
	if len(violations) > 0 {
		return NewInvalidMetadataError(violations)
	}

	return nil
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode metadata JSON: %w", err)
	}

	return doc, nil
}

func validateDocument(doc any, data []byte) (types.Project, error) {
	schemas, err := loadSchemas()
	if err != nil {
		return nil, err
	}

	obj, _ := doc.(map[string]any)
	if version, ok := obj["version"]; ok {
		v, err := types.ParseUint([]byte(fmt.Sprint(version)), math.MaxUint8)
		if err != nil || (v != uint64(types.MetadataV4) && v != uint64(types.MetadataV5)) {
			return nil, NewUnsupportedMetadataError(fmt.Sprintf("unsupported metadata version: %v", version))
		}

		if err := validateSchema(schemas.v4, doc); err != nil {
			return nil, err
		}

		project := &types.ProjectV4{}
		if err := json.Unmarshal(data, project); err != nil {
			return nil, NewInvalidMetadataError([]string{err.Error()})
		}
		project.Version = types.MetadataVersion(v)

		if err := ValidateProject(project); err != nil {
			return nil, err
		}

		return project, nil
	}

	if err := validateSchema(schemas.v3, doc); err != nil {
		return nil, err
	}
	if _, ok := obj["V3"]; !ok {
		return nil, NewUnsupportedMetadataError("metadata below V3 is not supported")
	}

	var wrapper struct {
		V3 *types.ProjectV3 `json:"V3"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, NewInvalidMetadataError([]string{err.Error()})
	}

	if err := ValidateProject(wrapper.V3); err != nil {
		return nil, err
	}

	return wrapper.V3, nil
}

func validateSchema(schema *jsonschema.Schema, doc any) error {
	err := schema.Validate(doc)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("failed to validate metadata: %w", err)
	}

	return NewInvalidMetadataError(leafViolations(ve, nil))
}

// leafViolations flattens the cause tree, keeping only the errors that have no causes.
func leafViolations(ve *jsonschema.ValidationError, out []string) []string {
	if len(ve.Causes) == 0 {
		msg := fmt.Sprintf("metadata%s %s", ve.InstanceLocation, ve.Message)
		if !slices.Contains(out, msg) {
			out = append(out, msg)
		}

		return out
	}

	for _, cause := range ve.Causes {
		out = leafViolations(cause, out)
	}

	return out
}

func checkReferences(project types.Project) []string {
	portable := project.PortableTypes()
	n := uint64(len(portable))

	var violations []string
	check := func(where string, id types.TypeID) {
		if uint64(id) >= n {
			violations = append(violations, fmt.Sprintf("metadata%s references unknown type %d", where, id))
		}
	}

	for i, pt := range portable {
		where := fmt.Sprintf("/types/%d", i)
		if uint64(pt.ID) != uint64(i) {
			violations = append(violations, fmt.Sprintf("metadata%s/id must equal its position %d, got %d", where, i, pt.ID))
		}

		def := pt.Type.Def
		switch {
		case def.Compact != nil:
			check(where, def.Compact.Type)
		case def.Sequence != nil:
			check(where, def.Sequence.Type)
		case def.Array != nil:
			check(where, def.Array.Type)
		case def.BitSequence != nil:
			check(where, def.BitSequence.BitStoreType)
			check(where, def.BitSequence.BitOrderType)
		case def.Tuple != nil:
			for _, id := range *def.Tuple {
				check(where, id)
			}
		case def.Composite != nil:
			for _, f := range def.Composite.Fields {
				check(where, f.Type)
			}
		case def.Variant != nil:
			for _, v := range def.Variant.Variants {
				for _, f := range v.Fields {
					check(where, f.Type)
				}
			}
		}
	}

	spec := project.ContractSpec()
	for i, c := range spec.Constructors {
		where := fmt.Sprintf("/spec/constructors/%d", i)
		for _, arg := range c.Args {
			check(where, arg.Type.Type)
		}
		if c.ReturnType != nil {
			check(where, c.ReturnType.Type)
		}
	}
	for i, m := range spec.Messages {
		where := fmt.Sprintf("/spec/messages/%d", i)
		for _, arg := range m.Args {
			check(where, arg.Type.Type)
		}
		if m.ReturnType != nil {
			check(where, m.ReturnType.Type)
		}
	}
	for i, ev := range spec.Events {
		where := fmt.Sprintf("/spec/events/%d", i)
		for _, arg := range ev.Args {
			check(where, arg.Type.Type)
		}
	}

	return violations
}

// inlineRefs returns the types read in place as part of def, with no length or tag byte first.
func inlineRefs(def types.TypeDef) []types.TypeID {
	switch {
	case def.Array != nil && def.Array.Len > 0:
		return []types.TypeID{def.Array.Type}
	case def.Tuple != nil:
		return *def.Tuple
	case def.Composite != nil:
		ids := make([]types.TypeID, len(def.Composite.Fields))
		for i, f := range def.Composite.Fields {
			ids[i] = f.Type
		}

		return ids
	default:
		return nil
	}
}

// checkCycles reports types that reach themselves through inline references only. Such a type
// has no finite encoding.
func checkCycles(portable []types.PortableType) []string {
	const (
		unvisited = iota
		visiting
		done
	)

	state := make([]int, len(portable))
	var violations []string

	var visit func(i int)
	visit = func(i int) {
		state[i] = visiting
		for _, id := range inlineRefs(portable[i].Type.Def) {
			next, err := safecast.Uint64ToInt(uint64(id))
			if err != nil || next >= len(portable) {
				continue
			}
			switch state[next] {
			case visiting:
				violations = append(violations, fmt.Sprintf("metadata/types/%d contains itself through type %d", next, i))
			case unvisited:
				visit(next)
			}
		}
		state[i] = done
	}

	for i := range portable {
		if state[i] == unvisited {
			visit(i)
		}
	}

	return violations
}

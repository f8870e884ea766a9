package schema

import (
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	"github.com/quickwritereader/xpacket/types"
	"github.com/quickwritereader/xpacket/utils"
	"gopkg.in/yaml.v3"
)

// FieldJSON is the declarative form of a Field.
type FieldJSON struct {
	Name   string `json:"name" yaml:"name"`
	Kind   string `json:"kind" yaml:"kind"`
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Length int    `json:"length,omitempty" yaml:"length,omitempty"`
	Codec  string `json:"codec,omitempty" yaml:"codec,omitempty"`
}

// RecordJSON is the declarative form of a Record, as read from JSON or
// YAML schema files.
type RecordJSON struct {
	Name      string      `json:"name" yaml:"name"`
	Qualified bool        `json:"qualified,omitempty" yaml:"qualified,omitempty"`
	Fields    []FieldJSON `json:"fields" yaml:"fields"`
}

// Registry of custom field codecs.
// Key: codec name (case-sensitive), Value: hooks.
var (
	codecTypesLock sync.RWMutex
	codecTypes     = map[string]Hooks{}
)

// RegisterCodecType registers the hooks of a custom field codec so schema
// descriptions can refer to it by name.
//
// Usage:
//
//	schema.RegisterCodecType("timestamp", schema.Hooks{
//	    Encode: encodeTimestamp,
//	    Decode: decodeTimestamp,
//	    MaxSize: 4,
//	})
//
// Notes:
//   - Codec names are case-sensitive.
//   - Panics if the name is empty, already registered, or the hooks are incomplete.
//   - Use UnregisterCodecType to remove a codec.
func RegisterCodecType(name string, hooks Hooks) {
	if name == "" {
		panic("cannot register empty codec name")
	}
	if hooks.Encode == nil || hooks.Decode == nil {
		panic("codec " + name + " needs both encode and decode hooks")
	}
	codecTypesLock.Lock()
	defer codecTypesLock.Unlock()
	if _, exists := codecTypes[name]; exists {
		panic("codec type already registered: " + name)
	}
	codecTypes[name] = hooks
}

// UnregisterCodecType removes a previously registered codec. Unknown names
// are ignored.
func UnregisterCodecType(name string) {
	codecTypesLock.Lock()
	delete(codecTypes, name)
	codecTypesLock.Unlock()
}

func LookupCodecType(name string) (Hooks, bool) {
	codecTypesLock.RLock()
	defer codecTypesLock.RUnlock()
	hooks, ok := codecTypes[name]
	return hooks, ok
}

// RegisteredCodecTypes lists the registered codec names in sorted order.
func RegisteredCodecTypes() []string {
	codecTypesLock.RLock()
	defer codecTypesLock.RUnlock()
	return utils.SortKeys(codecTypes)
}

// BuildField converts a FieldJSON into a Field. Shape rules are left to
// Validate; only names that cannot be mapped at all fail here.
func BuildField(js FieldJSON) (Field, error) {
	kind, err := types.ParseKind(js.Kind)
	if err != nil {
		return Field{}, NewSchemaError(ErrUnsupportedType, "", js.Name, -1, err)
	}
	width, err := types.ParseWidth(js.Type)
	if err != nil {
		return Field{}, NewSchemaError(ErrUnsupportedType, "", js.Name, -1, err)
	}
	if kind == types.KindCustom {
		if js.Codec == "" {
			return Field{}, NewSchemaError(ErrMissingHooks, "", js.Name, -1,
				fmt.Errorf("custom field needs a codec name"))
		}
		f, err := CustomCodec(js.Name, js.Codec)
		if err != nil {
			return Field{}, err
		}
		f.Elem = width
		f.Length = js.Length
		return f, nil
	}
	return Field{Kind: kind, Elem: width, Name: js.Name, Length: js.Length}, nil
}

// BuildRecord constructs and validates a Record from its description.
//
// Usage:
//
//	js := schema.RecordJSON{
//	    Name: "msg",
//	    Fields: []schema.FieldJSON{
//	        {Name: "seqn", Kind: "scalar", Type: "uint16"},
//	        {Name: "arr", Kind: "array", Type: "uint8", Length: 8},
//	        {Name: "str", Kind: "string", Length: 32},
//	    },
//	}
//	rec, err := schema.BuildRecord(js)
func BuildRecord(js RecordJSON) (*Record, error) {
	fields := make([]Field, len(js.Fields))
	for i, fj := range js.Fields {
		f, err := BuildField(fj)
		if err != nil {
			if se, ok := err.(*SchemaError); ok {
				se.Record = js.Name
				se.Position = i
			}
			return nil, err
		}
		fields[i] = f
	}
	return NewRecord(js.Name, fields, WithQualifiedNames(js.Qualified))
}

// ParseJSON reads a RecordJSON document and builds the Record.
func ParseJSON(data []byte) (*Record, error) {
	var js RecordJSON
	if err := json.Unmarshal(data, &js); err != nil {
		return nil, NewSchemaError(ErrInvalidDescription, "", "", -1, err)
	}
	return BuildRecord(js)
}

// ParseYAML reads the YAML form of a RecordJSON document.
func ParseYAML(data []byte) (*Record, error) {
	var js RecordJSON
	if err := yaml.Unmarshal(data, &js); err != nil {
		return nil, NewSchemaError(ErrInvalidDescription, "", "", -1, err)
	}
	return BuildRecord(js)
}

// Describe returns the declarative form of the record. Custom fields built
// from inline hooks have no codec name and cannot be rebuilt from it.
func (r *Record) Describe() RecordJSON {
	js := RecordJSON{
		Name:      r.name,
		Qualified: r.qualified,
		Fields:    make([]FieldJSON, 0, r.fields.len()),
	}
	for _, f := range r.fields.all() {
		fj := FieldJSON{Name: f.Name, Kind: f.Kind.String(), Length: f.Length, Codec: f.Codec}
		if f.Elem != types.WidthNone {
			fj.Type = f.Elem.String()
		}
		js.Fields = append(js.Fields, fj)
	}
	return js
}

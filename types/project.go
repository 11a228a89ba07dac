package types //nolint:revive,nolintlint // allow pkg name 'types'

import "fmt"

// MetadataVersion is the ink! metadata schema generation.
type MetadataVersion int

const (
	MetadataV3 MetadataVersion = 3
	MetadataV4 MetadataVersion = 4
	MetadataV5 MetadataVersion = 5
)

func (v MetadataVersion) String() string {
	return fmt.Sprintf("V%d", int(v))
}

// Project is validated ink! metadata. It is either a *ProjectV3 or a *ProjectV4; V4 also covers
// V5 documents, which share its schema.
type Project interface {
	// MetadataVersion reports the schema generation of the document.
	MetadataVersion() MetadataVersion
	// ContractSpec returns the constructors, messages and events of the contract.
	ContractSpec() *ContractSpec
	// PortableTypes returns the type list referenced by the contract spec.
	PortableTypes() []PortableType

	isProject()
}

// ProjectV3 is the payload found under the "V3" key of a V3 document.
type ProjectV3 struct {
	Spec  ContractSpec   `json:"spec"`
	Types []PortableType `json:"types" validate:"dive"`
}

var _ Project = (*ProjectV3)(nil)

func (p *ProjectV3) MetadataVersion() MetadataVersion { return MetadataV3 }
func (p *ProjectV3) ContractSpec() *ContractSpec      { return &p.Spec }
func (p *ProjectV3) PortableTypes() []PortableType    { return p.Types }
func (p *ProjectV3) isProject()                       {}

// ProjectV4 is a V4 or V5 document. Version holds the declared generation.
type ProjectV4 struct {
	Version MetadataVersion `json:"-"`
	Spec    ContractSpec    `json:"spec"`
	Types   []PortableType  `json:"types" validate:"dive"`
}

var _ Project = (*ProjectV4)(nil)

func (p *ProjectV4) MetadataVersion() MetadataVersion { return p.Version }
func (p *ProjectV4) ContractSpec() *ContractSpec      { return &p.Spec }
func (p *ProjectV4) PortableTypes() []PortableType    { return p.Types }
func (p *ProjectV4) isProject()                       {}

// ContractSpec is the callable and observable surface of a contract.
type ContractSpec struct {
	Constructors []ConstructorSpec `json:"constructors" validate:"dive"`
	Messages     []MessageSpec     `json:"messages" validate:"dive"`
	Events       []EventSpec       `json:"events" validate:"dive"`
	Docs         []string          `json:"docs,omitempty"`
}

// TypeSpec references a type together with the name it had in the contract source.
type TypeSpec struct {
	Type        TypeID   `json:"type"`
	DisplayName []string `json:"displayName,omitempty"`
}

// ArgSpec is a constructor or message argument.
type ArgSpec struct {
	Label string   `json:"label" validate:"required"`
	Type  TypeSpec `json:"type"`
	Docs  []string `json:"docs,omitempty"`
}

type ConstructorSpec struct {
	Label      string    `json:"label" validate:"required"`
	Selector   Selector  `json:"selector"`
	Payable    bool      `json:"payable"`
	Default    bool      `json:"default,omitempty"`
	Args       []ArgSpec `json:"args" validate:"dive"`
	ReturnType *TypeSpec `json:"returnType,omitempty"`
	Docs       []string  `json:"docs,omitempty"`
}

type MessageSpec struct {
	Label      string    `json:"label" validate:"required"`
	Selector   Selector  `json:"selector"`
	Mutates    bool      `json:"mutates"`
	Payable    bool      `json:"payable"`
	Default    bool      `json:"default,omitempty"`
	Args       []ArgSpec `json:"args" validate:"dive"`
	ReturnType *TypeSpec `json:"returnType,omitempty"`
	Docs       []string  `json:"docs,omitempty"`
}

// EventSpec describes an emitted event. SignatureTopic and ModulePath only appear in V5
// metadata; anonymous V5 events have a nil SignatureTopic.
type EventSpec struct {
	Label          string           `json:"label" validate:"required"`
	Args           []EventParamSpec `json:"args" validate:"dive"`
	Docs           []string         `json:"docs,omitempty"`
	ModulePath     string           `json:"module_path,omitempty"`
	SignatureTopic *string          `json:"signature_topic,omitempty"`
}

type EventParamSpec struct {
	Label   string   `json:"label" validate:"required"`
	Indexed bool     `json:"indexed"`
	Type    TypeSpec `json:"type"`
	Docs    []string `json:"docs,omitempty"`
}

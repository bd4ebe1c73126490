package schema

// Type names the JSON shape a node accepts.
type Type string

const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	// TypeAny accepts any value. It must be spelled out by the caller; the
	// validator never treats a missing type as "anything goes".
	TypeAny Type = "any"
)

// Node is a recursive structural description of expected data. It is pure
// description: the validator never mutates or retains it.
type Node struct {
	Type Type `json:"type" yaml:"type"`

	// Object constraints.
	Properties map[string]*Node `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required   []string         `json:"required,omitempty" yaml:"required,omitempty"`

	// Array constraints. Items applies to every element.
	Items *Node `json:"items,omitempty" yaml:"items,omitempty"`

	// String constraints.
	Pattern   string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MinLength *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Enum      []string `json:"enum,omitempty" yaml:"enum,omitempty"`

	// Number constraints.
	Minimum *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
}

// IntPtr returns a pointer to an int value.
func IntPtr(i int) *int {
	return &i
}

// Float64Ptr returns a pointer to a float64 value.
func Float64Ptr(f float64) *float64 {
	return &f
}

// Result reports the outcome of one validation call. It is produced fresh on
// every call and never cached.
type Result struct {
	Valid  bool
	Errors []string
}

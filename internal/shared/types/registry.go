package types

// Category represents service categories
type Category string

const (
	CategoryFilesystem Category = "filesystem"
)

// OperationName identifies one operation in the catalog
type OperationName string

const (
	OpFindByExtension OperationName = "find_by_extension"
	OpLargestFiles    OperationName = "largest_files"
	OpCreateFolder    OperationName = "create_folder"
	OpListDirectory   OperationName = "list_directory"
	OpMoveFiles       OperationName = "move_files"
)

// String returns the wire name of the operation
func (n OperationName) String() string {
	return string(n)
}

// ParamType is the declared type of a tool parameter
type ParamType string

const (
	// ParamString is free text
	ParamString ParamType = "string"
	// ParamInteger accepts numbers and numeric strings
	ParamInteger ParamType = "integer"
	// ParamPath is a filesystem path without a fallback
	ParamPath ParamType = "path"
	// ParamDirectory is a path that falls back to the caller's default directory
	ParamDirectory ParamType = "directory"
)

// IsPath reports whether values of this type name filesystem locations
func (t ParamType) IsPath() bool {
	return t == ParamPath || t == ParamDirectory
}

// SchemaType maps the parameter type onto a JSON schema primitive
func (t ParamType) SchemaType() string {
	if t == ParamInteger {
		return "integer"
	}
	return "string"
}

// Service represents a service definition
type Service struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Capabilities []string `json:"capabilities"`
	Tools        []Tool   `json:"tools"`
}

// Tool represents a service tool
type Tool struct {
	ID          OperationName `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Parameters  []Parameter   `json:"parameters"`
	Returns     string        `json:"returns"`
	Keywords    []string      `json:"keywords,omitempty"`
}

// Parameter looks up a declared parameter by name
func (t Tool) Parameter(name string) (Parameter, bool) {
	for _, p := range t.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// Parameter represents a tool parameter
type Parameter struct {
	Name        string      `json:"name"`
	Type        ParamType   `json:"type"`
	Description string      `json:"description"`
	Required    bool        `json:"required"`
	Default     interface{} `json:"default,omitempty"`
}

// Context provides execution context for operations
type Context struct {
	Directory string `json:"directory,omitempty"`
}

// Result represents the uniform operation envelope
type Result struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   *string     `json:"error,omitempty"`
}

// Succeeded builds a successful envelope
func Succeeded(data interface{}, message string) *Result {
	return &Result{Success: true, Data: data, Message: message}
}

// Reported builds an envelope for an expected negative outcome.
// The operation ran, so data and message are kept and no error is set.
func Reported(data interface{}, message string) *Result {
	return &Result{Success: false, Data: data, Message: message}
}

// Failed builds a failure envelope
func Failed(err error) *Result {
	msg := err.Error()
	return &Result{Success: false, Error: &msg}
}

package annotations

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/orbit-lang/orbit/internal/ast"
)

// yamlEntry mirrors Entry in a form that round-trips through YAML (string
// names instead of the Context/Category bitmask/enum types).
type yamlEntry struct {
	Name        string          `yaml:"name"`
	Category    string          `yaml:"category"`
	Contexts    []string        `yaml:"contexts"`
	MultiValued bool            `yaml:"multi_valued"`
	Params      []yamlParamSpec `yaml:"params"`
}

type yamlParamSpec struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	Required bool   `yaml:"required"`
}

type yamlFile struct {
	Annotations []yamlEntry `yaml:"annotations"`
	Conflicts   [][2]string `yaml:"conflicts"`
}

// LoadFile merges extra annotation schemas and conflicts from a YAML file
// (config.AnalyzerConfig.AnnotationRegistryPath) into r.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading annotation registry %s: %w", path, err)
	}
	var file yamlFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing annotation registry %s: %w", path, err)
	}
	for _, ye := range file.Annotations {
		entry, err := ye.toEntry()
		if err != nil {
			return fmt.Errorf("annotation %q: %w", ye.Name, err)
		}
		r.Register(entry)
	}
	for _, pair := range file.Conflicts {
		r.Conflict(pair[0], pair[1])
	}
	return nil
}

func (ye yamlEntry) toEntry() (*Entry, error) {
	category, err := parseCategory(ye.Category)
	if err != nil {
		return nil, err
	}
	var contexts Context
	for _, c := range ye.Contexts {
		bit, err := parseContext(c)
		if err != nil {
			return nil, err
		}
		contexts |= bit
	}
	params := make([]ParamSchema, len(ye.Params))
	for i, p := range ye.Params {
		kind, err := parseParamKind(p.Kind)
		if err != nil {
			return nil, err
		}
		params[i] = ParamSchema{Name: p.Name, Kind: kind, Required: p.Required}
	}
	return &Entry{
		Name:        ye.Name,
		Category:    category,
		Contexts:    contexts,
		Params:      params,
		MultiValued: ye.MultiValued,
	}, nil
}

func parseCategory(s string) (Category, error) {
	switch s {
	case "", "general":
		return CategoryGeneral, nil
	case "concurrency":
		return CategoryConcurrency, nil
	case "ffi":
		return CategoryFFI, nil
	case "optimization":
		return CategoryOptimization, nil
	case "documentation":
		return CategoryDocumentation, nil
	default:
		return 0, fmt.Errorf("unknown category %q", s)
	}
}

func parseContext(s string) (Context, error) {
	switch s {
	case "function":
		return ContextFunction, nil
	case "struct":
		return ContextStruct, nil
	case "statement":
		return ContextStatement, nil
	case "expression":
		return ContextExpression, nil
	case "parameter":
		return ContextParameter, nil
	case "return_type":
		return ContextReturnType, nil
	default:
		return 0, fmt.Errorf("unknown context %q", s)
	}
}

func parseParamKind(s string) (ast.AnnotationParamKind, error) {
	switch s {
	case "string":
		return ast.ParamString, nil
	case "ident":
		return ast.ParamIdent, nil
	case "int":
		return ast.ParamInt, nil
	case "bool":
		return ast.ParamBool, nil
	case "float":
		return ast.ParamFloat, nil
	default:
		return 0, fmt.Errorf("unknown param kind %q", s)
	}
}

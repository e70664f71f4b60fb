package fields

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Overrides alias adicionales por flujo y campo, leídos de YAML:
//
//	stock_in:
//	  serial_number: ["S/N เครื่อง", "Serial No."]
//	sales_orders:
//	  status: ["Order Status"]
type Overrides map[Stream]map[Field][]string

// ParseOverrides decodifica un documento YAML de alias.
func ParseOverrides(data []byte) (Overrides, error) {
	var raw map[string]map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("fields: overrides yaml: %w", err)
	}
	out := make(Overrides, len(raw))
	for stream, byField := range raw {
		m := make(map[Field][]string, len(byField))
		for f, aliases := range byField {
			m[Field(f)] = aliases
		}
		out[Stream(stream)] = m
	}
	return out, nil
}

// LoadSchemas resolvers con los alias del archivo YAML en path; path vacío usa los incorporados.
func LoadSchemas(path string) (Schemas, error) {
	if path == "" {
		return DefaultSchemas(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Schemas{}, fmt.Errorf("fields: leer overrides: %w", err)
	}
	o, err := ParseOverrides(data)
	if err != nil {
		return Schemas{}, err
	}
	return WithOverrides(o), nil
}

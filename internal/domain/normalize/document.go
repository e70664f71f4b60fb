package normalize

import (
	"encoding/json"
	"strings"

	"github.com/goccy/go-yaml"
)

// Document decodifica una lista de objetos serializada dentro de una celda.
// Orden de intentos: deshacer el escape de exportación CSV ("" → ", comillas envolventes) y
// parsear JSON; JSON sobre el texto crudo; YAML sobre el texto crudo (acepta claves sin comillas).
// ok=false si ningún intento produce una lista; nunca entra en pánico.
func Document(s string) ([]map[string]any, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return []map[string]any{}, false
	}
	if docs, ok := decodeJSON(unescape(raw)); ok {
		return docs, true
	}
	if docs, ok := decodeJSON(raw); ok {
		return docs, true
	}
	if docs, ok := decodeYAML(raw); ok {
		return docs, true
	}
	return []map[string]any{}, false
}

func unescape(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	return strings.ReplaceAll(s, `""`, `"`)
}

func decodeJSON(s string) ([]map[string]any, bool) {
	var docs []map[string]any
	if err := json.Unmarshal([]byte(s), &docs); err != nil {
		return nil, false
	}
	return compact(docs), true
}

func decodeYAML(s string) (docs []map[string]any, ok bool) {
	defer func() {
		if recover() != nil {
			docs, ok = nil, false
		}
	}()
	if !strings.HasPrefix(s, "[") && !strings.HasPrefix(s, "-") {
		return nil, false
	}
	var raw []map[string]any
	if err := yaml.Unmarshal([]byte(s), &raw); err != nil {
		return nil, false
	}
	return compact(raw), true
}

func compact(docs []map[string]any) []map[string]any {
	out := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}

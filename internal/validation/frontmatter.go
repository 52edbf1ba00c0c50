package validation

// FrontMatterSchema is the JSON Schema applied to document frontmatter before
// a page enters the registry. Unknown keys are allowed so themes can stash
// custom values; the fields the site machinery depends on are typed.
func FrontMatterSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"slug": map[string]any{
				"type":    "string",
				"pattern": "^[a-z0-9]+(?:-[a-z0-9]+)*$",
			},
			"description": map[string]any{
				"type": "string",
			},
			"category": map[string]any{
				"type": "string",
			},
			"weight": map[string]any{
				"type":    "integer",
				"minimum": 0,
			},
			"tags": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"draft": map[string]any{
				"type": "boolean",
			},
		},
		"required":             []any{"title"},
		"additionalProperties": true,
	}
}

// ValidateFrontMatter checks the raw frontmatter map against FrontMatterSchema.
func ValidateFrontMatter(raw map[string]any) error {
	return ValidatePayload(FrontMatterSchema(), normalizeForSchema(raw))
}

// normalizeForSchema coerces YAML-decoded values into the shapes the JSON
// Schema validator expects (e.g. int -> json number semantics are fine, but
// time.Time and nested non-JSON values must not trip the compiler).
func normalizeForSchema(raw map[string]any) map[string]any {
	if raw == nil {
		return nil
	}
	encodable := make(map[string]any, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case int:
			encodable[key] = v
		case interface{ Format(string) string }:
			encodable[key] = v.Format("2006-01-02T15:04:05Z07:00")
		case []string:
			items := make([]any, len(v))
			for i, s := range v {
				items[i] = s
			}
			encodable[key] = items
		default:
			encodable[key] = value
		}
	}
	return encodable
}

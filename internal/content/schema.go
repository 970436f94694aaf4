package content

import (
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// payloadSchemaJSON describes the LLM payload loosely: it only pins down the
// shapes the decoder depends on, so a wrong-typed field can be dropped
// without rejecting the rest.
const payloadSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "$defs": {
    "text": {"type": ["string", "null"]},
    "featureItems": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "icon": {"$ref": "#/$defs/text"},
          "title": {"$ref": "#/$defs/text"},
          "description": {"$ref": "#/$defs/text"}
        }
      }
    },
    "statItems": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "value": {"type": ["string", "number"]},
          "label": {"$ref": "#/$defs/text"}
        }
      }
    },
    "triple": {
      "type": "object",
      "properties": {
        "title": {"$ref": "#/$defs/text"},
        "subtitle": {"$ref": "#/$defs/text"},
        "button": {"$ref": "#/$defs/text"}
      }
    }
  },
  "properties": {
    "businessName": {"$ref": "#/$defs/text"},
    "businessType": {"$ref": "#/$defs/text"},
    "tagline": {"$ref": "#/$defs/text"},
    "description": {"$ref": "#/$defs/text"},
    "hero": {
      "type": "object",
      "properties": {
        "badge": {"$ref": "#/$defs/text"},
        "title": {"$ref": "#/$defs/text"},
        "titleAccent": {"$ref": "#/$defs/text"},
        "subtitle": {"$ref": "#/$defs/text"},
        "cta": {
          "oneOf": [
            {"type": ["string", "null"]},
            {
              "type": "object",
              "properties": {
                "primary": {"$ref": "#/$defs/text"},
                "secondary": {"$ref": "#/$defs/text"}
              }
            }
          ]
        }
      }
    },
    "features": {
      "type": "object",
      "properties": {
        "title": {"$ref": "#/$defs/text"},
        "subtitle": {"$ref": "#/$defs/text"},
        "items": {"$ref": "#/$defs/featureItems"}
      }
    },
    "services": {
      "type": "object",
      "properties": {
        "title": {"$ref": "#/$defs/text"},
        "items": {"$ref": "#/$defs/featureItems"}
      }
    },
    "stats": {
      "oneOf": [
        {"$ref": "#/$defs/statItems"},
        {
          "type": "object",
          "properties": {
            "title": {"$ref": "#/$defs/text"},
            "items": {"$ref": "#/$defs/statItems"}
          }
        }
      ]
    },
    "testimonials": {
      "type": "object",
      "properties": {
        "title": {"$ref": "#/$defs/text"},
        "items": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "quote": {"$ref": "#/$defs/text"},
              "author": {"$ref": "#/$defs/text"},
              "role": {"$ref": "#/$defs/text"},
              "company": {"$ref": "#/$defs/text"}
            }
          }
        }
      }
    },
    "contact": {"$ref": "#/$defs/triple"},
    "cta": {"$ref": "#/$defs/triple"},
    "sections": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type"],
        "properties": {
          "type": {"type": "string"},
          "title": {"$ref": "#/$defs/text"},
          "subtitle": {"$ref": "#/$defs/text"},
          "button": {"$ref": "#/$defs/text"}
        }
      }
    },
    "colors": {
      "type": "object",
      "properties": {
        "primary": {"$ref": "#/$defs/text"},
        "accent": {"$ref": "#/$defs/text"},
        "secondary": {"$ref": "#/$defs/text"}
      }
    },
    "seo": {
      "type": "object",
      "properties": {
        "keywords": {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`

var payloadSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("payload.json", strings.NewReader(payloadSchemaJSON)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("payload.json")
}

// schemaIssue is one leaf failure of a schema validation.
type schemaIssue struct {
	Location string
	Message  string
}

func collectIssues(err *jsonschema.ValidationError) []schemaIssue {
	var issues []schemaIssue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, schemaIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}

// pointerSegments splits a JSON pointer such as "/hero/cta" into unescaped
// segments. The root has none.
func pointerSegments(location string) []string {
	location = strings.TrimPrefix(location, "#")
	location = strings.TrimPrefix(location, "/")
	if location == "" {
		return nil
	}
	segs := strings.Split(location, "/")
	for i, seg := range segs {
		segs[i] = strings.ReplaceAll(strings.ReplaceAll(seg, "~1", "/"), "~0", "~")
	}
	return segs
}

// topLevelKey returns the first segment of a JSON pointer, or "" for the root.
func topLevelKey(location string) string {
	if segs := pointerSegments(location); len(segs) > 0 {
		return segs[0]
	}
	return ""
}

// deepestLocations returns the failing locations that have no failing
// location beneath them, each with its first message. A oneOf reports the
// branch it did not take at the parent; the deeper issue is the real one.
func deepestLocations(issues []schemaIssue) map[string]string {
	messages := map[string]string{}
	for _, issue := range issues {
		loc := strings.TrimPrefix(issue.Location, "#")
		if loc == "" || loc == "/" {
			continue
		}
		if _, seen := messages[loc]; !seen {
			messages[loc] = issue.Message
		}
	}
	for loc := range messages {
		for other := range messages {
			if other != loc && strings.HasPrefix(other, loc+"/") {
				delete(messages, loc)
				break
			}
		}
	}
	return messages
}

// prunedItem marks an array element removed by removeAt until sweep drops it.
type prunedItem struct{}

// removeAt deletes the value at location from doc. Array elements are
// marked and later removed by sweep so sibling indices stay valid.
func removeAt(doc map[string]any, location string) bool {
	segs := pointerSegments(location)
	if len(segs) == 0 {
		return false
	}
	var cur any = doc
	for i, seg := range segs {
		last := i == len(segs)-1
		switch node := cur.(type) {
		case map[string]any:
			if _, ok := node[seg]; !ok {
				return false
			}
			if last {
				delete(node, seg)
				return true
			}
			cur = node[seg]
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return false
			}
			if last {
				node[idx] = prunedItem{}
				return true
			}
			cur = node[idx]
		default:
			return false
		}
	}
	return false
}

// sweep drops the array elements marked by removeAt.
func sweep(v any) any {
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			node[k] = sweep(child)
		}
		return node
	case []any:
		kept := node[:0]
		for _, child := range node {
			if _, gone := child.(prunedItem); gone {
				continue
			}
			kept = append(kept, sweep(child))
		}
		return kept
	default:
		return v
	}
}

package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"Showcase/entity"

	"gopkg.in/yaml.v3"
)

// Parse decodes a catalog document. source only selects the format: a
// .yaml/.yml suffix means YAML, anything else is sniffed from the content.
//
// Two shapes are accepted: an object mapping key to record, kept in document
// order, and a list of records keyed by their lowercased id.
func Parse(source string, data []byte) (*Catalog, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Empty(), nil
	}
	if isYAML(source, trimmed) {
		return parseYAML(trimmed)
	}
	return parseJSON(trimmed)
}

func isYAML(source string, data []byte) bool {
	ext := strings.ToLower(path.Ext(strings.SplitN(source, "?", 2)[0]))
	if ext == ".yaml" || ext == ".yml" {
		return true
	}
	return data[0] != '{' && data[0] != '[' && !bytes.Equal(data, []byte("null"))
}

func parseJSON(data []byte) (*Catalog, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	c := Empty()
	switch tok {
	case nil:
		return c, nil
	case json.Delim('{'):
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("read product key: %w", err)
			}
			key, _ := keyTok.(string)
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return nil, fmt.Errorf("read product %q: %w", key, err)
			}
			if p, ok := decodeJSONRecord(raw); ok {
				c.add(key, p)
			}
		}
	case json.Delim('['):
		for dec.More() {
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return nil, fmt.Errorf("read product: %w", err)
			}
			p, ok := decodeJSONRecord(raw)
			if !ok {
				continue
			}
			c.addListed(p)
		}
	default:
		return nil, errors.New("catalog must be an object or a list")
	}
	return c, nil
}

// decodeJSONRecord keeps whatever fields decoded; a record of the wrong type
// becomes a zero product. Only null is dropped.
func decodeJSONRecord(raw json.RawMessage) (entity.Product, bool) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return entity.Product{}, false
	}
	var p entity.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			p = entity.Product{}
		}
	}
	return p, true
}

func (c *Catalog) addListed(p entity.Product) {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		c.skipped++
		return
	}
	c.add(strings.ToLower(id), p)
}

func parseYAML(data []byte) (*Catalog, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	c := Empty()
	if len(root.Content) == 0 {
		return c, nil
	}
	doc := root.Content[0]
	switch doc.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(doc.Content); i += 2 {
			key, value := doc.Content[i].Value, doc.Content[i+1]
			if p, ok := decodeYAMLRecord(value); ok {
				c.add(key, p)
			}
		}
	case yaml.SequenceNode:
		for _, item := range doc.Content {
			if p, ok := decodeYAMLRecord(item); ok {
				c.addListed(p)
			}
		}
	case yaml.ScalarNode:
		if doc.Tag == "!!null" {
			return c, nil
		}
		return nil, errors.New("catalog must be a mapping or a sequence")
	default:
		return nil, errors.New("catalog must be a mapping or a sequence")
	}
	return c, nil
}

func decodeYAMLRecord(node *yaml.Node) (entity.Product, bool) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return entity.Product{}, false
	}
	var p entity.Product
	if node.Kind != yaml.MappingNode {
		return p, true
	}
	// a type error still leaves the fields that did decode
	_ = node.Decode(&p)
	return p, true
}

package thingmodel

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/ticos/tmgen/internal/codegen/generr"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Load accepts either a path to a .json file or a literal JSON document.
func Load(src string) (*Model, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, generr.SchemaMissing("no thing model supplied")
	}
	if strings.HasSuffix(strings.ToLower(src), ".json") {
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, generr.IO("read thing model "+src, err)
		}
		return Parse(data)
	}
	return Parse([]byte(src))
}

// LoadReader parses a thing model read from r.
func LoadReader(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, generr.IO("read thing model", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, generr.SchemaMissing("no thing model supplied")
	}
	return Parse(data)
}

// rawItem mirrors one entry of the "contents" array before validation.
type rawItem map[string]json.RawMessage

// Parse validates a thing-model document and returns its capability items.
func Parse(data []byte) (*Model, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, generr.SchemaMissing("empty thing model document")
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, generr.SchemaParse("malformed JSON", err)
	}

	var top []json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, generr.SchemaMissing("document is not an array")
	}
	if len(top) == 0 {
		return nil, generr.SchemaMissing("document array is empty")
	}

	var first map[string]json.RawMessage
	if err := json.Unmarshal(top[0], &first); err != nil || first == nil {
		return nil, generr.SchemaMissing("first document element is not an object")
	}
	rawContents, ok := first["contents"]
	if !ok {
		return nil, generr.SchemaMissing(`no "contents" in first document element`)
	}
	var contents []json.RawMessage
	if err := json.Unmarshal(rawContents, &contents); err != nil || contents == nil {
		return nil, generr.SchemaMissing(`"contents" is not an array`)
	}
	if len(contents) == 0 {
		return nil, generr.SchemaMissing(`"contents" is empty`)
	}

	sum := blake2b.Sum256(data)
	m := &Model{Digest: hex.EncodeToString(sum[:])}
	seen := make(map[Kind]map[string]int)

	for i, entry := range contents {
		var raw rawItem
		if err := json.Unmarshal(entry, &raw); err != nil || raw == nil {
			return nil, generr.SchemaParse(fmt.Sprintf("contents[%d]: want object, got %s", i, jsonKind(entry)), nil)
		}
		tags, err := typeTags(raw["@type"])
		if err != nil {
			return nil, generr.SchemaParse(fmt.Sprintf("contents[%d]: field \"@type\"", i), err)
		}
		kind, ok := kindOf(tags)
		if !ok {
			m.Skipped = append(m.Skipped, tags[0])
			continue
		}

		name, err := stringField(raw, "name")
		if err != nil {
			return nil, generr.SchemaParse(fmt.Sprintf("contents[%d]: field \"name\"", i), err)
		}
		if !identRe.MatchString(name) {
			return nil, generr.SchemaParse(fmt.Sprintf("contents[%d]: name %q is not a valid identifier", i, name), nil)
		}
		if name == SentinelName {
			return nil, generr.DuplicateName(fmt.Sprintf("%s %q at contents[%d] collides with the %s enum terminator", kind, name, i, kind))
		}

		schema, err := schemaOf(raw["schema"])
		if err != nil {
			return nil, generr.SchemaParse(fmt.Sprintf("contents[%d]: field \"schema\"", i), err)
		}

		if seen[kind] == nil {
			seen[kind] = make(map[string]int)
		}
		if prev, dup := seen[kind][name]; dup {
			return nil, generr.DuplicateName(fmt.Sprintf("%s %q declared at contents[%d] and contents[%d]", kind, name, prev, i))
		}
		seen[kind][name] = i

		m.Items = append(m.Items, Item{Kind: kind, Name: name, Schema: schema})
	}
	return m, nil
}

// typeTags decodes "@type", which DTDL allows to be a string or an array of
// strings (kind plus semantic types).
func typeTags(raw json.RawMessage) ([]string, error) {
	if raw == nil {
		return nil, fmt.Errorf("missing")
	}
	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		if one == "" {
			return nil, fmt.Errorf("empty")
		}
		return []string{one}, nil
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err != nil {
		return nil, fmt.Errorf("want string or array of strings, got %s", jsonKind(raw))
	}
	if len(many) == 0 {
		return nil, fmt.Errorf("empty")
	}
	return many, nil
}

func kindOf(tags []string) (Kind, bool) {
	for _, t := range tags {
		if k, ok := ParseKind(t); ok {
			return k, true
		}
	}
	return "", false
}

func stringField(raw rawItem, key string) (string, error) {
	v, ok := raw[key]
	if !ok {
		return "", fmt.Errorf("missing")
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", fmt.Errorf("want string, got %s", jsonKind(v))
	}
	if s == "" {
		return "", fmt.Errorf("empty")
	}
	return s, nil
}

// schemaOf accepts a bare type tag or an object carrying the tag under "@type".
func schemaOf(raw json.RawMessage) (SchemaType, error) {
	if raw == nil {
		return "", fmt.Errorf("missing")
	}
	var tag string
	if err := json.Unmarshal(raw, &tag); err == nil {
		if tag == "" {
			return "", fmt.Errorf("empty")
		}
		return SchemaType(strings.ToLower(tag)), nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return "", fmt.Errorf("want string or object, got %s", jsonKind(raw))
	}
	var nested string
	if err := json.Unmarshal(obj["@type"], &nested); err != nil || nested == "" {
		return Object, nil
	}
	return SchemaType(strings.ToLower(nested)), nil
}

func jsonKind(raw json.RawMessage) string {
	b := bytes.TrimSpace(raw)
	if len(b) == 0 {
		return "nothing"
	}
	switch b[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Document kinds, named after their schema file.
const (
	KindTests        = "tests"
	KindSubmissions  = "submissions"
	KindUniversities = "universities"
	KindPreferences  = "preferences"
)

// schemaCache caches compiled schemas by kind.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateDocument checks raw JSON against the schema for kind.
func validateDocument(kind string, raw []byte) error {
	compiled, err := compiledSchema(kind)
	if err != nil {
		return err
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("%s document: %w", kind, err)
	}
	return nil
}

func compiledSchema(kind string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(kind); ok {
		return cached.(*jsonschema.Schema), nil
	}

	b, err := schemaFS.ReadFile("schemas/" + kind + ".json")
	if err != nil {
		return nil, fmt.Errorf("unknown document kind %q: %w", kind, err)
	}
	var def any
	if err := json.Unmarshal(b, &def); err != nil {
		return nil, fmt.Errorf("parse %s schema: %w", kind, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://giasu/%s.json", kind)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add %s schema: %w", kind, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", kind, err)
	}

	schemaCache.Store(kind, compiled)
	return compiled, nil
}

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrInvalidRunConfig is returned when a run configuration has no usable task_id.
var ErrInvalidRunConfig = errors.New("invalid run config")

// Param is one key/value pair of a run configuration.
type Param struct {
	Key   string
	Value string
}

// RunConfig is the task description of one run.
type RunConfig struct {
	// TaskID identifies the run. It names the report file.
	TaskID string

	// Params holds every top-level key of the configuration in file order,
	// task_id included.
	Params []Param
}

// NewRunConfig builds a RunConfig in code. A task_id param is prepended
// unless params already holds one.
func NewRunConfig(taskID string, params ...Param) *RunConfig {
	rc := &RunConfig{TaskID: taskID}
	hasID := false
	for _, p := range params {
		if p.Key == "task_id" {
			hasID = true
			break
		}
	}
	if !hasID {
		rc.Params = append(rc.Params, Param{Key: "task_id", Value: taskID})
	}
	rc.Params = append(rc.Params, params...)
	return rc
}

// runConfigSchema requires an object with a scalar task_id.
var runConfigSchema = mustCompileSchema(`{
	"type": "object",
	"required": ["task_id"],
	"properties": {
		"task_id": {
			"type": ["string", "integer"],
			"pattern": "^[A-Za-z0-9_.-]+$"
		}
	}
}`)

// LoadRunConfig reads a JSON run configuration from path.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run config %s: %w", path, err)
	}
	return ParseRunConfig(data)
}

// ParseRunConfig decodes and validates a JSON run configuration.
//
// The task_id must be a string or integer made of letters, digits, '_', '.'
// and '-', so that it is safe to use in a file name.
func ParseRunConfig(data []byte) (*RunConfig, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse run config: %w", err)
	}
	if err := runConfigSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRunConfig, err)
	}

	params, err := orderedParams(data)
	if err != nil {
		return nil, fmt.Errorf("parse run config: %w", err)
	}

	rc := &RunConfig{Params: params}
	for _, p := range params {
		if p.Key == "task_id" {
			rc.TaskID = p.Value
		}
	}
	if rc.TaskID == "" {
		return nil, ErrInvalidRunConfig
	}
	return rc, nil
}

// orderedParams lists the top-level keys of a JSON object in file order.
// String values are unquoted, everything else is kept as compact JSON.
func orderedParams(data []byte) ([]Param, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("top level is not an object")
	}

	var params []Param
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("value of %q: %w", key, err)
		}
		params = append(params, Param{Key: key, Value: rawString(raw)})
	}
	return params, nil
}

func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func mustCompileSchema(raw string) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("run_config.json", doc); err != nil {
		panic(err)
	}
	return c.MustCompile("run_config.json")
}

package repository

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const bankSchemaURL = "schema://question-bank.json"

// bankSchemaJSON describes the persisted bank: three arrays of
// {sentence, answer, options[]} objects.
const bankSchemaJSON = `{
	"type": "object",
	"required": ["beginner", "intermediate", "advanced"],
	"properties": {
		"beginner":     {"$ref": "#/$defs/level"},
		"intermediate": {"$ref": "#/$defs/level"},
		"advanced":     {"$ref": "#/$defs/level"}
	},
	"$defs": {
		"level": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["sentence", "answer", "options"],
				"properties": {
					"sentence": {"type": "string"},
					"answer":   {"type": "string"},
					"options":  {"type": "array", "items": {"type": "string"}}
				}
			}
		}
	}
}`

var (
	bankSchemaOnce sync.Once
	bankSchema     *jsonschema.Schema
	bankSchemaErr  error
)

// compiledBankSchema compiles the bank schema once per process.
func compiledBankSchema() (*jsonschema.Schema, error) {
	bankSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(bankSchemaJSON))
		if err != nil {
			bankSchemaErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(bankSchemaURL, doc); err != nil {
			bankSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		bankSchema, bankSchemaErr = c.Compile(bankSchemaURL)
	})
	return bankSchema, bankSchemaErr
}

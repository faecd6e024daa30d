package simulator

import (
	"encoding/json"
	"fmt"
	"os"
)

// Marshal serializes a scenario to the engine's JSON document.
func Marshal(model *Model) ([]byte, error) {
	data, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize simulation scenario: %w", err)
	}
	return data, nil
}

// Unmarshal parses the engine's JSON document into a scenario.
func Unmarshal(data []byte) (*Model, error) {
	model := &Model{}
	if err := json.Unmarshal(data, model); err != nil {
		return nil, fmt.Errorf("failed to parse simulation scenario: %w", err)
	}
	return model, nil
}

// WriteFile serializes a scenario to path.
func WriteFile(model *Model, path string) error {
	data, err := Marshal(model)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write simulation scenario: %w", err)
	}
	return nil
}

// ReadFile parses a scenario from path.
func ReadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read simulation scenario: %w", err)
	}
	return Unmarshal(data)
}

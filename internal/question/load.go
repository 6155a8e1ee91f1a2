package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadBaseFact reads a single base fact from a JSON or YAML file and
// validates it.
func LoadBaseFact(path string) (BaseFact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BaseFact{}, fmt.Errorf("read base fact: %w", err)
	}
	return ParseBaseFact(data, filepath.Ext(path))
}

// ParseBaseFact decodes data as JSON when ext is ".json", YAML otherwise.
func ParseBaseFact(data []byte, ext string) (BaseFact, error) {
	var (
		fact BaseFact
		err  error
	)
	if strings.EqualFold(ext, ".json") {
		fact, err = parseJSONFact(data)
	} else {
		fact, err = parseYAMLFact(data)
	}
	if err != nil {
		return BaseFact{}, err
	}
	if err := fact.Validate(); err != nil {
		return BaseFact{}, err
	}
	return fact, nil
}

// LoadQuestions reads a JSON array of questions. Null entries are rejected.
func LoadQuestions(path string) ([]*Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	var qs []*Question
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("parse questions: %w", err)
	}
	for i, q := range qs {
		if q == nil {
			return nil, fmt.Errorf("parse questions: entry %d is null", i)
		}
	}
	return qs, nil
}

func parseJSONFact(data []byte) (BaseFact, error) {
	var fact BaseFact
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&fact); err != nil {
		return BaseFact{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return BaseFact{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return BaseFact{}, fmt.Errorf("parse json: %w", err)
	}
	return fact, nil
}

func parseYAMLFact(data []byte) (BaseFact, error) {
	var fact BaseFact
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fact); err != nil {
		return BaseFact{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return BaseFact{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return BaseFact{}, fmt.Errorf("parse yaml: %w", err)
	}
	return fact, nil
}

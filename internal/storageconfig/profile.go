package storageconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var ErrProfileInvalid = errors.New("storageconfig: profile invalid")

// profileSchema constrains storage profile documents before the provider
// boots. Unknown keys fail fast so configuration typos surface immediately.
var profileSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"provider": map[string]any{
			"type": "string",
			"enum": []any{"fs", "memory"},
		},
		"root": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"base_url": map[string]any{
			"type": "string",
		},
		"max_upload_bytes": map[string]any{
			"type":    "integer",
			"minimum": 1,
		},
		"signed_url_ttl_seconds": map[string]any{
			"type":    "integer",
			"minimum": 1,
		},
	},
	"required":             []any{"provider"},
	"additionalProperties": false,
}

// Profile is the decoded storage profile.
type Profile struct {
	Provider       string
	Root           string
	BaseURL        string
	MaxUploadBytes int64
	SignedURLTTL   time.Duration
}

// ValidationIssue captures a single profile validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// ProfileValidationError surfaces schema violations with their locations.
type ProfileValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *ProfileValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrProfileInvalid.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *ProfileValidationError) Unwrap() error {
	return ErrProfileInvalid
}

// ParseProfile validates the document against the profile schema and decodes
// it. The fs provider additionally requires a root directory.
func ParseProfile(doc map[string]any) (*Profile, error) {
	if len(doc) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrProfileInvalid)
	}

	compiled, err := compileProfileSchema()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileInvalid, err)
	}
	if err := compiled.Validate(normalizeDocument(doc)); err != nil {
		return nil, &ProfileValidationError{
			Issues: collectIssues(err),
			Cause:  err,
		}
	}

	profile := &Profile{}
	if provider, ok := doc["provider"].(string); ok {
		profile.Provider = provider
	}
	if root, ok := doc["root"].(string); ok {
		profile.Root = root
	}
	if baseURL, ok := doc["base_url"].(string); ok {
		profile.BaseURL = baseURL
	}
	if maxBytes, ok := integerValue(doc["max_upload_bytes"]); ok {
		profile.MaxUploadBytes = maxBytes
	}
	if ttl, ok := integerValue(doc["signed_url_ttl_seconds"]); ok {
		profile.SignedURLTTL = time.Duration(ttl) * time.Second
	}

	if profile.Provider == "fs" && strings.TrimSpace(profile.Root) == "" {
		return nil, &ProfileValidationError{
			Issues: []ValidationIssue{{Location: "/root", Message: "required for the fs provider"}},
		}
	}
	return profile, nil
}

func compileProfileSchema() (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(profileSchema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("storage-profile.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("storage-profile.json")
}

// normalizeDocument round-trips the document through JSON so numeric values
// take the shapes the validator expects.
func normalizeDocument(doc map[string]any) any {
	encoded, err := json.Marshal(doc)
	if err != nil {
		return doc
	}
	var normalized any
	if err := json.Unmarshal(encoded, &normalized); err != nil {
		return doc
	}
	return normalized
}

func integerValue(value any) (int64, bool) {
	switch typed := value.(type) {
	case int:
		return int64(typed), true
	case int64:
		return typed, true
	case float64:
		return int64(typed), true
	case json.Number:
		parsed, err := typed.Int64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func collectIssues(err error) []ValidationIssue {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) || validationErr == nil {
		return []ValidationIssue{{Message: err.Error()}}
	}

	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(validationErr)
	return issues
}

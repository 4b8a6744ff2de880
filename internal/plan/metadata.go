package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// metadataBlock matches the fenced metadata block in a plan document.
// Group 1 is the JSON payload between the fence lines.
var metadataBlock = regexp.MustCompile("(?s)```json metadata[ \t]*\n(.*?)\n```")

// Parse extracts the plan from a document's metadata block and validates it
// against the plan schema. Returns ErrMalformedMetadata when no block is
// present, or a *SchemaError when the block's shape is wrong.
func Parse(text string) (*Plan, error) {
	m := metadataBlock.FindStringSubmatch(text)
	if m == nil {
		return nil, ErrMalformedMetadata
	}

	var p Plan
	if err := json.Unmarshal([]byte(m[1]), &p); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &SchemaError{
				Field:  typeErr.Field,
				Reason: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}

	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Serialize replaces the metadata block in originalText with the plan's
// current state, leaving every byte outside the block untouched. Fails with
// a *ConflictError when the block cannot be located unambiguously.
func Serialize(p *Plan, originalText string) (string, error) {
	matches := metadataBlock.FindAllStringSubmatchIndex(originalText, -1)
	if len(matches) != 1 {
		return "", &ConflictError{Blocks: len(matches)}
	}

	body, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal plan metadata: %w", err)
	}

	// Splice only group 1 (the JSON payload), keeping the fence lines and
	// all surrounding prose byte-identical.
	start, end := matches[0][2], matches[0][3]
	return originalText[:start] + string(body) + originalText[end:], nil
}

// validate checks required fields and status enums after JSON decoding.
func (p *Plan) validate() error {
	if p.ID == "" {
		return &SchemaError{Field: "plan_id", Reason: "required field is missing or empty"}
	}
	if p.Created == "" {
		return &SchemaError{Field: "created", Reason: "required field is missing or empty"}
	}
	if p.Author == "" {
		return &SchemaError{Field: "author", Reason: "required field is missing or empty"}
	}
	if !p.Status.Valid() {
		return &SchemaError{Field: "status", Reason: fmt.Sprintf("unknown plan status %q", p.Status)}
	}

	for i := range p.Stages {
		st := &p.Stages[i]
		field := func(name string) string { return fmt.Sprintf("stages[%d].%s", i, name) }
		if st.ID == "" {
			return &SchemaError{Field: field("id"), Reason: "required field is missing or empty"}
		}
		if st.Name == "" {
			return &SchemaError{Field: field("name"), Reason: "required field is missing or empty"}
		}
		if st.Branch == "" {
			return &SchemaError{Field: field("branch"), Reason: "required field is missing or empty"}
		}
		if st.WorktreePath == "" {
			return &SchemaError{Field: field("worktree_path"), Reason: "required field is missing or empty"}
		}
		if !st.Status.Valid() {
			return &SchemaError{Field: field("status"), Reason: fmt.Sprintf("unknown stage status %q", st.Status)}
		}
	}
	return nil
}

package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Capability is the external generation service. Implementations return the
// model's JSON object for the given schema or a *CapabilityError.
type Capability interface {
	Generate(ctx context.Context, systemInstruction, userPrompt string, schema Schema) (json.RawMessage, error)
}

// Schema is a named JSON schema describing the structured output of a call.
type Schema struct {
	Name       string
	Definition map[string]any
}

var StyleProfileSchema = Schema{
	Name: "style_profile",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"profile":         map[string]any{"type": "string"},
			"keywords":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"recommendations": map[string]any{"type": "string"},
		},
		"required":             []any{"profile", "keywords", "recommendations"},
		"additionalProperties": false,
	},
}

var RankingSchema = Schema{
	Name: "product_sorting",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sortedIds": map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
		},
		"required":             []any{"sortedIds"},
		"additionalProperties": false,
	},
}

type CapabilityErrorKind string

const (
	CapabilityUnavailable     CapabilityErrorKind = "unavailable"
	CapabilityTimeout         CapabilityErrorKind = "timeout"
	CapabilityInvalidResponse CapabilityErrorKind = "invalid_response"
	CapabilitySchemaViolation CapabilityErrorKind = "schema_violation"
)

type CapabilityError struct {
	Op   string
	Kind CapabilityErrorKind
	Err  error
}

func (e *CapabilityError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *CapabilityError) Unwrap() error { return e.Err }

// AsCapabilityError normalizes any error from a capability call under op.
// Typed errors keep their kind, context deadline errors become timeouts and
// anything else counts as unavailable.
func AsCapabilityError(op string, err error) *CapabilityError {
	if err == nil {
		return nil
	}
	var ce *CapabilityError
	if errors.As(err, &ce) {
		if ce.Op == op {
			return ce
		}
		return &CapabilityError{Op: op, Kind: ce.Kind, Err: ce.Err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &CapabilityError{Op: op, Kind: CapabilityTimeout, Err: err}
	}
	return &CapabilityError{Op: op, Kind: CapabilityUnavailable, Err: err}
}

type styleProfilePayload struct {
	Profile         *string  `json:"profile"`
	Keywords        []string `json:"keywords"`
	Recommendations *string  `json:"recommendations"`
}

type rankingPayload struct {
	SortedIDs []json.RawMessage `json:"sortedIds"`
}

// GenerateStyleProfile asks the capability for a style profile and decodes it
// strictly: unknown fields and missing required fields are schema violations.
func GenerateStyleProfile(ctx context.Context, c Capability, system, prompt string) (StyleProfile, error) {
	const op = "style_profile"
	raw, err := c.Generate(ctx, system, prompt, StyleProfileSchema)
	if err != nil {
		return StyleProfile{}, AsCapabilityError(op, err)
	}

	var payload styleProfilePayload
	if err := decodeStrict(raw, &payload); err != nil {
		return StyleProfile{}, &CapabilityError{Op: op, Kind: classifyDecodeError(err), Err: err}
	}
	if payload.Profile == nil || payload.Recommendations == nil || payload.Keywords == nil {
		return StyleProfile{}, &CapabilityError{Op: op, Kind: CapabilitySchemaViolation, Err: errors.New("missing required field")}
	}

	keywords := payload.Keywords
	if len(keywords) > MaxKeywords {
		keywords = keywords[:MaxKeywords]
	}
	return StyleProfile{
		Profile:         *payload.Profile,
		Keywords:        keywords,
		Recommendations: *payload.Recommendations,
	}, nil
}

// GenerateRanking returns the capability's best-to-worst ordering of ids.
func GenerateRanking(ctx context.Context, c Capability, system, prompt string) ([]int64, error) {
	const op = "ranking"
	raw, err := c.Generate(ctx, system, prompt, RankingSchema)
	if err != nil {
		return nil, AsCapabilityError(op, err)
	}

	var payload rankingPayload
	if err := decodeStrict(raw, &payload); err != nil {
		return nil, &CapabilityError{Op: op, Kind: classifyDecodeError(err), Err: err}
	}
	if payload.SortedIDs == nil {
		return nil, &CapabilityError{Op: op, Kind: CapabilitySchemaViolation, Err: errors.New("missing sortedIds")}
	}

	ids := make([]int64, 0, len(payload.SortedIDs))
	for _, raw := range payload.SortedIDs {
		id, err := parseProductID(raw)
		if err != nil {
			return nil, &CapabilityError{Op: op, Kind: CapabilitySchemaViolation, Err: err}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseProductID accepts integral JSON numbers, including float spellings
// like 3.0 or 3e0.
func parseProductID(raw json.RawMessage) (int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' {
		return 0, fmt.Errorf("product id %s is not a number", raw)
	}

	n := json.Number(raw)
	if id, err := n.Int64(); err == nil {
		return id, nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, fmt.Errorf("product id %s is not an integer", raw)
	}
	return int64(f), nil
}

var errNotObject = errors.New("response is not a JSON object")

func decodeStrict(raw json.RawMessage, v any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return errNotObject
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after JSON object")
	}
	return nil
}

// classifyDecodeError separates well-formed JSON of the wrong shape from
// output that is not JSON at all.
func classifyDecodeError(err error) CapabilityErrorKind {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) || strings.HasPrefix(err.Error(), "json: unknown field") {
		return CapabilitySchemaViolation
	}
	return CapabilityInvalidResponse
}

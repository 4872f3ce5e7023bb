package recommend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

type AnswerKind int

const (
	AnswerAbsent AnswerKind = iota
	AnswerScalar
	AnswerList
	// AnswerOther covers numbers, booleans and objects. They count as answered
	// but never feed a filter or a keyword.
	AnswerOther
)

func (k AnswerKind) String() string {
	switch k {
	case AnswerScalar:
		return "scalar"
	case AnswerList:
		return "list"
	case AnswerOther:
		return "other"
	default:
		return "absent"
	}
}

// AnswerValue is one quiz answer: a single string, a list of strings from a
// multi-select question, some other JSON value, or nothing at all.
type AnswerValue struct {
	kind   AnswerKind
	scalar string
	list   []string
	raw    json.RawMessage
}

func Absent() AnswerValue { return AnswerValue{} }

func Scalar(s string) AnswerValue {
	return AnswerValue{kind: AnswerScalar, scalar: s}
}

func List(values ...string) AnswerValue {
	return AnswerValue{kind: AnswerList, list: append([]string(nil), values...)}
}

func Other(raw json.RawMessage) AnswerValue {
	return AnswerValue{kind: AnswerOther, raw: append(json.RawMessage(nil), raw...)}
}

func (v AnswerValue) Kind() AnswerKind { return v.kind }

func (v AnswerValue) IsAbsent() bool { return v.kind == AnswerAbsent }

func (v AnswerValue) Scalar() (string, bool) {
	if v.kind != AnswerScalar {
		return "", false
	}
	return v.scalar, true
}

func (v AnswerValue) List() ([]string, bool) {
	if v.kind != AnswerList {
		return nil, false
	}
	return v.list, true
}

// Values flattens scalar and list answers; other kinds yield nothing.
func (v AnswerValue) Values() []string {
	switch v.kind {
	case AnswerScalar:
		return []string{v.scalar}
	case AnswerList:
		return v.list
	default:
		return nil
	}
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case AnswerScalar:
		return json.Marshal(v.scalar)
	case AnswerList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	case AnswerOther:
		return v.raw, nil
	default:
		return []byte("null"), nil
	}
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Absent()
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Scalar(s)
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		values := make([]string, 0, len(items))
		for _, item := range items {
			item = bytes.TrimSpace(item)
			switch {
			case len(item) == 0 || bytes.Equal(item, []byte("null")):
				continue
			case item[0] == '"':
				var s string
				if err := json.Unmarshal(item, &s); err != nil {
					return err
				}
				values = append(values, s)
			case item[0] == '[' || item[0] == '{':
				// nested structures are not scalars
				continue
			default:
				values = append(values, string(item))
			}
		}
		*v = List(values...)
	default:
		if !json.Valid(data) {
			return fmt.Errorf("invalid answer value: %s", data)
		}
		*v = Other(data)
	}
	return nil
}

// Answers maps question ids to answers. Iteration follows JavaScript object
// key order, which is what quiz clients serialize with: integer-like keys in
// ascending numeric order, then the remaining keys in insertion order.
type Answers struct {
	keys   []string
	values map[string]AnswerValue
}

func NewAnswers() Answers {
	return Answers{values: make(map[string]AnswerValue)}
}

// AnswersFrom builds Answers from plain Go values (string, []string,
// []any, nil, numbers). Used by tests and by non-JSON callers.
func AnswersFrom(m map[string]any) (Answers, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return Answers{}, err
	}
	var a Answers
	if err := json.Unmarshal(data, &a); err != nil {
		return Answers{}, err
	}
	return a, nil
}

func (a *Answers) Set(questionID string, value AnswerValue) {
	if a.values == nil {
		a.values = make(map[string]AnswerValue)
	}
	if _, exists := a.values[questionID]; !exists {
		a.keys = append(a.keys, questionID)
	}
	a.values[questionID] = value
}

// Get returns Absent for unknown question ids.
func (a Answers) Get(questionID string) AnswerValue {
	return a.values[questionID]
}

func (a Answers) Len() int { return len(a.keys) }

// Provided reports whether the answers came from a JSON object, even an empty
// one. A missing or null answers field leaves it false.
func (a Answers) Provided() bool { return a.values != nil }

// AnsweredCount counts questions whose answer is not Absent.
func (a Answers) AnsweredCount() int {
	n := 0
	for _, k := range a.keys {
		if !a.values[k].IsAbsent() {
			n++
		}
	}
	return n
}

func (a Answers) Keys() []string {
	var numeric, named []string
	for _, k := range a.keys {
		if isArrayIndex(k) {
			numeric = append(numeric, k)
		} else {
			named = append(named, k)
		}
	}
	sort.SliceStable(numeric, func(i, j int) bool {
		ni, _ := strconv.ParseUint(numeric[i], 10, 32)
		nj, _ := strconv.ParseUint(numeric[j], 10, 32)
		return ni < nj
	})
	return append(numeric, named...)
}

func isArrayIndex(k string) bool {
	if k == "" || (len(k) > 1 && k[0] == '0') {
		return false
	}
	n, err := strconv.ParseUint(k, 10, 32)
	return err == nil && n < 1<<32-1
}

func (a Answers) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range a.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(a.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (a *Answers) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*a = Answers{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("answers must be a JSON object")
	}

	out := NewAnswers()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected answers key %v", keyTok)
		}
		var value AnswerValue
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("answer %q: %w", key, err)
		}
		out.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*a = out
	return nil
}

package recommend

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswers_UnmarshalKinds(t *testing.T) {
	a := mustAnswers(t, `{"2":"modern","6":["lavabo",null,"klozet",["x"]],"5":null,"7":3,"8":{"a":1}}`)

	assert.Equal(t, 5, a.Len())
	assert.Equal(t, 4, a.AnsweredCount())

	style, ok := a.Get("2").Scalar()
	require.True(t, ok)
	assert.Equal(t, "modern", style)

	needs, ok := a.Get("6").List()
	require.True(t, ok)
	assert.Equal(t, []string{"lavabo", "klozet"}, needs)

	assert.True(t, a.Get("5").IsAbsent())
	assert.Equal(t, AnswerOther, a.Get("7").Kind())
	assert.Equal(t, AnswerOther, a.Get("8").Kind())
	assert.True(t, a.Get("missing").IsAbsent())

	_, ok = a.Get("6").Scalar()
	assert.False(t, ok, "a list is never a scalar")
}

func TestAnswers_KeysFollowObjectOrder(t *testing.T) {
	a := mustAnswers(t, `{"b":"x","10":"y","2":"z","a":"w","01":"v"}`)
	assert.Equal(t, []string{"2", "10", "b", "a", "01"}, a.Keys())

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"2":"z","10":"y","b":"x","a":"w","01":"v"}`, string(data))
	assert.Equal(t, `{"2":"z","10":"y","b":"x","a":"w","01":"v"}`, string(data))
}

func TestAnswers_SetAndMarshal(t *testing.T) {
	a := NewAnswers()
	a.Set("6", List("lavabo"))
	a.Set("2", Scalar("modern"))
	a.Set("5", Absent())
	a.Set("2", Scalar("klasik"))

	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 2, a.AnsweredCount())

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `{"2":"klasik","5":null,"6":["lavabo"]}`, string(data))
}

func TestAnswers_RejectsNonObject(t *testing.T) {
	var a Answers
	assert.Error(t, json.Unmarshal([]byte(`["1","2"]`), &a))
	assert.Error(t, json.Unmarshal([]byte(`{"1":}`), &a))
}

func TestAnswersFrom(t *testing.T) {
	a, err := AnswersFrom(map[string]any{
		"2": "modern",
		"6": []string{"dus"},
		"5": nil,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"2", "5", "6"}, a.Keys())
	assert.Equal(t, []string{"dus"}, a.Get("6").Values())
	assert.Equal(t, 2, a.AnsweredCount())
}

func TestAnswers_AnsweredCountSkipsNull(t *testing.T) {
	a := mustAnswers(t, `{"1":"banyo","2":null,"3":"","4":[],"5":null}`)

	assert.Equal(t, 5, a.Len())
	assert.Equal(t, 3, a.AnsweredCount(), "null answers are unanswered, empty ones still count")
	assert.Equal(t, 65, MatchScore(a.AnsweredCount(), 12))
}

func TestAnswers_Provided(t *testing.T) {
	assert.True(t, mustAnswers(t, `{}`).Provided())

	var fromNull Answers
	require.NoError(t, json.Unmarshal([]byte(`null`), &fromNull))
	assert.False(t, fromNull.Provided())

	var req struct {
		Answers Answers `json:"answers"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"email":"a@b.c"}`), &req))
	assert.False(t, req.Answers.Provided())
}

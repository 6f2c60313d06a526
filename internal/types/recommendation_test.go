package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCareerRecommendation_EnsureLists(t *testing.T) {
	var rec CareerRecommendation
	rec.EnsureLists()

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"skillsYouHave":[]`)
	assert.Contains(t, string(data), `"skillsYouNeed":[]`)
	assert.Contains(t, string(data), `"skillsToImprove":[]`)
	assert.NotContains(t, string(data), "null")
}

func TestCareerRecommendation_KeepsExistingLists(t *testing.T) {
	rec := CareerRecommendation{SkillsYouHave: []string{"Go"}}
	rec.EnsureLists()
	assert.Equal(t, []string{"Go"}, rec.SkillsYouHave)
}

func TestCareerRecommendation_OtherCareersAlwaysThree(t *testing.T) {
	data, err := json.Marshal(CareerRecommendation{})
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))

	var others []CareerEntry
	require.NoError(t, json.Unmarshal(decoded["otherCareers"], &others))
	assert.Len(t, others, OtherCareersCount)
}

func TestCareerEntry_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "integer", input: `{"title":"A","alignment":85,"emoji":"x"}`, want: 85},
		{name: "integral float", input: `{"title":"A","alignment":85.0,"emoji":"x"}`, want: 85},
		{name: "exponent", input: `{"title":"A","alignment":8.5e1,"emoji":"x"}`, want: 85},
		{name: "negative", input: `{"title":"A","alignment":-5,"emoji":"x"}`, want: -5},
		{name: "missing", input: `{"title":"A","emoji":"x"}`, want: 0},
		{name: "fractional", input: `{"title":"A","alignment":85.5,"emoji":"x"}`, wantErr: true},
		{name: "huge", input: `{"title":"A","alignment":1e20,"emoji":"x"}`, wantErr: true},
		{name: "not a number", input: `{"title":"A","alignment":true,"emoji":"x"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e CareerEntry
			err := json.Unmarshal([]byte(tt.input), &e)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Alignment)
			assert.Equal(t, "A", e.Title)
			assert.Equal(t, "x", e.Emoji)
		})
	}
}

//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"math"
)

// OtherCareersCount is the number of alternative careers a recommendation carries
const OtherCareersCount = 3

// CareerEntry is one candidate career with its fit score
type CareerEntry struct {
	Title     string `json:"title"`
	Alignment int    `json:"alignment"` // 0-100, as scored by the model
	Emoji     string `json:"emoji"`
}

// UnmarshalJSON accepts any JSON number with an integral value for alignment, so 85, 85.0 and 8.5e1 all decode to 85.
func (e *CareerEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title     string      `json:"title"`
		Alignment json.Number `json:"alignment"`
		Emoji     string      `json:"emoji"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	alignment := 0
	if raw.Alignment != "" {
		f, err := raw.Alignment.Float64()
		if err != nil {
			return fmt.Errorf("alignment %q: %w", raw.Alignment, err)
		}
		if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
			return fmt.Errorf("alignment %s is not an integer", raw.Alignment)
		}
		alignment = int(f)
	}

	*e = CareerEntry{Title: raw.Title, Alignment: alignment, Emoji: raw.Emoji}
	return nil
}

// CareerRecommendation is the structured result returned to the browser
type CareerRecommendation struct {
	TopCareer       CareerEntry                    `json:"topCareer"`
	OtherCareers    [OtherCareersCount]CareerEntry `json:"otherCareers"`
	SkillsYouHave   []string                       `json:"skillsYouHave"`
	SkillsYouNeed   []string                       `json:"skillsYouNeed"`
	SkillsToImprove []string                       `json:"skillsToImprove"`
	Advice          string                         `json:"advice"`
}

// EnsureLists replaces nil skill lists with empty ones so they serialize as [] rather than null.
func (r *CareerRecommendation) EnsureLists() {
	if r.SkillsYouHave == nil {
		r.SkillsYouHave = []string{}
	}
	if r.SkillsYouNeed == nil {
		r.SkillsYouNeed = []string{}
	}
	if r.SkillsToImprove == nil {
		r.SkillsToImprove = []string{}
	}
}

// Package types provides type definitions for structured data used throughout the career guidance service.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New()

// UserType identifies which intake form a profile came from
type UserType string

// UserType constants for the three intake forms
const (
	UserTypeStudent      UserType = "student"
	UserTypeFresher      UserType = "fresher"
	UserTypeCareerChange UserType = "career-change"
)

// UserTypes lists every recognized user type in form order
func UserTypes() []UserType {
	return []UserType{UserTypeStudent, UserTypeFresher, UserTypeCareerChange}
}

// Valid reports whether u is one of the recognized user types
func (u UserType) Valid() bool {
	switch u {
	case UserTypeStudent, UserTypeFresher, UserTypeCareerChange:
		return true
	default:
		return false
	}
}

// ProfileRequest is the inbound request body: a user type tag plus the raw form payload for that tag.
type ProfileRequest struct {
	UserType UserType        `json:"userType"`
	FormData json.RawMessage `json:"formData"`
}

// PromptContext is the flattened, single-line text summary of a profile.
type PromptContext string

// Profile is implemented by exactly the three intake form shapes.
type Profile interface {
	// UserType returns the tag this profile was submitted under
	UserType() UserType
	// Validate checks required fields after trimming
	Validate() error
	sealed()
}

// FlexString holds a form value that browsers send as a string and API callers
// may send as a number (graduation year, years of experience).
type FlexString string

// UnmarshalJSON accepts a JSON string, number, or null.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", raw)
	}
	if i, err := n.Int64(); err == nil {
		*f = FlexString(strconv.FormatInt(i, 10))
		return nil
	}
	*f = FlexString(n.String())
	return nil
}

// StudentProfile is the student intake form
type StudentProfile struct {
	FullName          string   `json:"fullName" validate:"required"`
	EducationLevel    string   `json:"educationLevel" validate:"required"`
	Stream            string   `json:"stream" validate:"required"`
	Interests         []string `json:"interests"`
	Hobbies           []string `json:"hobbies"`
	PreferredIndustry string   `json:"preferredIndustry"`
}

// FresherProfile is the recent-graduate intake form
type FresherProfile struct {
	FullName       string     `json:"fullName" validate:"required"`
	Degree         string     `json:"degree" validate:"required"`
	GraduationYear FlexString `json:"graduationYear" validate:"required"`
	Skills         []string   `json:"skills"`
	Projects       []string   `json:"projects"`
	Certifications []string   `json:"certifications"`
	PreferredRole  string     `json:"preferredRole"`
}

// CareerChangeProfile is the career-changer intake form
type CareerChangeProfile struct {
	FullName          string     `json:"fullName" validate:"required"`
	CurrentRole       string     `json:"currentRole" validate:"required"`
	YearsOfExperience FlexString `json:"yearsOfExperience" validate:"required"`
	CurrentSkills     []string   `json:"currentSkills"`
	ReasonForChange   string     `json:"reasonForChange"`
	PreferredDomain   string     `json:"preferredDomain"`
	Education         string     `json:"education"`
}

// UserType implements Profile
func (StudentProfile) UserType() UserType { return UserTypeStudent }

// UserType implements Profile
func (FresherProfile) UserType() UserType { return UserTypeFresher }

// UserType implements Profile
func (CareerChangeProfile) UserType() UserType { return UserTypeCareerChange }

func (StudentProfile) sealed()      {}
func (FresherProfile) sealed()      {}
func (CareerChangeProfile) sealed() {}

// Trimmed returns a copy with surrounding whitespace removed and blank list items dropped.
func (p StudentProfile) Trimmed() StudentProfile {
	return StudentProfile{
		FullName:          strings.TrimSpace(p.FullName),
		EducationLevel:    strings.TrimSpace(p.EducationLevel),
		Stream:            strings.TrimSpace(p.Stream),
		Interests:         trimList(p.Interests),
		Hobbies:           trimList(p.Hobbies),
		PreferredIndustry: strings.TrimSpace(p.PreferredIndustry),
	}
}

// Trimmed returns a copy with surrounding whitespace removed and blank list items dropped.
func (p FresherProfile) Trimmed() FresherProfile {
	return FresherProfile{
		FullName:       strings.TrimSpace(p.FullName),
		Degree:         strings.TrimSpace(p.Degree),
		GraduationYear: FlexString(strings.TrimSpace(string(p.GraduationYear))),
		Skills:         trimList(p.Skills),
		Projects:       trimList(p.Projects),
		Certifications: trimList(p.Certifications),
		PreferredRole:  strings.TrimSpace(p.PreferredRole),
	}
}

// Trimmed returns a copy with surrounding whitespace removed and blank list items dropped.
func (p CareerChangeProfile) Trimmed() CareerChangeProfile {
	return CareerChangeProfile{
		FullName:          strings.TrimSpace(p.FullName),
		CurrentRole:       strings.TrimSpace(p.CurrentRole),
		YearsOfExperience: FlexString(strings.TrimSpace(string(p.YearsOfExperience))),
		CurrentSkills:     trimList(p.CurrentSkills),
		ReasonForChange:   strings.TrimSpace(p.ReasonForChange),
		PreferredDomain:   strings.TrimSpace(p.PreferredDomain),
		Education:         strings.TrimSpace(p.Education),
	}
}

// Validate validates the trimmed StudentProfile using the validator.
func (p StudentProfile) Validate() error {
	return validate.Struct(p.Trimmed())
}

// Validate validates the trimmed FresherProfile using the validator.
func (p FresherProfile) Validate() error {
	return validate.Struct(p.Trimmed())
}

// Validate validates the trimmed CareerChangeProfile using the validator.
func (p CareerChangeProfile) Validate() error {
	return validate.Struct(p.Trimmed())
}

func trimList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

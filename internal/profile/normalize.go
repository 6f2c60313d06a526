// Package profile converts the three intake form shapes into a single prompt context line.
package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/voca-career/internal/types"
)

// Default sentinels substituted for empty optional fields
const (
	DefaultOpen         = "Open"
	DefaultNone         = "None"
	DefaultNotSpecified = "Not specified"
)

const listSeparator = ", "

// Normalize decodes formData for the given user type and renders it as a prompt context.
func Normalize(userType types.UserType, formData json.RawMessage) (types.PromptContext, error) {
	p, err := Decode(userType, formData)
	if err != nil {
		return "", err
	}
	return Context(p)
}

// Decode selects the form shape for userType, decodes formData into it, and validates required fields.
func Decode(userType types.UserType, formData json.RawMessage) (types.Profile, error) {
	var p types.Profile
	switch userType {
	case types.UserTypeStudent:
		var s types.StudentProfile
		if err := decodeForm(formData, &s); err != nil {
			return nil, &MalformedProfileError{UserType: string(userType), Message: "invalid form data", Cause: err}
		}
		p = s
	case types.UserTypeFresher:
		var f types.FresherProfile
		if err := decodeForm(formData, &f); err != nil {
			return nil, &MalformedProfileError{UserType: string(userType), Message: "invalid form data", Cause: err}
		}
		p = f
	case types.UserTypeCareerChange:
		var c types.CareerChangeProfile
		if err := decodeForm(formData, &c); err != nil {
			return nil, &MalformedProfileError{UserType: string(userType), Message: "invalid form data", Cause: err}
		}
		p = c
	default:
		return nil, &MalformedProfileError{
			UserType: string(userType),
			Field:    "userType",
			Message:  fmt.Sprintf("unrecognized user type %q (expected one of %s)", userType, knownUserTypes()),
		}
	}

	if err := p.Validate(); err != nil {
		return nil, validationToMalformed(userType, err)
	}
	return p, nil
}

func knownUserTypes() string {
	names := make([]string, 0, len(types.UserTypes()))
	for _, ut := range types.UserTypes() {
		names = append(names, string(ut))
	}
	return strings.Join(names, listSeparator)
}

// Context renders a validated profile as a single human-readable line.
// Every declared field appears, in a fixed order, with defaults for empty optional values.
func Context(p types.Profile) (types.PromptContext, error) {
	var line string
	switch v := p.(type) {
	case types.StudentProfile:
		line = studentContext(v.Trimmed())
	case types.FresherProfile:
		line = fresherContext(v.Trimmed())
	case types.CareerChangeProfile:
		line = careerChangeContext(v.Trimmed())
	default:
		return "", &MalformedProfileError{Message: fmt.Sprintf("unsupported profile type %T", p)}
	}
	return types.PromptContext(line), nil
}

func studentContext(s types.StudentProfile) string {
	return fmt.Sprintf(
		"Student Profile: Name: %s, Education: %s, Stream: %s, Interests: %s, Hobbies: %s, Preferred Industry: %s",
		s.FullName,
		s.EducationLevel,
		s.Stream,
		join(s.Interests),
		orDefault(join(s.Hobbies), DefaultNone),
		orDefault(s.PreferredIndustry, DefaultOpen),
	)
}

func fresherContext(f types.FresherProfile) string {
	return fmt.Sprintf(
		"Fresher Profile: Name: %s, Degree: %s, Graduation Year: %s, Skills: %s, Projects: %s, Certifications: %s, Preferred Role: %s",
		f.FullName,
		f.Degree,
		f.GraduationYear,
		join(f.Skills),
		orDefault(join(f.Projects), DefaultNone),
		orDefault(join(f.Certifications), DefaultNone),
		orDefault(f.PreferredRole, DefaultOpen),
	)
}

func careerChangeContext(c types.CareerChangeProfile) string {
	return fmt.Sprintf(
		"Career Changer Profile: Name: %s, Current Role: %s, Experience: %s years, Current Skills: %s, Reason for Change: %s, Preferred Domain: %s, Education: %s",
		c.FullName,
		c.CurrentRole,
		c.YearsOfExperience,
		join(c.CurrentSkills),
		orDefault(c.ReasonForChange, DefaultNotSpecified),
		orDefault(c.PreferredDomain, DefaultOpen),
		orDefault(c.Education, DefaultNotSpecified),
	)
}

// decodeForm rejects a missing or non-object payload; unknown keys are ignored.
func decodeForm(formData json.RawMessage, dst any) error {
	trimmed := bytes.TrimSpace(formData)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return errors.New("formData is required")
	}
	if trimmed[0] != '{' {
		return errors.New("formData must be a JSON object")
	}
	return json.Unmarshal(trimmed, dst)
}

func validationToMalformed(userType types.UserType, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, jsonFieldName(fe.Field()))
		}
		return &MalformedProfileError{
			UserType: string(userType),
			Field:    strings.Join(fields, ", "),
			Message:  "required field is empty",
		}
	}
	return &MalformedProfileError{UserType: string(userType), Message: "validation failed", Cause: err}
}

// jsonFieldName maps a Go struct field name to its lowerCamel form key.
func jsonFieldName(goName string) string {
	if goName == "" {
		return goName
	}
	return strings.ToLower(goName[:1]) + goName[1:]
}

func join(items []string) string {
	return strings.Join(items, listSeparator)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

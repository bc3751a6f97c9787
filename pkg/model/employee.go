package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Wire keys for every EmployeeSubmission field.
const (
	FieldFullName         = "fullName"
	FieldGender           = "gender"
	FieldEmailAddress     = "emailAddress"
	FieldPhoneNumber      = "phoneNumber"
	FieldPermanentAddress = "permanentAddress"
	FieldCurrentAddress   = "currentAddress"
	FieldDateOfJoining    = "dateOfJoining"
	FieldJobTitle         = "jobTitle"
	FieldDepartment       = "department"
	FieldSalary           = "salary"
	FieldAadharNumber     = "aadharNumber"
	FieldPANNumber        = "PANNumber"
	FieldExperience       = "experience"
)

// DateLayout is the calendar date format used by dateOfJoining.
const DateLayout = "2006-01-02"

var fieldNames = []string{
	FieldFullName,
	FieldGender,
	FieldEmailAddress,
	FieldPhoneNumber,
	FieldPermanentAddress,
	FieldCurrentAddress,
	FieldDateOfJoining,
	FieldJobTitle,
	FieldDepartment,
	FieldSalary,
	FieldAadharNumber,
	FieldPANNumber,
	FieldExperience,
}

// FieldNames returns the wire keys in canonical order.
func FieldNames() []string {
	return append([]string(nil), fieldNames...)
}

// IsFieldName reports whether name is one of the EmployeeSubmission keys.
func IsFieldName(name string) bool {
	for _, candidate := range fieldNames {
		if candidate == name {
			return true
		}
	}
	return false
}

// Gender is the enumerated gender selection. The zero value means nothing
// has been selected yet.
type Gender string

const (
	GenderUnset  Gender = ""
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ErrUnknownGender is returned by ParseGender for values outside the enum.
var ErrUnknownGender = errors.New("model: unknown gender")

// Genders lists the selectable gender values in display order.
func Genders() []Gender {
	return []Gender{GenderMale, GenderFemale, GenderOther}
}

// ParseGender maps raw input onto the enum. Matching is case-insensitive and
// ignores surrounding whitespace; empty input yields GenderUnset.
func ParseGender(raw string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return GenderUnset, nil
	case string(GenderMale):
		return GenderMale, nil
	case string(GenderFemale):
		return GenderFemale, nil
	case string(GenderOther):
		return GenderOther, nil
	default:
		return GenderUnset, fmt.Errorf("%w: %q", ErrUnknownGender, raw)
	}
}

// Valid reports whether g is one of the selectable values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// EmployeeSubmission is the record collected by the onboarding form. JSON
// tags match the endpoint keys exactly.
type EmployeeSubmission struct {
	FullName         string `json:"fullName"`
	Gender           Gender `json:"gender"`
	EmailAddress     string `json:"emailAddress"`
	PhoneNumber      string `json:"phoneNumber"`
	PermanentAddress string `json:"permanentAddress"`
	CurrentAddress   string `json:"currentAddress"`
	DateOfJoining    string `json:"dateOfJoining"`
	JobTitle         string `json:"jobTitle"`
	Department       string `json:"department"`
	Salary           string `json:"salary"`
	AadharNumber     string `json:"aadharNumber"`
	PANNumber        string `json:"PANNumber"`
	Experience       string `json:"experience"`
}

// Empty returns the initial record: every field blank.
func Empty() EmployeeSubmission {
	return EmployeeSubmission{}
}

// IsEmpty reports whether every field is blank.
func (e EmployeeSubmission) IsEmpty() bool {
	return e == EmployeeSubmission{}
}

// Value returns the text stored under a wire key.
func (e EmployeeSubmission) Value(name string) (string, bool) {
	switch name {
	case FieldFullName:
		return e.FullName, true
	case FieldGender:
		return string(e.Gender), true
	case FieldEmailAddress:
		return e.EmailAddress, true
	case FieldPhoneNumber:
		return e.PhoneNumber, true
	case FieldPermanentAddress:
		return e.PermanentAddress, true
	case FieldCurrentAddress:
		return e.CurrentAddress, true
	case FieldDateOfJoining:
		return e.DateOfJoining, true
	case FieldJobTitle:
		return e.JobTitle, true
	case FieldDepartment:
		return e.Department, true
	case FieldSalary:
		return e.Salary, true
	case FieldAadharNumber:
		return e.AadharNumber, true
	case FieldPANNumber:
		return e.PANNumber, true
	case FieldExperience:
		return e.Experience, true
	default:
		return "", false
	}
}

// Values flattens the record into a map keyed by wire key.
func (e EmployeeSubmission) Values() map[string]string {
	out := make(map[string]string, len(fieldNames))
	for _, name := range fieldNames {
		out[name], _ = e.Value(name)
	}
	return out
}

// Payload returns the JSON object posted to the endpoint. Every key is
// present, even when blank.
func (e EmployeeSubmission) Payload() map[string]any {
	out := make(map[string]any, len(fieldNames))
	for _, name := range fieldNames {
		out[name], _ = e.Value(name)
	}
	return out
}

// SalaryValue parses the salary text as a decimal amount.
func (e EmployeeSubmission) SalaryValue() (decimal.Decimal, error) {
	return parseDecimal(e.Salary)
}

// ExperienceYears parses the optional experience text. The boolean is false
// when the field is blank.
func (e EmployeeSubmission) ExperienceYears() (decimal.Decimal, bool, error) {
	if strings.TrimSpace(e.Experience) == "" {
		return decimal.Zero, false, nil
	}
	value, err := parseDecimal(e.Experience)
	if err != nil {
		return decimal.Zero, true, err
	}
	return value, true, nil
}

// JoiningDate parses dateOfJoining using DateLayout. The text is parsed as it
// will be sent, so surrounding whitespace makes it invalid.
func (e EmployeeSubmission) JoiningDate() (time.Time, error) {
	raw := e.DateOfJoining
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, errors.New("model: dateOfJoining is blank")
	}
	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("model: parse dateOfJoining: %w", err)
	}
	return parsed, nil
}

func parseDecimal(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, errors.New("model: number is blank")
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("model: parse number %q: %w", raw, err)
	}
	return value, nil
}

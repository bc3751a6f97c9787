// Package validation implements the onboarding validators and the ordered
// check sequence run before a submission is attempted. Presence checks run
// first as a single combined check; format checks then run one at a time and
// the first failure ends validation.
package validation

import (
	"github.com/goliatone/go-joinform/pkg/model"
)

// Kind classifies a validation outcome.
type Kind string

const (
	KindNone                 Kind = ""
	KindMissingRequiredField Kind = "missing_required_field"
	KindInvalidFormat        Kind = "invalid_format"
)

// User-facing messages.
const (
	MessageMissingRequired   = "Please fill in all the required fields."
	MessageInvalidEmail      = "Please enter a valid emailAddress address."
	MessageInvalidPhone      = "Please enter a valid phone number."
	MessageInvalidAadhar     = "Please enter a valid Aadhar number."
	MessageInvalidSalary     = "Please enter a valid salary amount."
	MessageInvalidGender     = "Please select a valid gender."
	MessageInvalidJoiningDay = "Please enter a valid date of joining."
	MessageInvalidExperience = "Please enter a valid experience in years."
)

// Issue describes a single failed check.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result captures the outcome of Validate. At most one issue is reported
// because validation stops at the first failure.
type Result struct {
	Valid   bool    `json:"valid"`
	Kind    Kind    `json:"kind,omitempty"`
	Field   string  `json:"field,omitempty"`
	Message string  `json:"message,omitempty"`
	Issues  []Issue `json:"issues,omitempty"`
}

// FieldErrors returns the field-scoped messages keyed by wire key.
func (r Result) FieldErrors() map[string][]string {
	var out map[string][]string
	for _, issue := range r.Issues {
		if issue.Field == "" {
			continue
		}
		if out == nil {
			out = make(map[string][]string)
		}
		out[issue.Field] = append(out[issue.Field], issue.Message)
	}
	return out
}

// FormErrors returns the messages not tied to a single field.
func (r Result) FormErrors() []string {
	var out []string
	for _, issue := range r.Issues {
		if issue.Field == "" {
			out = append(out, issue.Message)
		}
	}
	return out
}

// RequiredFields lists the wire keys whose blank value alone blocks
// submission, in the order they are checked.
func RequiredFields() []string {
	return append([]string(nil), requiredFields...)
}

var requiredFields = []string{
	model.FieldFullName,
	model.FieldEmailAddress,
	model.FieldPhoneNumber,
	model.FieldDateOfJoining,
	model.FieldJobTitle,
	model.FieldDepartment,
	model.FieldSalary,
	model.FieldGender,
	model.FieldPermanentAddress,
	model.FieldAadharNumber,
	model.FieldPANNumber,
}

type formatCheck struct {
	field   string
	message string
	valid   func(model.EmployeeSubmission) bool
}

// formatChecks run in this exact order; email, phone, aadhar and salary lead.
var formatChecks = []formatCheck{
	{model.FieldEmailAddress, MessageInvalidEmail, func(r model.EmployeeSubmission) bool { return ValidEmail(r.EmailAddress) }},
	{model.FieldPhoneNumber, MessageInvalidPhone, func(r model.EmployeeSubmission) bool { return ValidPhoneNumber(r.PhoneNumber) }},
	{model.FieldAadharNumber, MessageInvalidAadhar, func(r model.EmployeeSubmission) bool { return ValidAadharNumber(r.AadharNumber) }},
	{model.FieldSalary, MessageInvalidSalary, func(r model.EmployeeSubmission) bool { return ValidSalary(r.Salary) }},
	{model.FieldGender, MessageInvalidGender, func(r model.EmployeeSubmission) bool { return ValidGender(r.Gender) }},
	{model.FieldDateOfJoining, MessageInvalidJoiningDay, func(r model.EmployeeSubmission) bool { return ValidJoiningDate(r.DateOfJoining) }},
	{model.FieldExperience, MessageInvalidExperience, func(r model.EmployeeSubmission) bool { return ValidExperience(r.Experience) }},
}

// Validate runs the presence group and then the format chain against record.
func Validate(record model.EmployeeSubmission) Result {
	if MissingRequired(record) {
		return Result{
			Kind:    KindMissingRequiredField,
			Message: MessageMissingRequired,
			Issues:  []Issue{{Message: MessageMissingRequired}},
		}
	}

	for _, check := range formatChecks {
		if check.valid(record) {
			continue
		}
		return Result{
			Kind:    KindInvalidFormat,
			Field:   check.field,
			Message: check.message,
			Issues:  []Issue{{Field: check.field, Message: check.message}},
		}
	}

	return Result{Valid: true}
}

// MissingRequired reports whether any required field is blank. It does not
// say which one.
func MissingRequired(record model.EmployeeSubmission) bool {
	for _, name := range requiredFields {
		value, _ := record.Value(name)
		if Blank(value) {
			return true
		}
	}
	return false
}

package validation

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-joinform/pkg/model"
)

var (
	// Whitespace covers \s plus vertical tab, Unicode separators and BOM.
	emailPattern  = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)
	phonePattern  = regexp.MustCompile(`^[0-9]{10}$`)
	aadharPattern = regexp.MustCompile(`^[0-9]{12}$`)

	salaryMin = decimal.Zero
	salaryMax = decimal.NewFromInt(100)
)

// Blank reports whether value is empty after trimming whitespace.
func Blank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// ValidEmail accepts the basic local@domain.tld shape.
func ValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// ValidPhoneNumber accepts exactly 10 ASCII digits.
func ValidPhoneNumber(value string) bool {
	return phonePattern.MatchString(value)
}

// ValidAadharNumber accepts exactly 12 ASCII digits.
func ValidAadharNumber(value string) bool {
	return aadharPattern.MatchString(value)
}

// ValidSalary accepts a finite decimal within [0, 100].
func ValidSalary(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return false
	}
	return amount.GreaterThanOrEqual(salaryMin) && amount.LessThanOrEqual(salaryMax)
}

// ValidGender accepts the selectable enum values.
func ValidGender(value model.Gender) bool {
	return value.Valid()
}

// ValidJoiningDate accepts a calendar date in model.DateLayout.
func ValidJoiningDate(value string) bool {
	_, err := model.EmployeeSubmission{DateOfJoining: value}.JoiningDate()
	return err == nil
}

// ValidExperience accepts a blank value or a non-negative decimal.
func ValidExperience(value string) bool {
	years, present, err := model.EmployeeSubmission{Experience: value}.ExperienceYears()
	if !present {
		return true
	}
	return err == nil && !years.IsNegative()
}

package model

import (
	"fmt"
	"sort"
)

// Patch carries the fields touched by a single input event. A nil pointer
// leaves the corresponding field untouched when merged.
type Patch struct {
	FullName         *string
	Gender           *Gender
	EmailAddress     *string
	PhoneNumber      *string
	PermanentAddress *string
	CurrentAddress   *string
	DateOfJoining    *string
	JobTitle         *string
	Department       *string
	Salary           *string
	AadharNumber     *string
	PANNumber        *string
	Experience       *string
}

// String returns a pointer to s, for building patches inline.
func String(s string) *string {
	return &s
}

// GenderPtr returns a pointer to g, for building patches inline.
func GenderPtr(g Gender) *Gender {
	return &g
}

// Merge returns a copy of record with every non-nil patch field applied.
// Fields the patch does not touch keep their previous values.
func Merge(record EmployeeSubmission, patch Patch) EmployeeSubmission {
	out := record
	if patch.FullName != nil {
		out.FullName = *patch.FullName
	}
	if patch.Gender != nil {
		out.Gender = *patch.Gender
	}
	if patch.EmailAddress != nil {
		out.EmailAddress = *patch.EmailAddress
	}
	if patch.PhoneNumber != nil {
		out.PhoneNumber = *patch.PhoneNumber
	}
	if patch.PermanentAddress != nil {
		out.PermanentAddress = *patch.PermanentAddress
	}
	if patch.CurrentAddress != nil {
		out.CurrentAddress = *patch.CurrentAddress
	}
	if patch.DateOfJoining != nil {
		out.DateOfJoining = *patch.DateOfJoining
	}
	if patch.JobTitle != nil {
		out.JobTitle = *patch.JobTitle
	}
	if patch.Department != nil {
		out.Department = *patch.Department
	}
	if patch.Salary != nil {
		out.Salary = *patch.Salary
	}
	if patch.AadharNumber != nil {
		out.AadharNumber = *patch.AadharNumber
	}
	if patch.PANNumber != nil {
		out.PANNumber = *patch.PANNumber
	}
	if patch.Experience != nil {
		out.Experience = *patch.Experience
	}
	return out
}

// Fields lists the wire keys the patch touches, in canonical order.
func (p Patch) Fields() []string {
	touched := map[string]bool{
		FieldFullName:         p.FullName != nil,
		FieldGender:           p.Gender != nil,
		FieldEmailAddress:     p.EmailAddress != nil,
		FieldPhoneNumber:      p.PhoneNumber != nil,
		FieldPermanentAddress: p.PermanentAddress != nil,
		FieldCurrentAddress:   p.CurrentAddress != nil,
		FieldDateOfJoining:    p.DateOfJoining != nil,
		FieldJobTitle:         p.JobTitle != nil,
		FieldDepartment:       p.Department != nil,
		FieldSalary:           p.Salary != nil,
		FieldAadharNumber:     p.AadharNumber != nil,
		FieldPANNumber:        p.PANNumber != nil,
		FieldExperience:       p.Experience != nil,
	}
	var out []string
	for _, name := range fieldNames {
		if touched[name] {
			out = append(out, name)
		}
	}
	return out
}

// IsZero reports whether the patch touches nothing.
func (p Patch) IsZero() bool {
	return len(p.Fields()) == 0
}

// FieldPatch builds a patch touching exactly one wire key. Gender values are
// parsed with ParseGender.
func FieldPatch(name, value string) (Patch, error) {
	var p Patch
	switch name {
	case FieldFullName:
		p.FullName = String(value)
	case FieldGender:
		g, err := ParseGender(value)
		if err != nil {
			return Patch{}, err
		}
		p.Gender = GenderPtr(g)
	case FieldEmailAddress:
		p.EmailAddress = String(value)
	case FieldPhoneNumber:
		p.PhoneNumber = String(value)
	case FieldPermanentAddress:
		p.PermanentAddress = String(value)
	case FieldCurrentAddress:
		p.CurrentAddress = String(value)
	case FieldDateOfJoining:
		p.DateOfJoining = String(value)
	case FieldJobTitle:
		p.JobTitle = String(value)
	case FieldDepartment:
		p.Department = String(value)
	case FieldSalary:
		p.Salary = String(value)
	case FieldAadharNumber:
		p.AadharNumber = String(value)
	case FieldPANNumber:
		p.PANNumber = String(value)
	case FieldExperience:
		p.Experience = String(value)
	default:
		return Patch{}, fmt.Errorf("model: unknown field %q", name)
	}
	return p, nil
}

// PatchFromValues builds a patch from wire-keyed text values. Unknown keys
// are rejected so typos never silently drop input.
func PatchFromValues(values map[string]string) (Patch, error) {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out Patch
	for _, key := range keys {
		single, err := FieldPatch(key, values[key])
		if err != nil {
			return Patch{}, err
		}
		out = combine(out, single)
	}
	return out, nil
}

func combine(base, next Patch) Patch {
	if next.FullName != nil {
		base.FullName = next.FullName
	}
	if next.Gender != nil {
		base.Gender = next.Gender
	}
	if next.EmailAddress != nil {
		base.EmailAddress = next.EmailAddress
	}
	if next.PhoneNumber != nil {
		base.PhoneNumber = next.PhoneNumber
	}
	if next.PermanentAddress != nil {
		base.PermanentAddress = next.PermanentAddress
	}
	if next.CurrentAddress != nil {
		base.CurrentAddress = next.CurrentAddress
	}
	if next.DateOfJoining != nil {
		base.DateOfJoining = next.DateOfJoining
	}
	if next.JobTitle != nil {
		base.JobTitle = next.JobTitle
	}
	if next.Department != nil {
		base.Department = next.Department
	}
	if next.Salary != nil {
		base.Salary = next.Salary
	}
	if next.AadharNumber != nil {
		base.AadharNumber = next.AadharNumber
	}
	if next.PANNumber != nil {
		base.PANNumber = next.PANNumber
	}
	if next.Experience != nil {
		base.Experience = next.Experience
	}
	return base
}

// Package model defines the employee onboarding record, the patch/merge
// primitives the form state store relies on, and the form descriptor types
// renderers consume. Field identifiers are the wire keys posted to the
// onboarding endpoint, so `FieldNames` doubles as the JSON key contract.
// Values are kept as the text the user entered; the semantic accessors
// (`SalaryValue`, `JoiningDate`, `ExperienceYears`) interpret them on demand.
package model

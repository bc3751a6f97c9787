// Package widgets chooses input controls for form fields from their type,
// enum and format when the contract does not name one.
package widgets

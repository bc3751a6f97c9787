// Package uischema loads presentation overlays for the onboarding form and
// applies them to the form model. Overlays retitle the form and relabel,
// reorder, or annotate fields without touching the contract or validation.
package uischema

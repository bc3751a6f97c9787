package render

import "github.com/goliatone/go-joinform/pkg/model"

// RenderOptions carry per-request state a renderer layers over the form
// model: the values currently held in the store, feedback from the last
// submission attempt, and captured attachment metadata.
type RenderOptions struct {
	// Action overrides the URL the rendered form posts back to.
	Action string
	// Values pre-populates controls keyed by wire key.
	Values map[string]string
	// Errors surfaces validation feedback. Field-level messages render inline;
	// form-level messages render above the fields.
	Errors ErrorMapping
	// Notice is the banner produced by the last submission, if any.
	Notice *Notification
	// Attachments lists files selected for the photo and signature pickers.
	Attachments model.Attachments
}

// Package submit sends onboarding records to the backend. Client performs the
// single JSON POST; Pipeline sequences validation, sending, and the store
// reset that follows a successful submission.
package submit

// Package server is the browser front end: it serves the onboarding form,
// accepts posted answers, and runs each post through the submission
// pipeline with its own store.
package server

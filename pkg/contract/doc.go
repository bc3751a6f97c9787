// Package contract loads the OpenAPI description of the onboarding backend and
// projects it into the form model renderers consume. The same document guards
// outgoing payloads so the wire shape cannot drift from the published schema.
package contract

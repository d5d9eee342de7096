// Package validation checks user-supplied signup fields and image uploads.
package validation

// Error is a user-correctable input failure. Handlers render the message on
// the form as a normal retry path rather than treating it as an operational
// fault.
type Error string

func (e Error) Error() string { return string(e) }

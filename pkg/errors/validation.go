package errors

import "unicode"

// maxNodeIDLength bounds ids accepted from HTTP requests and CLI flags.
const maxNodeIDLength = 256

// ValidateNodeID validates a node id received from an untrusted caller.
//
// The rules are intentionally loose because ids are opaque strings chosen by
// the document producer:
//   - No empty ids
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNodeID, "node id cannot be empty")
	}

	if len(id) > maxNodeIDLength {
		return New(ErrCodeInvalidNodeID, "node id too long (max %d characters)", maxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNodeID, "node id contains invalid control characters")
		}
	}

	return nil
}

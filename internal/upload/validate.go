package upload

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Allowed declared media types: PDF, Excel, and PowerPoint documents.
// Anything else is rejected before it is ever buffered.
var allowedContentTypes = map[string]struct{}{
	"application/pdf": {},
	"application/vnd.ms-excel": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {},
	"application/vnd.ms-powerpoint": {},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {},
}

// ValidType reports whether the declared media type is on the allow-list.
func ValidType(contentType string) bool {
	_, ok := allowedContentTypes[contentType]
	return ok
}

// ValidSize reports whether a payload of n bytes fits under the ceiling.
func ValidSize(n, ceiling int64) bool {
	return n <= ceiling
}

// SanitizeFilename turns an untrusted original filename into a name safe for
// the filesystem and for echoing into a Content-Disposition header. It is
// deterministic, never returns an empty string, and never contains directory
// separators.
func SanitizeFilename(name string) string {
	// Windows clients send backslash-separated paths.
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_' || r == ' ' || r == '(' || r == ')':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	safe := strings.Trim(b.String(), ". ")
	for strings.Contains(safe, "..") {
		safe = strings.ReplaceAll(safe, "..", ".")
	}
	if safe == "" {
		return "upload"
	}
	return safe
}

// StorageFilename generates the collision-resistant name used on durable
// storage: a random UUID carrying over the sanitized name's extension, so two
// uploads with identical original names never collide within a namespace.
func StorageFilename(safeName string) string {
	ext := strings.ToLower(filepath.Ext(safeName))
	return uuid.New().String() + ext
}

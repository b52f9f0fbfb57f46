package validate

import "strings"

// Violation identifies which check an upload failed.
type Violation string

const (
	ViolationFormat Violation = "format"
	ViolationSize   Violation = "size"
	ViolationLimit  Violation = "limit"
)

// Error is a rejected upload check. Message is the fixed user-facing text for
// the violation kind.
type Error struct {
	Violation Violation
	Message   string
}

func (e *Error) Error() string { return e.Message }

// ErrorKind classifies validation failures for status mapping.
func (e *Error) ErrorKind() string { return "validation" }

// MediaKind describes the decoded family of an accepted media type.
type MediaKind string

const (
	KindPNG    MediaKind = "raster-png"
	KindJPEG   MediaKind = "raster-jpeg"
	KindWebP   MediaKind = "raster-webp"
	KindVector MediaKind = "vector"
)

// IsVector reports whether the kind requires vector rasterization.
func (k MediaKind) IsVector() bool { return k == KindVector }

var acceptedTypes = map[string]MediaKind{
	"image/png":     KindPNG,
	"image/jpeg":    KindJPEG,
	"image/webp":    KindWebP,
	"image/svg+xml": KindVector,
}

const (
	formatMessage = "unsupported image format: use PNG, JPEG, WebP, or SVG"
	sizeMessage   = "image is too large: the limit is 2 MiB"
	limitMessage  = "icon limit reached: remove an icon before adding another"
)

// Format checks the declared media type against the fixed allow-list and
// returns the media kind it maps to.
func Format(mediaType string) (MediaKind, error) {
	normalized := strings.ToLower(strings.TrimSpace(mediaType))
	// Parameters such as "; charset=utf-8" are irrelevant to the allow-list.
	if idx := strings.IndexByte(normalized, ';'); idx >= 0 {
		normalized = strings.TrimSpace(normalized[:idx])
	}
	kind, ok := acceptedTypes[normalized]
	if !ok {
		return "", &Error{Violation: ViolationFormat, Message: formatMessage}
	}
	return kind, nil
}

// FileSize checks an upload's byte length against the configured ceiling.
func FileSize(byteLength, maxFileBytes int64) error {
	if byteLength > maxFileBytes {
		return &Error{Violation: ViolationSize, Message: sizeMessage}
	}
	return nil
}

// Capacity checks whether the collection can accept one more icon.
func Capacity(currentCount, maxIcons int) error {
	if currentCount >= maxIcons {
		return &Error{Violation: ViolationLimit, Message: limitMessage}
	}
	return nil
}

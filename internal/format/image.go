package format

import "strings"

const (
	DefaultPlaceholder = "/img/default.jpg"
	// fileNamespace is where the backend serves uploaded files.
	fileNamespace = "/api"
)

// ImageResolver turns the catalog's comma-joined image field into a URL the
// browser can load. Resolve is deterministic so thumbnails can be compared by value.
type ImageResolver struct {
	Origin      string
	Placeholder string
}

func NewImageResolver(origin, placeholder string) ImageResolver {
	if strings.TrimSpace(placeholder) == "" {
		placeholder = DefaultPlaceholder
	}
	return ImageResolver{Origin: strings.TrimRight(strings.TrimSpace(origin), "/"), Placeholder: placeholder}
}

// Resolve picks the image at index; an out of range index selects the first image.
func (r ImageResolver) Resolve(raw string, index int) string {
	images := SplitImages(raw)
	if len(images) == 0 {
		return r.placeholder()
	}
	if index < 0 || index >= len(images) {
		index = 0
	}
	return r.qualify(images[index])
}

// ResolveAll resolves every image, in order.
func (r ImageResolver) ResolveAll(raw string) []string {
	images := SplitImages(raw)
	out := make([]string, 0, len(images))
	for _, img := range images {
		out = append(out, r.qualify(img))
	}
	return out
}

func (r ImageResolver) qualify(path string) string {
	switch {
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		return path
	case strings.HasPrefix(path, fileNamespace+"/") || path == fileNamespace:
		return r.Origin + path
	case strings.HasPrefix(path, "/"):
		return path
	default:
		return "/" + path
	}
}

func (r ImageResolver) placeholder() string {
	if r.Placeholder == "" {
		return DefaultPlaceholder
	}
	return r.Placeholder
}

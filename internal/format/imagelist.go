package format

import "strings"

// SplitImages splits a comma-joined image field, dropping blank entries.
func SplitImages(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func JoinImages(images []string) string {
	return strings.Join(images, ",")
}

// RemoveImage drops every entry equal to url.
func RemoveImage(raw, url string) string {
	url = strings.TrimSpace(url)
	kept := make([]string, 0)
	for _, img := range SplitImages(raw) {
		if img != url {
			kept = append(kept, img)
		}
	}
	return JoinImages(kept)
}

// AppendImage adds url at the end of the list. Blank urls leave the list unchanged.
func AppendImage(raw, url string) string {
	url = strings.TrimSpace(url)
	images := SplitImages(raw)
	if url == "" {
		return JoinImages(images)
	}
	return JoinImages(append(images, url))
}

// NextIndex and PrevIndex move a carousel position with wrap-around.
func NextIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return wrap(i+1, n)
}

func PrevIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return wrap(i-1, n)
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

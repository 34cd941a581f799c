package validators

import "testing"

func TestIsAllowedImageExtension(t *testing.T) {
	allowed := []string{"photo.jpg", "photo.JPG", "banner.jpeg", "doc.png"}
	for _, name := range allowed {
		if !IsAllowedImageExtension(name) {
			t.Errorf("expected %q to be allowed", name)
		}
	}

	rejected := []string{"clip.gif", "vector.svg", "archive.zip", "noext", "photo.png.exe"}
	for _, name := range rejected {
		if IsAllowedImageExtension(name) {
			t.Errorf("expected %q to be rejected", name)
		}
	}
}

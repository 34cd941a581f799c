package validators

import (
	"path/filepath"
	"strings"
)

// Only still images are accepted for shop banners, verification documents
// and profile photos.
var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

func IsAllowedImageExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return allowedImageExtensions[ext]
}

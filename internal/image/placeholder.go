package image

import "fmt"

const (
	// BrokenURL stands in for an image the browser failed to load.
	BrokenURL = "https://via.placeholder.com/400/cccccc/333333?text=Image+Error"

	picsumBase      = "https://picsum.photos"
	placeholderBase = "https://via.placeholder.com"
)

// PicsumURL builds a picsum.photos URL. The random query parameter only busts
// caches so the service hands back a different photo; it carries no meaning.
func PicsumURL(width, height int, random int64) string {
	return fmt.Sprintf("%s/%d/%d?random=%d", picsumBase, width, height, random)
}

func ErrorURL(width, height int, stamp int64) string {
	return fmt.Sprintf("%s/%dx%d/cccccc/333333?text=Error+%d", placeholderBase, width, height, stamp)
}

package generate

import "github.com/dmorgan81/imagegen/internal/image"

const (
	FallbackWidth  = 600
	FallbackHeight = 400
)

// NewFallback returns a source of placeholder URLs used when a remote
// resolution fails.
func NewFallback() func() string {
	rnd := newLockedRand()
	return func() string {
		return image.PicsumURL(FallbackWidth, FallbackHeight, int64(rnd.Intn(maxRandomID)))
	}
}

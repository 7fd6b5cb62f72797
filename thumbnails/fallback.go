package thumbnails

import "gebo/types"

// Placeholders are served whenever the image API can't produce a result
var Placeholders = []string{
	"https://placehold.co/1280x720/1a1a2e/e94560?text=Gebo",
	"https://placehold.co/1280x720/16213e/0f3460?text=Gebo",
	"https://placehold.co/1280x720/0f3460/e94560?text=Gebo",
	"https://placehold.co/1280x720/533483/ffffff?text=Gebo",
}

// Fallback returns the first n placeholders for prompt
func Fallback(prompt string, n int) types.ThumbnailResult {
	n = clampImages(n)
	urls := make([]string, n)
	copy(urls, Placeholders)
	return types.ThumbnailResult{
		Prompt:    prompt,
		ImageURLs: urls,
		Status:    StatusFailed,
		Source:    types.SourceFallback,
	}
}

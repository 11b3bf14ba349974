package media

// DefaultMaxBytes is the upload limit when none is configured.
const DefaultMaxBytes int64 = 5 * 1024 * 1024

// Constraints describe what an uploaded image must satisfy for one resource.
type Constraints struct {
	Folder       string
	MaxWidth     int
	MaxBytes     int64
	AllowedTypes []string
	Required     bool
}

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

func profile(folder string, maxWidth int) Constraints {
	return Constraints{
		Folder:       folder,
		MaxWidth:     maxWidth,
		MaxBytes:     DefaultMaxBytes,
		AllowedTypes: allowedImageTypes,
	}
}

// Per-resource upload profiles.
var (
	TeamImages    = profile("team", 800)
	ProjectImages = profile("project", 1000)
	ServiceImages = profile("services", 1000)
	BlogImages    = profile("blog", 1000)
	AboutImages   = profile("about", 1000)
)

// Require returns a copy that rejects requests supplying no image.
func (c Constraints) Require() Constraints {
	c.Required = true
	return c
}

// WithMaxBytes returns a copy with a different size limit.
func (c Constraints) WithMaxBytes(n int64) Constraints {
	if n > 0 {
		c.MaxBytes = n
	}
	return c
}

func (c Constraints) allows(contentType string) bool {
	for _, t := range c.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

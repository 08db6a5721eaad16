package file

type Category string

const (
	CategoryImage    Category = "image"
	CategoryVideo    Category = "video"
	CategoryDocument Category = "document"
	CategoryArchive  Category = "archive"
)

// Per-category size caps. Video is deliberately the largest.
const (
	maxImageBytes    = int64(10 << 20)  // 10MB
	maxVideoBytes    = int64(200 << 20) // 200MB
	maxDocumentBytes = int64(25 << 20)  // 25MB
	maxArchiveBytes  = int64(50 << 20)  // 50MB
)

var allowedTypes = map[string]Category{
	"image/jpeg":    CategoryImage,
	"image/png":     CategoryImage,
	"image/gif":     CategoryImage,
	"image/webp":    CategoryImage,
	"image/svg+xml": CategoryImage,

	"video/mp4":        CategoryVideo,
	"video/mpeg":       CategoryVideo,
	"video/webm":       CategoryVideo,
	"video/quicktime":  CategoryVideo,
	"video/x-matroska": CategoryVideo,

	"text/plain":         CategoryDocument,
	"text/csv":           CategoryDocument,
	"application/pdf":    CategoryDocument,
	"application/msword": CategoryDocument,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": CategoryDocument,
	"application/vnd.ms-excel": CategoryDocument,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": CategoryDocument,

	"application/zip":              CategoryArchive,
	"application/gzip":             CategoryArchive,
	"application/x-tar":            CategoryArchive,
	"application/x-7z-compressed":  CategoryArchive,
	"application/x-rar-compressed": CategoryArchive,
}

var categoryCaps = map[Category]int64{
	CategoryImage:    maxImageBytes,
	CategoryVideo:    maxVideoBytes,
	CategoryDocument: maxDocumentBytes,
	CategoryArchive:  maxArchiveBytes,
}

// CategoryOf maps a declared content type onto its category.
// Types outside the allow-list report ok=false.
func CategoryOf(mimeType string) (Category, bool) {
	c, ok := allowedTypes[mimeType]
	return c, ok
}

func (c Category) MaxSizeBytes() int64 { return categoryCaps[c] }

func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryImage, CategoryVideo, CategoryDocument, CategoryArchive:
		return Category(s), true
	}
	return "", false
}

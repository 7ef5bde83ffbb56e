package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Compression returns a middleware that gzips responses for clients that
// accept it. Spreadsheets are zip archives already and /metrics compresses
// itself, so both are sent as is.
func Compression(excludedPaths ...string) gin.HandlerFunc {
	return gzip.Gzip(gzip.DefaultCompression,
		gzip.WithExcludedExtensions([]string{".xlsx"}),
		gzip.WithExcludedPaths(append([]string{"/metrics"}, excludedPaths...)),
	)
}

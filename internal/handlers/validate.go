package handlers

import (
	"mime"
	"net/http"

	"taskflow/internal/models"
)

func checkContentType(r *http.Request, target string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == target
}

// viewerFrom reads the caller identity from the request headers. The
// core decides whether that identity resolves to a known user.
func viewerFrom(r *http.Request) models.Viewer {
	return models.Viewer{
		UserID: r.Header.Get("X-User-ID"),
		Email:  r.Header.Get("X-User-Email"),
	}
}

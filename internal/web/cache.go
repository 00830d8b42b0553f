package web

import "net/http"

const cacheControlPublicHour = "public, max-age=3600, s-maxage=3600"

func setCacheControlPublicHour(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", cacheControlPublicHour)
}

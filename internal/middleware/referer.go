package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

// SafeReferer возвращает путь из заголовка Referer, если он указывает на этот же хост.
// Внешние и некорректные адреса заменяются на fallback.
func SafeReferer(r *http.Request, fallback string) string {
	ref := r.Referer()
	if ref == "" {
		return fallback
	}

	u, err := url.Parse(ref)
	if err != nil {
		return fallback
	}
	if u.Host != "" && u.Host != r.Host {
		return fallback
	}
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return fallback
	}
	// "//host" в пути браузер воспримет как адрес другого хоста
	if !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return fallback
	}

	target := u.EscapedPath()
	if u.RawQuery != "" {
		target += "?" + u.RawQuery
	}
	return target
}

package www

import (
	"net/url"
	"strconv"
	"time"
)

func intOrDefault(u *url.URL, key string, defaultValue int) int {
	if v := u.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func floatOrDefault(u *url.URL, key string, defaultValue float64) float64 {
	if v := u.Query().Get(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func dateOrDefault(u *url.URL, key string, defaultValue time.Time) time.Time {
	if v := u.Query().Get(key); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t.UTC()
		}
	}
	return defaultValue
}

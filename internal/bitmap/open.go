package bitmap

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// Open returns a reader for a texture source: a filesystem path or an
// http(s) URL. Callers own the returned reader and must close it.
func Open(source string) (io.ReadCloser, error) {
	scheme, ok := uriScheme(source)
	if !ok {
		return os.Open(source)
	}
	switch scheme {
	case "http", "https":
		resp, err := httpClient.Get(source)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("get %s: %s", source, resp.Status)
		}
		return resp.Body, nil
	default:
		return nil, fmt.Errorf("unsupported scheme %q in %s", scheme, source)
	}
}

// uriScheme extracts the scheme of a URL-shaped source. Plain paths,
// including Windows drive letters, report no scheme.
func uriScheme(s string) (string, bool) {
	i := strings.Index(s, "://")
	if i <= 1 {
		return "", false
	}
	return strings.ToLower(s[:i]), true
}

package remote

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/etnz/relperf/date"
	log "github.com/sirupsen/logrus"
)

// DiskCache implements a simple disk cache for HTTP responses.
//
// Entries are keyed by day: a response fetched today is served from disk until
// midnight, tomorrow the request hits the network again.
type DiskCache struct {
	Base http.RoundTripper
	Dir  string // os.TempDir() when empty

	today func() date.Date // date.Today when nil
}

// RoundTrip implements the http.RoundTripper interface. It checks for a cached
// response on disk first. If a fresh cached response is not found, it proceeds
// with the actual HTTP request and caches the new response if it's successful.
func (c *DiskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	key := c.key(req)
	if cached, err := c.get(key, req); err == nil {
		log.WithField("url", req.URL.Host+req.URL.Path).Debug("cache hit")
		return cached, nil
	}

	resp, err := c.base().RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	// DumpResponse consumes the body and replaces it with an in-memory copy.
	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

func (c *DiskCache) base() http.RoundTripper {
	if c.Base == nil {
		return http.DefaultTransport
	}
	return c.Base
}

func (c *DiskCache) dir() string {
	if c.Dir == "" {
		return os.TempDir()
	}
	return c.Dir
}

func (c *DiskCache) key(req *http.Request) string {
	today := date.Today
	if c.today != nil {
		today = c.today
	}
	day := today()
	return fmt.Sprintf("relperf-%s-%x", day, sha1.Sum([]byte(req.Method+" "+req.URL.String())))
}

// get retrieves a cached response from disk
func (c *DiskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(c.dir(), key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

// put stores a response to disk cache
func (c *DiskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir(), 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir(), key), content, 0o644)
}

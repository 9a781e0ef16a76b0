// Package fetch contains the provider adapters: one file per upstream data
// source, each returning core series ready to be merged. Adapters normalize
// everything provider-specific (formats, units, column layouts) so the core
// never sees a provider identifier.
package fetch

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"
)

// diskCache implements a simple disk cache for HTTP responses.
type diskCache struct {
	base    http.RoundTripper
	monthly bool // daily expiry when false
}

// RoundTrip implements the http.RoundTripper interface. It checks for a cached
// response on disk first. If a fresh cached response is not found, it proceeds
// with the actual HTTP request and caches the new response if it's successful.
func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// the cache key embeds the current day (or month), so the local tmp
	// entry expires on its own.
	stamp := time.Now().Format("2006-01-02")
	period := "daily"
	if c.monthly {
		stamp = time.Now().Format("2006-01")
		period = "monthly"
	}
	key := fmt.Sprintf("%s %s %s", stamp, req.Method, req.URL.String())
	key = fmt.Sprintf("gsd-%s-%x", period, sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache

	err = c.put(key, resp)
	if err != nil {
		log.Printf("cache write err (ignored): %v\n", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	file := filepath.Join(os.TempDir(), key)
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	file := filepath.Join(os.TempDir(), key)

	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}

	_, err = f.Write(content)
	f.Close()
	return err
}

// throttled is an http.RoundTripper that rate-limits outgoing requests,
// shared by every provider client.
type throttled struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func (t *throttled) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

var upstreamLimiter = rate.NewLimiter(rate.Every(time.Second), 2)

// newDailyCachingClient returns an http.Client that uses a disk cache where
// entries expire daily. Cache misses go through the shared rate limiter.
func newDailyCachingClient() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{base: &throttled{base: http.DefaultTransport, limiter: upstreamLimiter}}
	return client
}

// newMonthlyCachingClient is like newDailyCachingClient with monthly expiry,
// for the slow-moving historical datasets.
func newMonthlyCachingClient() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{base: &throttled{base: http.DefaultTransport, limiter: upstreamLimiter}, monthly: true}
	return client
}

// jwget performs an HTTP GET request to the given address and unmarshals the
// JSON response body into the provided data structure. It uses the provided
// http.Client for the request.
func jwget(client *http.Client, addr string, data interface{}) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}

// wget performs an HTTP GET request and returns the raw response body, for
// the providers that serve CSV or spreadsheet files rather than JSON.
func wget(client *http.Client, addr string) ([]byte, error) {
	resp, err := client.Get(addr)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

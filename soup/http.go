package soup

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"crypto/tls"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/niklasfasching/qualifier/util"
)

type Cache interface {
	Key(*http.Request) (string, error)
	Get(string, *http.Request) (*http.Response, error)
	Set(string, *http.Request, *http.Response) error
}

type Transport struct {
	Transport   http.RoundTripper
	RetryCount  int
	RetryDelay  time.Duration
	RateLimiter <-chan time.Time
	Cache       Cache
	UserAgent   string
	OnReq       func(*http.Request)
}

type FileCache struct{ Root string }

var invalidFileNameChars = regexp.MustCompile(`[^-_0-9a-zA-Z]+`)

func (t Transport) Client() *http.Client {
	if t.Transport == nil {
		t.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
		}
	}
	return &http.Client{Transport: &t}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx, k := req.Context(), ""
	if t.Cache != nil {
		key, err := t.Cache.Key(req)
		if err != nil {
			return nil, err
		}
		k = key
		if res, err := t.Cache.Get(k, req); res != nil || (err != nil && !os.IsNotExist(err)) {
			util.Debugf(ctx, "cache hit: %s", req.URL)
			return res, err
		}
	}
	if t.OnReq != nil {
		t.OnReq(req)
	}
	if t.UserAgent != "" {
		req.Header.Set("User-Agent", t.UserAgent)
	}
	attempt := 0
	res, err := util.RetryContext(ctx, func(ctx context.Context) (*http.Response, error) {
		if attempt++; attempt > 1 {
			util.Warnf(ctx, "retry %d: %s", attempt-1, req.URL)
		}
		if t.RateLimiter != nil {
			<-t.RateLimiter
		}
		res, err := t.Transport.RoundTrip(req)
		if err != nil {
			return nil, err
		} else if res.StatusCode >= 400 && attempt <= t.RetryCount {
			res.Body.Close()
			return nil, fmt.Errorf("%s: status: %d", req.URL, res.StatusCode)
		}
		return res, nil
	}, t.RetryCount, t.RetryDelay)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 400 && t.Cache != nil {
		if err := t.Cache.Set(k, req, res); err != nil {
			util.Errorf(ctx, "cache set: %s", err)
		}
	}
	return res, nil
}

func (c *FileCache) Key(req *http.Request) (string, error) {
	key := fmt.Sprintf("%s_%s_%s", req.Method, req.URL.Host, req.URL.Path)
	key = invalidFileNameChars.ReplaceAllString(key, "_")
	if len(key) > 40 {
		key = key[:40]
	}
	hash := sha1.New()
	hash.Write([]byte(req.Method + "::" + req.URL.String()))
	if req.Body != nil {
		bs, err := io.ReadAll(req.Body)
		if err != nil {
			return "", err
		}
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewBuffer(bs))
		hash.Write(bs)
	}
	return filepath.Join(c.Root, key+hex.EncodeToString(hash.Sum(nil))), nil
}

func (c *FileCache) Get(k string, req *http.Request) (*http.Response, error) {
	bs, err := os.ReadFile(k)
	if err != nil {
		return nil, err
	}
	vs := bytes.SplitN(bs, []byte("\n"), 2)
	if len(vs) != 2 {
		return nil, fmt.Errorf("invalid cache entry")
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(vs[1])), req)
}

func (c *FileCache) Set(k string, req *http.Request, res *http.Response) error {
	bs, err := httputil.DumpResponse(res, true)
	if err != nil {
		return err
	}
	u, err := url.PathUnescape(req.URL.String())
	if err != nil {
		u = req.URL.String()
	}
	bs = append([]byte(u+"\n"), bs...)
	return errors.Join(os.MkdirAll(c.Root, 0755), os.WriteFile(k, bs, 0644))
}

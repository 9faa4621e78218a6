package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SmokePaths are the public endpoints every healthy deployment answers.
var SmokePaths = []string{
	"/health",
	"/api/menu",
	"/api/menu/featured",
	"/api/menu/announcement",
	"/api/categories",
	"/api/vouchers",
	"/api/rewards",
}

type SmokeCheck struct {
	Path    string
	Status  int
	Latency time.Duration
	Err     error
}

func (c SmokeCheck) OK() bool { return c.Err == nil }

// Smoke requests each public path on baseURL and checks for a successful envelope.
func Smoke(ctx context.Context, client *http.Client, baseURL string) ([]SmokeCheck, error) {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	baseURL = strings.TrimRight(baseURL, "/")

	checks := make([]SmokeCheck, 0, len(SmokePaths))
	failed := 0
	for _, path := range SmokePaths {
		check := probe(ctx, client, baseURL+path)
		check.Path = path
		if !check.OK() {
			failed++
		}
		checks = append(checks, check)
	}
	if failed > 0 {
		return checks, fmt.Errorf("smoke: %d of %d checks failed", failed, len(checks))
	}
	return checks, nil
}

func probe(ctx context.Context, client *http.Client, url string) SmokeCheck {
	var check SmokeCheck
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		check.Err = err
		return check
	}
	resp, err := client.Do(req)
	check.Latency = time.Since(start)
	if err != nil {
		check.Err = err
		return check
	}
	defer resp.Body.Close()
	check.Status = resp.StatusCode

	var env struct {
		Success bool `json:"success"`
		Error   *struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 10<<20)).Decode(&env); err != nil {
		check.Err = fmt.Errorf("decode envelope: %w", err)
		return check
	}
	switch {
	case resp.StatusCode != http.StatusOK:
		check.Err = fmt.Errorf("status %d", resp.StatusCode)
	case !env.Success:
		code := ""
		if env.Error != nil {
			code = env.Error.Code
		}
		check.Err = fmt.Errorf("unsuccessful envelope %s", code)
	}
	return check
}

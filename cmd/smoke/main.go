// Command smoke walks the main API flows against a running server.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Reason  string          `json:"reason"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	baseURL string
	http    *http.Client
}

func (c *client) do(method, path, token string, body interface{}) (*http.Response, *envelope, error) {
	var bodyReader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, nil, err
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, err
	}
	if len(raw) == 0 {
		return resp, nil, nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return resp, nil, fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return resp, &env, nil
}

func step(name string) {
	color.Yellow("\n%s", name)
}

func expect(resp *http.Response, err error, want int) {
	if err != nil {
		color.Red("  request failed: %v", err)
		os.Exit(1)
	}
	if resp.StatusCode != want {
		color.Red("  got status %d, want %d", resp.StatusCode, want)
		os.Exit(1)
	}
	color.Green("  status %d", resp.StatusCode)
}

func main() {
	baseURL := flag.String("url", "http://localhost:3000/api", "API base URL")
	flag.Parse()

	c := &client{baseURL: *baseURL, http: &http.Client{Timeout: 10 * time.Second}}
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	suffix := rnd.Intn(1_000_000)

	color.Cyan("Smoke testing %s", *baseURL)

	register := func(first string) string {
		cwid := fmt.Sprintf("%08d", rnd.Intn(100_000_000))
		resp, env, err := c.do(http.MethodPost, "/auth/register", "", map[string]string{
			"cwid":      cwid,
			"firstName": first,
			"lastName":  "Smoke",
			"email":     fmt.Sprintf("%s.%d@example.edu", first, suffix),
			"password":  "correct horse battery",
		})
		expect(resp, err, http.StatusCreated)
		var auth struct {
			Token string `json:"token"`
		}
		_ = json.Unmarshal(env.Data, &auth)
		return auth.Token
	}

	step("1. Register user A")
	tokenA := register("alice")

	step("2. A creates a note")
	resp, env, err := c.do(http.MethodPost, "/notes", tokenA, map[string]interface{}{
		"title":   "Midterm Review",
		"class":   "MIS330",
		"topic":   "SQL",
		"year":    2024,
		"content": "joins, grouping, normal forms",
	})
	expect(resp, err, http.StatusCreated)
	var note struct {
		Id uint `json:"id"`
	}
	_ = json.Unmarshal(env.Data, &note)

	step("3. Register user B")
	tokenB := register("bob")

	step("4. B searches by topic (case-insensitive)")
	resp, _, err = c.do(http.MethodGet, "/notes?topic=sql", tokenB, nil)
	expect(resp, err, http.StatusOK)
	color.Green("  X-Total-Count: %s", resp.Header.Get("X-Total-Count"))

	step("5. A updates only the year")
	resp, _, err = c.do(http.MethodPut, fmt.Sprintf("/notes/%d", note.Id), tokenA, map[string]int{"year": 2025})
	expect(resp, err, http.StatusOK)

	step("6. B rates the note")
	resp, _, err = c.do(http.MethodPost, fmt.Sprintf("/notes/%d/ratings", note.Id), tokenB, map[string]int{"value": 5})
	expect(resp, err, http.StatusCreated)

	step("7. B cannot delete A's note")
	resp, _, err = c.do(http.MethodDelete, fmt.Sprintf("/notes/%d", note.Id), tokenB, nil)
	expect(resp, err, http.StatusForbidden)

	step("8. A deletes the note")
	resp, _, err = c.do(http.MethodDelete, fmt.Sprintf("/notes/%d", note.Id), tokenA, nil)
	expect(resp, err, http.StatusNoContent)

	color.Cyan("\nAll smoke checks passed")
}

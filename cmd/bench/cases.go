// README: Bench cases; HTTP contract checks, session turn guard, and throughput.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	statusPass    = "PASS"
	statusFail    = "FAIL"
	statusPending = "PENDING"
	statusSkip    = "SKIP"

	sessionHeader = "X-Session-ID"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	redis *redis.Client
	out   io.Writer
}

type Result struct {
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 60 * time.Second},
		out:   os.Stdout,
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
		defer r.redis.Close()
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))
	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Fprintf(r.out, "%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Fprintf(r.out, " (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Fprintf(r.out, " - %s", res.Note)
		}
		fmt.Fprintln(r.out)
	}
	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: statusSkip, Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		httpCase("API: health", http.MethodGet, base+"/health", "", []int{http.StatusOK}),
		httpCase("API: page renders", http.MethodGet, base+"/?lang=en", "", []int{http.StatusOK}),
		httpCase("API: session", http.MethodGet, base+"/api/session?lang=en", "", []int{http.StatusOK}),
		httpCase("API: empty message rejected", http.MethodPost, base+"/api/chat", `{"message":"  "}`, []int{http.StatusBadRequest}),
		httpCase("API: map without locations", http.MethodGet, base+"/api/map", "", []int{http.StatusOK}),
		{
			Name: "Live: chat turn extracts locations",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.Live {
					return Result{Status: statusSkip, Note: "live=false"}
				}
				return chatTurn(ctx, r, base)
			},
		},
		{
			Name: "Live: overlapping turns rejected",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.Live {
					return Result{Status: statusSkip, Note: "live=false"}
				}
				return overlappingTurns(ctx, r, base+"/api/chat")
			},
		},
		{
			Name: "Perf: health throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, http.MethodGet, base+"/health", "")
			},
		},
		{
			Name: "Perf: session throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, http.MethodGet, base+"/api/session", "")
			},
		},
	}
}

func (r *Runner) do(ctx context.Context, method, url, sid, body string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req.Header.Set(sessionHeader, sid)
	}
	return r.httpc.Do(req)
}

func httpCase(name, method, url, body string, okStatuses []int) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			start := time.Now()
			resp, err := r.do(ctx, method, url, uuid.NewString(), body)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			defer resp.Body.Close()
			_, _ = io.Copy(io.Discard, resp.Body)
			lat := time.Since(start)

			switch {
			case contains(okStatuses, resp.StatusCode):
				return Result{Status: statusPass, Latency: lat}
			case resp.StatusCode == http.StatusServiceUnavailable:
				return Result{Status: statusPending, Latency: lat, Note: "completion provider not configured"}
			default:
				return Result{Status: statusFail, Latency: lat, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
			}
		},
	}
}

func chatTurn(ctx context.Context, r *Runner, base string) Result {
	start := time.Now()
	resp, err := r.do(ctx, http.MethodPost, base+"/api/chat", uuid.NewString(),
		`{"message":"Recommend two cities to visit in Italy.","lang":"en"}`)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	defer resp.Body.Close()
	lat := time.Since(start)
	if resp.StatusCode != http.StatusOK {
		return Result{Status: statusFail, Latency: lat, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
	}

	var body struct {
		NewLocations []string `json:"new_locations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{Status: statusFail, Latency: lat, Note: err.Error()}
	}
	if len(body.NewLocations) == 0 {
		return Result{Status: statusFail, Latency: lat, Note: "reply had no LOCATION markers"}
	}
	return Result{Status: statusPass, Latency: lat, Note: strings.Join(body.NewLocations, "; ")}
}

// overlappingTurns fires concurrent submissions on one session; at most one
// may run, the rest must be answered 409.
func overlappingTurns(ctx context.Context, r *Runner, url string) Result {
	sid := uuid.NewString()
	var (
		mu       sync.Mutex
		ran      int
		rejected int
		other    []int
		wg       sync.WaitGroup
	)
	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := r.do(ctx, http.MethodPost, url, sid, `{"message":"Where should I go in spring?","lang":"en"}`)
			if err != nil {
				return
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			mu.Lock()
			defer mu.Unlock()
			switch resp.StatusCode {
			case http.StatusOK, http.StatusBadGateway:
				ran++
			case http.StatusConflict:
				rejected++
			default:
				other = append(other, resp.StatusCode)
			}
		}()
	}
	wg.Wait()

	note := fmt.Sprintf("ran=%d rejected=%d other=%v", ran, rejected, other)
	if ran >= 1 && rejected >= 1 && len(other) == 0 && ran+rejected == r.cfg.Concurrency {
		return Result{Status: statusPass, Note: note}
	}
	return Result{Status: statusFail, Note: note}
}

func perfLoad(ctx context.Context, r *Runner, method, url, body string) Result {
	end := time.Now().Add(r.cfg.Duration)
	var (
		count    int64
		errCount int64
		mu       sync.Mutex
		wg       sync.WaitGroup
	)

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sid := uuid.NewString()
			for time.Now().Before(end) && ctx.Err() == nil {
				resp, err := r.do(ctx, method, url, sid, body)
				if err != nil {
					mu.Lock()
					errCount++
					mu.Unlock()
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				mu.Lock()
				count++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}

func contains(list []int, v int) bool {
	for _, i := range list {
		if i == v {
			return true
		}
	}
	return false
}

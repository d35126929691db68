package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

type Config struct {
	Endpoint       string
	FormID         string
	Sessions       int
	Rate           int
	Concurrency    int
	AbandonPercent int
}

func parseFlags() *Config {
	c := &Config{}
	flag.StringVar(&c.Endpoint, "endpoint", "", "Tracking URL, e.g. http://localhost:8080/api/analytics/track (required)")
	flag.StringVar(&c.FormID, "form", "", "Target form id (required)")
	flag.IntVar(&c.Sessions, "sessions", 1000, "Total visitor sessions to simulate")
	flag.IntVar(&c.Rate, "rate", 200, "Sessions started per second")
	flag.IntVar(&c.Concurrency, "concurrency", 0, "Worker count (0=auto)")
	flag.IntVar(&c.AbandonPercent, "abandon-percent", 30, "Percent of sessions that never submit")
	flag.Parse()

	if c.Endpoint == "" || c.FormID == "" {
		fmt.Fprintln(os.Stderr, "Error: -endpoint and -form are required")
		flag.Usage()
		os.Exit(1)
	}

	if c.Concurrency == 0 {
		c.Concurrency = c.Rate / 4
		if c.Concurrency < 20 {
			c.Concurrency = 20
		}
	}

	if c.AbandonPercent > 100 {
		c.AbandonPercent = 100
	} else if c.AbandonPercent < 0 {
		c.AbandonPercent = 0
	}

	return c
}

type Stats struct {
	ok      uint64
	errors  uint64
	latency int64 // microseconds
}

func (s *Stats) AddOK(duration time.Duration) {
	atomic.AddUint64(&s.ok, 1)
	atomic.AddInt64(&s.latency, duration.Microseconds())
}

func (s *Stats) AddError() {
	atomic.AddUint64(&s.errors, 1)
}

func (s *Stats) StartLogger(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	var lastOK, lastErr uint64

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ok := atomic.LoadUint64(&s.ok)
			errs := atomic.LoadUint64(&s.errors)
			latTotal := atomic.LoadInt64(&s.latency)

			curOK := ok - lastOK
			curErr := errs - lastErr
			lastOK, lastErr = ok, errs

			avgLat := 0.0
			if ok > 0 {
				avgLat = float64(latTotal) / float64(ok) / 1000.0
			}

			log.Printf("[STATS] 1s -> OK: %d | ERR: %d | AvgLat: %.2fms | Total OK: %d", curOK, curErr, avgLat, ok)
		}
	}
}

func main() {
	cfg := parseFlags()
	stats := &Stats{}

	client := &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        cfg.Concurrency,
			MaxIdleConnsPerHost: cfg.Concurrency, // Keep as many connections open as there are workers.
			IdleConnTimeout:     90 * time.Second,
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		},
	}

	log.Printf("Starting Load Test: Target=%s Form=%s Rate=%d/s Sessions=%d Workers=%d", cfg.Endpoint, cfg.FormID, cfg.Rate, cfg.Sessions, cfg.Concurrency)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go stats.StartLogger(ctx)

	jobs := make(chan struct{}, cfg.Rate*2)
	var wg sync.WaitGroup
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	rngs := make([]*rand.Rand, cfg.Concurrency)
	for i := 0; i < cfg.Concurrency; i++ {
		rngs[i] = rand.New(rand.NewSource(rng.Int63()))
	}

	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		go startWorker(client, cfg, jobs, stats, rngs[i], &wg)
	}

	// Rate limiter: each job is one full visitor session.
	remaining := cfg.Sessions
	for remaining > 0 {
		start := time.Now()
		batch := cfg.Rate
		if remaining < batch {
			batch = remaining
		}

		for i := 0; i < batch; i++ {
			jobs <- struct{}{}
		}
		remaining -= batch

		elapsed := time.Since(start)
		if elapsed < time.Second {
			time.Sleep(time.Second - elapsed)
		}
	}

	close(jobs)
	wg.Wait()

	log.Printf("DONE. Total OK: %d | Total Errors: %d", atomic.LoadUint64(&stats.ok), atomic.LoadUint64(&stats.errors))
}

func startWorker(client *http.Client, cfg *Config, jobs <-chan struct{}, stats *Stats, rng *rand.Rand, wg *sync.WaitGroup) {
	defer wg.Done()

	headers := http.Header{"Content-Type": []string{"application/json"}}

	for range jobs {
		for _, event := range generateSession(cfg, rng) {
			start := time.Now()
			if err := sendEvent(client, cfg.Endpoint, event, headers); err != nil {
				stats.AddError()
			} else {
				stats.AddOK(time.Since(start))
			}
		}
	}
}

func sendEvent(client *http.Client, url string, data any, headers http.Header) error {
	body, _ := json.Marshal(data)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header = headers

	resp, err := client.Do(req)
	if err != nil {
		return err
	}

	// Read and discard the body so the connection can be reused.
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("http status: %d", resp.StatusCode)
	}
	return nil
}

var (
	fieldIDs    = []string{"name", "email", "company", "message", "phone"}
	deviceTypes = []string{"desktop", "mobile", "tablet"}
)

// generateSession walks one visitor through a realistic lifecycle: a view,
// a few field focus/blur pairs, then either a submit or an abandon.
func generateSession(cfg *Config, rng *rand.Rand) []map[string]any {
	sessionID := fmt.Sprintf("load_%d_%06x", time.Now().UnixNano(), rng.Intn(1<<24))
	deviceInfo := map[string]any{"deviceType": deviceTypes[rng.Intn(len(deviceTypes))]}

	event := func(action, fieldID string, timeSpent int) map[string]any {
		return map[string]any{
			"formId":     cfg.FormID,
			"action":     action,
			"fieldId":    fieldID,
			"timeSpent":  timeSpent,
			"sessionId":  sessionID,
			"deviceInfo": deviceInfo,
		}
	}

	events := []map[string]any{event("view", "", 0)}

	fieldCount := 1 + rng.Intn(len(fieldIDs))
	totalTime := 0
	for _, fieldID := range fieldIDs[:fieldCount] {
		spent := 1 + rng.Intn(20)
		totalTime += spent
		events = append(events,
			event("field_focus", fieldID, 0),
			event("field_blur", fieldID, spent),
		)
	}

	if rng.Intn(100) < cfg.AbandonPercent {
		events = append(events, event("abandon", "", 0))
	} else {
		events = append(events, event("submit", "", totalTime))
	}
	return events
}

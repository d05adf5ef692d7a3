package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// result guarda a latência e o status de uma requisição
type result struct {
	latency time.Duration
	status  int
	err     error
}

func main() {
	baseURL := getEnv("TARGET_URL", "http://localhost:8080")
	totalRequests := atoiEnv("TOTAL_REQUESTS", 500)
	concurrency := atoiEnv("CONCURRENCY", 10)

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)

	// Cria um produto dedicado para o benchmark
	var created struct {
		Product struct {
			ID string `json:"id"`
		} `json:"product"`
	}
	resp, err := client.R().
		SetBody(map[string]any{
			"name":           "Benchmark Product",
			"description":    "Produto usado pelo gerador de carga",
			"purchase_price": 10,
			"sale_price":     20,
			"quantity":       0,
		}).
		SetResult(&created).
		Post("/api/products")
	if err != nil || resp.IsError() {
		log.Fatalf("Failed to create benchmark product: %v (status %d)", err, resp.StatusCode())
	}
	productID := created.Product.ID
	log.Printf("🚀 Benchmark against %s | product=%s | requests=%d | concurrency=%d",
		baseURL, productID, totalRequests, concurrency)

	jobs := make(chan int)
	results := make(chan result, totalRequests)

	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				results <- fire(client, productID)
			}
		}()
	}

	start := time.Now()
	for i := 0; i < totalRequests; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	close(results)
	elapsed := time.Since(start)

	report(results, totalRequests, elapsed)
}

// fire envia uma compra ou uma venda; compras em maioria para o estoque
// nunca ficar vazio por muito tempo
func fire(client *resty.Client, productID string) result {
	start := time.Now()

	var resp *resty.Response
	var err error
	if rand.Intn(100) < 60 {
		resp, err = client.R().
			SetBody(map[string]any{"quantity": 1 + rand.Intn(5), "unit_price": 5 + rand.Float64()*20}).
			Post(fmt.Sprintf("/api/products/%s/buy", productID))
	} else {
		resp, err = client.R().
			SetBody(map[string]any{"quantity": 1 + rand.Intn(3)}).
			Post(fmt.Sprintf("/api/products/%s/sell", productID))
	}

	r := result{latency: time.Since(start), err: err}
	if resp != nil {
		r.status = resp.StatusCode()
	}
	return r
}

func report(results chan result, total int, elapsed time.Duration) {
	latencies := make([]time.Duration, 0, total)
	statuses := map[int]int{}
	failures := 0

	for r := range results {
		if r.err != nil {
			failures++
			continue
		}
		statuses[r.status]++
		latencies = append(latencies, r.latency)
	}

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	log.Printf("📊 Completed %d requests in %s (%.1f req/s)", total, elapsed, float64(total)/elapsed.Seconds())
	for status, count := range statuses {
		log.Printf("   status %d: %d", status, count)
	}
	if failures > 0 {
		log.Printf("   transport failures: %d", failures)
	}
	if len(latencies) > 0 {
		log.Printf("   p50=%s p95=%s p99=%s max=%s",
			percentile(latencies, 50), percentile(latencies, 95), percentile(latencies, 99),
			latencies[len(latencies)-1])
	}
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := len(sorted) * p / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func atoiEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

// FundTransfer is the POST /v1/transaction/fund-transfer payload
type FundTransfer struct {
	SenderID        uint64 `json:"senderId"`
	SenderAcctID    uint64 `json:"senderAcctId"`
	RecipientID     uint64 `json:"recipientId"`
	RecipientAcctID uint64 `json:"recipientAcctId"`
	Amount          string `json:"amount"`
	Description     string `json:"description"`
}

// Party is a customer and one of its accounts
type Party struct {
	CustomerID uint64
	AccountID  uint64
}

// Scenario is one kind of transfer the load test sends
type Scenario struct {
	Name       string
	Amount     string
	WantStatus int
}

// Result contains metrics for a single request
type Result struct {
	Scenario     string
	StatusCode   int
	Expected     bool
	ResponseTime time.Duration
	Err          error
}

// Stats contains aggregated test statistics
type Stats struct {
	mu            sync.Mutex
	total         int
	expected      int
	transportErrs int
	times         []time.Duration
	statusCounts  map[int]int
	scenarioCount map[string]int
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of requests to make")
	partiesFlag := flag.String("p", "1:11,2:22,3:33", "Comma-separated customer:account pairs to transfer between")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	flag.Parse()

	parties := parseParties(*partiesFlag)
	if len(parties) < 2 {
		fmt.Println("at least two customer:account pairs are required")
		return
	}

	scenarios := []Scenario{
		{Name: "Valid Small", Amount: "5.00", WantStatus: http.StatusCreated},
		{Name: "Valid Large", Amount: "9999.99", WantStatus: http.StatusCreated},
		{Name: "Below Minimum", Amount: "1.50", WantStatus: http.StatusBadRequest},
		{Name: "Above Maximum", Amount: "10000.01", WantStatus: http.StatusBadRequest},
	}

	fmt.Printf("Load testing %s with %d parties, %d scenarios\n", *baseURL, len(parties), len(scenarios))
	fmt.Printf("Concurrency: %d, requests: %d, delay: %d ms\n", *concurrency, *totalRequests, *delayMs)

	stats := &Stats{
		statusCounts:  make(map[int]int),
		scenarioCount: make(map[string]int),
	}

	jobs := make(chan int, *totalRequests)
	for i := 0; i < *totalRequests; i++ {
		jobs <- i
	}
	close(jobs)

	results := make(chan Result, *totalRequests)
	var wg sync.WaitGroup
	start := time.Now()
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(*baseURL, time.Duration(*delayMs)*time.Millisecond, parties, scenarios, jobs, results)
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for result := range results {
		stats.add(result)
	}

	printResults(stats, time.Since(start))
}

func parseParties(s string) []Party {
	var parties []Party
	for _, pair := range strings.Split(s, ",") {
		var p Party
		if _, err := fmt.Sscanf(strings.TrimSpace(pair), "%d:%d", &p.CustomerID, &p.AccountID); err == nil {
			parties = append(parties, p)
		}
	}
	return parties
}

func worker(baseURL string, delay time.Duration, parties []Party, scenarios []Scenario, jobs <-chan int, results chan<- Result) {
	client := &http.Client{Timeout: 10 * time.Second}
	url := strings.TrimRight(baseURL, "/") + "/v1/transaction/fund-transfer"

	for jobID := range jobs {
		if delay > 0 {
			time.Sleep(delay)
		}

		scenario := scenarios[rand.Intn(len(scenarios))]
		senderIdx := rand.Intn(len(parties))
		recipientIdx := (senderIdx + 1 + rand.Intn(len(parties)-1)) % len(parties)
		sender, recipient := parties[senderIdx], parties[recipientIdx]

		payload, _ := json.Marshal(FundTransfer{
			SenderID:        sender.CustomerID,
			SenderAcctID:    sender.AccountID,
			RecipientID:     recipient.CustomerID,
			RecipientAcctID: recipient.AccountID,
			Amount:          scenario.Amount,
			Description:     fmt.Sprintf("load test %d", jobID),
		})

		began := time.Now()
		resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
		result := Result{Scenario: scenario.Name, ResponseTime: time.Since(began), Err: err}
		if err == nil {
			result.StatusCode = resp.StatusCode
			result.Expected = resp.StatusCode == scenario.WantStatus
			_ = resp.Body.Close()
		}
		results <- result
	}
}

func (s *Stats) add(r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total++
	s.scenarioCount[r.Scenario]++
	s.times = append(s.times, r.ResponseTime)
	if r.Err != nil {
		s.transportErrs++
		return
	}
	s.statusCounts[r.StatusCode]++
	if r.Expected {
		s.expected++
	}
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[len(sorted)*p/100]
}

func printResults(s *Stats, elapsed time.Duration) {
	sorted := append([]time.Duration(nil), s.times...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum time.Duration
	for _, t := range sorted {
		sum += t
	}
	var avg time.Duration
	if len(sorted) > 0 {
		avg = sum / time.Duration(len(sorted))
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", s.total)
	fmt.Printf("Expected Outcome:    %d (%.1f%%)\n", s.expected, float64(s.expected)/float64(max(s.total, 1))*100)
	fmt.Printf("Transport Errors:    %d\n", s.transportErrs)
	fmt.Printf("Total Test Time:     %.2f seconds\n", elapsed.Seconds())
	fmt.Printf("Throughput:          %.2f requests/second\n", float64(s.total)/elapsed.Seconds())

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average: %v  P50: %v  P90: %v  P99: %v\n",
		avg, percentile(sorted, 50), percentile(sorted, 90), percentile(sorted, 99))

	fmt.Println("\n----------------- STATUS CODES -----------------")
	codes := make([]int, 0, len(s.statusCounts))
	for code := range s.statusCounts {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		fmt.Printf("%d %-25s %d\n", code, http.StatusText(code), s.statusCounts[code])
	}

	fmt.Println("\n----------------- SCENARIOS -----------------")
	for name, count := range s.scenarioCount {
		fmt.Printf("%-15s: %d requests\n", name, count)
	}
}

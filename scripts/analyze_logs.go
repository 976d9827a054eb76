package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

type LogStats struct {
	TotalRequests    int
	StatusClasses    map[string]int
	RouteHits        map[string]int
	AuthFailures     int
	UploadRejections int
	NotFoundMisses   int
	ErrorPatterns    map[string]int
}

var requestLine = regexp.MustCompile(`Request: (\S+) (\S+) from \S+ - Status: (\d{3})`)

func main() {
	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "./logs"
	}
	today := time.Now().Format("2006-01-02")

	stats := &LogStats{
		StatusClasses: make(map[string]int),
		RouteHits:     make(map[string]int),
		ErrorPatterns: make(map[string]int),
	}

	analyzeLog(filepath.Join(logDir, fmt.Sprintf("api-%s.log", today)), stats)
	printReport(stats)
}

func analyzeLog(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		if m := requestLine.FindStringSubmatch(line); m != nil {
			stats.TotalRequests++
			stats.RouteHits[m[1]+" "+m[2]]++
			stats.StatusClasses[m[3][:1]+"xx"]++
			continue
		}

		if strings.Contains(line, "Admin auth failed") ||
			strings.Contains(line, "Missing or malformed Authorization header") {
			stats.AuthFailures++
		}
		if strings.Contains(line, "Upload rejected") {
			stats.UploadRejections++
		}
		if strings.Contains(line, "not found") || strings.Contains(line, "Not found") {
			stats.NotFoundMisses++
		}

		if strings.HasPrefix(line, "ERROR") {
			extractErrorPattern(line, stats)
		}
	}
}

func extractErrorPattern(line string, stats *LogStats) {
	// Strip the "ERROR: date time file:line:" prefix down to the message
	parts := strings.SplitN(line, ": ", 3)
	if len(parts) == 3 {
		msg := strings.TrimSpace(parts[2])
		// Drop trailing detail after the first colon so variants group together
		if idx := strings.Index(msg, ":"); idx > 0 {
			msg = msg[:idx]
		}
		stats.ErrorPatterns[msg]++
	}
}

func printReport(stats *LogStats) {
	fmt.Println("\n=== Log Analysis Report ===")
	fmt.Println("Generated:", time.Now().Format("2006-01-02 15:04:05"))

	fmt.Println("\n1. Traffic:")
	fmt.Printf("   Total Requests: %d\n", stats.TotalRequests)
	for _, class := range []string{"2xx", "3xx", "4xx", "5xx"} {
		if count := stats.StatusClasses[class]; count > 0 {
			fmt.Printf("   %s responses: %d\n", class, count)
		}
	}

	fmt.Println("\n2. Rejections:")
	fmt.Printf("   Auth Failures: %d\n", stats.AuthFailures)
	fmt.Printf("   Upload Rejections: %d\n", stats.UploadRejections)
	fmt.Printf("   Not Found Misses: %d\n", stats.NotFoundMisses)

	fmt.Println("\n3. Busiest Routes:")
	printTop(stats.RouteHits, 5, "hits")

	fmt.Println("\n4. Most Common Errors:")
	printTop(stats.ErrorPatterns, 5, "occurrences")
}

func printTop(counts map[string]int, limit int, unit string) {
	type entry struct {
		key   string
		count int
	}

	var entries []entry
	for key, count := range counts {
		entries = append(entries, entry{key, count})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].count > entries[j].count
	})

	for i, e := range entries {
		if i >= limit {
			break
		}
		fmt.Printf("   %s: %d %s\n", e.key, e.count, unit)
	}
}

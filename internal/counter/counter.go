package counter

import (
	"sort"

	"github.com/atikulmunna/hitcount/internal/model"
)

// HitCounter accumulates the tallies for a single log source.
// It is owned by one pass over one source and is not safe for concurrent use.
type HitCounter struct {
	totalHitsByIP  map[string]int64
	totalHitsByURL map[string]int64
	secretHitsByIP map[string]int64
	errorCount     int64
	lines          int64
}

// New returns an empty HitCounter.
func New() *HitCounter {
	return &HitCounter{
		totalHitsByIP:  make(map[string]int64),
		totalHitsByURL: make(map[string]int64),
		secretHitsByIP: make(map[string]int64),
	}
}

// Record adds one classified line to the tallies.
func (c *HitCounter) Record(hit model.Hit) {
	c.lines++

	// A secret hit is only attributed through its address. A secret line
	// without a leading IP is not counted anywhere; change this branch if
	// unattributed secret hits ever need tracking.
	if hit.HasIP() {
		c.totalHitsByIP[hit.IP]++
		if hit.Secret {
			c.secretHitsByIP[hit.IP]++
		}
	}

	if hit.HasURL() {
		c.totalHitsByURL[hit.URL]++
	}

	if hit.Error {
		c.errorCount++
	}
}

// TotalHits returns the number of lines attributed to ip.
func (c *HitCounter) TotalHits(ip string) int64 { return c.totalHitsByIP[ip] }

// SecretHits returns the number of secret lines attributed to ip.
func (c *HitCounter) SecretHits(ip string) int64 { return c.secretHitsByIP[ip] }

// URLHits returns the number of lines that referenced url.
func (c *HitCounter) URLHits(url string) int64 { return c.totalHitsByURL[url] }

// Errors returns the number of error lines.
func (c *HitCounter) Errors() int64 { return c.errorCount }

// Lines returns the number of lines recorded, matching or not.
func (c *HitCounter) Lines() int64 { return c.lines }

// Report returns the tallies sorted by key in byte order. IPs are compared
// as strings, so 10.0.0.10 sorts before 10.0.0.9.
func (c *HitCounter) Report(source string) model.Report {
	r := model.Report{
		Source: source,
		IPs:    make([]model.IPStat, 0, len(c.totalHitsByIP)),
		URLs:   make([]model.URLStat, 0, len(c.totalHitsByURL)),
		Errors: c.errorCount,
	}

	for _, ip := range sortedKeys(c.totalHitsByIP) {
		r.IPs = append(r.IPs, model.IPStat{
			IP:     ip,
			Total:  c.totalHitsByIP[ip],
			Secret: c.secretHitsByIP[ip],
		})
	}
	for _, url := range sortedKeys(c.totalHitsByURL) {
		r.URLs = append(r.URLs, model.URLStat{URL: url, Hits: c.totalHitsByURL[url]})
	}

	return r
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

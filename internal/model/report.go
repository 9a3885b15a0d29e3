package model

// IPStat is one per-address line of a report.
type IPStat struct {
	IP     string `json:"ip" yaml:"ip"`
	Total  int64  `json:"total_hits" yaml:"total_hits"`
	Secret int64  `json:"secret_hits" yaml:"secret_hits"`
}

// URLStat is one per-resource line of a report.
type URLStat struct {
	URL  string `json:"url" yaml:"url"`
	Hits int64  `json:"hits" yaml:"hits"`
}

// Report is the finalized, sorted view of one log source.
type Report struct {
	Source string    `json:"source" yaml:"source"`
	IPs    []IPStat  `json:"ips" yaml:"ips"`
	URLs   []URLStat `json:"urls" yaml:"urls"`
	Errors int64     `json:"total_errors" yaml:"total_errors"`
}

package model

// Hit is the classification of a single access log line.
// Empty IP or URL means the pattern did not match.
type Hit struct {
	IP     string `json:"ip,omitempty"`
	URL    string `json:"url,omitempty"`
	Secret bool   `json:"secret"` // line mentions the secret resource
	Error  bool   `json:"error"`  // line carries a 404
}

// HasIP reports whether a leading IPv4 address was extracted.
func (h Hit) HasIP() bool { return h.IP != "" }

// HasURL reports whether an .html resource was extracted.
func (h Hit) HasURL() bool { return h.URL != "" }

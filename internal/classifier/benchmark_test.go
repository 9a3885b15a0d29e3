package classifier

import (
	"fmt"
	"testing"
)

// BenchmarkClassify measures single-line classification throughput.
func BenchmarkClassify(b *testing.B) {
	c := Default()
	line := `192.168.1.1 - - [17/Feb/2026:12:00:00 +0000] "GET /secret.html HTTP/1.1" 404 0`

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Classify(line)
	}
}

// BenchmarkClassifyMixed measures throughput over a varied batch of lines.
func BenchmarkClassifyMixed(b *testing.B) {
	c := Default()

	lines := make([]string, 1000)
	for i := range lines {
		switch i % 3 {
		case 0:
			lines[i] = fmt.Sprintf(`10.0.%d.%d - - [17/Feb/2026:12:00:00 +0000] "GET /page%d.html HTTP/1.1" 200 512`, i%256, i%200, i)
		case 1:
			lines[i] = fmt.Sprintf(`10.0.0.%d - - [17/Feb/2026:12:00:00 +0000] "GET /secret.html HTTP/1.1" 404 0`, i%256)
		case 2:
			lines[i] = fmt.Sprintf("garbage line %d", i)
		}
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Classify(lines[i%1000])
	}
}

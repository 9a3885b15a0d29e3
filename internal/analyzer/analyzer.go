package analyzer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atikulmunna/hitcount/internal/classifier"
	"github.com/atikulmunna/hitcount/internal/counter"
	"github.com/atikulmunna/hitcount/internal/log"
	"github.com/atikulmunna/hitcount/internal/model"
	"github.com/atikulmunna/hitcount/internal/output"
	"github.com/atikulmunna/hitcount/internal/source"
)

// ErrNoSources is returned by Run when it is given nothing to analyze.
var ErrNoSources = errors.New("no log files given")

// Analyzer runs the classify, count, report pipeline over log sources.
// Every source gets its own HitCounter; nothing carries over between them.
type Analyzer struct {
	classifier *classifier.Classifier
	renderer   output.Renderer
}

// New returns an Analyzer. A nil classifier uses the default patterns and a
// nil renderer prints plain text.
func New(c *classifier.Classifier, r output.Renderer) *Analyzer {
	if c == nil {
		c = classifier.Default()
	}
	if r == nil {
		r = output.NewTextRenderer(false)
	}
	return &Analyzer{classifier: c, renderer: r}
}

// Count feeds every line of r through a fresh HitCounter.
func (a *Analyzer) Count(r io.Reader) (*counter.HitCounter, error) {
	hc := counter.New()
	err := source.Lines(r, func(line string) {
		hc.Record(a.classifier.Classify(line))
	})
	if err != nil {
		return nil, err
	}
	return hc, nil
}

// AnalyzeFile counts the file at path and returns its report.
func (a *Analyzer) AnalyzeFile(path string) (model.Report, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return model.Report{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	hc, err := a.Count(f)
	if err != nil {
		return model.Report{}, fmt.Errorf("reading %s: %w", path, err)
	}

	log.Debugf("analyzed %s: %d lines, %d errors in %s", path, hc.Lines(), hc.Errors(), time.Since(start))
	return hc.Report(path), nil
}

// Run analyzes each path in order and renders its report to w.
// The first failure stops the run; reports already written stay written.
func (a *Analyzer) Run(w io.Writer, paths []string) error {
	if len(paths) == 0 {
		return ErrNoSources
	}

	for _, path := range paths {
		report, err := a.AnalyzeFile(path)
		if err != nil {
			return err
		}
		if err := a.renderer.Render(w, report); err != nil {
			return fmt.Errorf("writing report for %s: %w", path, err)
		}
	}
	return nil
}

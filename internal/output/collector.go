package output

import (
	"encoding/json"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/quantmind-br/filemanifest/internal/utils"
)

// Result records the outcome of one manifest generation
type Result struct {
	Root       string `json:"root"`
	Output     string `json:"output"`
	Files      int    `json:"files"`
	Folders    int    `json:"folders"`
	Gzip       bool   `json:"gzip,omitempty"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// Failed reports whether the generation errored
func (r Result) Failed() bool {
	return r.Error != ""
}

// Summary is the index written after a batch run
type Summary struct {
	GeneratedAt time.Time `json:"generated_at"`
	JobFile     string    `json:"job_file,omitempty"`
	Total       int       `json:"total"`
	Failed      int       `json:"failed"`
	Results     []Result  `json:"results"`
}

type SummaryCollector struct {
	mu      sync.RWMutex
	results []Result
	jobFile string
	path    string
	enabled bool
}

type CollectorOptions struct {
	Path    string
	JobFile string
}

// NewSummaryCollector creates a collector; it only writes when Path is set
func NewSummaryCollector(opts CollectorOptions) *SummaryCollector {
	return &SummaryCollector{
		results: make([]Result, 0),
		jobFile: opts.JobFile,
		path:    opts.Path,
		enabled: opts.Path != "",
	}
}

func (c *SummaryCollector) Add(r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, r)
}

func (c *SummaryCollector) Flush() error {
	if !c.enabled {
		return nil
	}

	summary := c.Summary()

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}

	if err := utils.EnsureDir(c.path); err != nil {
		return err
	}
	return os.WriteFile(c.path, append(data, '\n'), 0644)
}

// Summary returns the collected results ordered by root then output
func (c *SummaryCollector) Summary() *Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	results := make([]Result, len(c.results))
	copy(results, c.results)
	sort.Slice(results, func(i, j int) bool {
		if results[i].Root != results[j].Root {
			return results[i].Root < results[j].Root
		}
		return results[i].Output < results[j].Output
	})

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}

	return &Summary{
		GeneratedAt: time.Now(),
		JobFile:     c.jobFile,
		Total:       len(results),
		Failed:      failed,
		Results:     results,
	}
}

func (c *SummaryCollector) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.results)
}

func (c *SummaryCollector) IsEnabled() bool {
	return c.enabled
}

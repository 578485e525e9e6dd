package comments

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
)

// Scanner buffer bounds. Comment bodies are regularly larger than the
// bufio default of 64 KiB.
const (
	scanInitialBuffer = 64 * 1024
	scanMaxBuffer     = 4 * 1024 * 1024
)

// Reader pages through a newline-delimited JSON comment log. The file is
// re-opened for every call, so the cursor is the only state shared with
// the caller.
type Reader struct {
	path   string
	logger *log.Logger
}

func NewReader(path string, logger *log.Logger) *Reader {
	if logger == nil {
		logger = log.Default()
	}
	return &Reader{path: path, logger: logger}
}

// Path returns the underlying file path.
func (r *Reader) Path() string { return r.path }

// TotalLines counts the lines in the input log.
func (r *Reader) TotalLines() (int, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return 0, fmt.Errorf("open comment log: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, scanInitialBuffer), scanMaxBuffer)
	total := 0
	for scanner.Scan() {
		total++
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("count comment log lines: %w", err)
	}
	return total, nil
}

// ReadBatch returns up to size records starting at the 0-based line offset
// start, together with the number of raw lines scanned to collect them.
// Lines that fail to parse are logged with their 1-based line number and
// skipped; they do not consume a batch slot. An empty result means the log
// is exhausted.
func (r *Reader) ReadBatch(start, size int) ([]Record, int, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, 0, fmt.Errorf("open comment log: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, scanInitialBuffer), scanMaxBuffer)

	var records []Record
	scanned := 0
	for i := 0; scanner.Scan(); i++ {
		if i < start {
			continue
		}
		if len(records) >= size {
			break
		}
		scanned++
		line := strings.TrimSpace(scanner.Text())
		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			r.logger.Printf("[comments] parse error at line %d: %v", i+1, err)
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, scanned, fmt.Errorf("read comment log: %w", err)
	}
	return records, scanned, nil
}

// Package stats keeps lightweight usage counters for the analysis service,
// bucketed by month and persisted to a JSON file by a background writer.
package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// MonthlyStats are the counters for one calendar month.
type MonthlyStats struct {
	Analyses         int       `json:"analyses"`
	Comparisons      int       `json:"comparisons"`
	DegradedStages   int       `json:"degraded_stages"`
	FetchCacheHits   int       `json:"fetch_cache_hits"`
	FetchCacheMisses int       `json:"fetch_cache_misses"`
	LastUpdated      time.Time `json:"last_updated"`
}

// Storage persists monthly statistics. All methods are safe on a nil
// receiver so callers that do not track stats can pass nil.
type Storage struct {
	mutex       sync.RWMutex
	stats       map[string]*MonthlyStats // key: "YYYY-MM"
	filePath    string
	lastWrite   time.Time
	writeBuffer chan struct{}
	done        chan struct{}
	stopped     chan struct{}
	closeOnce   sync.Once
}

// NewStorage creates the storage under dataDir, loading any previous file.
func NewStorage(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	s := &Storage{
		stats:       make(map[string]*MonthlyStats),
		filePath:    filepath.Join(dataDir, "stats.json"),
		writeBuffer: make(chan struct{}, 1),
		done:        make(chan struct{}),
		stopped:     make(chan struct{}),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load stats: %w", err)
	}

	go s.backgroundWriter()
	return s, nil
}

func (s *Storage) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return json.Unmarshal(data, &s.stats)
}

// save writes to a temporary file first and renames it into place so a crash
// mid-write never corrupts the stats file.
func (s *Storage) save() error {
	s.mutex.RLock()
	data, err := json.Marshal(s.stats)
	s.mutex.RUnlock()
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}

	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("write temporary file: %w", err)
	}
	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("rename temporary file: %w", err)
	}
	return nil
}

func (s *Storage) backgroundWriter() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	defer close(s.stopped)

	for {
		select {
		case <-s.writeBuffer:
			s.save()
		case <-ticker.C:
			s.save()
		case <-s.done:
			// Shutdown performs the final flush after we exit.
			return
		}
	}
}

func currentMonth() string {
	return time.Now().Format("2006-01")
}

func (s *Storage) requestWrite() {
	select {
	case s.writeBuffer <- struct{}{}:
	default: // write already pending
	}
}

func (s *Storage) increment(apply func(*MonthlyStats)) {
	if s == nil {
		return
	}
	month := currentMonth()

	s.mutex.Lock()
	m, exists := s.stats[month]
	if !exists {
		m = &MonthlyStats{}
		s.stats[month] = m
	}
	apply(m)
	m.LastUpdated = time.Now()
	due := time.Since(s.lastWrite) > time.Minute
	if due {
		s.lastWrite = time.Now()
	}
	s.mutex.Unlock()

	if due {
		s.requestWrite()
	}
}

// RecordAnalysis counts one completed analysis report.
func (s *Storage) RecordAnalysis() {
	s.increment(func(m *MonthlyStats) { m.Analyses++ })
}

// RecordComparison counts one comparison run.
func (s *Storage) RecordComparison() {
	s.increment(func(m *MonthlyStats) { m.Comparisons++ })
}

// RecordDegraded counts one pipeline stage that fell back to an empty result.
func (s *Storage) RecordDegraded() {
	s.increment(func(m *MonthlyStats) { m.DegradedStages++ })
}

// RecordFetchCache counts a fetch cache hit or miss.
func (s *Storage) RecordFetchCache(hit bool) {
	s.increment(func(m *MonthlyStats) {
		if hit {
			m.FetchCacheHits++
		} else {
			m.FetchCacheMisses++
		}
	})
}

// GetCurrentStats returns a copy of the current month's counters.
func (s *Storage) GetCurrentStats() MonthlyStats {
	if s == nil {
		return MonthlyStats{}
	}
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if m, exists := s.stats[currentMonth()]; exists {
		return *m
	}
	return MonthlyStats{}
}

// GetAllMonths returns the months with recorded statistics, newest first.
func (s *Storage) GetAllMonths() []string {
	if s == nil {
		return nil
	}
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	months := make([]string, 0, len(s.stats))
	for month := range s.stats {
		months = append(months, month)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// GetMonthlyStats returns the counters for one "YYYY-MM" month.
func (s *Storage) GetMonthlyStats(yearMonth string) (MonthlyStats, bool) {
	if s == nil {
		return MonthlyStats{}, false
	}
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if m, exists := s.stats[yearMonth]; exists {
		return *m, true
	}
	return MonthlyStats{}, false
}

// Shutdown stops the background writer, waits for it to exit, and performs
// the final flush. After it returns no further writes touch the stats file.
func (s *Storage) Shutdown() error {
	if s == nil {
		return nil
	}
	s.closeOnce.Do(func() { close(s.done) })
	<-s.stopped
	return s.save()
}

/*
Package history provides functionality to manage the history of analyzed
event pages, so a page already reported today is not reported again.
*/
package history

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	historyFileName = "eventscout_report_history.json"
	historyDirName  = "eventscout"
)

// Entry records one analyzed page.
type Entry struct {
	URL        string    `json:"url"`
	EventName  string    `json:"eventName"`
	StartDate  string    `json:"startDate,omitempty"`
	AnalyzedAt time.Time `json:"analyzedAt"`
}

type History struct {
	ReportDate    string           `json:"reportDate"`
	AnalyzedPages map[string]Entry `json:"analyzedPages"`
}

type Manager struct {
	history         History
	mutex           sync.Mutex
	historyFilePath string
	reportLocation  *time.Location
	logger          *slog.Logger
}

func NewManager(tzName string, logger *slog.Logger) (*Manager, error) {
	historyDir := filepath.Join(os.TempDir(), historyDirName)
	if err := os.MkdirAll(historyDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create temporary history directory %s: %w", historyDir, err)
	}
	filePath := filepath.Join(historyDir, historyFileName)

	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone name '%s': %w", tzName, err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		historyFilePath: filePath,
		reportLocation:  loc,
		logger:          logger,
	}

	m.loadHistory()
	return m, nil
}

func (m *Manager) loadHistory() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	today := m.getCurrentReportDate()
	m.history = History{
		ReportDate:    today,
		AnalyzedPages: make(map[string]Entry),
	}

	data, err := os.ReadFile(m.historyFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			m.logger.Info("history file not found, starting fresh report", "path", m.historyFilePath)
			return
		}
		m.logger.Warn("error reading history file, starting fresh report", "path", m.historyFilePath, "error", err)
		return
	}

	var loaded History
	if err := json.Unmarshal(data, &loaded); err != nil {
		m.logger.Warn("error unmarshalling history JSON, starting fresh report", "error", err)
		return
	}

	if loaded.ReportDate == today {
		if loaded.AnalyzedPages == nil {
			loaded.AnalyzedPages = make(map[string]Entry)
		}
		m.history = loaded
		m.logger.Info("loaded analyzed pages for today", "count", len(m.history.AnalyzedPages), "date", today)
	} else {
		m.logger.Info("history is stale, starting new report history", "previous", loaded.ReportDate, "today", today)
	}
}

func (m *Manager) saveHistory() {
	m.history.ReportDate = m.getCurrentReportDate()

	data, err := json.MarshalIndent(m.history, "", "  ")
	if err != nil {
		m.logger.Warn("error marshalling history for save", "error", err)
		return
	}

	if err := os.WriteFile(m.historyFilePath, data, 0o644); err != nil {
		m.logger.Warn("error writing history file", "path", m.historyFilePath, "error", err)
	}
}

// AlreadyAnalyzed reports whether the page was already analyzed today.
func (m *Manager) AlreadyAnalyzed(pageURL string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	_, exists := m.history.AnalyzedPages[normalizeURL(pageURL)]
	return exists
}

// RecordAnalysis persists the outcome of one analyzed page.
func (m *Manager) RecordAnalysis(pageURL, eventName, startDate string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.history.AnalyzedPages[normalizeURL(pageURL)] = Entry{
		URL:        pageURL,
		EventName:  eventName,
		StartDate:  startDate,
		AnalyzedAt: time.Now().In(m.reportLocation),
	}
	m.saveHistory()
}

// Entries returns today's analyzed pages, most useful for reporting.
func (m *Manager) Entries() []Entry {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	entries := make([]Entry, 0, len(m.history.AnalyzedPages))
	for _, entry := range m.history.AnalyzedPages {
		entries = append(entries, entry)
	}
	return entries
}

func (m *Manager) HistoryFilePath() string {
	return m.historyFilePath
}

func (m *Manager) getCurrentReportDate() string {
	return time.Now().In(m.reportLocation).Format("2006-01-02")
}

// normalizeURL strips a trailing slash so minor URL variants dedupe together.
func normalizeURL(raw string) string {
	return strings.TrimSuffix(strings.TrimSpace(raw), "/")
}

// package testing contains shared testing utilities
package testing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/followback/internal/models"
)

// MockAnalyzer is a test double for services.Analyzer
type MockAnalyzer struct {
	mu        sync.Mutex
	Result    *models.AnalysisResult
	Err       error
	HealthErr error
	calls     int
	received  [][2]string
}

func (m *MockAnalyzer) Upload(ctx context.Context, followers, following *models.Upload) (*models.AnalysisResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	var pair [2]string
	if followers != nil {
		pair[0] = followers.Name
	}
	if following != nil {
		pair[1] = following.Name
	}
	m.received = append(m.received, pair)
	return m.Result, m.Err
}

func (m *MockAnalyzer) Health(ctx context.Context) error { return m.HealthErr }
func (m *MockAnalyzer) Name() string                     { return "mock" }

// Calls returns how many times Upload was invoked.
func (m *MockAnalyzer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Received returns the (followers, following) file names of every Upload call.
func (m *MockAnalyzer) Received() [][2]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][2]string(nil), m.received...)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// FollowersExport renders names in the followers_1.json layout.
func FollowersExport(names ...string) []byte {
	data, _ := json.Marshal(relationships(names))
	return data
}

// FollowingExport renders names in the following.json layout.
func FollowingExport(names ...string) []byte {
	data, _ := json.Marshal(map[string]any{"relationships_following": relationships(names)})
	return data
}

func relationships(names []string) []map[string]any {
	items := make([]map[string]any, 0, len(names))
	for i, name := range names {
		items = append(items, map[string]any{
			"title":           "",
			"media_list_data": []any{},
			"string_list_data": []map[string]any{{
				"href":      fmt.Sprintf("https://www.instagram.com/%s", name),
				"value":     name,
				"timestamp": 1700000000 + i,
			}},
		})
	}
	return items
}

// WriteFile writes content to path, failing the test on error.
func WriteFile(t *testing.T, path string, content []byte) string {
	t.Helper()
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

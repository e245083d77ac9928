// ABOUTME: Benchmark runner executing ranking scenarios through the real service
// ABOUTME: Collects precision, recall, and MRR per scenario into a JSON report

package recs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lumen-social/lumen/internal/models"
	"github.com/lumen-social/lumen/internal/recommend"
)

// Result holds the metric scores for one scenario
type Result struct {
	ScenarioID  string   `json:"scenario_id"`
	Description string   `json:"description"`
	Ranked      []string `json:"ranked"`
	Precision   float64  `json:"precision_at_k"`
	Recall      float64  `json:"recall_at_k"`
	MRR         float64  `json:"mrr"`
	Passed      bool     `json:"passed"`
	DurationMS  int64    `json:"duration_ms"`
}

// Report is the full benchmark output
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`
	Results     []Result  `json:"results"`
	MeanMRR     float64   `json:"mean_mrr"`
	PassRate    float64   `json:"pass_rate"`
}

// BenchmarkRunner executes ranking scenarios against the recommendation service
type BenchmarkRunner struct {
	metrics *MetricsCalculator
	verbose bool
}

// NewBenchmarkRunner creates a new benchmark runner
func NewBenchmarkRunner(verbose bool) *BenchmarkRunner {
	return &BenchmarkRunner{
		metrics: NewMetricsCalculator(),
		verbose: verbose,
	}
}

// Run executes the given scenarios (all built-ins when ids is empty)
func (r *BenchmarkRunner) Run(ids []string) (*Report, error) {
	scenarios := Scenarios()
	if len(ids) > 0 {
		scenarios = filterScenarios(scenarios, ids)
		if len(scenarios) == 0 {
			return nil, fmt.Errorf("no scenarios match %v", ids)
		}
	}

	report := &Report{GeneratedAt: time.Now()}
	var mrrSum float64
	passed := 0

	for _, scenario := range scenarios {
		result, err := r.runScenario(scenario)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.ID, err)
		}

		if r.verbose {
			fmt.Printf("[%s] precision=%.2f recall=%.2f mrr=%.2f passed=%v\n",
				result.ScenarioID, result.Precision, result.Recall, result.MRR, result.Passed)
		}

		mrrSum += result.MRR
		if result.Passed {
			passed++
		}
		report.Results = append(report.Results, result)
	}

	report.MeanMRR = mrrSum / float64(len(report.Results))
	report.PassRate = float64(passed) / float64(len(report.Results))
	return report, nil
}

func (r *BenchmarkRunner) runScenario(scenario Scenario) (Result, error) {
	store := newMemoryStore(scenario)
	svc := recommend.NewService(store, store, nil, recommend.DefaultOptions())

	start := time.Now()
	posts, err := svc.RecommendForUser(scenario.User.UID, scenario.Limit)
	if err != nil {
		return Result{}, err
	}
	elapsed := time.Since(start)

	ranked := make([]string, len(posts))
	for i, p := range posts {
		ranked[i] = p.ID
	}

	relevant := make(map[string]bool, len(scenario.Relevant))
	for _, id := range scenario.Relevant {
		relevant[id] = true
	}

	k := scenario.Limit
	precision := r.metrics.PrecisionAtK(ranked, relevant, k)
	recall := r.metrics.RecallAtK(ranked, relevant, k)
	mrr := r.metrics.MRR(ranked, relevant)

	return Result{
		ScenarioID:  scenario.ID,
		Description: scenario.Description,
		Ranked:      ranked,
		Precision:   precision,
		Recall:      recall,
		MRR:         mrr,
		Passed:      precision == 1.0 && recall == 1.0,
		DurationMS:  elapsed.Milliseconds(),
	}, nil
}

// WriteReport writes the report as indented JSON
func WriteReport(report *Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}

func filterScenarios(scenarios []Scenario, ids []string) []Scenario {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []Scenario
	for _, s := range scenarios {
		if want[s.ID] {
			out = append(out, s)
		}
	}
	return out
}

// memoryStore serves a scenario's fixed candidate pool and profile
type memoryStore struct {
	scenario Scenario
}

func newMemoryStore(scenario Scenario) *memoryStore {
	return &memoryStore{scenario: scenario}
}

func (m *memoryStore) AllPosts() ([]models.Post, error) {
	return m.scenario.Posts, nil
}

func (m *memoryStore) PostsByAuthor(authorID string) ([]models.Post, error) {
	var posts []models.Post
	for _, p := range m.scenario.Posts {
		if p.AuthorID == authorID {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (m *memoryStore) PostsByAuthors(authorIDs []string) ([]models.Post, error) {
	set := make(map[string]bool, len(authorIDs))
	for _, id := range authorIDs {
		set[id] = true
	}
	var posts []models.Post
	for _, p := range m.scenario.Posts {
		if set[p.AuthorID] {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (m *memoryStore) PostsLikedBy(userID string) ([]models.Post, error) {
	var posts []models.Post
	for _, p := range m.scenario.Posts {
		if p.LikedByUser(userID) {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (m *memoryStore) GetPost(postID string) (*models.Post, error) {
	for _, p := range m.scenario.Posts {
		if p.ID == postID {
			copied := p
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memoryStore) GetProfile(uid string) (*models.User, error) {
	if uid != m.scenario.User.UID {
		return nil, nil
	}
	copied := m.scenario.User
	return &copied, nil
}

func (m *memoryStore) SaveProfile(user *models.User) error {
	m.scenario.User = *user
	return nil
}

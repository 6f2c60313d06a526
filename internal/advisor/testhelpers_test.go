package advisor

import (
	"context"
	"sync"

	"github.com/jonathan/voca-career/internal/llm"
)

// stubClient is an llm.Client that returns a canned response
type stubClient struct {
	mu      sync.Mutex
	text    string
	err     error
	prompts []string
}

func (s *stubClient) Complete(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	return s.text, s.err
}

func (s *stubClient) Provider() llm.Provider { return "stub" }

func (s *stubClient) Close() error { return nil }

func (s *stubClient) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

const sampleRecommendation = `{
  "topCareer": {"title": "Biomedical Researcher", "alignment": 88, "emoji": "🔬"},
  "otherCareers": [
    {"title": "Doctor", "alignment": 82, "emoji": "🩺"},
    {"title": "Pharmacist", "alignment": 75, "emoji": "💊"},
    {"title": "Science Teacher", "alignment": 64, "emoji": "🧑‍🏫"}
  ],
  "skillsYouHave": ["Curiosity", "Biology fundamentals"],
  "skillsYouNeed": ["Lab techniques", "Statistics"],
  "skillsToImprove": ["Scientific writing"],
  "advice": "Focus on lab work in your final year. Look for summer research internships."
}`

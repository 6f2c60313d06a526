package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/voca-career/internal/advisor"
	"github.com/jonathan/voca-career/internal/llm"
)

const recommendationJSON = `{"topCareer":{"title":"Data Analyst","alignment":86,"emoji":"📊"},"otherCareers":[{"title":"Business Analyst","alignment":80,"emoji":"💼"},{"title":"Actuary","alignment":72,"emoji":"🧮"},{"title":"Teacher","alignment":60,"emoji":"🍎"}],"skillsYouHave":["Excel"],"skillsYouNeed":["SQL"],"skillsToImprove":["Statistics"],"advice":"Learn SQL next."}`

const fresherProfile = `{"userType":"fresher","formData":{"fullName":"Ravi","degree":"B.Com","graduationYear":2024,"skills":["Excel","Tally"],"projects":[],"certifications":[],"preferredRole":""}}`

// stubClient counts concurrent completions
type stubClient struct {
	mu       sync.Mutex
	inFlight int
	peak     int
	delay    time.Duration
	text     string
}

func (s *stubClient) Complete(ctx context.Context, _ string) (string, error) {
	s.mu.Lock()
	s.inFlight++
	s.peak = max(s.peak, s.inFlight)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}()

	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return s.text, nil
}

func (s *stubClient) Provider() llm.Provider { return "stub" }

func (s *stubClient) Close() error { return nil }

func writeProfile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadProfileRequest(t *testing.T) {
	dir := t.TempDir()
	path := writeProfile(t, dir, "fresher.json", fresherProfile)

	req, err := readProfileRequest(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "fresher", string(req.UserType))
	assert.Contains(t, string(req.FormData), `"Ravi"`)

	req, err = readProfileRequest("-", strings.NewReader(fresherProfile))
	require.NoError(t, err)
	assert.Equal(t, "fresher", string(req.UserType))

	_, err = readProfileRequest(filepath.Join(dir, "missing.json"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read profile file")

	bad := writeProfile(t, dir, "bad.json", `{"userType":`)
	_, err = readProfileRequest(bad, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse profile JSON")
}

func TestAdviseFiles(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeProfile(t, dir, "a.json", fresherProfile),
		writeProfile(t, dir, "b.json", `{"userType":"retiree","formData":{}}`),
		writeProfile(t, dir, "c.json", fresherProfile),
		filepath.Join(dir, "missing.json"),
		writeProfile(t, dir, "e.json", fresherProfile),
		writeProfile(t, dir, "f.json", fresherProfile),
	}

	client := &stubClient{text: recommendationJSON, delay: 20 * time.Millisecond}
	results, err := adviseFiles(context.Background(), nil, advisor.New(client), paths, 2)
	require.NoError(t, err)
	require.Len(t, results, len(paths))

	for i, res := range results {
		assert.Equal(t, paths[i], res.File)
	}
	assert.NotNil(t, results[0].Recommendation)
	assert.Contains(t, results[1].Error, "malformed profile")
	assert.Nil(t, results[1].Recommendation)
	assert.Contains(t, results[3].Error, "failed to read profile file")
	assert.Equal(t, "Data Analyst", results[5].Recommendation.TopCareer.Title)
	assert.Equal(t, 2, countFailed(results))

	assert.LessOrEqual(t, client.peak, 2)
}

func TestAdviseFiles_Cancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeProfile(t, dir, "a.json", fresherProfile)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := adviseFiles(ctx, nil, advisor.New(&stubClient{text: recommendationJSON}), []string{path, path}, 1)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestAdviseFiles_StdinOnlyOnce(t *testing.T) {
	client := &stubClient{text: recommendationJSON}

	_, err := adviseFiles(context.Background(), strings.NewReader(fresherProfile), advisor.New(client), []string{"-", "-"}, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most once")
	assert.Zero(t, client.peak)
}

func TestAdviseFiles_Stdin(t *testing.T) {
	results, err := adviseFiles(context.Background(), strings.NewReader(fresherProfile), advisor.New(&stubClient{text: recommendationJSON}), []string{"-"}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Error)
	assert.NotNil(t, results[0].Recommendation)
}

func TestPromptCommand(t *testing.T) {
	path := writeProfile(t, t.TempDir(), "fresher.json", fresherProfile)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"prompt", path})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	got := out.String()
	assert.True(t, strings.HasPrefix(got, "You are a career guidance AI."))
	assert.Contains(t, got, "Fresher Profile: Name: Ravi, Degree: B.Com, Graduation Year: 2024, Skills: Excel, Tally, Projects: None, Certifications: None, Preferred Role: Open")
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	for _, key := range []string{"VOCA_API_KEY", "LOVABLE_API_KEY", "GEMINI_API_KEY", "VOCA_MODEL"} {
		t.Setenv(key, "")
	}
	t.Setenv("VOCA_MODEL", "from-env")
	t.Cleanup(func() {
		flagAPIKey, flagModel = "", ""
	})

	require.NoError(t, rootCmd.ParseFlags([]string{"--model", "from-flag", "--api-key", " flag-key "}))

	cfg, err := loadConfig(rootCmd)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.Model)
	assert.Equal(t, "flag-key", cfg.APIKey)

	cfg, err = loadValidConfig(rootCmd)
	require.NoError(t, err)
	assert.Equal(t, "flag-key", cfg.LLM().APIKey)
}

func TestPromptCommand_VerboseContextOnly(t *testing.T) {
	path := writeProfile(t, t.TempDir(), "fresher.json", fresherProfile)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"prompt", "--context-only", "-v", path})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		verbose, promptContextOnly = false, false
	})

	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "Fresher Profile: Name: Ravi, Degree: B.Com, Graduation Year: 2024, Skills: Excel, Tally, Projects: None, Certifications: None, Preferred Role: Open\n", out.String())
	assert.Contains(t, errOut.String(), "FRESHER PROFILE")
}

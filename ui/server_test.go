package ui

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"agenteval/app"
	"agenteval/domain/core"
	"agenteval/domain/result"
)

func testOutput(t *testing.T) *app.RunOutput {
	t.Helper()
	rows := make([]result.Row, 3)
	for i := range rows {
		rows[i] = result.Row{
			result.IdentityColumn:     fmt.Sprintf("%d", i+1),
			"outputs.fluency.passing": i%2 == 0,
		}
	}
	res, err := result.New("agent-a", rows, "")
	if err != nil {
		t.Fatal(err)
	}
	return &app.RunOutput{
		Results:  map[core.AgentID]*result.EvaluationResult{"agent-a": res},
		Markdown: "## Agent evaluation\n\n| Evaluation score | agent-a |\n|:---|:---|\n",
	}
}

func TestServer_NoRunYet(t *testing.T) {
	server := NewServer("test")

	for _, path := range []string{"/", "/summary.md", "/reports/agent-a"} {
		w := httptest.NewRecorder()
		server.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, "path %s", path)
	}
}

func TestServer_SummaryHTML(t *testing.T) {
	server := NewServer("test")
	server.SetOutput(testOutput(t))

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "<h2")
	assert.Contains(t, w.Body.String(), "Agent evaluation")
	assert.Contains(t, w.Body.String(), "<table>")
}

func TestServer_RawMarkdown(t *testing.T) {
	server := NewServer("test")
	server.SetOutput(testOutput(t))

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/summary.md", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "## Agent evaluation")
}

func TestServer_Report(t *testing.T) {
	server := NewServer("test")
	server.SetOutput(testOutput(t))

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/agent-a", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"row_count":3`)

	w = httptest.NewRecorder()
	server.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/agent-x", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_Healthz(t *testing.T) {
	server := NewServer("test")

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

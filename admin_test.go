package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio-chat/chat"
)

func openTestAnalytics(t *testing.T) *Analytics {
	t.Helper()
	a, err := OpenAnalytics(filepath.Join(t.TempDir(), "data", "analytics.db"), newLogger(io.Discard, "error"))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestAnalytics_Stats(t *testing.T) {
	a := openTestAnalytics(t)

	a.TrackVisit("10.0.0.1", "curl", "/")
	a.TrackVisit("10.0.0.1", "curl", "/chat")
	a.TrackVisit("10.0.0.2", "firefox", "/")

	a.RecordChat(chat.Reply{Topic: chat.TopicAge, Matched: true, Source: chat.SourceFreeText})
	a.RecordChat(chat.Reply{Topic: chat.TopicAge, Matched: true, Source: chat.SourceFreeText})
	a.RecordChat(chat.Reply{Topic: chat.TopicHobbies, Matched: true, Source: chat.SourceSuggestion})
	a.RecordChat(chat.Reply{Source: chat.SourceFreeText})

	stats, err := a.Stats()
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.TotalVisitors)
	assert.EqualValues(t, 2, stats.UniqueVisitors)
	assert.EqualValues(t, 3, stats.VisitorsThisWeek)
	assert.EqualValues(t, 4, stats.TotalQuestions)
	assert.EqualValues(t, 1, stats.UnmatchedQuestions)

	require.NotEmpty(t, stats.TopTopics)
	assert.Equal(t, TopicStat{Topic: "age", Outcome: OutcomeMatched, Count: 2}, stats.TopTopics[0])
	assert.Len(t, stats.TopTopics, 3)

	require.Len(t, stats.RecentVisitors, 3)
	for _, v := range stats.RecentVisitors {
		assert.Len(t, v.HashedIP, 16)
		assert.NotEqual(t, "10.0.0.1", v.HashedIP)
		assert.WithinDuration(t, time.Now(), v.Timestamp, time.Hour)
	}
}

func TestAnalytics_HashIPIsStable(t *testing.T) {
	a := openTestAnalytics(t)
	assert.Equal(t, a.hashIP("1.2.3.4"), a.hashIP("1.2.3.4"))
	assert.NotEqual(t, a.hashIP("1.2.3.4"), a.hashIP("1.2.3.5"))
}

func TestAnalytics_CleanupRemovesOldRows(t *testing.T) {
	a := openTestAnalytics(t)

	_, err := a.db.Exec(`INSERT INTO visitors (hashed_ip, path, timestamp) VALUES ('old', '/', datetime('now', '-13 months'))`)
	require.NoError(t, err)
	a.TrackVisit("10.0.0.1", "curl", "/")

	a.Cleanup()

	visitors, err := a.RecentVisitors(10)
	require.NoError(t, err)
	require.Len(t, visitors, 1)
	assert.NotEqual(t, "old", visitors[0].HashedIP)
}

func TestVisitorTracking(t *testing.T) {
	a := openTestAnalytics(t)
	r := newTestServer(t, a, nil).router()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Eventually(t, func() bool {
		stats, err := a.Stats()
		return err == nil && stats.TotalVisitors == 1
	}, 2*time.Second, 20*time.Millisecond)
}

func TestChatIsRecorded(t *testing.T) {
	a := openTestAnalytics(t)
	r := newTestServer(t, a, nil).router()

	w := postForm(r, "/chat", url.Values{"message": {"What is your job?"}})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Eventually(t, func() bool {
		topics, err := a.TopTopics(5)
		return err == nil && len(topics) == 1 && topics[0].Topic == "occupation"
	}, 2*time.Second, 20*time.Millisecond)
}

func TestAdminLogin(t *testing.T) {
	r := newTestServer(t, openTestAnalytics(t), nil).router()

	// protected pages bounce to the login form
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/api/stats", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))

	w = postForm(r, "/admin/login", url.Values{"username": {"admin"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")

	w = postForm(r, "/admin/login", url.Values{"username": {"admin"}, "password": {"secret"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "admin_token", cookies[0].Name)

	for _, path := range []string{"/admin/dashboard", "/admin/visitors", "/admin/api/stats", "/admin/export/stats"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(cookies[0])
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/api/stats", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var stats AdminStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Zero(t, stats.TotalQuestions)
}

func TestAdminAuth_Valid(t *testing.T) {
	a := newAdminAuth("admin", "secret", newLogger(io.Discard, "error"))
	assert.True(t, a.valid("admin", "secret"))
	assert.False(t, a.valid("admin", "secre"))
	assert.False(t, a.valid("root", "secret"))
	assert.Len(t, a.token, 64)
}

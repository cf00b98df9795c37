package routers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/haierkeys/note-resource-service/internal/app"
	"github.com/haierkeys/note-resource-service/internal/dao"
	"github.com/haierkeys/note-resource-service/pkg/validator"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var testAssets = fstest.MapFS{
	"index.html":    {Data: []byte("<html>notes frontend</html>")},
	"assets/app.js": {Data: []byte("console.log('notes')")},
}

type testServer struct {
	router *gin.Engine
	logs   *observer.ObservedLogs
}

func newTestServer(t *testing.T, mutate func(cfg *app.AppConfig)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg, err := app.NewDefaultConfig()
	require.NoError(t, err)
	if mutate != nil {
		mutate(cfg)
	}

	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	store := dao.NewNoteStore(dao.WithSeed(dao.DefaultSeed()))
	a, err := app.NewApp(cfg, logger, store)
	require.NoError(t, err)

	uni, err := validator.Setup()
	require.NoError(t, err)

	return &testServer{router: NewRouter(testAssets, a, uni), logs: logs}
}

func (s *testServer) do(method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

var jsonHeader = map[string]string{"Content-Type": "application/json"}

func (s *testServer) requestLogCount() int {
	return s.logs.FilterMessage("request").Len()
}

func TestNotesScenario(t *testing.T) {
	tests := []struct {
		name           string
		deleteMode     string
		afterDeleteGet int
		afterDeleteLen int
	}{
		// 删除按数字 ID 比较，笔记 1 被删除
		{name: "strict delete", deleteMode: app.DeleteModeStrict, afterDeleteGet: http.StatusNotFound, afterDeleteLen: 3},
		// 旧行为：删除永远不匹配，笔记 1 仍然存在
		{name: "legacy delete", deleteMode: app.DeleteModeLegacy, afterDeleteGet: http.StatusOK, afterDeleteLen: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, func(cfg *app.AppConfig) { cfg.Notes.DeleteMode = tt.deleteMode })

			w := s.do(http.MethodGet, "/api/notes", "", nil)
			require.Equal(t, http.StatusOK, w.Code)
			var notes []map[string]any
			require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &notes))
			assert.Len(t, notes, 3)

			w = s.do(http.MethodPost, "/api/notes", `{"content":"test"}`, jsonHeader)
			require.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"id":4,"content":"test","important":false}`, w.Body.String())

			w = s.do(http.MethodGet, "/api/notes", "", nil)
			require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &notes))
			assert.Len(t, notes, 4)

			w = s.do(http.MethodPut, "/api/notes/2", "", nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"id":2,"content":"Browser can execute only JavaScript","important":true}`, w.Body.String())

			w = s.do(http.MethodDelete, "/api/notes/1", "", nil)
			assert.Equal(t, http.StatusNoContent, w.Code)
			assert.Empty(t, w.Body.String())

			w = s.do(http.MethodGet, "/api/notes/1", "", nil)
			assert.Equal(t, tt.afterDeleteGet, w.Code)

			w = s.do(http.MethodGet, "/api/notes", "", nil)
			require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &notes))
			assert.Len(t, notes, tt.afterDeleteLen)
		})
	}
}

func TestGetNote(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/api/notes/3", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":3,"content":"GET and POST are the most important methods of HTTP protocol","important":true}`, w.Body.String())

	for _, target := range []string{"/api/notes/99", "/api/notes/abc", "/api/notes/1.5"} {
		w = s.do(http.MethodGet, target, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code, target)
		assert.Empty(t, w.Body.String(), target)
	}
}

func TestDeleteNoteMissingIsNoContent(t *testing.T) {
	s := newTestServer(t, func(cfg *app.AppConfig) { cfg.Notes.DeleteMode = app.DeleteModeStrict })

	for _, target := range []string{"/api/notes/99", "/api/notes/abc"} {
		w := s.do(http.MethodDelete, target, "", nil)
		assert.Equal(t, http.StatusNoContent, w.Code, target)
		assert.Empty(t, w.Body.String(), target)
	}

	w := s.do(http.MethodGet, "/api/notes", "", nil)
	var notes []map[string]any
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &notes))
	assert.Len(t, notes, 3)
}

func TestTrailingSlashRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/api/notes/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var notes []map[string]any
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &notes))
	assert.Len(t, notes, 3)

	w = s.do(http.MethodPost, "/api/notes/", `{"content":"slash"}`, jsonHeader)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":4,"content":"slash","important":false}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/notes/1/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"content":"HTML is easy","important":true}`, w.Body.String())

	w = s.do(http.MethodPut, "/api/notes/2/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":2,"content":"Browser can execute only JavaScript","important":true}`, w.Body.String())

	w = s.do(http.MethodDelete, "/api/notes/4/", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/notes/4", "", nil).Code)
}

func TestToggleImportantTwiceRestores(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodPut, "/api/notes/1", "", nil)
	assert.JSONEq(t, `{"id":1,"content":"HTML is easy","important":false}`, w.Body.String())
	w = s.do(http.MethodPut, "/api/notes/1", "", nil)
	assert.JSONEq(t, `{"id":1,"content":"HTML is easy","important":true}`, w.Body.String())
}

func TestToggleImportantNotFound(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodPut, "/api/notes/99", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Note not found"}`, w.Body.String())

	w = s.do(http.MethodPut, "/api/notes/99?lang=zh", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"笔记不存在"}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/notes", "", nil)
	var notes []map[string]any
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &notes))
	assert.Len(t, notes, 3)
}

func TestCreateNoteValidation(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name    string
		body    string
		headers map[string]string
	}{
		{name: "missing content", body: `{"important":true}`, headers: jsonHeader},
		{name: "empty content", body: `{"content":""}`, headers: jsonHeader},
		{name: "empty object", body: `{}`, headers: jsonHeader},
		{name: "no body", body: "", headers: jsonHeader},
		{name: "malformed json", body: `{"content":`, headers: jsonHeader},
		{name: "array body", body: `[{"content":"x"}]`, headers: jsonHeader},
		{name: "not json content type", body: `{"content":"x"}`, headers: map[string]string{"Content-Type": "text/plain"}},
		{name: "content not a string", body: `{"content":42}`, headers: jsonHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/api/notes", tt.body, tt.headers)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"content missing"}`, w.Body.String())
		})
	}

	// 校验失败不会修改集合
	w := s.do(http.MethodGet, "/api/notes", "", nil)
	var notes []map[string]any
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &notes))
	assert.Len(t, notes, 3)
}

func TestCreateNoteImportantIsTruthy(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		body      string
		important bool
	}{
		{body: `{"content":"a","important":true}`, important: true},
		{body: `{"content":"b","important":"yes"}`, important: true},
		{body: `{"content":"c","important":1}`, important: true},
		{body: `{"content":"d","important":0}`, important: false},
		{body: `{"content":"e","important":""}`, important: false},
		{body: `{"content":"f","important":null}`, important: false},
		{body: `{"content":"g"}`, important: false},
	}

	for _, tt := range tests {
		w := s.do(http.MethodPost, "/api/notes", tt.body, jsonHeader)
		require.Equal(t, http.StatusOK, w.Code, tt.body)
		var note map[string]any
		require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &note))
		assert.Equal(t, tt.important, note["important"], tt.body)
	}
}

func TestHelloWorld(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<h1>Hello World</h1>", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestStaticAssetsShortCircuit(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/assets/app.js", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log('notes')", w.Body.String())
	assert.Equal(t, 0, s.requestLogCount(), "static hits never reach the request logger")

	// index.html 直接输出，不重定向到目录
	w = s.do(http.MethodGet, "/index.html", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<html>notes frontend</html>", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Empty(t, w.Header().Get("Location"))
	assert.Equal(t, 0, s.requestLogCount())

	s.do(http.MethodGet, "/api/notes", "", nil)
	assert.Equal(t, 1, s.requestLogCount())

	// 非 GET/HEAD 请求不会命中静态资源
	w = s.do(http.MethodPost, "/assets/app.js", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"unknown endpoint"}`, w.Body.String())
}

func TestRequestLoggerRecordsBody(t *testing.T) {
	s := newTestServer(t, nil)

	s.do(http.MethodPost, "/api/notes", `{"content":"logged"}`, jsonHeader)

	entries := s.logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, http.MethodPost, fields["method"])
	assert.Equal(t, "/api/notes", fields["path"])
	assert.Equal(t, map[string]any{"content": "logged"}, fields["body"])
}

func TestUnknownEndpoint(t *testing.T) {
	t.Run("attached", func(t *testing.T) {
		s := newTestServer(t, nil)
		w := s.do(http.MethodGet, "/nope", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"unknown endpoint"}`, w.Body.String())
	})

	t.Run("detached", func(t *testing.T) {
		s := newTestServer(t, func(cfg *app.AppConfig) {
			off := false
			cfg.Server.UnknownEndpoint = &off
		})
		w := s.do(http.MethodGet, "/nope", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "404 page not found", w.Body.String())
	})
}

func TestCors(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/api/notes", "", map[string]string{"Origin": "http://frontend.test"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = s.do(http.MethodOptions, "/api/notes", "", map[string]string{
		"Origin":                        "http://frontend.test",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.Equal(t, 1, s.requestLogCount(), "preflight ends before logging")

	// 同源或非浏览器请求不带 Origin，不输出 CORS 头
	w = s.do(http.MethodGet, "/api/notes", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestTraceHeader(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/api/notes", "", nil)
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))

	w = s.do(http.MethodGet, "/api/notes", "", map[string]string{"X-Trace-ID": "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get("X-Trace-ID"))
}

func TestRateLimiter(t *testing.T) {
	s := newTestServer(t, func(cfg *app.AppConfig) {
		cfg.Limiter.Enabled = true
		cfg.Limiter.FillInterval = 3600 * 1000
		cfg.Limiter.Capacity = 2
		cfg.Limiter.Quantum = 1
	})

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/notes", "", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/notes", "", nil).Code)

	w := s.do(http.MethodGet, "/api/notes", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"too many requests"}`, w.Body.String())

	// 其它路由模板使用独立的令牌桶
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/notes/1", "", nil).Code)
	// 带结尾斜杠的路径与不带斜杠的路径共用令牌桶
	assert.Equal(t, http.StatusTooManyRequests, s.do(http.MethodGet, "/api/notes/", "", nil).Code)
	// 站点根不限流
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/", "", nil).Code)
}

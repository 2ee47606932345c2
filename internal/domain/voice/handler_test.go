package voice

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartRequest(t *testing.T, audio []byte, language string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if audio != nil {
		part, err := w.CreateFormFile("file", "clip.webm")
		require.NoError(t, err)
		_, err = part.Write(audio)
		require.NoError(t, err)
	}
	if language != "" {
		require.NoError(t, w.WriteField("language", language))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/transcribe", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T", err)
	return he.Code
}

func TestHandler_Transcribe(t *testing.T) {
	srv, _ := whisperServer(t, http.StatusOK, map[string]interface{}{
		"segments": []Segment{{Text: "BP 130/90", AvgLogprob: -0.1}},
	})
	h := NewHandler(newTranscriber(srv.URL, "sk-test", nil), newExtractor(srv.URL, "", nil))
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(multipartRequest(t, make([]byte, 1024), "en"), rec)
	require.NoError(t, h.Transcribe(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var out TranscribeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "BP 130/90", out.Text)
}

func TestHandler_Transcribe_Rejections(t *testing.T) {
	h := NewHandler(newTranscriber("http://127.0.0.1:1", "sk-test", nil), newExtractor("http://127.0.0.1:1", "", nil))
	e := echo.New()

	tests := []struct {
		name     string
		audio    []byte
		language string
		want     int
	}{
		{"no file", nil, "en", http.StatusBadRequest},
		{"too small", make([]byte, 99), "en", http.StatusBadRequest},
		{"too large", make([]byte, MaxAudioBytes+1), "en", http.StatusRequestEntityTooLarge},
		{"unsupported language", make([]byte, 500), "fr", http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := e.NewContext(multipartRequest(t, tt.audio, tt.language), httptest.NewRecorder())
			err := h.Transcribe(c)
			require.Error(t, err)
			assert.Equal(t, tt.want, statusOf(t, err))
		})
	}
}

func TestHandler_Map(t *testing.T) {
	h := NewHandler(newTranscriber("", "", nil), newExtractor("http://127.0.0.1:1", "", nil))
	e := echo.New()

	call := func(section, body string) (*httptest.ResponseRecorder, error) {
		req := httptest.NewRequest(http.MethodPost, "/api/map/"+section, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("section")
		c.SetParamValues(section)
		return rec, h.Map(c)
	}

	rec, err := call("handover_summary", `{"text":"quiet night"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.NotEmpty(t, out)

	_, err = call("handover_summary", `{"text":"  "}`)
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))

	_, err = call("radiology", `{"text":"x"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))

	_, err = call("discharge", `{"text":`)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestHandler_ReferenceAndHealth(t *testing.T) {
	h := NewHandler(newTranscriber("", "", nil), newExtractor("", "", nil))
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/reference/discharge", nil), rec)
	c.SetParamNames("section")
	c.SetParamValues("discharge")
	require.NoError(t, h.Reference(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/api/reference/x", nil), httptest.NewRecorder())
	c.SetParamNames("section")
	c.SetParamValues("x")
	assert.Equal(t, http.StatusNotFound, statusOf(t, h.Reference(c)))

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/api/health/voice", nil), rec)
	require.NoError(t, h.Health(c))
	var health struct {
		Status        string `json:"status"`
		Transcription struct {
			Enabled bool   `json:"enabled"`
			Model   string `json:"model"`
		} `json:"transcription"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "degraded", health.Status)
	assert.False(t, health.Transcription.Enabled)
	assert.Equal(t, "whisper-1", health.Transcription.Model)
}

package api

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anvilwp_server/internal/errs"
	"anvilwp_server/internal/htmlconv"
	"anvilwp_server/internal/theme"
)

type fakeGenerator struct {
	reply []byte
	err   error
	ids   []string
}

func (f *fakeGenerator) GenerateThemeContent(_ context.Context, generationID, _ string) ([]byte, error) {
	f.ids = append(f.ids, generationID)
	return f.reply, f.err
}

type fakeInstaller struct {
	output   string
	err      error
	slug     string
	activate bool
}

func (f *fakeInstaller) Install(_ context.Context, b theme.Bundle, activate bool) (string, error) {
	f.slug, f.activate = b.Slug, activate
	return f.output, f.err
}

type response struct {
	Success      bool              `json:"success"`
	GenerationID string            `json:"generationId"`
	ThemeName    string            `json:"themeName"`
	ThemeSlug    string            `json:"themeSlug"`
	Files        map[string]string `json:"files"`
	Manifest     []struct {
		Filename string `json:"filename"`
		Type     string `json:"type"`
		Size     int    `json:"size"`
	} `json:"manifest"`
	ThemeData  map[string]any `json:"themeData"`
	ExportPath string         `json:"exportPath"`
	Error      string         `json:"error"`
	Details    string         `json:"details"`
}

var fixedClock = theme.WithClock(func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) })

func newRouter(h *APIHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, h)
	return r
}

func do(t *testing.T, r http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

const cafeAzul = `{"businessName":"Café Azul","businessType":"Restaurante","sections":["Hero","Contacto"]}`

func TestBuildThemeCafeAzul(t *testing.T) {
	r := newRouter(NewAPIHandler(nil, nil, theme.New(fixedClock), nil, ""))

	w := do(t, r, "/theme/build", cafeAzul)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode(t, w)

	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.GenerationID)
	assert.Equal(t, "Café Azul", resp.ThemeName)
	assert.Equal(t, "cafe-azul-wp", resp.ThemeSlug)
	assert.Len(t, resp.Files, 10)
	assert.Contains(t, resp.Files["templates/front-page.html"], `"slug":"cafe-azul-wp/contact"`)
	assert.Contains(t, resp.Files["parts/footer.html"], "© 2026 Café Azul")
	assert.Equal(t, "Café Azul", resp.ThemeData["businessName"])

	require.Len(t, resp.Manifest, 10)
	types := map[string]string{}
	for _, f := range resp.Manifest {
		types[f.Filename] = f.Type
		assert.Equal(t, len(resp.Files[f.Filename]), f.Size, f.Filename)
	}
	assert.Equal(t, "Pattern", types["patterns/hero.php"])
	assert.Equal(t, "TemplatePart", types["parts/header.html"])
	assert.Equal(t, "Template", types["templates/index.html"])
	assert.Equal(t, "JSON", types["theme.json"])
}

func TestBuildThemeRejectsInput(t *testing.T) {
	r := newRouter(NewAPIHandler(nil, nil, nil, nil, ""))

	tests := []struct {
		name, body, details string
	}{
		{"missing identity", `{"sections":["Hero"]}`, "businessName"},
		{"no known section", `{"businessName":"Café Azul","businessType":"Restaurante","sections":["Blog"]}`, "sections"},
		{"malformed body", `{"businessName":`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, "/theme/build", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
			assert.Contains(t, resp.Details, tt.details)
		})
	}
}

func TestGenerateTheme(t *testing.T) {
	gen := &fakeGenerator{reply: []byte(`{
		"businessName": "Estudio Sol",
		"hero": {"title": "Diseño que brilla", "cta": "Hablemos"},
		"features": {"items": []},
		"services": {"title": "Servicios", "items": [{"icon": "✦", "title": "Branding", "description": "Identidad"}]},
		"colors": {"primary": "#111111", "accent": "nope"}
	}`)}
	r := newRouter(NewAPIHandler(gen, nil, theme.New(fixedClock), nil, ""))

	w := do(t, r, "/theme/generate", `{"userMessage":"Un estudio de diseño en Sevilla"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode(t, w)

	require.Len(t, gen.ids, 1)
	assert.Equal(t, gen.ids[0], resp.GenerationID)
	assert.Equal(t, "estudio-sol-wp", resp.ThemeSlug)
	assert.Contains(t, resp.Files, "patterns/services.php")
	assert.NotContains(t, resp.Files, "patterns/features.php")
	assert.NotContains(t, resp.Files["templates/front-page.html"], "estudio-sol-wp/features")
	assert.Contains(t, resp.Files["theme.json"], `"#111111"`)
	assert.Contains(t, resp.Files["theme.json"], `"#3B82F6"`)

	colors, ok := resp.ThemeData["colors"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "#3B82F6", colors["accent"])
}

func TestGenerateThemeErrors(t *testing.T) {
	tests := []struct {
		name   string
		gen    ContentGenerator
		body   string
		status int
	}{
		{"missing message", &fakeGenerator{}, `{}`, http.StatusBadRequest},
		{"validation from generator", &fakeGenerator{err: &errs.ValidationError{Fields: map[string]string{"userMessage": "cannot be blank"}}}, `{"userMessage":" "}`, http.StatusBadRequest},
		{"upstream failure", &fakeGenerator{err: errs.Upstream("LLM request failed", errors.New("503"))}, `{"userMessage":"x"}`, http.StatusBadGateway},
		{"llm answered a non-object", &fakeGenerator{reply: []byte(`[1, 2]`)}, `{"userMessage":"x"}`, http.StatusBadGateway},
		{"no provider", nil, `{"userMessage":"x"}`, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(NewAPIHandler(tt.gen, nil, nil, nil, ""))
			w := do(t, r, "/theme/generate", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.False(t, decode(t, w).Success)
		})
	}
}

const landing = `<html><head><title>Estudio Lumen</title>
<script>tailwind.config = { theme: { extend: { colors: { "primary": "#13a4ec" } } } };</script>
<style>.hero { min-height: 80vh; }</style></head>
<body><nav><a href="/">Inicio</a></nav>
<section><h1>Luz para tus productos</h1></section>
<section><h2>Servicios</h2><p>Catálogo</p></section>
<footer><p>© Lumen</p></footer></body></html>`

func TestConvertTheme(t *testing.T) {
	r := newRouter(NewAPIHandler(nil, htmlconv.New(0), theme.New(fixedClock), nil, ""))

	body, err := json.Marshal(ConvertRequest{HTML: landing})
	require.NoError(t, err)
	w := do(t, r, "/theme/convert", string(body))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode(t, w)

	assert.Equal(t, "estudio-lumen-wp", resp.ThemeSlug)
	assert.Contains(t, resp.Files, "patterns/hero.php")
	assert.Contains(t, resp.Files, "patterns/servicios.php")
	assert.Contains(t, resp.Files["parts/header.html"], `<a href="/">Inicio</a>`)
	assert.Contains(t, resp.Files["assets/css/theme.css"], ".hero { min-height: 80vh; }")
	assert.Nil(t, resp.ThemeData)
}

func TestConvertThemeRejectsInput(t *testing.T) {
	r := newRouter(NewAPIHandler(nil, htmlconv.New(64), nil, nil, ""))

	w := do(t, r, "/theme/convert", `{"html":"<p>sin estructura</p>"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w).Details, "html")

	big, err := json.Marshal(ConvertRequest{HTML: landing})
	require.NoError(t, err)
	w = do(t, r, "/theme/convert", string(big))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestZipFormat(t *testing.T) {
	r := newRouter(NewAPIHandler(nil, nil, theme.New(fixedClock), nil, ""))

	w := do(t, r, "/theme/build?format=zip", cafeAzul)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="cafe-azul-wp.zip"`, w.Header().Get("Content-Disposition"))
	assert.NotEmpty(t, w.Header().Get("X-Generation-Id"))

	data := w.Body.Bytes()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Len(t, zr.File, 10)
	for _, f := range zr.File {
		assert.True(t, strings.HasPrefix(f.Name, "cafe-azul-wp/"), f.Name)
	}
}

func TestExportDir(t *testing.T) {
	dir := t.TempDir()
	r := newRouter(NewAPIHandler(nil, nil, theme.New(fixedClock), nil, dir))

	w := do(t, r, "/theme/build", cafeAzul)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode(t, w)

	want := filepath.Join(dir, resp.GenerationID, "cafe-azul-wp")
	assert.Equal(t, want, resp.ExportPath)
	got, err := os.ReadFile(filepath.Join(want, "theme.json"))
	require.NoError(t, err)
	assert.Equal(t, resp.Files["theme.json"], string(got))
}

func TestPreviewTheme(t *testing.T) {
	h := NewAPIHandler(nil, nil, nil, nil, "")
	h.now = func() time.Time { return time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC) }
	r := newRouter(h)

	w := do(t, r, "/theme/preview", `{"businessName":"Café Azul","hero":{"title":"Hola"}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<title>Café Azul</title>")
	assert.Contains(t, w.Body.String(), "© 2031 Café Azul")

	w = do(t, r, "/theme/preview", `["no", "es", "un", "objeto"]`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, decode(t, w).Success)
}

func TestInstallTheme(t *testing.T) {
	w := do(t, newRouter(NewAPIHandler(nil, nil, nil, nil, "")), "/theme/install", cafeAzul)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	inst := &fakeInstaller{output: "Success: Installed 1 of 1 themes."}
	r := newRouter(NewAPIHandler(nil, nil, theme.New(fixedClock), inst, ""))
	body := strings.TrimSuffix(cafeAzul, "}") + `,"activate":true}`
	w = do(t, r, "/theme/install", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp InstallResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Activated)
	assert.Equal(t, "cafe-azul-wp", resp.ThemeSlug)
	assert.Equal(t, "cafe-azul-wp", inst.slug)
	assert.True(t, inst.activate)

	failing := &fakeInstaller{err: errs.Upstream("wp theme install failed", fmt.Errorf("exit status 1"))}
	w = do(t, newRouter(NewAPIHandler(nil, nil, nil, failing, "")), "/theme/install", cafeAzul)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestHealth(t *testing.T) {
	r := newRouter(NewAPIHandler(nil, nil, nil, nil, ""))
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{&errs.ValidationError{}, http.StatusBadRequest},
		{errs.Parse(errs.SourceHTML, "no sections", nil), http.StatusBadRequest},
		{errs.Parse(errs.SourceLLM, "invalid JSON", nil), http.StatusBadGateway},
		{fmt.Errorf("wrapped: %w", errs.Upstream("timeout", nil)), http.StatusBadGateway},
		{errs.Generation("invalid colors", nil), http.StatusInternalServerError},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		status, message := classify(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.NotEmpty(t, message)
	}
}

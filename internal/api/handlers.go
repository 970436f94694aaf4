package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"anvilwp_server/internal/content"
	"anvilwp_server/internal/errs"
	"anvilwp_server/internal/htmlconv"
	"anvilwp_server/internal/preview"
	"anvilwp_server/internal/publish"
	"anvilwp_server/internal/theme"
	"anvilwp_server/internal/types"
	"anvilwp_server/internal/utils"
)

// ContentGenerator produces theme content JSON from a free-text request.
type ContentGenerator interface {
	GenerateThemeContent(ctx context.Context, generationID, userMessage string) ([]byte, error)
}

// ThemeInstaller installs a bundle into a WordPress site.
type ThemeInstaller interface {
	Install(ctx context.Context, b theme.Bundle, activate bool) (string, error)
}

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	generator ContentGenerator
	converter *htmlconv.Converter
	assembler *theme.Assembler
	installer ThemeInstaller // nil disables /theme/install
	exportDir string         // bundles are also written here when set
	now       func() time.Time
}

// NewAPIHandler initializes a new API handler with its dependencies.
func NewAPIHandler(
	generator ContentGenerator,
	converter *htmlconv.Converter,
	assembler *theme.Assembler,
	installer ThemeInstaller,
	exportDir string,
) *APIHandler {
	if converter == nil {
		converter = htmlconv.New(0)
	}
	if assembler == nil {
		assembler = theme.New()
	}
	return &APIHandler{
		generator: generator,
		converter: converter,
		assembler: assembler,
		installer: installer,
		exportDir: exportDir,
		now:       time.Now,
	}
}

// --- Structs for API Requests/Responses ---

type GenerateRequest struct {
	UserMessage string `json:"userMessage" binding:"required"`
}

type ConvertRequest struct {
	HTML string `json:"html" binding:"required"`
}

type InstallRequest struct {
	content.FormInput
	Activate bool `json:"activate"`
}

type ThemeResponse struct {
	Success      bool                  `json:"success"`
	GenerationID string                `json:"generationId"`
	ThemeName    string                `json:"themeName"`
	ThemeSlug    string                `json:"themeSlug"`
	Files        map[string]string     `json:"files"`
	Manifest     []types.GeneratedFile `json:"manifest"`
	ThemeData    *content.Site         `json:"themeData,omitempty"`
	ExportPath   string                `json:"exportPath,omitempty"`
}

type InstallResponse struct {
	Success      bool   `json:"success"`
	GenerationID string `json:"generationId"`
	ThemeSlug    string `json:"themeSlug"`
	Activated    bool   `json:"activated"`
	Output       string `json:"output"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// --- API Handlers ---

// POST /theme/generate
func (h *APIHandler) GenerateTheme(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	generationID := uuid.NewString()
	log.Printf("Info: generation %s: LLM mode request (%d chars)", generationID, len(req.UserMessage))

	if h.generator == nil {
		h.fail(c, generationID, errs.Upstream("no LLM provider configured", nil))
		return
	}
	raw, err := h.generator.GenerateThemeContent(c.Request.Context(), generationID, req.UserMessage)
	if err != nil {
		h.fail(c, generationID, err)
		return
	}
	site, err := content.FromLLM(raw)
	if err != nil {
		h.fail(c, generationID, err)
		return
	}
	b, err := h.assembler.AssembleSite(site)
	if err != nil {
		h.fail(c, generationID, err)
		return
	}
	h.respondBundle(c, generationID, b, &site)
}

// POST /theme/build
func (h *APIHandler) BuildTheme(c *gin.Context) {
	var req content.FormInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	generationID := uuid.NewString()
	log.Printf("Info: generation %s: form mode request for %q", generationID, req.BusinessName)

	site, err := content.FromForm(req)
	if err != nil {
		h.fail(c, generationID, err)
		return
	}
	b, err := h.assembler.AssembleSite(site)
	if err != nil {
		h.fail(c, generationID, err)
		return
	}
	h.respondBundle(c, generationID, b, &site)
}

// POST /theme/convert
func (h *APIHandler) ConvertTheme(c *gin.Context) {
	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	generationID := uuid.NewString()
	log.Printf("Info: generation %s: HTML mode request (%d bytes)", generationID, len(req.HTML))

	res, err := h.converter.Convert(req.HTML)
	if err != nil {
		h.fail(c, generationID, err)
		return
	}
	site := res.Site
	b, err := h.assembler.AssembleWith(res.Overrides(), site.Profile, site.Colors, site.Hero, site.Sections, "")
	if err != nil {
		h.fail(c, generationID, err)
		return
	}
	h.respondBundle(c, generationID, b, nil)
}

// POST /theme/preview
func (h *APIHandler) PreviewTheme(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		h.badRequest(c, err)
		return
	}
	site, err := content.FromLLM(raw)
	if err != nil {
		// The body comes from the client here, so a bad payload is a 400.
		h.fail(c, "", &errs.ValidationError{Fields: map[string]string{"body": "must be a JSON object"}, Cause: err})
		return
	}
	page, err := preview.Render(site, h.now())
	if err != nil {
		h.fail(c, "", errs.Generation("rendering preview", err))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// POST /theme/install
func (h *APIHandler) InstallTheme(c *gin.Context) {
	if h.installer == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   "Theme installation is not configured",
			Details: "set WP_CLI_PATH and WP_PATH",
		})
		return
	}
	var req InstallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	generationID := uuid.NewString()
	site, err := content.FromForm(req.FormInput)
	if err != nil {
		h.fail(c, generationID, err)
		return
	}
	b, err := h.assembler.AssembleSite(site)
	if err != nil {
		h.fail(c, generationID, err)
		return
	}
	output, err := h.installer.Install(c.Request.Context(), b, req.Activate)
	if err != nil {
		h.fail(c, generationID, err)
		return
	}

	log.Printf("Info: generation %s: installed theme %s", generationID, b.Slug)
	c.JSON(http.StatusOK, InstallResponse{
		Success:      true,
		GenerationID: generationID,
		ThemeSlug:    b.Slug,
		Activated:    req.Activate,
		Output:       output,
	})
}

// --- Helpers ---

// respondBundle exports the bundle when configured and writes it as JSON,
// or as a zip archive with ?format=zip.
func (h *APIHandler) respondBundle(c *gin.Context, generationID string, b theme.Bundle, site *content.Site) {
	var exportPath string
	if h.exportDir != "" {
		dir, err := publish.WriteDir(filepath.Join(h.exportDir, generationID), b)
		if err != nil {
			h.fail(c, generationID, fmt.Errorf("exporting theme: %w", err))
			return
		}
		exportPath = dir
	}

	log.Printf("Info: generation %s: theme %s ready with %d files", generationID, b.Slug, b.Len())

	if c.Query("format") == "zip" {
		data, err := publish.ZipBytes(b)
		if err != nil {
			h.fail(c, generationID, fmt.Errorf("packing theme: %w", err))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.zip"`, b.Slug))
		c.Header("X-Generation-Id", generationID)
		c.Data(http.StatusOK, "application/zip", data)
		return
	}

	c.JSON(http.StatusCreated, ThemeResponse{
		Success:      true,
		GenerationID: generationID,
		ThemeName:    b.Name,
		ThemeSlug:    b.Slug,
		Files:        b.Files(),
		Manifest:     manifest(b),
		ThemeData:    site,
		ExportPath:   exportPath,
	})
}

func manifest(b theme.Bundle) []types.GeneratedFile {
	paths := b.Paths()
	files := make([]types.GeneratedFile, 0, len(paths))
	for _, p := range paths {
		body, _ := b.Get(p)
		files = append(files, types.GeneratedFile{
			Filename: p,
			Type:     utils.DetermineFileType(p),
			Size:     len(body),
		})
	}
	return files
}

func (h *APIHandler) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
}

// fail maps err onto a status code and a user-facing message.
func (h *APIHandler) fail(c *gin.Context, generationID string, err error) {
	status, message := classify(err)
	if status >= http.StatusInternalServerError {
		log.Printf("ERROR: generation %s: %v", generationID, err)
	} else {
		log.Printf("WARN: generation %s: %v", generationID, err)
	}
	c.JSON(status, ErrorResponse{Error: message, Details: err.Error()})
}

func classify(err error) (int, string) {
	var parseErr *errs.ParseError
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest, "Invalid request"
	case errors.As(err, &parseErr) && parseErr.Source == errs.SourceHTML:
		return http.StatusBadRequest, "The HTML could not be parsed"
	case errors.Is(err, errs.ErrParse):
		return http.StatusBadGateway, "The generated content could not be parsed"
	case errors.Is(err, errs.ErrUpstream):
		return http.StatusBadGateway, "Theme content generation failed"
	case errors.Is(err, errs.ErrGeneration):
		return http.StatusInternalServerError, "Theme assembly failed"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

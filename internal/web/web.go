// Package web serves the browser front end for the reciprocity backend.
//
// Routes
//
//	GET  /         → upload form
//	POST /analyze  → runs a [tasks.Submission] against the configured backend, renders both lists or the error
//	POST /export   → echoes the lists back as result.csv
//
// The page holds the result only in its own markup; the export form posts the usernames back as repeated
// not_following_back and not_followed_by fields, so nothing is stored server side.
package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/followback/internal/formatter"
	"github.com/desertthunder/followback/internal/models"
	"github.com/desertthunder/followback/internal/server"
	"github.com/desertthunder/followback/internal/services"
	"github.com/desertthunder/followback/internal/tasks"
)

//go:embed templates/*.html
var templateFS embed.FS

// multipartMemory is how much of a multipart body is held in memory before spilling to temp files.
const multipartMemory = 8 << 20

var funcs = template.FuncMap{
	"list": func(items ...any) []any { return items },
	"plural": func(n int, one, many string) string {
		if n == 1 {
			return one
		}
		return many
	},
}

// page is the data rendered by index.html.
type page struct {
	Result  *models.AnalysisResult
	Message string
}

// App holds the front end's dependencies.
type App struct {
	analyzer services.Analyzer
	logger   *log.Logger
	tmpl     *template.Template
	maxBytes int64
}

// NewApp parses the embedded templates. maxBytes <= 0 leaves form uploads unbounded.
func NewApp(analyzer services.Analyzer, logger *log.Logger, maxBytes int64) (*App, error) {
	tmpl, err := template.New("index.html").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &App{analyzer: analyzer, logger: logger, tmpl: tmpl, maxBytes: maxBytes}, nil
}

// Router registers the front end routes behind the access log middleware.
func (a *App) Router() *server.BasicRouter {
	router := server.NewBasicRouter()
	router.Use(server.WithLogger(a.logger))
	router.Handle(http.MethodGet, "/", http.HandlerFunc(a.index))
	router.Handle(http.MethodPost, "/analyze", http.HandlerFunc(a.analyze))
	router.Handle(http.MethodPost, "/export", http.HandlerFunc(a.export))
	return router
}

func (a *App) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	a.render(w, http.StatusOK, page{})
}

func (a *App) analyze(w http.ResponseWriter, r *http.Request) {
	if a.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, a.maxBytes)
	}

	submission := tasks.NewSubmission(a.analyzer, a.logger)

	if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		a.logger.Warn("failed to parse form", "error", err)
		a.render(w, http.StatusBadRequest, page{Message: tasks.ErrorMessage(err)})
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	followers, err := readUpload(r, services.FollowersField)
	if err != nil {
		a.render(w, http.StatusBadRequest, page{Message: tasks.ErrorMessage(err)})
		return
	}
	following, err := readUpload(r, services.FollowingField)
	if err != nil {
		a.render(w, http.StatusBadRequest, page{Message: tasks.ErrorMessage(err)})
		return
	}

	submission.SetFollowers(followers)
	submission.SetFollowing(following)
	_, _ = submission.Submit(r.Context())

	snap := submission.Snapshot()
	a.render(w, http.StatusOK, page{Result: snap.Result, Message: snap.Message})
}

func (a *App) export(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	result := &models.AnalysisResult{
		NotFollowingBack: r.PostForm["not_following_back"],
		NotFollowedBy:    r.PostForm["not_followed_by"],
	}

	data, err := formatter.ExportToCSV(result)
	if err != nil {
		a.logger.Error("failed to export CSV", "error", err)
		http.Error(w, "Export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", formatter.DefaultCSVFilename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (a *App) render(w http.ResponseWriter, status int, p page) {
	var buf bytes.Buffer
	if err := a.tmpl.ExecuteTemplate(&buf, "index.html", p); err != nil {
		a.logger.Error("failed to render page", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// readUpload buffers one form file. A missing field yields a nil upload.
func readUpload(r *http.Request, field string) (*models.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	return bufferFile(files[0])
}

func bufferFile(fh *multipart.FileHeader) (*models.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
	}
	return models.NewUpload(fh.Filename, data), nil
}

package api

import (
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/socialchef/sous/internal/config"
	apperrors "github.com/socialchef/sous/internal/errors"
	"github.com/socialchef/sous/internal/language"
	"github.com/socialchef/sous/internal/middleware"
	"github.com/socialchef/sous/internal/services/recipe"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

const (
	infoMessage    = "Generating recipe... Please wait."
	successMessage = "Recipe generated successfully!"
)

type Server struct {
	cfg     *config.Config
	recipes *recipe.Service
}

func NewServer(cfg *config.Config, recipes *recipe.Service) *Server {
	return &Server{
		cfg:     cfg,
		recipes: recipes,
	}
}

type pageData struct {
	Title       string
	Ingredients string
	Languages   []language.Language
	Selected    string
	Info        string
	Success     string
	Error       string
	Suggestion  string
	ConfigError string
	Disabled    bool
	Recipe      string
	RecipeLang  language.Language
}

func (s *Server) newPage() pageData {
	p := pageData{
		Title:     "AI-Based Recipe Generator",
		Languages: language.All(),
		Selected:  language.Default.Key,
		Info:      infoMessage,
	}
	if cfgErr := s.recipes.ConfigurationError(); cfgErr != nil {
		p.ConfigError = cfgErr.Message
		p.Disabled = true
	}
	return p
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, p pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, p); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render page", "error", err.Error())
	}
}

// HandleIndex renders the empty form.
func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, s.newPage())
}

// HandleGenerateForm runs a flow from the HTML form and re-renders the page with the outcome.
func (s *Server) HandleGenerateForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	p := s.newPage()
	p.Ingredients = r.PostFormValue("ingredients")
	if lang := r.PostFormValue("language"); lang != "" {
		p.Selected = lang
	}

	result, err := s.recipes.Run(r.Context(), middleware.FlowKey(r.Context()), recipe.Request{
		Ingredients: p.Ingredients,
		Language:    p.Selected,
	})
	if err != nil {
		appErr := toAppError(err)
		p.Error = appErr.Message
		p.Suggestion = appErr.Recovery
		s.render(w, r, appErr.StatusCode, p)
		return
	}

	p.Success = successMessage
	p.Recipe = result.Recipe
	p.RecipeLang = result.Language
	s.render(w, r, http.StatusOK, p)
}

type GenerateRecipeRequest struct {
	Ingredients string `json:"ingredients"`
	Language    string `json:"language"`
}

type GenerateRecipeResponse struct {
	Recipe     string `json:"recipe"`
	Language   string `json:"language"`
	Translated bool   `json:"translated"`
}

// HandleGenerateJSON is the JSON form of HandleGenerateForm.
func (s *Server) HandleGenerateJSON(w http.ResponseWriter, r *http.Request) {
	var req GenerateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidationError("Invalid request body", "INVALID_BODY", "Send a JSON object with ingredients and language."))
		return
	}

	result, err := s.recipes.Run(r.Context(), middleware.FlowKey(r.Context()), recipe.Request{
		Ingredients: req.Ingredients,
		Language:    req.Language,
	})
	if err != nil {
		writeError(w, toAppError(err))
		return
	}

	writeJSON(w, http.StatusOK, GenerateRecipeResponse{
		Recipe:     result.Recipe,
		Language:   result.Language.Key,
		Translated: result.Translated,
	})
}

type LanguagesResponse struct {
	Default   string              `json:"default"`
	Languages []language.Language `json:"languages"`
}

func (s *Server) HandleLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LanguagesResponse{
		Default:   language.Default.Key,
		Languages: language.All(),
	})
}

func toAppError(err error) *apperrors.AppError {
	if appErr, ok := apperrors.As(err); ok {
		return appErr
	}
	return apperrors.NewInternalError("Something went wrong. Please try again.", err)
}

func writeError(w http.ResponseWriter, appErr *apperrors.AppError) {
	writeJSON(w, appErr.StatusCode, appErr)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

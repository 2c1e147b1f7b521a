package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/pep299/company-news-api/internal/news"
	"github.com/pep299/company-news-api/internal/transport/response"
)

// companyNewsRequest is the POST body for a Naver search
type companyNewsRequest struct {
	CompanyName string `json:"company_name"`
	Display     *int   `json:"display"`
	Start       *int   `json:"start"`
}

// deepSearchNewsRequest is the POST body for a DeepSearch search
type deepSearchNewsRequest struct {
	CompanyName string `json:"company_name"`
	Limit       *int   `json:"limit"`
	DaysBack    *int   `json:"days_back"`
}

// rootHandler describes the service
func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":  s.config.AppName + " 서비스입니다. /api/v1 아래의 엔드포인트를 사용하세요.",
		"version":  s.config.AppVersion,
		"api_base": "/api/v1",
	})
}

// healthHandler provides health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"message":   "서비스가 정상적으로 작동 중입니다.",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// companyNewsPostHandler searches Naver with a JSON body
func (s *Server) companyNewsPostHandler(w http.ResponseWriter, r *http.Request) {
	var req companyNewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteUnprocessable(w, "invalid request body: "+err.Error())
		return
	}

	q, err := news.NewNaverQuery(req.CompanyName,
		intOrDefault(req.Display, news.DefaultNaverDisplay),
		intOrDefault(req.Start, news.DefaultNaverStart))
	if err != nil {
		response.WriteNewsError(w, err)
		return
	}

	s.writeSingle(w, r, news.ProviderNaver, q)
}

// companyNewsGetHandler searches Naver with path and query parameters
func (s *Server) companyNewsGetHandler(w http.ResponseWriter, r *http.Request) {
	display, err := queryInt(r, "display", news.DefaultNaverDisplay)
	if err != nil {
		response.WriteNewsError(w, err)
		return
	}
	start, err := queryInt(r, "start", news.DefaultNaverStart)
	if err != nil {
		response.WriteNewsError(w, err)
		return
	}

	q, err := news.NewNaverQuery(mux.Vars(r)["company_name"], display, start)
	if err != nil {
		response.WriteNewsError(w, err)
		return
	}

	s.writeSingle(w, r, news.ProviderNaver, q)
}

// deepSearchPostHandler searches DeepSearch with a JSON body
func (s *Server) deepSearchPostHandler(w http.ResponseWriter, r *http.Request) {
	var req deepSearchNewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteUnprocessable(w, "invalid request body: "+err.Error())
		return
	}

	q, err := news.NewDeepSearchQuery(req.CompanyName,
		intOrDefault(req.Limit, news.DefaultDeepSearchLimit),
		intOrDefault(req.DaysBack, news.DefaultDeepSearchDaysBack))
	if err != nil {
		response.WriteNewsError(w, err)
		return
	}

	s.writeSingle(w, r, news.ProviderDeepSearch, q)
}

// deepSearchGetHandler searches DeepSearch with path and query parameters
func (s *Server) deepSearchGetHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", news.DefaultDeepSearchLimit)
	if err != nil {
		response.WriteNewsError(w, err)
		return
	}
	daysBack, err := queryInt(r, "days_back", news.DefaultDeepSearchDaysBack)
	if err != nil {
		response.WriteNewsError(w, err)
		return
	}

	q, err := news.NewDeepSearchQuery(mux.Vars(r)["company_name"], limit, daysBack)
	if err != nil {
		response.WriteNewsError(w, err)
		return
	}

	s.writeSingle(w, r, news.ProviderDeepSearch, q)
}

// combinedNewsHandler searches both providers
func (s *Server) combinedNewsHandler(w http.ResponseWriter, r *http.Request) {
	company := mux.Vars(r)["company_name"]

	naverLimit, err := queryInt(r, "naver_limit", news.DefaultCombinedNaverLimit)
	if err != nil {
		response.WriteNewsError(w, err)
		return
	}
	deepLimit, err := queryInt(r, "deepsearch_limit", news.DefaultCombinedDeepLimit)
	if err != nil {
		response.WriteNewsError(w, err)
		return
	}
	daysBack, err := queryInt(r, "deepsearch_days_back", news.DefaultCombinedDaysBack)
	if err != nil {
		response.WriteNewsError(w, err)
		return
	}

	// Out-of-range parameters are a 422 here, before any provider is called,
	// rather than an aggregation failure (500) from FetchCombined
	if _, err := news.NewNaverQuery(company, naverLimit, news.DefaultNaverStart); err != nil {
		response.WriteNewsError(w, renameField(err, "display", "naver_limit"))
		return
	}
	if _, err := news.NewDeepSearchQuery(company, deepLimit, daysBack); err != nil {
		err = renameField(err, "limit", "deepsearch_limit")
		response.WriteNewsError(w, renameField(err, "days_back", "deepsearch_days_back"))
		return
	}

	report, err := s.aggregator.FetchCombined(r.Context(), company, naverLimit, deepLimit, daysBack)
	if err != nil {
		response.WriteNewsError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, report)
}

func (s *Server) writeSingle(w http.ResponseWriter, r *http.Request, provider string, q news.Query) {
	result, err := s.aggregator.FetchSingle(r.Context(), provider, q)
	if err != nil {
		response.WriteNewsError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, result)
}

// queryInt reads an optional integer query parameter
func queryInt(r *http.Request, name string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &news.ValidationError{Field: name, Message: "must be an integer"}
	}
	return value, nil
}

func intOrDefault(v *int, defaultValue int) int {
	if v == nil {
		return defaultValue
	}
	return *v
}

// renameField reports a validation error under the parameter name the caller used
func renameField(err error, from, to string) error {
	if validationErr, ok := err.(*news.ValidationError); ok && validationErr.Field == from {
		return &news.ValidationError{Field: to, Message: validationErr.Message}
	}
	return err
}

package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"fjacquet/customer-grouper/internal/logging"
	"fjacquet/customer-grouper/internal/models"
	"fjacquet/customer-grouper/internal/segerror"
	"fjacquet/customer-grouper/internal/validation"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// predictResponse is the payload of a successful API prediction.
type predictResponse struct {
	models.Assignment
	Customer models.Customer `json:"customer"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondData(w, map[string]interface{}{
		"status":   "ok",
		"segments": s.segmenter.Catalog().Len(),
	})
}

func (s *Server) handleSegments(w http.ResponseWriter, _ *http.Request) {
	s.respondData(w, s.segmenter.Catalog().Segments())
}

func (s *Server) handleAPIPredict(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req predictRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.metrics.observeError(errKindBadRequest)
		s.respondError(w, http.StatusBadRequest, CodeInvalidJSON, fmt.Sprintf("invalid request body: %v", err), nil)
		return
	}

	if err := validation.ValidateStruct(req); err != nil {
		s.metrics.observeError(errKindValidation)
		var verr *validation.RequestValidationError
		if errors.As(err, &verr) {
			s.respondError(w, http.StatusBadRequest, CodeValidationError, "customer failed validation", verr.Fields)
			return
		}
		s.respondError(w, http.StatusBadRequest, CodeValidationError, err.Error(), nil)
		return
	}
	customer := req.customer()

	assignment, err := s.segmenter.Assign(r.Context(), customer)
	if err != nil {
		status, code := s.classify(err)
		s.respondError(w, status, code, err.Error(), nil)
		return
	}

	if project, _ := strconv.ParseBool(r.URL.Query().Get("project")); project {
		coords, err := s.segmenter.Project(customer)
		if err != nil {
			s.logger.WithError(err).Warn("Projection unavailable")
		} else {
			assignment.Projection = coords
		}
	}

	s.metrics.observePrediction(assignment.ClusterID, assignment.Label)
	s.respondData(w, predictResponse{Assignment: assignment, Customer: customer})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.renderPage(w, http.StatusOK, newPageData(models.DefaultCustomer()))
}

func (s *Server) handleFormPredict(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		s.metrics.observeError(errKindBadRequest)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	customer, problems := parseCustomerForm(r)
	data := newPageData(customer)
	data.Form = formValues(r)

	if len(problems) == 0 {
		if err := validation.ValidateStruct(customer); err != nil {
			problems = append(problems, splitMessages(err)...)
		}
	}
	if len(problems) > 0 {
		s.metrics.observeError(errKindValidation)
		data.Errors = problems
		s.renderPage(w, http.StatusBadRequest, data)
		return
	}

	assignment, err := s.segmenter.Assign(r.Context(), customer)
	if err != nil {
		status, _ := s.classify(err)
		data.Errors = []string{err.Error()}
		s.renderPage(w, status, data)
		return
	}

	s.metrics.observePrediction(assignment.ClusterID, assignment.Label)
	data.Result = &assignment
	s.renderPage(w, http.StatusOK, data)
}

// classify maps an Assign error to an HTTP status and API code, and counts it.
func (s *Server) classify(err error) (int, string) {
	var invalid *segerror.InvalidCustomerError
	switch {
	case errors.Is(err, segerror.ErrUnknownCluster):
		s.metrics.observeError(errKindMetadataMismatch)
		s.logger.WithError(err).Error("Segment metadata does not match the model")
		return http.StatusInternalServerError, CodeMetadataMismatch
	case errors.As(err, &invalid):
		s.metrics.observeError(errKindValidation)
		return http.StatusBadRequest, CodeValidationError
	default:
		s.metrics.observeError(errKindInternal)
		s.logger.WithError(err).Error("Prediction failed")
		return http.StatusInternalServerError, CodeInternalError
	}
}

func (s *Server) renderPage(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := s.page.ExecuteTemplate(&buf, "index.html", data); err != nil {
		s.logger.WithError(err).Error("Failed to render dashboard")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Warn("Failed to write dashboard",
			logging.Field{Key: logging.FieldError, Value: err.Error()})
	}
}

// parseCustomerForm reads the dashboard form. Values that cannot be parsed are
// reported as problems; range checks happen afterwards in validation.
func parseCustomerForm(r *http.Request) (models.Customer, []string) {
	var (
		c        models.Customer
		problems []string
	)

	intField := func(name string, dst *int) {
		v, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue(name)))
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s must be a whole number", name))
			return
		}
		*dst = v
	}

	intField("age", &c.Age)
	intField("annual_income", &c.AnnualIncome)
	intField("spending_score", &c.SpendingScore)
	intField("credit_score", &c.CreditScore)
	intField("loyalty_years", &c.LoyaltyYears)

	savings, err := decimal.NewFromString(strings.TrimSpace(r.PostFormValue("estimated_savings")))
	if err != nil {
		problems = append(problems, "estimated_savings must be a number")
	} else {
		c.EstimatedSavings = savings
	}

	if g, err := models.ParseGender(r.PostFormValue("gender")); err != nil {
		problems = append(problems, err.Error())
	} else {
		c.Gender = g
	}
	if p, err := models.ParsePreferredCategory(r.PostFormValue("preferred_category")); err != nil {
		problems = append(problems, err.Error())
	} else {
		c.PreferredCategory = p
	}

	return c, problems
}

func formValues(r *http.Request) map[string]string {
	out := make(map[string]string, len(r.PostForm))
	for k := range r.PostForm {
		out[k] = r.PostFormValue(k)
	}
	return out
}

func splitMessages(err error) []string {
	var verr *validation.RequestValidationError
	if errors.As(err, &verr) {
		msgs := make([]string, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			msgs = append(msgs, f.Message)
		}
		return msgs
	}
	return []string{err.Error()}
}

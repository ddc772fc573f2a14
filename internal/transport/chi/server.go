package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nexa-app/nexa/internal/domain"
	"github.com/nexa-app/nexa/internal/domain/content"
	"github.com/nexa-app/nexa/internal/domain/page"
	"github.com/nexa-app/nexa/internal/domain/request"
	"github.com/nexa-app/nexa/internal/logger"
	healthuc "github.com/nexa-app/nexa/internal/usecase/health"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Services bundles the use cases served over HTTP.
type Services struct {
	Discovery Discoverer
	Search    Searcher
	Recommend Recommender
	Draft     Drafter
	Browse    Browser
	Health    HealthChecker
}

// Options tune request defaults and limits.
type Options struct {
	DefaultPageSize int
	MaxPageSize     int
	DefaultRadiusKm float64
	MaxBodyBytes    int64
	// OracleRateLimit caps oracle-backed requests per client IP per minute. Zero or less disables.
	OracleRateLimit int
}

func (o Options) withDefaults() Options {
	if o.DefaultPageSize <= 0 {
		o.DefaultPageSize = page.DefaultPageSize
	}
	if o.MaxPageSize <= 0 || o.MaxPageSize > page.MaxPageSize {
		o.MaxPageSize = page.MaxPageSize
	}
	if o.DefaultRadiusKm <= 0 {
		o.DefaultRadiusKm = request.DefaultRadiusKm
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = 10 << 20
	}
	return o
}

// Server is the HTTP API of the discovery and ranking core.
type Server struct {
	svc           Services
	opts          Options
	validate      *validator.Validate
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(svc Services, opts Options) *Server {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	s := &Server{
		svc:      svc,
		opts:     opts.withDefaults(),
		validate: v,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
		sentinelHandler(domain.ErrStorage, http.StatusInternalServerError, ErrorCodeStorageFailure),
		sentinelHandler(domain.ErrOracle, http.StatusBadGateway, ErrorCodeOracleFailure),
	}
	return s
}

// Register mounts every route on r.
func (s *Server) Register(r chirouter.Router) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorCodeBadRequest, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chirouter.Router) {
		r.Get("/discovery", s.Discover)
		r.Get("/listings", s.browse(content.Listing))
		r.Get("/events", s.browse(content.Event))
		r.Get("/offers", s.browse(content.Offer))

		r.Post("/ai/search", s.Search)
		r.Group(func(r chirouter.Router) {
			r.Use(s.oracleLimiter())
			r.Post("/ai/recommend", s.Recommend)
			r.Post("/ai/listing-from-image", s.ListingFromImage)
		})
	})
}

// oracleLimiter throttles the routes that call the generative oracle.
func (s *Server) oracleLimiter() func(http.Handler) http.Handler {
	if s.opts.OracleRateLimit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		s.opts.OracleRateLimit,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusTooManyRequests, ErrorCodeRateLimited, "rate limit exceeded")
		}),
	)
}

// Discover handles GET /api/discovery.
func (s *Server) Discover(w http.ResponseWriter, r *http.Request) {
	p, err := bindListParams(r.URL.Query())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	pos, err := nonZeroPosition(p.Latitude, p.Longitude)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	size, err := s.pageSize(&p)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	req, err := request.NewDiscover(
		pos, p.radiusKm(s.opts.DefaultRadiusKm), p.category(),
		request.ParseSort(p.sortBy()), p.pageNumber(), size,
	)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	pg, err := s.svc.Discovery.Discover(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageToResponse(pg))
}

// browse handles GET /api/listings, /api/events and /api/offers.
func (s *Server) browse(kind content.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := bindListParams(r.URL.Query())
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		pos, err := position(p.Latitude, p.Longitude)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		size, err := s.pageSize(&p)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}

		minPrice, maxPrice := p.MinPrice, p.MaxPrice
		if kind != content.Listing {
			minPrice, maxPrice = nil, nil
		}

		req, err := request.NewBrowse(
			kind, pos, p.radiusKm(s.opts.DefaultRadiusKm), p.category(),
			minPrice, maxPrice, p.pageNumber(), size,
		)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}

		pg, err := s.svc.Browse.Browse(r.Context(), &req)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, pageToResponse(pg))
	}
}

// Search handles POST /api/ai/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var body SearchRequest
	if !s.decodeBody(w, r, &body) {
		return
	}
	pos, err := nonZeroPosition(body.Latitude, body.Longitude)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	req, err := request.NewSearch(
		body.Query, pos, body.RadiusKm, strings.TrimSpace(body.Category), body.MinPrice, body.MaxPrice,
	)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	outcome, err := s.svc.Search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{
		InterpretedIntent: outcome.InterpretedIntent,
		Results:           resultsToItems(outcome.Results),
	})
}

// Recommend handles POST /api/ai/recommend.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	var body RecommendRequest
	if !s.decodeBody(w, r, &body) {
		return
	}
	pos, err := nonZeroPosition(body.Latitude, body.Longitude)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	results := s.svc.Recommend.Recommend(r.Context(), &request.Recommend{
		UserID:      body.UserID,
		Position:    pos,
		Interests:   body.Interests,
		TimeContext: body.TimeContext,
	})
	writeJSON(w, http.StatusOK, RecommendResponse{Items: resultsToItems(results)})
}

// ListingFromImage handles POST /api/ai/listing-from-image.
func (s *Server) ListingFromImage(w http.ResponseWriter, r *http.Request) {
	var body ListingFromImageRequest
	if !s.decodeBody(w, r, &body) {
		return
	}

	d, err := s.svc.Draft.FromImage(r.Context(), stripDataURL(body.ImageBase64))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, draftToResponse(d))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.svc.Health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: report.Status,
		Checks: report.Checks,
	})
}

func (s *Server) pageSize(p *listParams) (int, error) {
	size := p.pageSize(s.opts.DefaultPageSize)
	if size > s.opts.MaxPageSize {
		return 0, fmt.Errorf("%w: pageSize must be between 1 and %d, got %d",
			domain.ErrInvalidInput, s.opts.MaxPageSize, size)
	}
	return size, nil
}

// decodeBody reads and validates a JSON body. On failure it writes the error reply and returns false.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, ErrorCodeBadRequest, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid request body")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, validationMessage(err))
		return false
	}
	return true
}

// stripDataURL drops a "data:<mime>;base64," prefix browsers add to encoded files.
func stripDataURL(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if _, payload, ok := strings.Cut(s, "base64,"); ok {
		return payload
	}
	return s
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	if fe.Tag() == "required" {
		return fmt.Sprintf("%s is required", fe.Field())
	}
	if fe.Param() != "" {
		return fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}

// jsonFieldName reports validation errors under the JSON field name.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-facing message without exposing internals.
// Validation messages are built by this service and are returned verbatim.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidInput) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrStorage,
		domain.ErrOracle,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fitai/fitai-api/internal/domain/catalog"
	"github.com/fitai/fitai-api/internal/domain/diet"
	"github.com/fitai/fitai-api/internal/domain/relay"
	"github.com/fitai/fitai-api/internal/domain/workout"
	"github.com/fitai/fitai-api/internal/infra/config"
	"github.com/fitai/fitai-api/internal/infra/llm/chatgpt"
	apperrors "github.com/fitai/fitai-api/pkg/errors"
)

const scenarioWorkoutBody = `{"weight":70,"height":170,"age":30,"fitnessLevel":"beginner","preferredWorkoutDays":3,"workoutDuration":60}`

func TestRouter_WorkoutReturnsProviderJSONVerbatim(t *testing.T) {
	content := `{"routines":[],"recommendations":[],"weeklySchedule":[]}`
	provider := &stubChatClient{content: content}
	server := newRouterWithProvider(t, "test-key", provider)

	recorder := performRequest(server, http.MethodPost, "/api/workout", scenarioWorkoutBody)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, content, recorder.Body.String())
	require.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))
	require.Equal(t, 1, provider.calls)
	require.Contains(t, provider.lastRequest.Messages[1].Content, "using the full body training style")
}

func TestRouter_WorkoutUnparseableProviderText(t *testing.T) {
	provider := &stubChatClient{content: "not json"}
	server := newRouterWithProvider(t, "test-key", provider)

	recorder := performRequest(server, http.MethodPost, "/api/workout", scenarioWorkoutBody)
	require.Equal(t, http.StatusInternalServerError, recorder.Code)

	body := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, apperrors.CodeParse, body["code"])
	require.Contains(t, body["error"], "parse")
}

func TestRouter_MissingCredentialNeverCallsProvider(t *testing.T) {
	for _, path := range []string{"/api/diet", "/api/workout"} {
		path := path
		t.Run(path, func(t *testing.T) {
			provider := &stubChatClient{content: `{"routines":[],"mealPlan":[]}`}
			server := newRouterWithProvider(t, "", provider)

			for _, body := range []string{scenarioWorkoutBody, `{}`, `not even json`, `{"weight":-1}`} {
				recorder := performRequest(server, http.MethodPost, path, body)
				require.Equal(t, http.StatusInternalServerError, recorder.Code, body)

				errBody := decodeErrorBody(t, recorder.Body.Bytes())
				require.Equal(t, apperrors.CodeConfig, errBody["code"])
				require.Equal(t, relay.MissingKeyMessage, errBody["error"])
			}
			require.Zero(t, provider.calls)
		})
	}
}

func TestRouter_DietShapeFailure(t *testing.T) {
	provider := &stubChatClient{content: `{"dailyCalories":2000}`}
	server := newRouterWithProvider(t, "test-key", provider)

	recorder := performRequest(server, http.MethodPost, "/api/diet", `{"weight":80,"height":175,"age":40,"gender":"male","goal":"maintain"}`)
	require.Equal(t, http.StatusInternalServerError, recorder.Code)

	body := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, apperrors.CodeShape, body["code"])
	require.Contains(t, body["error"], "invalid diet plan structure")
}

func TestRouter_UpstreamErrorIsForwarded(t *testing.T) {
	provider := &stubChatClient{err: &chatgpt.APIError{StatusCode: http.StatusTooManyRequests, Message: "Rate limit reached"}}
	server := newRouterWithProvider(t, "test-key", provider)

	recorder := performRequest(server, http.MethodPost, "/api/diet", `{}`)
	require.Equal(t, http.StatusInternalServerError, recorder.Code)

	body := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, apperrors.CodeUpstream, body["code"])
	require.Contains(t, body["error"], "Rate limit reached")
}

func TestRouter_InvalidProfiles(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		body     string
		wantCode string
	}{
		{name: "malformed json", path: "/api/diet", body: `{"weight":`, wantCode: "invalid_request"},
		{name: "wrong type", path: "/api/workout", body: `{"weight":"heavy"}`, wantCode: "invalid_request"},
		{name: "empty body", path: "/api/workout", body: ``, wantCode: "invalid_request"},
		{name: "out of range", path: "/api/workout", body: `{"preferredWorkoutDays":9}`, wantCode: apperrors.CodeInvalidInput},
		{name: "unknown split", path: "/api/workout", body: `{"workoutSplit":"yoga"}`, wantCode: apperrors.CodeInvalidInput},
		{name: "unknown enum", path: "/api/diet", body: `{"dietaryPreference":"carnivore"}`, wantCode: apperrors.CodeInvalidInput},
		{name: "too large", path: "/api/diet", body: `{"allergies":"` + strings.Repeat("a", 4096) + `"}`, wantCode: "request_too_large"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			provider := &stubChatClient{content: `{"routines":[],"mealPlan":[]}`}
			server := newRouterWithProvider(t, "test-key", provider)

			recorder := performRequest(server, http.MethodPost, tt.path, tt.body)
			require.Equal(t, http.StatusBadRequest, recorder.Code)
			body := decodeErrorBody(t, recorder.Body.Bytes())
			require.Equal(t, tt.wantCode, body["code"])
			require.NotEmpty(t, body["error"])
			require.Zero(t, provider.calls)
		})
	}
}

func TestRouter_DomainErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "invalid input", err: apperrors.Wrap(apperrors.CodeInvalidInput, "bad", nil), wantStatus: http.StatusBadRequest, wantCode: apperrors.CodeInvalidInput},
		{name: "empty response", err: apperrors.Wrap(apperrors.CodeEmptyResponse, "no response from provider", nil), wantStatus: http.StatusInternalServerError, wantCode: apperrors.CodeEmptyResponse},
		{name: "untyped", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: "internal_error"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubWorkoutService{generateFn: func(ctx context.Context, p workout.Profile) (relay.Plan, error) {
				return relay.Plan{}, tt.err
			}}
			server := newRouterUnderTest(t, &stubDietService{}, svc)

			recorder := performRequest(server, http.MethodPost, "/api/workout", `{}`)
			require.Equal(t, tt.wantStatus, recorder.Code)
			body := decodeErrorBody(t, recorder.Body.Bytes())
			require.Equal(t, tt.wantCode, body["code"])
		})
	}
}

func TestRouter_PanicUsesErrorBody(t *testing.T) {
	svc := &stubWorkoutService{generateFn: func(ctx context.Context, p workout.Profile) (relay.Plan, error) {
		panic("nil map write")
	}}
	server := newRouterUnderTest(t, &stubDietService{}, svc)

	recorder := performRequest(server, http.MethodPost, "/api/workout", `{}`)
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	body := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "internal_error", body["code"])
	require.Equal(t, "internal server error", body["error"])
	require.NotEmpty(t, recorder.Header().Get(requestIDHeader))
}

func TestRouter_ProfileIsDecoded(t *testing.T) {
	var got diet.Profile
	svc := &stubDietService{generateFn: func(ctx context.Context, p diet.Profile) (relay.Plan, error) {
		got = p
		return relay.Plan{Body: json.RawMessage(`{"mealPlan":[]}`)}, nil
	}}
	server := newRouterUnderTest(t, svc, &stubWorkoutService{})

	recorder := performRequest(server, http.MethodPost, "/api/diet", `{"country":"India","weight":65.5,"userPref":"spicy","allergies":"nuts"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, `{"mealPlan":[]}`, recorder.Body.String())
	require.Equal(t, diet.Profile{Country: "India", Weight: 65.5, UserPref: "spicy", Allergies: "nuts"}, got)
}

func TestRouter_RequestID(t *testing.T) {
	server := newRouterUnderTest(t, &stubDietService{}, &stubWorkoutService{})

	recorder := performRequest(server, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Len(t, recorder.Header().Get(requestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestRouter_CORSPreflight(t *testing.T) {
	server := newRouterUnderTest(t, &stubDietService{}, &stubWorkoutService{})

	req := httptest.NewRequest(http.MethodOptions, "/api/workout", nil)
	req.Header.Set("Origin", "https://fitai.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestRouter_CatalogRoutes(t *testing.T) {
	server := newRouterUnderTest(t, &stubDietService{}, &stubWorkoutService{})

	recorder := performRequest(server, http.MethodGet, "/api/splits", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var list struct {
		Splits []catalog.Split `json:"splits"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &list))
	require.Len(t, list.Splits, 15)

	recorder = performRequest(server, http.MethodGet, "/api/splits/calisthenics", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var split catalog.Split
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &split))
	require.Equal(t, "Calisthenics Split", split.Title)

	recorder = performRequest(server, http.MethodGet, "/api/splits/zumba", "")
	require.Equal(t, http.StatusNotFound, recorder.Code)
	require.Equal(t, apperrors.CodeNotFound, decodeErrorBody(t, recorder.Body.Bytes())["code"])

	recorder = performRequest(server, http.MethodGet, "/api/options", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var opts catalog.Options
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &opts))
	require.Len(t, opts.Goals, 5)
	require.Len(t, opts.WorkoutSplits, 15)
}

func performRequest(server *http.Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newRouterWithProvider(t *testing.T, apiKey string, provider *stubChatClient) *http.Server {
	t.Helper()
	cat := loadCatalog(t)
	logger := newTestLogger()
	settings := relay.Settings{APIKey: apiKey, Model: "test-model", Temperature: 0.7}

	dietSettings := settings
	dietSettings.MaxTokens = 32768
	workoutSettings := settings
	workoutSettings.MaxTokens = 2000

	dietSvc := diet.NewService(diet.Config{Settings: dietSettings, SystemPrompt: "nutritionist"}, provider, nil, logger)
	workoutSvc := workout.NewService(workout.Config{Settings: workoutSettings, SystemPrompt: "trainer"}, cat, provider, nil, logger)
	return NewRouter(testConfig(), NewHandler(dietSvc, workoutSvc, cat, logger))
}

func newRouterUnderTest(t *testing.T, dietSvc diet.Service, workoutSvc workout.Service) *http.Server {
	t.Helper()
	return NewRouter(testConfig(), NewHandler(dietSvc, workoutSvc, loadCatalog(t), newTestLogger()))
}

func testConfig() *config.Config {
	return &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			MaxBodyBytes: 1024,
			CORS:         config.CORSConfig{AllowedOrigins: []string{"*"}},
		},
	}
}

func loadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return cat
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

type stubChatClient struct {
	content string
	err     error

	calls       int
	lastRequest chatgpt.ChatCompletionRequest
}

func (s *stubChatClient) CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	s.calls++
	s.lastRequest = req
	if s.err != nil {
		return chatgpt.ChatCompletionResponse{}, s.err
	}
	return chatgpt.ChatCompletionResponse{
		Choices: []chatgpt.Choice{{Message: chatgpt.Message{Role: "assistant", Content: s.content}}},
	}, nil
}

type stubDietService struct {
	generateFn func(ctx context.Context, p diet.Profile) (relay.Plan, error)
}

func (s *stubDietService) Ready() error { return nil }

func (s *stubDietService) Generate(ctx context.Context, p diet.Profile) (relay.Plan, error) {
	if s.generateFn != nil {
		return s.generateFn(ctx, p)
	}
	return relay.Plan{Body: json.RawMessage(`{"mealPlan":[]}`)}, nil
}

type stubWorkoutService struct {
	generateFn func(ctx context.Context, p workout.Profile) (relay.Plan, error)
}

func (s *stubWorkoutService) Ready() error { return nil }

func (s *stubWorkoutService) Generate(ctx context.Context, p workout.Profile) (relay.Plan, error) {
	if s.generateFn != nil {
		return s.generateFn(ctx, p)
	}
	return relay.Plan{Body: json.RawMessage(`{"routines":[]}`)}, nil
}

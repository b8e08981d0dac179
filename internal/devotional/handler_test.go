package devotional

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type fakeDailyService struct {
	resolution   Resolution
	refreshSeen  bool
	topicContent DevotionalContent
	topicSeen    string
	audio        []byte
	narrateErr   error
}

func (f *fakeDailyService) ResolveDaily(ctx context.Context, forceRefresh bool) Resolution {
	f.refreshSeen = forceRefresh
	return f.resolution
}

func (f *fakeDailyService) GenerateForTopic(ctx context.Context, topic string) DevotionalContent {
	f.topicSeen = topic
	return f.topicContent
}

func (f *fakeDailyService) Narrate(ctx context.Context, content DevotionalContent) ([]byte, error) {
	return f.audio, f.narrateErr
}

type fakePrefs struct {
	enabled bool
	saveErr error
}

func (f *fakePrefs) NotificationsEnabled() bool { return f.enabled }

func (f *fakePrefs) SetNotificationsEnabled(enabled bool) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.enabled = enabled
	return nil
}

func TestGetDailyHandler(t *testing.T) {
	service := &fakeDailyService{
		resolution: Resolution{Content: testContent("Hoje"), Source: SourceShared},
	}
	handler := NewHandler(service, &fakePrefs{})

	req := httptest.NewRequest(http.MethodGet, "/terapia-api/v1/devotional/daily", nil)
	rec := httptest.NewRecorder()

	handler.GetDailyHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if service.refreshSeen {
		t.Error("forceRefresh = true without the refresh query param")
	}

	var envelope struct {
		Data Resolution `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Content.Title != "Hoje" {
		t.Errorf("Title = %q", envelope.Data.Content.Title)
	}
	if envelope.Data.Source != SourceShared {
		t.Errorf("Source = %q, want %q", envelope.Data.Source, SourceShared)
	}
}

func TestGetDailyHandlerHonorsRefresh(t *testing.T) {
	service := &fakeDailyService{resolution: Resolution{Content: testContent("Hoje")}}
	handler := NewHandler(service, &fakePrefs{})

	req := httptest.NewRequest(http.MethodGet, "/terapia-api/v1/devotional/daily?refresh=true", nil)
	handler.GetDailyHandler(httptest.NewRecorder(), req)

	if !service.refreshSeen {
		t.Error("refresh=true did not force a refresh")
	}
}

func TestGetTopicsHandler(t *testing.T) {
	handler := NewHandler(&fakeDailyService{}, &fakePrefs{})

	rec := httptest.NewRecorder()
	handler.GetTopicsHandler(rec, httptest.NewRequest(http.MethodGet, "/terapia-api/v1/devotional/topics", nil))

	var envelope struct {
		Data []string `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != len(TopicsList) {
		t.Errorf("got %d topics, want %d", len(envelope.Data), len(TopicsList))
	}
}

func TestGenerateTopicHandler(t *testing.T) {
	service := &fakeDailyService{topicContent: testContent("Sobre a Gratidão")}
	handler := NewHandler(service, &fakePrefs{})

	req := httptest.NewRequest(http.MethodPost, "/terapia-api/v1/devotional/topic", strings.NewReader(`{"topic":"  Gratidão "}`))
	rec := httptest.NewRecorder()

	handler.GenerateTopicHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if service.topicSeen != "Gratidão" {
		t.Errorf("topic = %q, want trimmed topic", service.topicSeen)
	}
}

func TestGenerateTopicHandlerRejectsBlankTopic(t *testing.T) {
	handler := NewHandler(&fakeDailyService{}, &fakePrefs{})

	req := httptest.NewRequest(http.MethodPost, "/terapia-api/v1/devotional/topic", strings.NewReader(`{"topic":"   "}`))
	rec := httptest.NewRecorder()

	handler.GenerateTopicHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestNarrateHandlerStreamsAudio(t *testing.T) {
	handler := NewHandler(&fakeDailyService{audio: []byte("mpeg-bytes")}, &fakePrefs{})

	body, _ := json.Marshal(testContent("Narrado"))
	req := httptest.NewRequest(http.MethodPost, "/terapia-api/v1/devotional/narrate", strings.NewReader(string(body)))
	rec := httptest.NewRecorder()

	handler.NarrateHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "audio/mpeg" {
		t.Errorf("Content-Type = %q, want audio/mpeg", ct)
	}
	if rec.Body.String() != "mpeg-bytes" {
		t.Errorf("body = %q, want the audio stream", rec.Body.String())
	}
}

func TestNarrateHandlerIncompleteContent(t *testing.T) {
	handler := NewHandler(&fakeDailyService{}, &fakePrefs{})

	req := httptest.NewRequest(http.MethodPost, "/terapia-api/v1/devotional/narrate", strings.NewReader(`{"title":"Só Título"}`))
	rec := httptest.NewRecorder()

	handler.NarrateHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestNarrateHandlerSynthesisFailure(t *testing.T) {
	handler := NewHandler(&fakeDailyService{narrateErr: errors.New("voice service down")}, &fakePrefs{})

	body, _ := json.Marshal(testContent("Narrado"))
	req := httptest.NewRequest(http.MethodPost, "/terapia-api/v1/devotional/narrate", strings.NewReader(string(body)))
	rec := httptest.NewRecorder()

	handler.NarrateHandler(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestNotificationHandlersRoundTrip(t *testing.T) {
	prefs := &fakePrefs{}
	handler := NewHandler(&fakeDailyService{}, prefs)

	req := httptest.NewRequest(http.MethodPut, "/terapia-api/v1/notifications", strings.NewReader(`{"enabled":true}`))
	rec := httptest.NewRecorder()
	handler.SetNotificationsHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("set status = %d, want 200", rec.Code)
	}
	if !prefs.enabled {
		t.Fatal("preference not persisted")
	}

	rec = httptest.NewRecorder()
	handler.GetNotificationsHandler(rec, httptest.NewRequest(http.MethodGet, "/terapia-api/v1/notifications", nil))

	var envelope struct {
		Data map[string]bool `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data["enabled"] {
		t.Error("enabled = false, want true")
	}
}

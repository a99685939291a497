package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gabifranca/studio-gestao/internal/entity"
	"github.com/gabifranca/studio-gestao/internal/infra/http/handlers"
	"github.com/gabifranca/studio-gestao/internal/usecase"
)

// MockSettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Load(ctx context.Context) (*entity.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, s *entity.Settings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSettingsRepository) SaveField(ctx context.Context, key string, value any) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func contactRouter(h *handlers.ContactHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/contacts", h.List)
	r.Post("/contacts/{id}/move", h.Move)
	return r
}

// TestListContactsIncludesDerivedKind - a listagem carrega o kind calculado
func TestListContactsIncludesDerivedKind(t *testing.T) {
	lead := entity.NewLead("Ana Souza", "11999998888")
	student := entity.NewLead("Bia Lima", "11988887777")
	student.History = []entity.EnrollmentRecord{{CourseID: "curso-cilios", Status: entity.EnrollmentPaid}}

	mockRepo := new(MockContactRepository)
	mockRepo.On("List", mock.Anything).Return([]*entity.Contact{lead, student}, nil)

	h := handlers.NewContactHandler(mockRepo, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/contacts", nil)
	rec := httptest.NewRecorder()
	contactRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var views []struct {
		ID   string `json:"id"`
		Kind string `json:"kind"`
	}
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&views))
	assert.Len(t, views, 2)
	assert.Equal(t, "lead", views[0].Kind)
	assert.Equal(t, "student", views[1].Kind)
}

// TestMoveContactEndpointInvalidStage - etapa inválida vira 422 com código
func TestMoveContactEndpointInvalidStage(t *testing.T) {
	contact := entity.NewLead("Ana Souza", "11999998888")

	mockContactRepo := new(MockContactRepository)
	mockSettingsRepo := new(MockSettingsRepository)
	mockContactRepo.On("FindByID", mock.Anything, contact.ID).Return(contact, nil)
	mockSettingsRepo.On("Load", mock.Anything).Return(entity.DefaultSettings(), nil)

	moveUC := usecase.NewMoveContactUseCase(mockContactRepo, mockSettingsRepo)
	h := handlers.NewContactHandler(mockContactRepo, moveUC, nil)

	body := bytes.NewBufferString(`{"pipeline_id": "system", "stage_id": "etapa-inexistente"}`)
	req := httptest.NewRequest(http.MethodPost, "/contacts/"+contact.ID+"/move", body)
	rec := httptest.NewRecorder()
	contactRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp map[string]string
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "INVALID_STAGE", resp["error"])
	mockContactRepo.AssertNotCalled(t, "Upsert")
}

// TestMoveContactEndpointSuccess
func TestMoveContactEndpointSuccess(t *testing.T) {
	contact := entity.NewLead("Ana Souza", "11999998888")

	mockContactRepo := new(MockContactRepository)
	mockSettingsRepo := new(MockSettingsRepository)
	mockContactRepo.On("FindByID", mock.Anything, contact.ID).Return(contact, nil)
	mockContactRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	mockSettingsRepo.On("Load", mock.Anything).Return(entity.DefaultSettings(), nil)

	moveUC := usecase.NewMoveContactUseCase(mockContactRepo, mockSettingsRepo)
	h := handlers.NewContactHandler(mockContactRepo, moveUC, nil)

	body := bytes.NewBufferString(`{"pipeline_id": "system", "stage_id": "active"}`)
	req := httptest.NewRequest(http.MethodPost, "/contacts/"+contact.ID+"/move", body)
	rec := httptest.NewRecorder()
	contactRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		Status string `json:"status"`
	}
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.Equal(t, "active", view.Status)
}

package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"digi-hr-backend/models"
	"digi-hr-backend/repository"
)

func newUserApp(claims *models.Claims, userRepo *fakeUserRepo, attendanceRepo *fakeAttendanceRepo, leaveRepo *fakeLeaveRepo, taskRepo *fakeTaskRepo) *fiber.App {
	app := fiber.New()
	handler := NewUserHandler(userRepo, attendanceRepo, leaveRepo, taskRepo)
	app.Get("/api/users/me", authAs(claims), handler.GetMe)
	adminGroup := app.Group("/api/admin", authAs(claims))
	adminGroup.Get("/", handler.GetAll)
	adminGroup.Post("/users", handler.Create)
	adminGroup.Put("/:id", handler.Update)
	adminGroup.Delete("/:id", handler.Delete)
	return app
}

func TestGetMeExcludesPasswordHash(t *testing.T) {
	claims := employeeClaims()
	userRepo := &fakeUserRepo{
		findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
			return &models.User{
				ID:           id,
				EmployeeID:   "EMP-001",
				Name:         "Budi Santoso",
				PasswordHash: "$2a$10$rahasia-banget",
				Role:         models.RoleEmployee,
			}, nil
		},
	}

	app := newUserApp(claims, userRepo, &fakeAttendanceRepo{}, &fakeLeaveRepo{}, &fakeTaskRepo{})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users/me", nil))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("expected body, got %v", err)
	}
	if strings.Contains(string(raw), "rahasia-banget") {
		t.Fatal("the password hash must never appear in a response")
	}
	if !strings.Contains(string(raw), "EMP-001") {
		t.Fatal("expected the profile fields in the response")
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	userRepo := &fakeUserRepo{
		createFn: func(ctx context.Context, user *models.User) error {
			return repository.ErrDuplicate
		},
	}

	app := newUserApp(adminClaims(), userRepo, &fakeAttendanceRepo{}, &fakeLeaveRepo{}, &fakeTaskRepo{})
	body := `{"employeeId":"EMP-001","name":"Budi Santoso","role":"EMPLOYEE","password":"Password123","email":"budi@contoh.id"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.StatusCode)
	}
}

func TestCreateUserHashesPassword(t *testing.T) {
	var created *models.User
	userRepo := &fakeUserRepo{
		createFn: func(ctx context.Context, user *models.User) error {
			created = user
			return nil
		},
	}

	app := newUserApp(adminClaims(), userRepo, &fakeAttendanceRepo{}, &fakeLeaveRepo{}, &fakeTaskRepo{})
	body := `{"employeeId":"EMP-002","name":"Siti Rahma","role":"EMPLOYEE","password":"Password123","email":"siti@contoh.id"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.StatusCode)
	}
	if created == nil {
		t.Fatal("expected a user to be created")
	}
	if created.PasswordHash == "" || created.PasswordHash == "Password123" {
		t.Fatal("the password must be stored as a hash")
	}
	if !created.Active {
		t.Fatal("a new user must start active")
	}
}

func TestCreateUserInvalidRole(t *testing.T) {
	app := newUserApp(adminClaims(), &fakeUserRepo{}, &fakeAttendanceRepo{}, &fakeLeaveRepo{}, &fakeTaskRepo{})
	body := `{"employeeId":"EMP-003","name":"Andi Wijaya","role":"SUPERUSER","password":"Password123","email":"andi@contoh.id"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.StatusCode)
	}
}

func TestUpdateUserEmptyPayload(t *testing.T) {
	updateCalled := false
	userRepo := &fakeUserRepo{
		updateFn: func(ctx context.Context, id primitive.ObjectID, updateData bson.M) error {
			updateCalled = true
			return nil
		},
	}

	app := newUserApp(adminClaims(), userRepo, &fakeAttendanceRepo{}, &fakeLeaveRepo{}, &fakeTaskRepo{})
	target := "/api/admin/" + primitive.NewObjectID().Hex()
	req := httptest.NewRequest(http.MethodPut, target, strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.StatusCode)
	}
	if updateCalled {
		t.Fatal("an empty payload must not reach the repository")
	}
}

func TestUpdateUserPartialFields(t *testing.T) {
	var gotUpdate bson.M
	userRepo := &fakeUserRepo{
		updateFn: func(ctx context.Context, id primitive.ObjectID, updateData bson.M) error {
			gotUpdate = updateData
			return nil
		},
	}

	app := newUserApp(adminClaims(), userRepo, &fakeAttendanceRepo{}, &fakeLeaveRepo{}, &fakeTaskRepo{})
	target := "/api/admin/" + primitive.NewObjectID().Hex()
	req := httptest.NewRequest(http.MethodPut, target, strings.NewReader(`{"department":"IT","active":false}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if len(gotUpdate) != 2 {
		t.Fatalf("expected exactly the sent fields, got %v", gotUpdate)
	}
	if gotUpdate["department"] != "IT" {
		t.Fatalf("expected department IT, got %v", gotUpdate["department"])
	}
	if gotUpdate["active"] != false {
		t.Fatalf("expected active false, got %v", gotUpdate["active"])
	}
}

func TestUpdateUserNotFound(t *testing.T) {
	userRepo := &fakeUserRepo{
		updateFn: func(ctx context.Context, id primitive.ObjectID, updateData bson.M) error {
			return repository.ErrNotFound
		},
	}

	app := newUserApp(adminClaims(), userRepo, &fakeAttendanceRepo{}, &fakeLeaveRepo{}, &fakeTaskRepo{})
	target := "/api/admin/" + primitive.NewObjectID().Hex()
	req := httptest.NewRequest(http.MethodPut, target, strings.NewReader(`{"name":"Nama Baru"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.StatusCode)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	userID := primitive.NewObjectID()
	var calls []string
	attendanceRepo := &fakeAttendanceRepo{
		deleteByUserFn: func(ctx context.Context, id primitive.ObjectID) error {
			if id == userID {
				calls = append(calls, "attendance")
			}
			return nil
		},
	}
	leaveRepo := &fakeLeaveRepo{
		deleteByUserFn: func(ctx context.Context, id primitive.ObjectID) error {
			if id == userID {
				calls = append(calls, "leaves")
			}
			return nil
		},
	}
	taskRepo := &fakeTaskRepo{
		deleteByUserFn: func(ctx context.Context, id primitive.ObjectID) error {
			if id == userID {
				calls = append(calls, "tasks")
			}
			return nil
		},
	}
	userRepo := &fakeUserRepo{
		deleteFn: func(ctx context.Context, id primitive.ObjectID) error {
			if id == userID {
				calls = append(calls, "user")
			}
			return nil
		},
	}

	app := newUserApp(adminClaims(), userRepo, attendanceRepo, leaveRepo, taskRepo)
	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/admin/"+userID.Hex(), nil))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if len(calls) != 4 || calls[3] != "user" {
		t.Fatalf("dependents must be deleted before the user row, got order %v", calls)
	}
}

func TestDeleteUserNotFound(t *testing.T) {
	userRepo := &fakeUserRepo{
		deleteFn: func(ctx context.Context, id primitive.ObjectID) error {
			return repository.ErrNotFound
		},
	}

	app := newUserApp(adminClaims(), userRepo, &fakeAttendanceRepo{}, &fakeLeaveRepo{}, &fakeTaskRepo{})
	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/admin/"+primitive.NewObjectID().Hex(), nil))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.StatusCode)
	}
}

func TestGetAllUsers(t *testing.T) {
	userRepo := &fakeUserRepo{
		findAllFn: func(ctx context.Context) ([]models.User, error) {
			return []models.User{
				{ID: primitive.NewObjectID(), EmployeeID: "EMP-002", Name: "Siti Rahma"},
				{ID: primitive.NewObjectID(), EmployeeID: "EMP-001", Name: "Budi Santoso"},
			}, nil
		},
	}

	app := newUserApp(adminClaims(), userRepo, &fakeAttendanceRepo{}, &fakeLeaveRepo{}, &fakeTaskRepo{})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/", nil))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var body []models.User
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("expected JSON body, got %v", err)
	}
	if len(body) != 2 {
		t.Fatalf("expected 2 users, got %d", len(body))
	}
}

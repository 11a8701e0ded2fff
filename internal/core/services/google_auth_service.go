package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/spendwise/spendwise_app/internal/platform/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// GoogleAuthService exchanges authorization codes and validates Google ID
// tokens for the sign-in flow.
type GoogleAuthService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
}

// NewGoogleAuthService creates a new GoogleAuthService.
func NewGoogleAuthService(cfg *config.Config) *GoogleAuthService {
	return &GoogleAuthService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// ExchangeCodeForIDToken swaps an authorization code for the ID token carried
// in Google's token response.
func (s *GoogleAuthService) ExchangeCodeForIDToken(ctx context.Context, code string) (string, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchanging oauth code: %w", err)
	}

	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", errors.New("token response carried no id_token")
	}
	return idToken, nil
}

// ValidateIDToken verifies the ID token's signature and audience and returns
// the holder's email and display name.
func (s *GoogleAuthService) ValidateIDToken(ctx context.Context, idTokenString string) (string, string, error) {
	if s.cfg.GoogleClientID == "" {
		return "", "", errors.New("google client ID is not configured")
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return "", "", fmt.Errorf("google ID token validation failed: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return "", "", errors.New("google ID token carried no email claim")
	}
	name, _ := payload.Claims["name"].(string)
	if name == "" {
		name = email
	}
	return email, name, nil
}

package dto

import "strings"

// -------- Core auth --------

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=255"`
}

func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return checkShape(r)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=255"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return checkShape(r)
}

// -------- Email verification --------

type VerifyRequest struct {
	Token string `json:"token" validate:"required,max=255"`
}

func (r *VerifyRequest) Validate() error {
	r.Token = strings.TrimSpace(r.Token)
	return checkShape(r)
}

// -------- Password reset --------

// ResetPasswordRequest serves both phases of the reset flow on one route.
// With token and password set it completes a reset; with only email set it
// starts one. Which phase applies is decided by the handler, so none of the
// fields are individually required here.
type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"omitempty,max=255"`
	Token    string `json:"token" validate:"omitempty,max=255"`
	Password string `json:"password" validate:"omitempty,max=255"`
}

func (r *ResetPasswordRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	r.Token = strings.TrimSpace(r.Token)
	return checkShape(r)
}

// IsConfirm reports whether the request carries enough to complete a reset.
func (r *ResetPasswordRequest) IsConfirm() bool {
	return r.Token != "" && r.Password != ""
}

// IsInit reports whether the request starts a new reset flow.
func (r *ResetPasswordRequest) IsInit() bool {
	return r.Email != ""
}

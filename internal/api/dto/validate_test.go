package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostel-cms/complaint-service/internal/domain"
	apperrors "github.com/hostel-cms/complaint-service/pkg/util/errorutil"
)

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	err := Validate(UserRegisterRequest{Name: "Asha", Email: "a@h.com", Password: "pw"})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeValidation, domainErr.Code)
	assert.Contains(t, domainErr.Message, "field roomNumber is required")
	assert.Contains(t, domainErr.Message, "field rollNumber is required")
}

func TestValidate_OneOf(t *testing.T) {
	err := Validate(ComplaintStatusRequest{Status: "closed"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field status must be one of")

	assert.NoError(t, Validate(ComplaintStatusRequest{Status: "in-progress"}))
	assert.NoError(t, Validate(ComplaintCreateRequest{Title: "t", Description: "d", Category: "Food"}))
}

func TestNewUserResponse_OmitsPassword(t *testing.T) {
	resp := NewUserResponse(&domain.User{
		ID:           "u1",
		Name:         "Asha",
		Email:        "a@h.com",
		PasswordHash: "$2a$secret",
		Role:         domain.RoleStudent,
		CreatedAt:    time.Unix(0, 0).UTC(),
	})
	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "secret")
	assert.NotContains(t, string(body), "password")
	assert.Contains(t, string(body), `"createdAt"`)
}

package api

import (
	"testing"

	"staffdir/internal/entity"
)

func strPtr(s string) *string { return &s }

func TestValidateProfileUpdate(t *testing.T) {
	tests := []struct {
		name    string
		req     entity.ProfileUpdateRequest
		wantErr bool
	}{
		{
			name:    "empty request is valid",
			req:     entity.ProfileUpdateRequest{},
			wantErr: false,
		},
		{
			name: "latin name",
			req:  entity.ProfileUpdateRequest{FirstName: strPtr("Ivan")},
		},
		{
			name: "cyrillic name with hyphen",
			req:  entity.ProfileUpdateRequest{LastName: strPtr("Петров-Водкин")},
		},
		{
			name:    "single character name rejected",
			req:     entity.ProfileUpdateRequest{FirstName: strPtr("A")},
			wantErr: true,
		},
		{
			name:    "name with digits rejected",
			req:     entity.ProfileUpdateRequest{FirstName: strPtr("Ivan2")},
			wantErr: true,
		},
		{
			name: "empty middle name allowed",
			req:  entity.ProfileUpdateRequest{MiddleName: strPtr("")},
		},
		{
			name: "valid phone with plus",
			req:  entity.ProfileUpdateRequest{Phone: strPtr("+79161234567")},
		},
		{
			name:    "phone starting with zero rejected",
			req:     entity.ProfileUpdateRequest{Phone: strPtr("07916123456")},
			wantErr: true,
		},
		{
			name:    "too short phone rejected",
			req:     entity.ProfileUpdateRequest{Phone: strPtr("+7916")},
			wantErr: true,
		},
		{
			name: "valid email",
			req:  entity.ProfileUpdateRequest{Email: strPtr("ivan@example.com")},
		},
		{
			name:    "invalid email rejected",
			req:     entity.ProfileUpdateRequest{Email: strPtr("not-an-email")},
			wantErr: true,
		},
		{
			name:    "empty department rejected",
			req:     entity.ProfileUpdateRequest{Department: strPtr("  ")},
			wantErr: true,
		},
		{
			name: "valid working hours",
			req:  entity.ProfileUpdateRequest{WorkingHours: strPtr("09:00-18:00")},
		},
		{
			name:    "malformed working hours rejected",
			req:     entity.ProfileUpdateRequest{WorkingHours: strPtr("9:00-18:00")},
			wantErr: true,
		},
		{
			name: "valid vk link",
			req:  entity.ProfileUpdateRequest{VKLink: strPtr("https://vk.com/ivan_petrov")},
		},
		{
			name:    "vk link on wrong host rejected",
			req:     entity.ProfileUpdateRequest{VKLink: strPtr("https://example.com/ivan")},
			wantErr: true,
		},
		{
			name: "valid telegram link",
			req:  entity.ProfileUpdateRequest{TelegramLink: strPtr("https://t.me/ivan_petrov")},
		},
		{
			name:    "telegram handle too short rejected",
			req:     entity.ProfileUpdateRequest{TelegramLink: strPtr("https://t.me/abc")},
			wantErr: true,
		},
		{
			name: "valid skype link",
			req:  entity.ProfileUpdateRequest{SkypeLink: strPtr("skype:ivan.petrov?call")},
		},
		{
			name: "valid whatsapp link",
			req:  entity.ProfileUpdateRequest{WhatsappLink: strPtr("https://wa.me/79161234567")},
		},
		{
			name:    "http whatsapp link rejected",
			req:     entity.ProfileUpdateRequest{WhatsappLink: strPtr("http://wa.me/79161234567")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateProfileUpdate(&tt.req)
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{
			name:    "valid email",
			email:   "test@example.com",
			wantErr: false,
		},
		{
			name:    "valid email with subdomain",
			email:   "user@mail.example.com",
			wantErr: false,
		},
		{
			name:    "valid email with plus",
			email:   "user+tag@example.com",
			wantErr: false,
		},
		{
			name:    "missing @",
			email:   "testexample.com",
			wantErr: true,
		},
		{
			name:    "missing domain",
			email:   "test@",
			wantErr: true,
		},
		{
			name:    "missing local part",
			email:   "@example.com",
			wantErr: true,
		},
		{
			name:    "empty string",
			email:   "",
			wantErr: true,
		},
		{
			name:    "spaces in email",
			email:   "test @example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "valid password",
			password: "Abcd123!@",
			wantErr:  false,
		},
		{
			name:     "missing uppercase",
			password: "abcd123!@",
			wantErr:  true,
		},
		{
			name:     "missing lowercase",
			password: "ABCD123!@",
			wantErr:  true,
		},
		{
			name:     "missing digit",
			password: "Abcdefg!@",
			wantErr:  true,
		},
		{
			name:     "missing special character",
			password: "Abcd1234",
			wantErr:  true,
		},
		{
			name:     "too short",
			password: "Ab1!",
			wantErr:  true,
		},
		{
			name:     "empty",
			password: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "valid username",
			input:   "nino",
			wantErr: false,
		},
		{
			name:    "empty username",
			input:   "",
			wantErr: true,
		},
		{
			name:    "too short",
			input:   "n",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			input:   "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUsername(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRating(t *testing.T) {
	for rating, wantErr := range map[int]bool{0: true, 1: false, 3: false, 5: false, 6: true, -1: true} {
		err := ValidateRating(rating)
		if (err != nil) != wantErr {
			t.Errorf("ValidateRating(%d) error = %v, wantErr %v", rating, err, wantErr)
		}
	}
}

func TestValidateLanguage(t *testing.T) {
	for lang, wantErr := range map[string]bool{"en": false, "ge": false, "": true, "fr": true} {
		err := ValidateLanguage(lang)
		if (err != nil) != wantErr {
			t.Errorf("ValidateLanguage(%q) error = %v, wantErr %v", lang, err, wantErr)
		}
	}
}

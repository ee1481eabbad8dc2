package adapters

import "testing"

func TestPasswordService_HashAndVerify(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.HashPassword("s3cret-enough")
	if err != nil {
		t.Fatalf("unexpected hash error: %v", err)
	}
	if hash == "s3cret-enough" {
		t.Fatal("hash must not equal the plain password")
	}

	if err := svc.VerifyPassword(hash, "s3cret-enough"); err != nil {
		t.Errorf("expected matching password to verify, got %v", err)
	}
	if err := svc.VerifyPassword(hash, "wrong-password"); err == nil {
		t.Error("expected mismatch to return an error")
	}
}

func TestPasswordService_ValidatePasswordStrength(t *testing.T) {
	svc := NewPasswordService()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"meets the minimum", "12345678", false},
		{"below the minimum", "1234567", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidatePasswordStrength(tt.password)
			if tt.wantErr && err == nil {
				t.Error("expected an error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

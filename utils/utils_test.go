package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/dcode-github/dormdash/models"
)

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := &Claims{
		UserID: "u1",
		Email:  "amina@example.com",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: exp.Unix(),
			IssuedAt:  exp.Add(-15 * time.Minute).Unix(),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func TestTokenExpired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	if !TokenExpired(signed(t, now.Add(-time.Minute)), now) {
		t.Fatalf("past exp not reported as expired")
	}
	if TokenExpired(signed(t, now.Add(time.Hour)), now) {
		t.Fatalf("future exp reported as expired")
	}
	if TokenExpired("opaque-session-token", now) {
		t.Fatalf("opaque token reported as expired")
	}
}

func TestTokenClaims(t *testing.T) {
	t.Parallel()

	claims, err := TokenClaims(signed(t, time.Now().Add(-time.Hour)))
	if err != nil {
		t.Fatalf("expired token claims should still decode: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "amina@example.com" {
		t.Fatalf("claims=%+v", claims)
	}
	if _, err := TokenClaims("nope"); err != ErrNotJWT {
		t.Fatalf("err=%v want ErrNotJWT", err)
	}
}

func TestValidationMessage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		form any
		want string
	}{
		{LoginForm{Password: "x"}, "Email is required"},
		{LoginForm{Email: "not-an-email", Password: "x"}, "Please enter a valid email address"},
		{SignupForm{Name: "Amina", Email: "a@b.com", Password: "secret1", ConfirmPassword: "secret2", Role: "landlord"}, "Passwords do not match"},
		{SignupForm{Name: "Amina", Email: "a@b.com", Password: "secret1", Role: "student"}, "Role must be one of: landlord, agent, admin"},
		{models.ProductDraft{Location: "Yaba"}, "Title is required"},
		{models.ProductDraft{Title: "Room", Location: "Yaba", Price: -1}, "Price cannot be negative"},
		{models.ProductDraft{Title: "Room", Location: "Yaba", Type: "castle"}, "Type must be one of: apartment, house, hostel, room, shared"},
		{models.Inquiry{SenderName: "Tunde"}, "Message is required"},
	}
	for _, tc := range cases {
		err := ValidateStruct(tc.form)
		if err == nil {
			t.Fatalf("%+v: expected validation error", tc.form)
		}
		if got := ValidationMessage(err); got != tc.want {
			t.Fatalf("%+v: got=%q want=%q", tc.form, got, tc.want)
		}
	}

	ok := SignupForm{Name: "Amina", Email: "a@b.com", Password: "secret1", ConfirmPassword: "secret1", Role: "agent"}
	if err := ValidateStruct(ok); err != nil {
		t.Fatalf("valid signup rejected: %v", err)
	}
	short := SignupForm{Name: "Amina", Email: "a@b.com", Password: "abc", ConfirmPassword: "abc", Role: "agent"}
	if err := ValidateStruct(short); err != nil {
		t.Fatalf("short password rejected by the shell: %v", err)
	}
	if err := ValidateStruct(models.ProductDraft{Title: "Room", Location: "Yaba"}); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}
}

func TestWhatsAppURL(t *testing.T) {
	t.Parallel()

	got := WhatsAppURL("+234 801-234-5678", ContactMessage("Mr. Adebayo", "Modern Room"))
	if !strings.HasPrefix(got, "https://wa.me/2348012345678?text=Hi%20Mr.%20Adebayo") {
		t.Fatalf("url=%s", got)
	}
	if strings.Contains(got, "+") || strings.Contains(got, " ") {
		t.Fatalf("url not fully escaped: %s", got)
	}
}

func TestFormatting(t *testing.T) {
	t.Parallel()

	naira := map[int64]string{0: "₦0", 999: "₦999", 1000: "₦1,000", 250000: "₦250,000", 1234567: "₦1,234,567", -5000: "-₦5,000"}
	for in, want := range naira {
		if got := FormatNaira(in); got != want {
			t.Fatalf("FormatNaira(%d)=%q want=%q", in, got, want)
		}
	}
	if got := Initials("amina bello yusuf"); got != "AB" {
		t.Fatalf("initials=%q", got)
	}
	if got := Truncate("Spacious self-contain", 9); got != "Spacious ..." {
		t.Fatalf("truncate=%q", got)
	}
	if got := Truncate("Spacious", -3); got != "..." {
		t.Fatalf("negative max truncate=%q want=%q", got, "...")
	}
	if got := Truncate("", -1); got != "" {
		t.Fatalf("empty truncate=%q", got)
	}
	if got := Truncate("short", 9); got != "short" {
		t.Fatalf("truncate=%q", got)
	}
	if Percentage(1, 3) != 33 || Percentage(2, 3) != 67 || Percentage(5, 0) != 0 {
		t.Fatalf("percentage off: %d %d %d", Percentage(1, 3), Percentage(2, 3), Percentage(5, 0))
	}
}

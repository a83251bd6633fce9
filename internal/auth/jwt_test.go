package auth

import (
	"testing"
	"time"

	"intervention-service/internal/model"
)

func TestIssueParseRoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	parser := NewParser("test-secret")

	user := &model.User{
		ID:    7,
		Email: "jean@hch.fr",
		Roles: model.RoleList{model.RoleAdmin, model.RoleTechnician},
	}

	token, err := issuer.Issue(user)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := parser.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID)
	}
	if claims.Email != "jean@hch.fr" {
		t.Errorf("Email = %q, want jean@hch.fr", claims.Email)
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != model.RoleAdmin {
		t.Errorf("Roles = %v, want both roles preserved", claims.Roles)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewIssuer("secret-a", time.Hour)
	parser := NewParser("secret-b")

	token, err := issuer.Issue(&model.User{ID: 1, Email: "a@b.c"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := parser.Parse(token); err == nil {
		t.Error("Parse() accepted a token signed with another secret")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Minute)
	parser := NewParser("test-secret")

	token, err := issuer.Issue(&model.User{ID: 1, Email: "a@b.c"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := parser.Parse(token); err == nil {
		t.Error("Parse() accepted an expired token")
	}
}

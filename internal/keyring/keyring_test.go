package keyring

import (
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetToken(t *testing.T) {
	// Use mock keyring for testing
	gokeyring.MockInit()

	testToken := "eyJhbGciOiJIUzI1NiJ9.test-token"

	if err := SetToken(testToken); err != nil {
		t.Fatalf("SetToken() failed: %v", err)
	}

	retrieved, err := GetToken()
	if err != nil {
		t.Fatalf("GetToken() failed: %v", err)
	}
	if retrieved != testToken {
		t.Errorf("GetToken() = %q, want %q", retrieved, testToken)
	}
}

func TestSetTokenEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetToken(""); err == nil {
		t.Error("SetToken(\"\") should return an error")
	}
}

func TestGetTokenNotFound(t *testing.T) {
	gokeyring.MockInit()

	// Ensure nothing is stored
	_ = DeleteToken()

	_, err := GetToken()
	if err != ErrNotFound {
		t.Errorf("GetToken() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteToken(t *testing.T) {
	gokeyring.MockInit()

	if err := SetToken("some-token"); err != nil {
		t.Fatalf("SetToken() failed: %v", err)
	}

	if err := DeleteToken(); err != nil {
		t.Fatalf("DeleteToken() failed: %v", err)
	}

	if _, err := GetToken(); err != ErrNotFound {
		t.Errorf("GetToken() after delete error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteTokenNotFound(t *testing.T) {
	gokeyring.MockInit()

	_ = DeleteToken()

	if err := DeleteToken(); err != ErrNotFound {
		t.Errorf("DeleteToken() on empty keyring error = %v, want %v", err, ErrNotFound)
	}
}

func TestTokenAndConnectionStringAreIndependent(t *testing.T) {
	gokeyring.MockInit()

	if err := SetToken("token-value"); err != nil {
		t.Fatalf("SetToken() failed: %v", err)
	}
	if err := SetConnectionString("postgres://user@localhost:5432/ecogoals"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	if err := DeleteToken(); err != nil {
		t.Fatalf("DeleteToken() failed: %v", err)
	}

	connStr, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() after token delete failed: %v", err)
	}
	if connStr != "postgres://user@localhost:5432/ecogoals" {
		t.Errorf("connection string was disturbed by token delete: %q", connStr)
	}
}

package controller

import (
	"crypto/md5"
	"encoding/hex"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestVerifyPasswordBcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	ok, legacy := verifyPassword("rahasia123", string(hash))
	if !ok || legacy {
		t.Errorf("(ok=%v, legacy=%v), want (true, false)", ok, legacy)
	}

	ok, _ = verifyPassword("salah", string(hash))
	if ok {
		t.Error("password salah harus ditolak")
	}
}

func TestVerifyPasswordLegacyMD5(t *testing.T) {
	sum := md5.Sum([]byte("rahasia123"))
	stored := hex.EncodeToString(sum[:])

	ok, legacy := verifyPassword("rahasia123", stored)
	if !ok || !legacy {
		t.Errorf("(ok=%v, legacy=%v), want (true, true)", ok, legacy)
	}

	ok, _ = verifyPassword("salah", stored)
	if ok {
		t.Error("password salah harus ditolak")
	}
}

func TestVerifyPasswordUnknownFormat(t *testing.T) {
	if ok, _ := verifyPassword("apapun", "plaintext-bukan-hash"); ok {
		t.Error("format hash tak dikenal harus ditolak")
	}
	if ok, _ := verifyPassword("apapun", ""); ok {
		t.Error("hash kosong harus ditolak")
	}
}

func TestSignTokenRequiresSecret(t *testing.T) {
	// JWTSecret kosong pada unit test: tidak boleh ada token yang
	// ditandatangani dengan secret default.
	if _, err := signToken(1, 2, nil); err == nil {
		t.Error("tanpa JWT_SECRET harus error")
	}
}

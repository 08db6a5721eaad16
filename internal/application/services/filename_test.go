package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuildStorageKey(t *testing.T) {
	userUUID := uuid.MustParse("3f2f9f2e-0c5d-4a5b-9a86-2f1f0b6f9e11")
	at := time.Date(2025, time.March, 9, 12, 30, 0, 0, time.UTC)

	key := buildStorageKey(userUUID, "report.pdf", at, "deadbeef")
	assert.Equal(t,
		"users/3f2f9f2e-0c5d-4a5b-9a86-2f1f0b6f9e11/2025/03/1741523400000-deadbeef-report.pdf",
		key,
	)

	// Deterministic over identical inputs.
	assert.Equal(t, key, buildStorageKey(userUUID, "report.pdf", at, "deadbeef"))
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "notes.txt", "notes.txt"},
		{"uppercase and spaces", "My Report Final.PDF", "my-report-final.pdf"},
		{"diacritics stripped", "r\u00e9sum\u00e9.doc", "resume.doc"},
		{"path segments dropped", "../../etc/passwd", "passwd"},
		{"windows path", `C:\Users\me\cat.jpg`, "cat.jpg"},
		{"reserved device name", "con.txt", "_con.txt"},
		{"empty", "", "file"},
		{"only symbols", "!!!.png", "file.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeFileName(tt.in))
		})
	}
}

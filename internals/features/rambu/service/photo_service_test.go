package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Discard,
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return db, mock
}

// memStorage: blob storage in-memory untuk test.
type memStorage struct {
	files map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{files: map[string][]byte{}}
}

func (m *memStorage) Store(_ context.Context, filename string, data []byte) (string, error) {
	m.files[filename] = data
	return "/public/uploads/" + filename, nil
}

func (m *memStorage) Delete(_ context.Context, publicURL string) error {
	return nil
}

func TestChecksum(t *testing.T) {
	got := Checksum([]byte("hello"))
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got != want {
		t.Errorf("Checksum = %s, want %s", got, want)
	}
	if Checksum([]byte("hello")) != got {
		t.Error("checksum harus deterministik")
	}
}

func TestExtHelpers(t *testing.T) {
	if got := extFromFilename("IMG_1.JPG"); got != "jpg" {
		t.Errorf("extFromFilename = %q", got)
	}
	if got := extFromFilename("tanpa-ekstensi"); got != "jpg" {
		t.Errorf("extFromFilename fallback = %q", got)
	}
	if got := extFromContentType("image/png"); got != "png" {
		t.Errorf("extFromContentType png = %q", got)
	}
	if got := extFromContentType("application/octet-stream"); got != "jpg" {
		t.Errorf("extFromContentType fallback = %q", got)
	}
}

func TestRoleKey(t *testing.T) {
	if got := roleKey(1); got != "gps" {
		t.Errorf("roleKey(1) = %q", got)
	}
	if got := roleKey(99); got != "adhoc" {
		t.Errorf("roleKey(99) = %q, want adhoc", got)
	}
}

func TestAttachStoresVerbatimBytes(t *testing.T) {
	db, mock := newMockDB(t)
	st := newMemStorage()
	svc := NewPhotoService(db, st)

	mock.ExpectQuery(`INSERT INTO "photos"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	data := []byte("isi-foto-apa-adanya")
	photo, err := svc.Attach(context.Background(), 42, 1, "IMG_1.jpg", data)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if photo.ID != 7 {
		t.Errorf("photo.ID = %d", photo.ID)
	}
	if photo.Checksum != Checksum(data) {
		t.Errorf("checksum record != checksum byte sumber")
	}
	// byte tersimpan harus persis byte sumber (tanpa re-encode)
	if len(st.files) != 1 {
		t.Fatalf("tersimpan %d file, want 1", len(st.files))
	}
	for name, stored := range st.files {
		if string(stored) != string(data) {
			t.Errorf("byte tersimpan berubah")
		}
		if Checksum(stored) != photo.Checksum {
			t.Errorf("checksum byte tersimpan != checksum record")
		}
		_ = name
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestAttachEmpty(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewPhotoService(db, newMemStorage())
	if _, err := svc.Attach(context.Background(), 1, 1, "x.jpg", nil); err == nil {
		t.Fatal("foto kosong harus error")
	}
}

func TestReplaceDeletesSlotFirst(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPhotoService(db, newMemStorage())

	mock.ExpectExec(`DELETE FROM "photos"`).
		WithArgs(42, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "photos"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))

	if _, err := svc.Replace(context.Background(), 42, 1, "baru.jpg", []byte("baru")); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestAttachFromURLInvalidDriveURL(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewPhotoService(db, newMemStorage())

	_, err := svc.AttachFromURL(context.Background(), 1, 1, "https://example.com/foto.jpg", false)
	if !errors.Is(err, ErrInvalidDriveURL) {
		t.Fatalf("err = %v, want ErrInvalidDriveURL", err)
	}
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Drive membalas 404: tidak ada byte tersimpan dan tidak ada record dibuat,
// error dikembalikan ke pemanggil untuk dicatat sebagai slot yang dilewati.
func TestAttachFromURLRemoteNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	st := newMemStorage()
	svc := NewPhotoService(db, st)

	var requested string
	svc.Client = &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		requested = r.URL.String()
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(strings.NewReader("not found")),
			Header:     http.Header{},
		}, nil
	})}

	_, err := svc.AttachFromURL(context.Background(), 1, 1,
		"https://drive.google.com/file/d/abc123/view", false)
	if err == nil {
		t.Fatal("status 404 harus error")
	}
	if requested != "https://drive.google.com/uc?export=download&id=abc123" {
		t.Errorf("URL download = %q", requested)
	}
	if len(st.files) != 0 {
		t.Errorf("tidak boleh ada byte tersimpan, ada %d", len(st.files))
	}
	// tidak ada expectation DB yang dipasang → tidak boleh ada query
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

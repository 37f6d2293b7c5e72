package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	model "rambuku_backend/internals/features/rambu/model"
)

func intPtr(v int) *int { return &v }

func TestResolveReferencesBothDefaultsSkipLookup(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewImportService(db, nil)

	catID, dtID, err := svc.ResolveReferences(context.Background(), "Jalur Evakuasi", ImportDefaults{
		CategoryID:     intPtr(3),
		DisasterTypeID: intPtr(5),
	})
	if err != nil {
		t.Fatalf("ResolveReferences: %v", err)
	}
	if catID != 3 || dtID != 5 {
		t.Errorf("(%d, %d), want (3, 5)", catID, dtID)
	}
	// kedua default terisi → tidak boleh ada query sama sekali
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestResolveReferencesExactMatch(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewImportService(db, nil)

	mock.ExpectQuery(`SELECT .* FROM "categories" WHERE LOWER\(name\) = LOWER\(\$1\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name"}).
			AddRow(9, "JE", "Jalur Evakuasi"))

	catID, dtID, err := svc.ResolveReferences(context.Background(), "jalur evakuasi", ImportDefaults{
		DisasterTypeID: intPtr(2),
	})
	if err != nil {
		t.Fatalf("ResolveReferences: %v", err)
	}
	if catID != 9 || dtID != 2 {
		t.Errorf("(%d, %d), want (9, 2)", catID, dtID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// Exact miss → pencarian contains; wildcard LIKE dari isi sel harus
// di-escape supaya tidak berubah jadi pola.
func TestResolveReferencesContainsMatch(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewImportService(db, nil)

	mock.ExpectQuery(`SELECT .* FROM "categories" WHERE LOWER\(name\) = LOWER\(\$1\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name"}))
	mock.ExpectQuery(`SELECT .* FROM "categories" WHERE LOWER\(name\) LIKE \$1`).
		WithArgs(`%rawan\_banjir 100\%%`, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name"}).
			AddRow(7, "RB", "Zona rawan_banjir 100%"))

	catID, dtID, err := svc.ResolveReferences(context.Background(), "RAWAN_Banjir 100%", ImportDefaults{
		DisasterTypeID: intPtr(2),
	})
	if err != nil {
		t.Fatalf("ResolveReferences: %v", err)
	}
	if catID != 7 || dtID != 2 {
		t.Errorf("(%d, %d), want (7, 2)", catID, dtID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// Label tak dikenal menjalankan kedua lookup sebelum jatuh ke default;
// tanpa default kategori hasilnya error per baris.
func TestResolveReferencesLookupMissWithoutDefault(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewImportService(db, nil)

	empty := []string{"id", "code", "name"}
	mock.ExpectQuery(`SELECT .* FROM "categories" WHERE LOWER\(name\) = LOWER\(\$1\)`).
		WillReturnRows(sqlmock.NewRows(empty))
	mock.ExpectQuery(`SELECT .* FROM "categories" WHERE LOWER\(name\) LIKE \$1`).
		WillReturnRows(sqlmock.NewRows(empty))

	_, _, err := svc.ResolveReferences(context.Background(), "tidak dikenal", ImportDefaults{
		DisasterTypeID: intPtr(1),
	})
	if !errors.Is(err, ErrCategoryUnresolved) {
		t.Fatalf("err = %v, want ErrCategoryUnresolved", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestResolveReferencesUnresolved(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewImportService(db, nil)

	_, _, err := svc.ResolveReferences(context.Background(), "", ImportDefaults{
		DisasterTypeID: intPtr(1),
	})
	if !errors.Is(err, ErrCategoryUnresolved) {
		t.Fatalf("err = %v, want ErrCategoryUnresolved", err)
	}

	_, _, err = svc.ResolveReferences(context.Background(), "", ImportDefaults{
		CategoryID: intPtr(1),
	})
	if !errors.Is(err, ErrDisasterTypeUnresolved) {
		t.Fatalf("err = %v, want ErrDisasterTypeUnresolved", err)
	}
}

func TestParseCoord(t *testing.T) {
	if v, ok := parseCoord("-6,2"); !ok || v != -6.2 {
		t.Errorf("parseCoord koma = (%v, %v)", v, ok)
	}
	if v, ok := parseCoord(" 106.8 "); !ok || v != 106.8 {
		t.Errorf("parseCoord titik = (%v, %v)", v, ok)
	}
	if _, ok := parseCoord(""); ok {
		t.Error("string kosong harus gagal")
	}
	if _, ok := parseCoord("abc"); ok {
		t.Error("non-angka harus gagal")
	}
}

func TestValidCoord(t *testing.T) {
	cases := []struct {
		lat, lng float64
		want     bool
	}{
		{-6.2, 106.8, true},
		{0, 106.8, false},  // nol = sel kosong
		{-6.2, 0, false},
		{91, 106.8, false}, // di luar rentang WGS84
		{-6.2, 181, false},
	}
	for _, c := range cases {
		if got := validCoord(c.lat, c.lng); got != c.want {
			t.Errorf("validCoord(%v, %v) = %v, want %v", c.lat, c.lng, got, c.want)
		}
	}
}

// Semua baris gagal: batch harus berakhir failed dan penomoran error
// mengikuti baris spreadsheet (data pertama = baris 2).
func TestRunAllRowsInvalid(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewImportService(db, NewPhotoService(db, newMemStorage()))

	excel := buildWorkbook(t, [][]interface{}{
		{"Jenis Rambu", "Latitude", "Longitude"},
		{"Rambu A", "0", "106.8"},
		{"Rambu B", "bukan-angka", "106.8"},
	})

	mock.ExpectQuery(`INSERT INTO "import_batches"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "import_batches"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	batch, report, err := svc.Run(context.Background(), excel, nil, ImportDefaults{}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if batch.Status != model.BatchFailed {
		t.Errorf("status = %s, want %s", batch.Status, model.BatchFailed)
	}
	if report.Created != 0 || len(report.Errors) != 2 {
		t.Fatalf("report = %+v", report)
	}
	if report.Errors[0].Row != 2 || report.Errors[1].Row != 3 {
		t.Errorf("penomoran baris = %d, %d, want 2, 3", report.Errors[0].Row, report.Errors[1].Row)
	}
	if report.Errors[0].Message != "Latitude/Longitude tidak valid" {
		t.Errorf("pesan = %q", report.Errors[0].Message)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// Satu baris gagal di antara baris valid: yang valid tetap tersimpan,
// error menunjuk baris spreadsheet-nya, batch berakhir needs_fix.
func TestRunMixedOutcome(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewImportService(db, NewPhotoService(db, newMemStorage()))

	excel := buildWorkbook(t, [][]interface{}{
		{"Jenis Rambu", "Latitude", "Longitude"},
		{"Rambu A", "-6.2", "106.8"},
		{"Rambu B", "95", "106.8"}, // lat di luar rentang WGS84
		{"Rambu C", "-7,1", "110,4"},
	})

	mock.ExpectQuery(`INSERT INTO "import_batches"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "rambu"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery(`INSERT INTO "rambu"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(13))
	mock.ExpectExec(`UPDATE "import_batches"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	defaults := ImportDefaults{CategoryID: intPtr(3), DisasterTypeID: intPtr(1)}
	batch, report, err := svc.Run(context.Background(), excel, nil, defaults, intPtr(5))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if batch.Status != model.BatchNeedsFix {
		t.Errorf("status = %s, want %s", batch.Status, model.BatchNeedsFix)
	}
	if report.Created != 2 || len(report.IDs) != 2 || report.IDs[0] != 11 || report.IDs[1] != 13 {
		t.Errorf("report = %+v, want created 2 ids [11 13]", report)
	}
	if len(report.Errors) != 1 || report.Errors[0].Row != 3 {
		t.Fatalf("errors = %+v, want satu error di baris 3", report.Errors)
	}
	if report.Errors[0].Message != "Latitude/Longitude tidak valid" {
		t.Errorf("pesan = %q", report.Errors[0].Message)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// Foto yang dirujuk kolom PhotoGPS dan ada di arsip terpasang di slot GPS:
// byte tersimpan apa adanya, checksum record = checksum byte sumber.
func TestRunAttachesArchivePhoto(t *testing.T) {
	db, mock := newMockDB(t)
	st := newMemStorage()
	svc := NewImportService(db, NewPhotoService(db, st))

	photoBytes := []byte("isi-foto-a")
	excel := buildWorkbook(t, [][]interface{}{
		{"Jenis Rambu", "Latitude", "Longitude", "PhotoGPS"},
		{"Rambu A", "-6.2", "106.8", "A.jpg"},
	})
	archive := buildZip(t, map[string]string{"A.jpg": string(photoBytes)})

	mock.ExpectQuery(`INSERT INTO "import_batches"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "rambu"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery(`INSERT INTO "photos"`).
		WithArgs(11, sqlmock.AnyArg(), Checksum(photoBytes), model.PhotoTypeGPS,
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
	mock.ExpectExec(`UPDATE "import_batches"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	defaults := ImportDefaults{CategoryID: intPtr(3), DisasterTypeID: intPtr(1)}
	batch, report, err := svc.Run(context.Background(), excel, archive, defaults, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if batch.Status != model.BatchImported || report.Created != 1 || len(report.Errors) != 0 {
		t.Fatalf("batch = %s, report = %+v", batch.Status, report)
	}

	if len(st.files) != 1 {
		t.Fatalf("tersimpan %d file, want 1", len(st.files))
	}
	for name, data := range st.files {
		if !strings.HasPrefix(name, "11-gps-") || !strings.HasSuffix(name, ".jpg") {
			t.Errorf("nama objek = %q, want prefix 11-gps- dan ekstensi .jpg", name)
		}
		if string(data) != string(photoBytes) {
			t.Error("byte tersimpan berubah dari byte arsip")
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// failStorage: backend blob yang selalu gagal.
type failStorage struct{}

func (failStorage) Store(context.Context, string, []byte) (string, error) {
	return "", errors.New("storage down")
}
func (failStorage) Delete(context.Context, string) error { return nil }

// Kegagalan lampiran foto tidak membatalkan baris: record tetap dibuat
// dan batch tetap imported.
func TestRunPhotoFailureDoesNotFailRow(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewImportService(db, NewPhotoService(db, failStorage{}))

	excel := buildWorkbook(t, [][]interface{}{
		{"Jenis Rambu", "Latitude", "Longitude", "PhotoGPS"},
		{"Rambu A", "-6.2", "106.8", "A.jpg"},
	})
	archive := buildZip(t, map[string]string{"A.jpg": "isi"})

	mock.ExpectQuery(`INSERT INTO "import_batches"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "rambu"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectExec(`UPDATE "import_batches"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	defaults := ImportDefaults{CategoryID: intPtr(3), DisasterTypeID: intPtr(1)}
	batch, report, err := svc.Run(context.Background(), excel, archive, defaults, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if batch.Status != model.BatchImported || report.Created != 1 || len(report.Errors) != 0 {
		t.Fatalf("batch = %s, report = %+v; foto gagal tidak boleh menggagalkan baris", batch.Status, report)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRunInvalidArchiveFatal(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewImportService(db, nil)

	excel := buildWorkbook(t, [][]interface{}{
		{"Jenis Rambu", "Latitude", "Longitude"},
	})

	_, _, err := svc.Run(context.Background(), excel, []byte("bukan zip"), ImportDefaults{}, nil)
	if !errors.Is(err, ErrInvalidArchive) {
		t.Fatalf("err = %v, want ErrInvalidArchive", err)
	}
}

func TestRunInvalidSpreadsheetFatal(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewImportService(db, nil)

	_, _, err := svc.Run(context.Background(), []byte("rusak"), nil, ImportDefaults{}, nil)
	if !errors.Is(err, ErrInvalidSpreadsheet) {
		t.Fatalf("err = %v, want ErrInvalidSpreadsheet", err)
	}
}

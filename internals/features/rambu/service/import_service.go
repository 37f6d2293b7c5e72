package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"rambuku_backend/internals/constants"
	model "rambuku_backend/internals/features/rambu/model"
	refModel "rambuku_backend/internals/features/references/model"
)

// Pesan per-baris mengikuti format yang sudah dikenal pengguna lama.
const msgInvalidCoord = "Latitude/Longitude tidak valid"

var (
	ErrCategoryUnresolved     = errors.New("categoryId tidak ditemukan & default tidak diisi")
	ErrDisasterTypeUnresolved = errors.New("disasterTypeId default tidak diisi")
)

// ImportDefaults nilai fallback dari query param request import.
type ImportDefaults struct {
	CategoryID     *int
	DisasterTypeID *int
	ProvID         *int
	CityID         *int
	DistrictID     *int
	SubdistrictID  *int
}

// RowError error satu baris; Row memakai penomoran spreadsheet
// (header di baris 1, data mulai baris 2) supaya pengguna bisa langsung
// menemukan baris bermasalah di file aslinya.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportReport ringkasan akhir satu batch.
type ImportReport struct {
	Created int        `json:"created"`
	IDs     []int      `json:"ids"`
	Errors  []RowError `json:"errors"`
}

// Kolom foto di spreadsheet dan kode slotnya.
var photoColumns = []struct {
	Column string
	Type   int
}{
	{"PhotoGPS", model.PhotoTypeGPS},
	{"Photo0", model.PhotoTypeP0},
	{"Photo50", model.PhotoTypeP50},
	{"Photo100", model.PhotoTypeP100},
}

// Wildcard LIKE (%, _) dan backslash di-escape supaya isi sel spreadsheet
// tidak berubah jadi pola pencarian.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ImportService menjalankan pipeline bulk import:
// extractor → resolver → record creator (+foto) → aggregator.
// Baris diproses strictly sequential; error satu baris tidak menghentikan
// baris berikutnya.
type ImportService struct {
	DB     *gorm.DB
	Photos *PhotoService
}

func NewImportService(db *gorm.DB, photos *PhotoService) *ImportService {
	return &ImportService{DB: db, Photos: photos}
}

// ResolveReferences memetakan label "Jenis Rambu" ke id kategori + jenis
// bencana. Override eksplisit selalu menang: jika kedua default terisi,
// tidak ada lookup sama sekali. Jika tidak, nama kategori dicocokkan
// case-insensitive (exact dulu, lalu contains); gagal total → error per
// baris, bukan fatal.
func (s *ImportService) ResolveReferences(ctx context.Context, label string, d ImportDefaults) (int, int, error) {
	if d.CategoryID != nil && d.DisasterTypeID != nil {
		return *d.CategoryID, *d.DisasterTypeID, nil
	}

	categoryID := 0
	if label != "" {
		var cat refModel.Category
		err := s.DB.WithContext(ctx).
			Where("LOWER(name) = LOWER(?)", label).
			First(&cat).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = s.DB.WithContext(ctx).
				Where("LOWER(name) LIKE ?", "%"+likeEscaper.Replace(strings.ToLower(label))+"%").
				First(&cat).Error
		}
		switch {
		case err == nil:
			categoryID = cat.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			// lanjut ke default
		default:
			return 0, 0, fmt.Errorf("lookup kategori: %w", err)
		}
	}
	if categoryID == 0 {
		if d.CategoryID == nil {
			return 0, 0, ErrCategoryUnresolved
		}
		categoryID = *d.CategoryID
	}

	if d.DisasterTypeID == nil {
		return 0, 0, ErrDisasterTypeUnresolved
	}
	return categoryID, *d.DisasterTypeID, nil
}

// parseCoord menerima angka dengan desimal titik atau koma.
func parseCoord(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// validCoord: nol dianggap tidak valid karena di konvensi spreadsheet nol
// juga berarti "kosong"; selain itu wajib dalam rentang WGS84.
func validCoord(lat, lng float64) bool {
	if lat == 0 || lng == 0 {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// Run memproses satu request import: file excel wajib, zip gambar opsional.
// Mengembalikan batch (status final) + report. Error return hanya untuk
// kondisi fatal (payload bukan spreadsheet/zip, atau batch record gagal
// dibuat); error per baris terkumpul di report.
func (s *ImportService) Run(ctx context.Context, excelBytes, zipBytes []byte, defaults ImportDefaults, inputBy *int) (*model.ImportBatch, *ImportReport, error) {
	rows, err := ParseRows(excelBytes)
	if err != nil {
		return nil, nil, err
	}
	lookup, err := BuildArchiveLookup(zipBytes)
	if err != nil {
		return nil, nil, err
	}

	batch := model.ImportBatch{Source: "excel", Status: model.BatchValidating}
	if err := s.DB.WithContext(ctx).Create(&batch).Error; err != nil {
		return nil, nil, fmt.Errorf("buat batch: %w", err)
	}

	report := &ImportReport{IDs: []int{}, Errors: []RowError{}}
	for i, row := range rows {
		id, err := s.createRow(ctx, row, defaults, inputBy, lookup)
		if err != nil {
			report.Errors = append(report.Errors, RowError{Row: i + 2, Message: err.Error()})
			continue
		}
		report.IDs = append(report.IDs, id)
	}
	report.Created = len(report.IDs)

	// Transisi status tepat satu kali setelah semua baris selesai.
	switch {
	case len(report.Errors) == 0:
		batch.Status = model.BatchImported
	case report.Created > 0:
		batch.Status = model.BatchNeedsFix
	default:
		batch.Status = model.BatchFailed
	}
	if raw, err := json.Marshal(report); err == nil {
		batch.Report = datatypes.JSON(raw)
	}
	if err := s.DB.WithContext(ctx).Model(&model.ImportBatch{}).
		Where("id = ?", batch.ID).
		Updates(map[string]any{"status": batch.Status, "report": batch.Report}).Error; err != nil {
		log.Printf("[ERROR] update batch %d: %v", batch.ID, err)
	}

	return &batch, report, nil
}

// createRow memvalidasi dan menyimpan satu baris. Foto yang cocok di arsip
// dipasang setelah record dasar tersimpan; kegagalan foto tidak membatalkan
// keberhasilan baris.
func (s *ImportService) createRow(ctx context.Context, row Row, defaults ImportDefaults, inputBy *int, lookup map[string][]byte) (int, error) {
	jenis := row.First("Jenis Rambu", "jenis_rambu")
	alamat := row.First("Alamat Pemasangan", "alamat")
	jmlStr := row.First("jumlah unit", "Jumlah Unit", "jmlUnit")

	lat, okLat := parseCoord(row.First("Latitude", "lat"))
	lng, okLng := parseCoord(row.First("Longitude", "lng"))
	if !okLat || !okLng || !validCoord(lat, lng) {
		return 0, errors.New(msgInvalidCoord)
	}

	categoryID, disasterTypeID, err := s.ResolveReferences(ctx, jenis, defaults)
	if err != nil {
		return 0, err
	}

	name := jenis
	if name == "" {
		name = fmt.Sprintf("Rambu-%d", time.Now().UnixMilli())
	}

	rambu := model.Rambu{
		Name:           name,
		Status:         constants.RambuStatusDraft,
		Lat:            lat,
		Lng:            lng,
		CategoryID:     categoryID,
		DisasterTypeID: disasterTypeID,
		ProvID:         defaults.ProvID,
		CityID:         defaults.CityID,
		DistrictID:     defaults.DistrictID,
		SubdistrictID:  defaults.SubdistrictID,
		InputBy:        inputBy,
	}
	if alamat != "" {
		rambu.Description = &alamat
	}
	if jmlStr != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(jmlStr)); err == nil {
			rambu.JmlUnit = &n
		}
	}

	if err := s.DB.WithContext(ctx).Create(&rambu).Error; err != nil {
		return 0, fmt.Errorf("simpan rambu: %w", err)
	}

	for _, pc := range photoColumns {
		fname := strings.TrimSpace(row[pc.Column])
		if fname == "" {
			continue
		}
		data, ok := lookup[fname]
		if !ok {
			continue // foto tidak disertakan, bukan error
		}
		if _, err := s.Photos.Attach(ctx, rambu.ID, pc.Type, fname, data); err != nil {
			log.Printf("[WARN] foto %s (rambu %d) gagal dipasang: %v", fname, rambu.ID, err)
		}
	}

	return rambu.ID, nil
}

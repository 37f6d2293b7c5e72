package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	model "rambuku_backend/internals/features/rambu/model"
	storage "rambuku_backend/internals/helpers/storage"
)

// Nama slot untuk penamaan file objek, selaras kode type foto.
var photoRoleKeys = map[int]string{
	model.PhotoTypeAdhoc: "adhoc",
	model.PhotoTypeGPS:   "gps",
	model.PhotoTypeP0:    "zero",
	model.PhotoTypeP50:   "fifty",
	model.PhotoTypeP100:  "hundred",
}

var driveFileIDRe = regexp.MustCompile(`/d/([^/]+)`)

var ErrInvalidDriveURL = errors.New("URL Google Drive tidak valid")

// PhotoService menjalankan alur lampiran foto: simpan byte ke blob storage,
// hitung checksum SHA-256 atas byte persis yang tersimpan, ekstrak metadata
// EXIF best-effort, lalu catat baris Photo.
type PhotoService struct {
	DB      *gorm.DB
	Storage storage.BlobStorage
	Client  *http.Client
}

func NewPhotoService(db *gorm.DB, st storage.BlobStorage) *PhotoService {
	return &PhotoService{
		DB:      db,
		Storage: st,
		// fetch foto via URL dibatasi supaya satu baris import tidak
		// menggantung tanpa batas
		Client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Checksum menghitung SHA-256 hex dari byte foto.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func extFromFilename(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 && i < len(name)-1 {
		return strings.ToLower(name[i+1:])
	}
	return "jpg"
}

func extFromContentType(ct string) string {
	switch {
	case strings.Contains(ct, "png"):
		return "png"
	case strings.Contains(ct, "jpeg"):
		return "jpg"
	default:
		return "jpg"
	}
}

func roleKey(photoType int) string {
	if k, ok := photoRoleKeys[photoType]; ok {
		return k
	}
	return "adhoc"
}

// Attach menyimpan byte foto dan mencatat PhotoRecord untuk rambu tersebut.
func (s *PhotoService) Attach(ctx context.Context, rambuID, photoType int, sourceName string, data []byte) (*model.Photo, error) {
	if len(data) == 0 {
		return nil, errors.New("foto kosong")
	}

	ext := extFromFilename(sourceName)
	filename := fmt.Sprintf("%d-%s-%s.%s", rambuID, roleKey(photoType), uuid.NewString(), ext)

	url, err := s.Storage.Store(ctx, filename, data)
	if err != nil {
		return nil, fmt.Errorf("simpan foto: %w", err)
	}

	photo := model.Photo{
		RambuID:  rambuID,
		URL:      url,
		Checksum: Checksum(data),
		Type:     photoType,
	}
	if meta := ExtractMeta(data); meta != nil {
		if raw, err := json.Marshal(meta); err == nil {
			photo.Meta = datatypes.JSON(raw)
		}
	}

	if err := s.DB.WithContext(ctx).Create(&photo).Error; err != nil {
		return nil, fmt.Errorf("simpan photo record: %w", err)
	}
	return &photo, nil
}

// Replace menghapus semua foto (rambu, type) lalu memasang yang baru,
// sehingga tiap slot kanonik punya maksimal satu foto hidup.
func (s *PhotoService) Replace(ctx context.Context, rambuID, photoType int, sourceName string, data []byte) (*model.Photo, error) {
	if err := s.DB.WithContext(ctx).
		Where("rambu_id = ? AND type = ?", rambuID, photoType).
		Delete(&model.Photo{}).Error; err != nil {
		return nil, fmt.Errorf("hapus foto lama: %w", err)
	}
	return s.Attach(ctx, rambuID, photoType, sourceName, data)
}

// AttachFromURL mengunduh foto dari share-link Google Drive lalu memasangnya.
// replace=true dipakai alur update (slot dibersihkan dulu).
// Kegagalan download/ekstraksi ID dikembalikan sebagai error biasa; pemanggil
// cukup mencatat log dan melewati slot tersebut.
func (s *PhotoService) AttachFromURL(ctx context.Context, rambuID, photoType int, shareURL string, replace bool) (*model.Photo, error) {
	data, ext, err := s.downloadDrive(ctx, shareURL)
	if err != nil {
		return nil, err
	}
	sourceName := "remote." + ext
	if replace {
		return s.Replace(ctx, rambuID, photoType, sourceName, data)
	}
	return s.Attach(ctx, rambuID, photoType, sourceName, data)
}

func (s *PhotoService) downloadDrive(ctx context.Context, shareURL string) ([]byte, string, error) {
	m := driveFileIDRe.FindStringSubmatch(shareURL)
	if m == nil {
		return nil, "", ErrInvalidDriveURL
	}

	directURL := "https://drive.google.com/uc?export=download&id=" + m[1]
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, directURL, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download foto: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("download foto: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("download foto: %w", err)
	}
	return data, extFromContentType(resp.Header.Get("Content-Type")), nil
}

package controller

import (
	"errors"
	"io"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	service "rambuku_backend/internals/features/rambu/service"
	helper "rambuku_backend/internals/helpers"
)

type ImportController struct {
	DB       *gorm.DB
	Importer *service.ImportService
}

func NewImportController(db *gorm.DB, importer *service.ImportService) *ImportController {
	return &ImportController{DB: db, Importer: importer}
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func queryIntPtr(c *fiber.Ctx, key string) *int {
	if v := helper.QueryInt(c, key); v > 0 {
		return &v
	}
	return nil
}

// ImportExcel menerima multipart:
//   - file      : spreadsheet .xlsx (wajib)
//   - imagesZip : arsip gambar (opsional), dipetakan lewat kolom
//     PhotoGPS/Photo0/Photo50/Photo100
//
// Query param opsional sebagai default per-batch: categoryId,
// disasterTypeId, prov_id, city_id, district_id, subdistrict_id.
//
// Error per baris TIDAK menggagalkan request: response selalu 200 dengan
// ringkasan, kecuali file excel hilang/rusak (400).
func (ctrl *ImportController) ImportExcel(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, `Excel file (field "file") wajib.`)
	}
	excelBytes, err := readFormFile(fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File excel tidak bisa dibaca")
	}

	var zipBytes []byte
	if zfh, err := c.FormFile("imagesZip"); err == nil && zfh != nil && zfh.Size > 0 {
		if zipBytes, err = readFormFile(zfh); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "File zip tidak bisa dibaca")
		}
	}

	defaults := service.ImportDefaults{
		CategoryID:     queryIntPtr(c, "categoryId"),
		DisasterTypeID: queryIntPtr(c, "disasterTypeId"),
		ProvID:         queryIntPtr(c, "prov_id"),
		CityID:         queryIntPtr(c, "city_id"),
		DistrictID:     queryIntPtr(c, "district_id"),
		SubdistrictID:  queryIntPtr(c, "subdistrict_id"),
	}

	var inputBy *int
	if userID, ok := c.Locals("user_id").(int); ok && userID > 0 {
		inputBy = &userID
	}

	batch, report, err := ctrl.Importer.Run(c.UserContext(), excelBytes, zipBytes, defaults, inputBy)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSpreadsheet) || errors.Is(err, service.ErrInvalidArchive) {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		log.Println("[ERROR] import excel:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Import gagal dijalankan")
	}

	return c.JSON(fiber.Map{
		"batch_id": batch.ID,
		"status":   batch.Status,
		"created":  report.Created,
		"ids":      report.IDs,
		"errors":   report.Errors,
	})
}

package controller

// provinceGeomSlug memetakan kode provinsi BPS ke nama berkas geojson
// pada dataset JfrAziz/indonesia-district.
var provinceGeomSlug = map[int]string{
	11: "aceh",
	12: "sumatera_utara",
	13: "sumatera_barat",
	14: "riau",
	15: "jambi",
	16: "sumatera_selatan",
	17: "bengkulu",
	18: "lampung",
	19: "kepulauan_bangka_belitung",
	21: "kepulauan_riau",
	31: "dki_jakarta",
	32: "jawa_barat",
	33: "jawa_tengah",
	34: "di_yogyakarta",
	35: "jawa_timur",
	36: "banten",
	51: "bali",
	52: "nusa_tenggara_barat",
	53: "nusa_tenggara_timur",
	61: "kalimantan_barat",
	62: "kalimantan_tengah",
	63: "kalimantan_selatan",
	64: "kalimantan_timur",
	65: "kalimantan_utara",
	71: "sulawesi_utara",
	72: "sulawesi_tengah",
	73: "sulawesi_selatan",
	74: "sulawesi_tenggara",
	75: "gorontalo",
	76: "sulawesi_barat",
	81: "maluku",
	82: "maluku_utara",
	91: "papua",
	92: "papua_barat",
}

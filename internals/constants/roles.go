package constants

// Role user (integer, mengikuti tabel users lama).
const (
	RoleSuperadmin = 1
	RoleAdmin      = 2
	RoleManager    = 3
)

// Status user.
const (
	UserActive   = 1
	UserInactive = 0
)

// Status lifecycle rambu (free-text di kolom status).
const (
	RambuStatusDraft     = "draft"
	RambuStatusPublished = "published"
	RambuStatusRusak     = "rusak"
	RambuStatusHilang    = "hilang"
	RambuStatusTrash     = "trash"
)

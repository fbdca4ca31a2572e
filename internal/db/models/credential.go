package models

// Credential holds the local password material for a database-provider user.
// A row exists only for accounts created through the database provider;
// directory-authenticated users never have one. The row is written in the
// same transaction as the owning User and removed when the user is deleted.
type Credential struct {
	// UserID owns the credential, one row per user.
	UserID uint64 `gorm:"primaryKey"`
	// User enforces the ownership foreign key.
	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	// HashedPassword is the Argon2id digest; the salt is embedded in the encoded form.
	HashedPassword string `gorm:"size:255;not null"`
	// Source tags which provider wrote the credential.
	Source AuthSource `gorm:"type:varchar(20);not null;default:'local'"`
}

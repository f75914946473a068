package keystore

import (
	"errors"
	"fmt"

	"github.com/go-ece/ece/ece"
	"github.com/go-ece/ece/ecdh"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// keyRow is the gorm model backing a persisted keystore entry. Exactly
// one of RawKey or DHPrivate is populated.
type keyRow struct {
	KeyID     string `gorm:"primaryKey"`
	RawKey    []byte
	DHPrivate []byte
	Label     string
}

// Gorm is a Store persisted through gorm, using the same
// Type/DSN-selected dialector pattern as other gorm-backed stores, but
// backing a keystore instead of a voucher/session store.
type Gorm struct {
	db *gorm.DB
}

// OpenSQLite opens (creating if necessary) a sqlite-backed keystore at dsn.
func OpenSQLite(dsn string) (*Gorm, error) {
	return openGorm(sqlite.Open(dsn))
}

// OpenPostgres opens a postgres-backed keystore using dsn as the
// connection string.
func OpenPostgres(dsn string) (*Gorm, error) {
	return openGorm(postgres.Open(dsn))
}

func openGorm(dialector gorm.Dialector) (*Gorm, error) {
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("keystore: open database: %w", err)
	}
	if err := db.AutoMigrate(&keyRow{}); err != nil {
		return nil, fmt.Errorf("keystore: migrate schema: %w", err)
	}
	return &Gorm{db: db}, nil
}

func (g *Gorm) RawKey(keyid string) ([]byte, bool, error) {
	var row keyRow
	err := g.db.First(&row, "key_id = ?", keyid).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("keystore: lookup %q: %w", keyid, err)
	case row.RawKey == nil:
		return nil, false, nil
	}
	return row.RawKey, true, nil
}

func (g *Gorm) DHKey(keyid string) (ece.DHPrivateKey, string, bool, error) {
	var row keyRow
	err := g.db.First(&row, "key_id = ?", keyid).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, "", false, nil
	case err != nil:
		return nil, "", false, fmt.Errorf("keystore: lookup %q: %w", keyid, err)
	case row.DHPrivate == nil:
		return nil, "", false, nil
	}

	priv, err := ecdh.Import(row.DHPrivate)
	if err != nil {
		return nil, "", false, fmt.Errorf("keystore: restoring dh key %q: %w", keyid, err)
	}
	return priv, row.Label, true, nil
}

func (g *Gorm) SaveRaw(id string, key []byte) error {
	if len(key) != 16 {
		return ece.ErrBadKeyLength
	}
	row := keyRow{KeyID: id, RawKey: key}
	return g.upsert(&row)
}

// persistableDH is satisfied by DH private keys (such as ecdh.PrivateKey)
// that can serialize their scalar for storage.
type persistableDH interface {
	Bytes() []byte
}

func (g *Gorm) SaveDH(id string, priv ece.DHPrivateKey, label string) error {
	persistable, ok := priv.(persistableDH)
	if !ok {
		return fmt.Errorf("keystore: dh key type %T cannot be persisted", priv)
	}
	row := keyRow{KeyID: id, DHPrivate: persistable.Bytes(), Label: label}
	return g.upsert(&row)
}

func (g *Gorm) upsert(row *keyRow) error {
	err := g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key_id"}},
		UpdateAll: true,
	}).Create(row).Error
	if err != nil {
		return fmt.Errorf("keystore: save %q: %w", row.KeyID, err)
	}
	return nil
}

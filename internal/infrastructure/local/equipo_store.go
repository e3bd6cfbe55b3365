package local

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/metalrec/chatarreria-api/internal/application/equipo"
)

var (
	bucketEquipo = []byte("equipo")
	keyEquipoID  = []byte("equipo_id")
	keyAlias     = []byte("alias")
)

var _ equipo.Almacen = (*EquipoStore)(nil)

// EquipoStore persiste la identidad del terminal en un archivo bbolt
// local. El archivo vive junto al binario de cada equipo: es lo único que
// distingue a un terminal de otro frente a la base compartida.
type EquipoStore struct {
	db *bbolt.DB
}

// NewEquipoStore abre (o crea) el archivo de identidad del terminal.
func NewEquipoStore(dbPath string) (*EquipoStore, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open equipo store: %w", err)
	}
	store := &EquipoStore{db: db}
	if err := store.initBucket(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close cierra el archivo.
func (s *EquipoStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *EquipoStore) initBucket() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketEquipo); err != nil {
			return fmt.Errorf("create equipo bucket: %w", err)
		}
		return nil
	})
}

// GetEquipoID devuelve el id persistido, o "" si nunca se ha generado.
func (s *EquipoStore) GetEquipoID(_ context.Context) (string, error) {
	return s.get(keyEquipoID)
}

// SetEquipoID persiste el id del terminal.
func (s *EquipoStore) SetEquipoID(_ context.Context, id string) error {
	return s.set(keyEquipoID, id)
}

// GetAlias devuelve el alias persistido, o "" si no se ha fijado.
func (s *EquipoStore) GetAlias(_ context.Context) (string, error) {
	return s.get(keyAlias)
}

// SetAlias persiste el alias del terminal.
func (s *EquipoStore) SetAlias(_ context.Context, alias string) error {
	return s.set(keyAlias, alias)
}

func (s *EquipoStore) get(key []byte) (string, error) {
	var value string
	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(bucketEquipo).Get(key); v != nil {
			value = string(v)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("read equipo store: %w", err)
	}
	return value, nil
}

func (s *EquipoStore) set(key []byte, value string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketEquipo).Put(key, []byte(value))
	})
	if err != nil {
		return fmt.Errorf("write equipo store: %w", err)
	}
	return nil
}

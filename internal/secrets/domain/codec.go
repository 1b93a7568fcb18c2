package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/secretstash/internal/crypto/domain"
	"github.com/allisson/secretstash/internal/validation"
)

// recordJSON is the stored representation of a SecretRecord. Byte slices are
// base64 encoded by encoding/json; timestamps are RFC 3339 in UTC.
type recordJSON struct {
	SecretID          string     `json:"secret_id"`
	OwnerID           string     `json:"owner_id"`
	Name              string     `json:"name"`
	Ciphertext        []byte     `json:"ciphertext"`
	Nonce             []byte     `json:"nonce"`
	EncryptionVersion uint       `json:"encryption_version"`
	Version           uint       `json:"version"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	LastAccessed      *time.Time `json:"last_accessed"`
}

// EncodeRecord serializes a record for storage.
func EncodeRecord(record *SecretRecord) ([]byte, error) {
	var lastAccessed *time.Time
	if record.LastAccessed != nil {
		t := record.LastAccessed.UTC()
		lastAccessed = &t
	}

	return json.Marshal(recordJSON{
		SecretID:          record.SecretID.String(),
		OwnerID:           record.OwnerID,
		Name:              record.Name,
		Ciphertext:        record.Ciphertext,
		Nonce:             record.Nonce,
		EncryptionVersion: record.EncryptionVersion,
		Version:           record.Version,
		CreatedAt:         record.CreatedAt.UTC(),
		UpdatedAt:         record.UpdatedAt.UTC(),
		LastAccessed:      lastAccessed,
	})
}

// DecodeRecord parses stored bytes. Anything that is not a complete, well-formed
// record yields a *MalformedRecordError.
func DecodeRecord(data []byte) (*SecretRecord, error) {
	var raw recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &MalformedRecordError{Reason: fmt.Sprintf("invalid json: %v", err)}
	}

	secretID, err := uuid.Parse(raw.SecretID)
	if err != nil || secretID == uuid.Nil {
		return nil, &MalformedRecordError{Reason: "invalid secret_id"}
	}

	switch {
	case raw.OwnerID == "":
		return nil, &MalformedRecordError{Reason: "missing owner_id"}
	case !validation.ValidName(raw.Name):
		return nil, &MalformedRecordError{Reason: "invalid name"}
	case len(raw.Nonce) != cryptoDomain.NonceSize:
		return nil, &MalformedRecordError{Reason: "invalid nonce length"}
	case len(raw.Ciphertext) < cryptoDomain.TagSize:
		return nil, &MalformedRecordError{Reason: "ciphertext too short"}
	case raw.EncryptionVersion == 0:
		return nil, &MalformedRecordError{Reason: "missing encryption_version"}
	case raw.Version == 0:
		return nil, &MalformedRecordError{Reason: "missing version"}
	case raw.CreatedAt.IsZero() || raw.UpdatedAt.IsZero():
		return nil, &MalformedRecordError{Reason: "missing timestamps"}
	}

	return &SecretRecord{
		SecretID:          secretID,
		OwnerID:           raw.OwnerID,
		Name:              raw.Name,
		Ciphertext:        raw.Ciphertext,
		Nonce:             raw.Nonce,
		EncryptionVersion: raw.EncryptionVersion,
		Version:           raw.Version,
		CreatedAt:         raw.CreatedAt,
		UpdatedAt:         raw.UpdatedAt,
		LastAccessed:      raw.LastAccessed,
	}, nil
}

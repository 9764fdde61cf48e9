package domain

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor used for new hashes.
var PasswordCost = bcrypt.DefaultCost

// Credential holds a salted one-way password hash. The hash can be replaced
// or verified against a plaintext, never read back.
type Credential struct {
	hash []byte
}

// Set hashes plaintext with a freshly generated salt and replaces the
// stored hash.
func (c *Credential) Set(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	h, err := bcrypt.GenerateFromPassword(prehash(plaintext), PasswordCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	c.hash = h
	return nil
}

// Verify reports whether plaintext matches the stored hash.
func (c Credential) Verify(plaintext string) bool {
	if len(c.hash) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(c.hash, prehash(plaintext)) == nil
}

// prehash digests plaintext to a fixed 44 bytes so bcrypt sees every byte
// of passwords longer than its 72 byte input limit.
func prehash(plaintext string) []byte {
	sum := sha256.Sum256([]byte(plaintext))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// IsSet reports whether a password has been set.
func (c Credential) IsSet() bool {
	return len(c.hash) > 0
}

// Equal reports whether both credentials carry the same hash.
func (c Credential) Equal(other Credential) bool {
	return string(c.hash) == string(other.hash)
}

// String never reveals the hash.
func (c Credential) String() string {
	return "[REDACTED]"
}

// MarshalJSON refuses to serialize the hash.
func (c Credential) MarshalJSON() ([]byte, error) {
	return nil, ErrAttributeUnavailable
}

// MarshalBSONValue stores the hash as a BSON string. It is the only path
// through which the hash leaves the process.
func (c Credential) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(string(c.hash))
}

// UnmarshalBSONValue restores a hash previously written by MarshalBSONValue.
func (c *Credential) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bsontype.Null || t == bsontype.Undefined {
		c.hash = nil
		return nil
	}
	s, ok := bson.RawValue{Type: t, Value: data}.StringValueOK()
	if !ok {
		return fmt.Errorf("credential: unexpected bson type %s", t)
	}
	c.hash = []byte(s)
	return nil
}

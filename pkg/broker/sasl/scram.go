// Package sasl derives SCRAM-SHA-256 credentials and checks a password
// against them, using the same key derivation a real SASL/SCRAM client
// would. It does not speak any real wire protocol, and the simulated
// broker handle in pkg/broker does not call it.
package sasl

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"
)

// Mechanism identifies a SCRAM hash variant.
type Mechanism string

const (
	ScramSHA256 Mechanism = "SCRAM-SHA-256"
)

const defaultIterations = 4096

// Credential is the salted, iterated key derived from a username/password
// pair, ready to be compared against during a simulated handshake.
type Credential struct {
	Salt       []byte
	Iterations int
	SaltedKey  []byte
}

// DeriveCredential salts and iterates password with PBKDF2-HMAC-SHA256,
// the key derivation SCRAM-SHA-256 specifies.
func DeriveCredential(password string, salt []byte) Credential {
	if len(salt) == 0 {
		salt = []byte("kconsumer-simulated-salt")
	}
	return Credential{
		Salt:       salt,
		Iterations: defaultIterations,
		SaltedKey:  pbkdf2.Key([]byte(password), salt, defaultIterations, sha256.Size, sha256.New),
	}
}

// Handshake compares a presented password against an already-derived
// Credential, simulating the client-final-message verification step of a
// SCRAM exchange. It returns an error if the password does not match.
func Handshake(mechanism Mechanism, cred Credential, password string) error {
	if mechanism != ScramSHA256 {
		return errors.Errorf("sasl: unsupported mechanism %q", mechanism)
	}
	candidate := DeriveCredential(password, cred.Salt)
	if subtle.ConstantTimeCompare(candidate.SaltedKey, cred.SaltedKey) != 1 {
		return errors.New("sasl: credential mismatch")
	}
	return nil
}

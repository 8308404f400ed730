// Package keystore reads client credentials from an XML keystore file. Each
// credential is indexed by alias and holds a certificate plus a private key
// sealed with a key derived from the store passphrase.
package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters used to derive the sealing key of a private key.
const (
	scryptN      = 32768
	scryptR      = 8
	scryptP      = 1
	sealKeyBytes = 32
)

// ErrCredentialNotFound is returned for an unknown alias.
var ErrCredentialNotFound = errors.New("credential not found")

type storeXML struct {
	XMLName     xml.Name        `xml:"store"`
	Version     string          `xml:"version,attr"`
	Credentials []credentialXML `xml:"credentials>credential"`
}

type credentialXML struct {
	Id                  string `xml:"id,attr"`
	CredentialSalt      string `xml:"credentialSalt,attr"`
	Name                string `xml:"name"`
	ABN                 string `xml:"abn"`
	NotBefore           string `xml:"notBefore"`
	NotAfter            string `xml:"notAfter"`
	PublicCertificate   string `xml:"publicCertificate"`
	ProtectedPrivateKey string `xml:"protectedPrivateKey"`
}

// Keystore is a loaded keystore file.
type Keystore struct {
	path        string
	credentials map[string]*Credential
}

// Credential is one aliased client credential.
type Credential struct {
	Alias     string
	Name      string
	ABN       string
	NotBefore time.Time
	NotAfter  time.Time

	certificate  []byte
	salt         []byte
	protectedKey []byte
}

// ResolvePath returns path unchanged when absolute. A relative path resolves
// against the directory of the running executable, falling back to the
// working directory when no file exists there.
func ResolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	exe, err := os.Executable()
	if err != nil {
		return path
	}

	candidate := filepath.Join(filepath.Dir(exe), path)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}

	return path
}

// Open loads the keystore file at path, see ResolvePath.
func Open(path string) (*Keystore, error) {
	resolved := ResolvePath(path)

	f, err := os.Open(resolved)
	if err != nil {
		return nil, fmt.Errorf("unable to open keystore %q: %w", resolved, err)
	}
	defer f.Close()

	ks, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("unable to load keystore %q: %w", resolved, err)
	}
	ks.path = resolved

	return ks, nil
}

// Load decodes a keystore document.
func Load(r io.Reader) (*Keystore, error) {
	var doc storeXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid keystore document: %w", err)
	}

	ks := &Keystore{credentials: make(map[string]*Credential, len(doc.Credentials))}
	for _, c := range doc.Credentials {
		cred, err := parseCredential(c)
		if err != nil {
			return nil, fmt.Errorf("credential %q: %w", c.Id, err)
		}
		ks.credentials[cred.Alias] = cred
	}

	return ks, nil
}

func parseCredential(c credentialXML) (*Credential, error) {
	if c.Id == "" {
		return nil, errors.New("missing id")
	}

	cred := &Credential{
		Alias: c.Id,
		Name:  strings.TrimSpace(c.Name),
		ABN:   strings.TrimSpace(c.ABN),
	}

	var err error
	if cred.NotBefore, err = parseInstant(c.NotBefore); err != nil {
		return nil, fmt.Errorf("notBefore: %w", err)
	}
	if cred.NotAfter, err = parseInstant(c.NotAfter); err != nil {
		return nil, fmt.Errorf("notAfter: %w", err)
	}
	if cred.certificate, err = decodeBase64(c.PublicCertificate); err != nil {
		return nil, fmt.Errorf("publicCertificate: %w", err)
	}
	if cred.salt, err = decodeBase64(c.CredentialSalt); err != nil {
		return nil, fmt.Errorf("credentialSalt: %w", err)
	}
	if cred.protectedKey, err = decodeBase64(c.ProtectedPrivateKey); err != nil {
		return nil, fmt.Errorf("protectedPrivateKey: %w", err)
	}

	return cred, nil
}

func parseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}

func decodeBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(strings.Join(strings.Fields(s), ""))
}

// Path is the resolved file path, empty for a keystore built with Load.
func (k *Keystore) Path() string {
	return k.path
}

// Aliases lists the credential aliases in the store.
func (k *Keystore) Aliases() []string {
	aliases := make([]string, 0, len(k.credentials))
	for alias := range k.credentials {
		aliases = append(aliases, alias)
	}
	return aliases
}

// GetCredential returns the credential stored under alias.
func (k *Keystore) GetCredential(alias string) (*Credential, error) {
	cred, ok := k.credentials[alias]
	if !ok {
		return nil, fmt.Errorf("%w: alias %q", ErrCredentialNotFound, alias)
	}
	return cred, nil
}

// IsReadyForRenewal reports whether now is within window of the end of the
// credential's validity.
func (c *Credential) IsReadyForRenewal(now time.Time, window time.Duration) bool {
	if c.NotAfter.IsZero() {
		return false
	}
	return !now.Before(c.NotAfter.Add(-window))
}

// Certificate parses the public certificate.
func (c *Credential) Certificate() (*x509.Certificate, error) {
	return x509.ParseCertificate(c.certificate)
}

// PrivateKey unseals the private key with the passphrase and returns it
// paired with the certificate. The secret is not modified; clearing it is up
// to the caller.
func (c *Credential) PrivateKey(secret *Secret) (tls.Certificate, error) {
	if secret.Empty() {
		return tls.Certificate{}, errors.New("empty keystore passphrase")
	}

	key, err := scrypt.Key(secret.Bytes(), c.salt, scryptN, scryptR, scryptP, sealKeyBytes)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("unable to derive the key for %q: %w", c.Alias, err)
	}
	defer wipe(key)

	der, err := open(key, c.protectedKey)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("unable to unseal the private key of %q, wrong passphrase or corrupt keystore: %w", c.Alias, err)
	}
	defer wipe(der)

	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	defer wipe(keyPEM)
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: c.certificate})

	pair, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("private key of %q does not match its certificate: %w", c.Alias, err)
	}

	pair.Leaf, err = x509.ParseCertificate(c.certificate)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("unable to parse the certificate of %q: %w", c.Alias, err)
	}

	return pair, nil
}

// open decrypts nonce||ciphertext with AES-GCM.
func open(key, sealed []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(sealed) < gcm.NonceSize() {
		return nil, errors.New("sealed key too short")
	}
	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, []byte("usi-keystore"))
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

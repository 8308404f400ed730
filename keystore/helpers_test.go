package keystore

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/xml"
	"math/big"
	"time"

	"golang.org/x/crypto/scrypt"
)

type testCredential struct {
	alias      string
	passphrase string
	notBefore  time.Time
	notAfter   time.Time
	key        *ecdsa.PrivateKey
	certDER    []byte
}

func newTestCredential(alias, passphrase string, notBefore, notAfter time.Time) testCredential {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		panic(err)
	}

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: alias},
		NotBefore:    notBefore,
		NotAfter:     notAfter,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		panic(err)
	}

	return testCredential{alias: alias, passphrase: passphrase, notBefore: notBefore, notAfter: notAfter, key: key, certDER: der}
}

// seal encrypts the PKCS#8 form of key the way the keystore expects it.
func seal(key *ecdsa.PrivateKey, passphrase string, salt []byte) []byte {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		panic(err)
	}
	derived, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, sealKeyBytes)
	if err != nil {
		panic(err)
	}
	block, _ := aes.NewCipher(derived)
	gcm, _ := cipher.NewGCM(block)
	nonce := make([]byte, gcm.NonceSize())
	_, _ = rand.Read(nonce)
	return gcm.Seal(nonce, nonce, der, []byte("usi-keystore"))
}

func buildStore(creds ...testCredential) []byte {
	doc := storeXML{Version: "1.0"}
	for _, c := range creds {
		salt := make([]byte, 16)
		_, _ = rand.Read(salt)
		doc.Credentials = append(doc.Credentials, credentialXML{
			Id:                  c.alias,
			CredentialSalt:      base64.StdEncoding.EncodeToString(salt),
			Name:                "USIMachine",
			ABN:                 "27809366375",
			NotBefore:           c.notBefore.UTC().Format(time.RFC3339),
			NotAfter:            c.notAfter.UTC().Format(time.RFC3339),
			PublicCertificate:   base64.StdEncoding.EncodeToString(c.certDER),
			ProtectedPrivateKey: base64.StdEncoding.EncodeToString(seal(c.key, c.passphrase, salt)),
		})
	}

	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

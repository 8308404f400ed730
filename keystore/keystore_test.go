package keystore

import (
	"bytes"
	"crypto/ecdsa"
	"os"
	"path/filepath"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const alias = "ABRD:27809366375_USIMachine"

var _ = Describe("Keystore", func() {
	var (
		now  time.Time
		cred testCredential
		raw  []byte
	)

	BeforeEach(func() {
		now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		cred = newTestCredential(alias, "Password1!", now.AddDate(-1, 0, 0), now.AddDate(1, 0, 0))
		raw = buildStore(cred)
	})

	It("should index credentials by alias", func() {
		ks, err := Load(bytes.NewReader(raw))
		Expect(err).ToNot(HaveOccurred())
		Expect(ks.Aliases()).To(ConsistOf(alias))

		c, err := ks.GetCredential(alias)
		Expect(err).ToNot(HaveOccurred())
		Expect(c.ABN).To(Equal("27809366375"))
		Expect(c.NotAfter).To(BeTemporally("==", cred.notAfter))
	})

	It("should fail for an unknown alias", func() {
		ks, err := Load(bytes.NewReader(raw))
		Expect(err).ToNot(HaveOccurred())

		_, err = ks.GetCredential("ABRD:nobody")
		Expect(err).To(MatchError(ErrCredentialNotFound))
	})

	It("should reject a document that is not a keystore", func() {
		_, err := Load(strings.NewReader("<notastore>"))
		Expect(err).To(HaveOccurred())
	})

	It("should unseal the private key with the right passphrase", func() {
		ks, _ := Load(bytes.NewReader(raw))
		c, _ := ks.GetCredential(alias)

		secret := NewSecret([]byte("Password1!"))
		pair, err := c.PrivateKey(secret)
		Expect(err).ToNot(HaveOccurred())
		Expect(pair.Leaf).ToNot(BeNil())
		Expect(pair.Leaf.Subject.CommonName).To(Equal(alias))

		key, ok := pair.PrivateKey.(*ecdsa.PrivateKey)
		Expect(ok).To(BeTrue())
		Expect(key.Equal(cred.key)).To(BeTrue())
	})

	It("should fail with the wrong passphrase", func() {
		ks, _ := Load(bytes.NewReader(raw))
		c, _ := ks.GetCredential(alias)

		_, err := c.PrivateKey(NewSecret([]byte("wrong")))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("wrong passphrase"))
	})

	It("should refuse an empty passphrase", func() {
		ks, _ := Load(bytes.NewReader(raw))
		c, _ := ks.GetCredential(alias)

		_, err := c.PrivateKey(NewSecret(nil))
		Expect(err).To(HaveOccurred())
	})

	Describe("IsReadyForRenewal", func() {
		window := 14 * 24 * time.Hour

		It("should be false well before expiry", func() {
			c := &Credential{NotAfter: now.AddDate(0, 1, 0)}
			Expect(c.IsReadyForRenewal(now, window)).To(BeFalse())
		})

		It("should be true inside the window", func() {
			c := &Credential{NotAfter: now.AddDate(0, 0, 10)}
			Expect(c.IsReadyForRenewal(now, window)).To(BeTrue())
		})

		It("should be true after expiry", func() {
			c := &Credential{NotAfter: now.AddDate(0, 0, -1)}
			Expect(c.IsReadyForRenewal(now, window)).To(BeTrue())
		})
	})

	Describe("Open", func() {
		It("should load a keystore from an absolute path", func() {
			path := filepath.Join(GinkgoT().TempDir(), "keystore-usi.xml")
			Expect(os.WriteFile(path, raw, 0600)).To(Succeed())

			ks, err := Open(path)
			Expect(err).ToNot(HaveOccurred())
			Expect(ks.Path()).To(Equal(path))
		})

		It("should report a missing file", func() {
			_, err := Open(filepath.Join(GinkgoT().TempDir(), "missing.xml"))
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("Secret", func() {
	It("should wipe its buffer on Clear", func() {
		buf := []byte("hunter2")
		s := NewSecret(buf)
		s.Clear()

		Expect(buf).To(Equal(make([]byte, 7)))
		Expect(s.Empty()).To(BeTrue())
	})

	It("should never print its contents", func() {
		s := NewSecret([]byte("hunter2"))
		Expect(s.String()).ToNot(ContainSubstring("hunter2"))
	})
})

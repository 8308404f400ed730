package keystore

// Secret holds a passphrase in a byte buffer that can be wiped. It never
// prints its contents.
type Secret struct {
	b []byte
}

// NewSecret takes ownership of b. The caller must not keep using b.
func NewSecret(b []byte) *Secret {
	return &Secret{b: b}
}

// Bytes returns the underlying buffer, valid until Clear.
func (s *Secret) Bytes() []byte {
	if s == nil {
		return nil
	}
	return s.b
}

// Empty reports whether the secret holds no bytes.
func (s *Secret) Empty() bool {
	return s == nil || len(s.b) == 0
}

// Clear zeroes the buffer and drops it.
func (s *Secret) Clear() {
	if s == nil {
		return
	}
	for i := range s.b {
		s.b[i] = 0
	}
	s.b = nil
}

func (s *Secret) String() string {
	return "[redacted]"
}

func (s *Secret) GoString() string {
	return "keystore.Secret{[redacted]}"
}

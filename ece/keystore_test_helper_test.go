package ece

// testKeyStore is a minimal in-package KeyStore used only by this
// package's own tests; the real implementations live in package
// keystore.
type testKeyStore struct {
	raw map[string][]byte
	dh  map[string]dhEntry
}

type dhEntry struct {
	priv  DHPrivateKey
	label string
}

func newTestKeyStore() *testKeyStore {
	return &testKeyStore{raw: map[string][]byte{}, dh: map[string]dhEntry{}}
}

func (s *testKeyStore) RawKey(keyid string) ([]byte, bool, error) {
	k, ok := s.raw[keyid]
	return k, ok, nil
}

func (s *testKeyStore) DHKey(keyid string) (DHPrivateKey, string, bool, error) {
	e, ok := s.dh[keyid]
	if !ok {
		return nil, "", false, nil
	}
	return e.priv, e.label, true, nil
}

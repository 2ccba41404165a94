package pointcache

// Handle addresses one key of a Backend. A Handle with a nil backend never
// stores anything.
type Handle struct {
	store Backend
	key   string
}

// NewHandle returns a handle for key in store.
func NewHandle(store Backend, key string) Handle {
	return Handle{store: store, key: key}
}

func (h Handle) Key() string { return h.key }

// Derive returns the child key "<key>.<sub>".
func (h Handle) Derive(sub string) Handle {
	if h.key == "" {
		return Handle{store: h.store, key: sub}
	}
	return Handle{store: h.store, key: h.key + "." + sub}
}

// Navigate returns a handle for an absolute key in the same store.
func (h Handle) Navigate(key string) Handle {
	return Handle{store: h.store, key: key}
}

// Get returns the stored value and whether it was present.
func (h Handle) Get() (string, bool, error) {
	if h.store == nil {
		return "", false, nil
	}
	v, ok, err := h.store.Get([]byte(h.key))
	if err != nil || !ok {
		return "", false, err
	}
	return string(v), true, nil
}

// Set stores val. An empty val removes the key.
func (h Handle) Set(val string) error {
	if h.store == nil {
		return nil
	}
	if val == "" {
		return h.store.Delete([]byte(h.key))
	}
	return h.store.Put([]byte(h.key), []byte(val))
}

// Clear removes the key.
func (h Handle) Clear() error { return h.Set("") }

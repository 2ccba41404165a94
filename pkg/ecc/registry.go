package ecc

import (
	"fmt"
	"sort"
	"sync"

	"github.com/smallyu/go-ecmath/internal/logging"
)

var logger = logging.MustGetLogger("ecc")

const (
	P256Name      = "P-256"
	Secp256k1Name = "secp256k1"
)

var p256Hex = CurveHex{
	Name:     P256Name,
	Modulus:  "ffffffff00000001000000000000000000000000ffffffffffffffffffffffff",
	A:        "ffffffff00000001000000000000000000000000fffffffffffffffffffffffc",
	B:        "5ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53b0f63bce3c3e27d2604b",
	Gx:       "6b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296",
	Gy:       "4fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5",
	Order:    "ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551",
	Cofactor: "1",
}

var secp256k1Hex = CurveHex{
	Name:     Secp256k1Name,
	Modulus:  "fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f",
	A:        "00",
	B:        "07",
	Gx:       "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
	Gy:       "483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8",
	Order:    "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141",
	Cofactor: "1",
}

var (
	p256Once sync.Once
	p256     *Curve

	secp256k1Once sync.Once
	secp256k1     *Curve
)

func mustBuild(def CurveHex) *Curve {
	c, err := Build(def)
	if err != nil {
		panic(err)
	}
	logger.Debugw("built curve", "name", def.Name)
	return c
}

// P256 returns the NIST P-256 curve. Every call returns the same value.
func P256() *Curve {
	p256Once.Do(func() { p256 = mustBuild(p256Hex) })
	return p256
}

// Secp256k1 returns the secp256k1 curve. Every call returns the same value.
func Secp256k1() *Curve {
	secp256k1Once.Do(func() { secp256k1 = mustBuild(secp256k1Hex) })
	return secp256k1
}

// Registry maps curve names to lazily built curves. It is safe for
// concurrent use.
type Registry struct {
	mu    sync.Mutex
	defs  map[string]CurveHex
	built map[string]*Curve
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		defs:  make(map[string]CurveHex),
		built: make(map[string]*Curve),
	}
}

// DefaultRegistry returns a registry holding P-256 and secp256k1. Lookups of
// those names return the values of P256 and Secp256k1.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.defs[P256Name] = p256Hex
	r.defs[Secp256k1Name] = secp256k1Hex
	r.built[P256Name] = P256()
	r.built[Secp256k1Name] = Secp256k1()
	return r
}

// IsNamedCurve reports whether name belongs to a built-in curve. Those names
// cannot be registered again, so caches keyed by curve name never mix them
// up with other parameters.
func IsNamedCurve(name string) bool {
	return name == P256Name || name == Secp256k1Name
}

// Register adds or replaces a curve definition. The curve is built on the
// first Get. Built-in names are rejected.
func (r *Registry) Register(def CurveHex) error {
	if def.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidCurve)
	}
	if IsNamedCurve(def.Name) {
		return fmt.Errorf("%w: %q is a built-in curve", ErrInvalidCurve, def.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[def.Name] = def
	delete(r.built, def.Name)
	return nil
}

// Get returns the named curve, building it on first use.
func (r *Registry) Get(name string) (*Curve, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.built[name]; ok {
		return c, nil
	}
	def, ok := r.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurve, name)
	}
	c, err := Build(def)
	if err != nil {
		return nil, err
	}
	logger.Debugw("built curve", "name", name)
	r.built[name] = c
	return c, nil
}

// Names returns the registered curve names in sorted order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

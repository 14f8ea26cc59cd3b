package codec

import (
	"fmt"
	"sort"

	"github.com/johantibbelin/atari800/internal/avierr"
)

// Registry holds the set of known video codecs and resolves "auto" or an
// explicit id to one of them.
type Registry struct {
	codecs map[string]Codec
	haveDeflate bool
}

// NewRegistry builds a registry from the given codecs. MRLE is expected
// to always be present; the caller decides which of
// MPNG/ZMBV to include (they are compile-time-or-runtime-optional, and
// absent codecs must neither appear in the list nor be resolvable).
// haveDeflate gates the "auto" preference for ZMBV, mirroring the
// source's "ZMBV requires zlib" capability check.
func NewRegistry(haveDeflate bool, codecs ...Codec) *Registry {
	r := &Registry{codecs: make(map[string]Codec, len(codecs)), haveDeflate: haveDeflate}
	for _, c := range codecs {
		r.codecs[c.Descriptor().ID] = c
	}
	return r
}

// Resolve returns the codec for id, or the "best" codec for "auto":
// prefer ZMBV if both ZMBV and deflate are available, else MRLE.
func (r *Registry) Resolve(idOrAuto string) (Codec, error) {
	if idOrAuto == "auto" {
		if c, ok := r.codecs["zmbv"]; ok && r.haveDeflate {
			return c, nil
		}
		if c, ok := r.codecs["mrle"]; ok {
			return c, nil
		}
		return nil, fmt.Errorf("codec: no codec available for auto selection: %w", avierr.InvalidArgument)
	}
	c, ok := r.codecs[idOrAuto]
	if !ok {
		return nil, fmt.Errorf("codec: unknown codec id %q: %w", idOrAuto, avierr.InvalidArgument)
	}
	return c, nil
}

// ListIDs returns the known codec ids in a stable, sorted order, used to
// build the CLI help line.
func (r *Registry) ListIDs() []string {
	ids := make([]string, 0, len(r.codecs))
	for id := range r.codecs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

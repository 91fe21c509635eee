// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fileid derives short stable identifiers from source filenames.
// The id disambiguates media extracted from different documents that land
// in the same output directory; it carries no cryptographic guarantee.
package fileid

import (
	"crypto/md5"
	"encoding/hex"
	"path/filepath"
	"strings"
)

// idLen is the number of hex characters kept from the digest. Eight is
// plenty for the handful of documents a single run sees.
const idLen = 8

// Derive returns a fixed-length lowercase hex id for a filename. The id
// depends only on the basename with its extension removed, so the same
// document yields the same id across runs and machines.
func Derive(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	sum := md5.Sum([]byte(base))
	return hex.EncodeToString(sum[:])[:idLen]
}

package rendercache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/flowtext/mmdascii/pkg/config"
)

// Hash computes the full 64-character hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// RenderKey derives a cache key from the diagram source and the render
// configuration that affects its output, so two requests for the same
// source under different configs never collide.
func RenderKey(source string, cfg config.RenderConfig) string {
	parts, _ := json.Marshal(struct {
		Source string
		Cfg    config.RenderConfig
	}{source, cfg})
	sum := sha256.Sum256(parts)
	return fmt.Sprintf("render:%s", hex.EncodeToString(sum[:]))
}

package sink

import (
	"fmt"

	"github.com/matzehuels/progresstwin/pkg/codec"
	"github.com/matzehuels/progresstwin/pkg/scene"
)

// RenderCBOR encodes sc in deterministic CBOR. Equal scenes encode to
// equal bytes.
func RenderCBOR(sc *scene.Scene) ([]byte, error) {
	data, err := codec.Marshal(sc)
	if err != nil {
		return nil, fmt.Errorf("encode scene: %w", err)
	}
	return data, nil
}

// DecodeCBOR reads a scene written by [RenderCBOR].
func DecodeCBOR(data []byte) (*scene.Scene, error) {
	var sc scene.Scene
	if err := codec.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return &sc, nil
}

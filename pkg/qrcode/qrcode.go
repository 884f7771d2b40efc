package qrcode

import (
	"fmt"
	"strings"

	"github.com/asbbic/membership/pkg/media"
	qr "github.com/skip2/go-qrcode"
)

const imageSize = 256

// Generator renders scannable verification codes. Each code encodes the
// public verification URL for one member record and is stored through the
// media store as <id>.png.
type Generator struct {
	baseURL string
	media   *media.Store
}

func New(baseURL string, store *media.Store) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		media:   store,
	}
}

func (g *Generator) Generate(id string) (string, error) {
	payload := fmt.Sprintf("%s/verify/%s", g.baseURL, id)

	png, err := qr.Encode(payload, qr.Medium, imageSize)
	if err != nil {
		return "", fmt.Errorf("failed to encode verification code: %w", err)
	}

	return g.media.Save(media.QRCodeDir, id+".png", png)
}

package handlers

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
)

// SessionQR serves a QR code PNG that links a phone to the session
func (h *Handler) SessionQR(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if _, err := h.store.GetSession(code); err != nil {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}

	joinURL := fmt.Sprintf("%s/session/%s", h.baseURL(r), code)

	png, err := generateQRCode(joinURL)
	if err != nil {
		log.Printf("failed to generate QR code for session %s: %v", code, err)
		respondError(w, http.StatusInternalServerError, "could not generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}

// baseURL resolves the externally visible base URL: configured value
// first, then reverse-proxy headers, then the raw request
func (h *Handler) baseURL(r *http.Request) string {
	if h.config.Server.PublicURL != "" {
		return h.config.Server.PublicURL
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	host := r.Host
	if forwardedHost := r.Header.Get("X-Forwarded-Host"); forwardedHost != "" {
		host = forwardedHost
	}

	return fmt.Sprintf("%s://%s", scheme, host)
}

// nopWriteCloser adapts a buffer to the QR writer's contract
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// generateQRCode renders the URL as a PNG
func generateQRCode(url string) ([]byte, error) {
	qrc, err := qrcode.NewWith(url,
		qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium),
		qrcode.WithEncodingMode(qrcode.EncModeByte),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	buf := &bytes.Buffer{}
	writer := standard.NewWithWriter(nopWriteCloser{buf},
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
		standard.WithQRWidth(8), // 8 pixels per module
	)

	if err := qrc.Save(writer); err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}

	return buf.Bytes(), nil
}

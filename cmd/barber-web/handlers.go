package main

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gburgcut/barber-ai/internal/catalog"
	"github.com/gburgcut/barber-ai/internal/gateway"
)

// decodeImage converts an upload payload into gateway input. A payload with
// no data returns a zero input, which the gateway rejects where an image is
// required.
func decodeImage(p *imagePayload) (gateway.ImageInput, error) {
	if p == nil || p.Data == "" {
		return gateway.ImageInput{}, nil
	}
	data, err := base64.StdEncoding.DecodeString(p.Data)
	if err != nil {
		return gateway.ImageInput{}, err
	}
	return gateway.ImageInput{Data: data, MIMEType: p.MIMEType}, nil
}

// GET /api/catalog?lang=en
func (s *server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	lang := catalog.ParseLanguage(r.URL.Query().Get("lang"))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"shopName": catalog.ShopName,
		"address":  catalog.ShopAddress,
		"language": lang,
		"services": catalog.Services(lang),
		"styles":   catalog.Styles(lang),
	})
}

// POST /api/advice
func (s *server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Prompt   string        `json:"prompt"`
		Language string        `json:"language"`
		Image    *imagePayload `json:"image,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	adviceReq := gateway.AdviceRequest{
		Prompt:   req.Prompt,
		Language: catalog.ParseLanguage(req.Language),
	}
	if req.Image != nil && req.Image.Data != "" {
		img, err := decodeImage(req.Image)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid image encoding")
			return
		}
		adviceReq.Image = &img
	}

	advice, err := s.gw.GetAdvice(r.Context(), adviceReq)
	if err != nil {
		writeGatewayError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, advice)
}

// POST /api/visualize
func (s *server) handleVisualize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Image   imagePayload `json:"image"`
		StyleID string       `json:"styleId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	img, err := decodeImage(&req.Image)
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid image encoding")
		return
	}

	result, err := s.gw.Visualize(r.Context(), img, req.StyleID)
	if err != nil {
		writeGatewayError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"data":     base64.StdEncoding.EncodeToString(result.Data),
		"mimeType": result.MIMEType,
	})
}

// GET /api/nearby?lang=en&lat=39.14&lng=-77.20
func (s *server) handleNearby(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	lang := catalog.ParseLanguage(r.URL.Query().Get("lang"))

	var coords *gateway.Coordinates
	latStr, lngStr := r.URL.Query().Get("lat"), r.URL.Query().Get("lng")
	if latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			httpError(w, http.StatusBadRequest, "invalid coordinates")
			return
		}
		coords = &gateway.Coordinates{Lat: lat, Lng: lng}
	}

	answer, err := s.gw.FindNearby(r.Context(), coords, lang)
	if err != nil {
		writeGatewayError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, answer)
}
